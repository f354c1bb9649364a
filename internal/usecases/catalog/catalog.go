// Package catalog provides the demo flight inventory backing the search
// tools.
package catalog

import "github.com/skypeak/flight-mcp-ui/internal/domain"

// Provider serves flight offers for search queries.
type Provider struct {
	offers []domain.FlightOffer
}

// NewProvider creates a provider over the built-in demo inventory.
func NewProvider() *Provider {
	return &Provider{offers: demoOffers()}
}

// Query narrows the inventory. Origin and destination are accepted for
// interface compatibility but do not filter the demo inventory.
type Query struct {
	Origin      string
	Destination string
	MaxPrice    float64
	MinDiscount float64
}

// Search returns the offers priced at or below MaxPrice with a discount
// of at least MinDiscount, in inventory order.
func (p *Provider) Search(q Query) []domain.FlightOffer {
	results := make([]domain.FlightOffer, 0, len(p.offers))
	for _, offer := range p.offers {
		if offer.Price <= q.MaxPrice && offer.DiscountPercentage >= q.MinDiscount {
			results = append(results, offer)
		}
	}
	return results
}

// All returns the full inventory in order.
func (p *Provider) All() []domain.FlightOffer {
	out := make([]domain.FlightOffer, len(p.offers))
	copy(out, p.offers)
	return out
}

func demoOffers() []domain.FlightOffer {
	return []domain.FlightOffer{
		{
			FlightID:           "AA123",
			Price:              350.50,
			DiscountPercentage: 10,
			DurationInMin:      255,
			NumLayovers:        1,
			IsPetAllowed:       true,
		},
		{
			FlightID:           "UA456",
			Price:              520.00,
			DiscountPercentage: 5,
			DurationInMin:      390,
			NumLayovers:        0,
			IsPetAllowed:       false,
		},
		{
			FlightID:           "DL789",
			Price:              289.99,
			DiscountPercentage: 15,
			DurationInMin:      175,
			NumLayovers:        0,
			IsPetAllowed:       true,
		},
		{
			FlightID:           "SW011",
			Price:              410.75,
			DiscountPercentage: 0,
			DurationInMin:      440,
			NumLayovers:        2,
			IsPetAllowed:       false,
		},
	}
}
