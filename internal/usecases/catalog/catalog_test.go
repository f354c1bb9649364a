package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	p := NewProvider()

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{
			name:    "price and discount filters",
			query:   Query{MaxPrice: 400, MinDiscount: 5},
			wantIDs: []string{"AA123", "DL789"},
		},
		{
			name:    "high ceiling returns everything",
			query:   Query{MaxPrice: 1000, MinDiscount: 0},
			wantIDs: []string{"AA123", "UA456", "DL789", "SW011"},
		},
		{
			name:    "discount floor excludes undiscounted fares",
			query:   Query{MaxPrice: 1000, MinDiscount: 1},
			wantIDs: []string{"AA123", "UA456", "DL789"},
		},
		{
			name:    "no matches yields empty non-nil slice",
			query:   Query{MaxPrice: 100, MinDiscount: 0},
			wantIDs: []string{},
		},
		{
			name:    "boundary price is inclusive",
			query:   Query{MaxPrice: 289.99, MinDiscount: 15},
			wantIDs: []string{"DL789"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Search(tt.query)
			require.NotNil(t, got)
			ids := make([]string, 0, len(got))
			for _, offer := range got {
				ids = append(ids, offer.FlightID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearchIgnoresCities(t *testing.T) {
	p := NewProvider()

	with := p.Search(Query{Origin: "SFO", Destination: "JFK", MaxPrice: 1000})
	without := p.Search(Query{MaxPrice: 1000})

	assert.Equal(t, without, with)
}

func TestAllReturnsCopy(t *testing.T) {
	p := NewProvider()

	offers := p.All()
	require.Len(t, offers, 4)

	offers[0].FlightID = "mutated"
	assert.Equal(t, "AA123", p.All()[0].FlightID)
}
