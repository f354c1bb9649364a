// Package render turns flight data and presentation parameters into UI
// resource encodings.
package render

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
)

// Fixed notional departure used for arrival calculations. The requested
// travel date does not shift it. Known limitation.
const departureTime = "07:00"

const departureMinutes = 7 * 60

// FormatDuration converts minutes to "H hr M min". Zero minutes yields
// an empty string.
func FormatDuration(durationInMin int) string {
	if durationInMin == 0 {
		return ""
	}
	hours := durationInMin / 60
	minutes := durationInMin % 60
	return fmt.Sprintf("%d hr %d min", hours, minutes)
}

// ArrivalTime adds the flight duration to the notional departure and
// wraps at 24 hours, formatted as HH:MM.
func ArrivalTime(durationInMin int) string {
	total := (departureMinutes + durationInMin) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FlightView is a flight offer with its display fields resolved.
type FlightView struct {
	FlightID           string
	Price              float64
	DiscountPercentage float64
	NumLayovers        int
	PetAllowedStatus   string
	Duration           string
	DepartureTime      string
	ArrivalTime        string
}

// NewFlightView resolves the display fields for one offer.
func NewFlightView(offer domain.FlightOffer) FlightView {
	status := "No"
	if offer.IsPetAllowed {
		status = "Yes"
	}
	return FlightView{
		FlightID:           offer.FlightID,
		Price:              offer.Price,
		DiscountPercentage: offer.DiscountPercentage,
		NumLayovers:        offer.NumLayovers,
		PetAllowedStatus:   status,
		Duration:           FormatDuration(offer.DurationInMin),
		DepartureTime:      departureTime,
		ArrivalTime:        ArrivalTime(offer.DurationInMin),
	}
}

// Renderer composes UI resources from flight data and HTML assets.
type Renderer struct {
	assetDir string
}

// New creates a renderer reading template assets from assetDir.
func New(assetDir string) *Renderer {
	return &Renderer{assetDir: assetDir}
}

// ResultsHTML produces the flight results table as a standalone HTML
// fragment. Output is deterministic for a given input.
func (r *Renderer) ResultsHTML(offers []domain.FlightOffer, originCity, destinationCity, travelDate string) string {
	var b strings.Builder

	b.WriteString("<div class=\"flight-results\">\n")
	fmt.Fprintf(&b, "  <h2>Flights from %s to %s</h2>\n",
		html.EscapeString(originCity), html.EscapeString(destinationCity))
	if travelDate != "" {
		fmt.Fprintf(&b, "  <p class=\"travel-date\">Travel date: %s</p>\n", html.EscapeString(travelDate))
	}

	if len(offers) == 0 {
		b.WriteString("  <p class=\"no-results\">No flights match your search.</p>\n</div>")
		return b.String()
	}

	b.WriteString("  <table>\n")
	b.WriteString("    <thead>\n      <tr><th>Flight</th><th>Price</th><th>Discount</th><th>Departure</th><th>Arrival</th><th>Duration</th><th>Layovers</th><th>Pets Allowed</th></tr>\n    </thead>\n")
	b.WriteString("    <tbody>\n")
	for _, offer := range offers {
		v := NewFlightView(offer)
		fmt.Fprintf(&b,
			"      <tr><td>%s</td><td>$%.2f</td><td>%.0f%%</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>\n",
			html.EscapeString(v.FlightID), v.Price, v.DiscountPercentage,
			v.DepartureTime, v.ArrivalTime, v.Duration, v.NumLayovers, v.PetAllowedStatus)
	}
	b.WriteString("    </tbody>\n  </table>\n</div>")
	return b.String()
}

// RawHTMLResults wraps the results table as a raw-HTML UI resource.
func (r *Renderer) RawHTMLResults(uri string, offers []domain.FlightOffer, originCity, destinationCity, travelDate string) domain.UIResource {
	return domain.NewRawHTMLResource(uri, r.ResultsHTML(offers, originCity, destinationCity, travelDate))
}

// ExternalURL wraps an iframe URL as a UI resource. No offer data is
// embedded; the page fetches its own.
func (r *Renderer) ExternalURL(uri, iframeURL string) domain.UIResource {
	return domain.NewExternalURLResource(uri, iframeURL)
}

// remoteDOMScript is executed by a remote-DOM capable client. It is
// opaque to this server.
const remoteDOMScript = `
const p = document.createElement('ui-text');
p.textContent = 'This is a remote DOM element from the server.';
root.appendChild(p);
`

// RemoteDOM returns the demo remote-DOM script resource targeting the
// react framework.
func (r *Renderer) RemoteDOM(uri string) domain.UIResource {
	return domain.NewRemoteDOMResource(uri, remoteDOMScript, "react")
}

const scriptPlaceholder = "{{SCRIPT_PLACEHOLDER}}"

// FlightSearchForm loads the search form template and injects the form
// driver script.
func (r *Renderer) FlightSearchForm(uri string) (domain.UIResource, error) {
	page, err := r.loadAsset("flightSearchForm.html")
	if err != nil {
		return domain.UIResource{}, err
	}
	page = strings.Replace(page, scriptPlaceholder, formScript, 1)
	return domain.NewRawHTMLResource(uri, page), nil
}

// AddressManager loads the self-contained address manager page.
func (r *Renderer) AddressManager(uri string) (domain.UIResource, error) {
	page, err := r.loadAsset("addressSelfContained.html")
	if err != nil {
		return domain.UIResource{}, err
	}
	return domain.NewRawHTMLResource(uri, page), nil
}

func (r *Renderer) loadAsset(name string) (string, error) {
	path := filepath.Join(r.assetDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewAssetLoadError(path)
	}
	return string(data), nil
}
