// Package flights wires the flight search tools into a session's tool
// registry.
package flights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/catalog"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/registry"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/render"
)

// Tool names exposed on every session.
const (
	ToolStructuredContent = "getFlightResultsAsStructuredContent"
	ToolRawHTML           = "getFlightResultsAsRawHtml"
	ToolExternalURL       = "getFlightsAsExternalUrl"
	ToolUEM               = "getFlightResultsAsUem"
	ToolStaticLWC         = "getStaticLwc"
	ToolFlightDetailsLWC  = "getFlightDetailsAndRenderinLWC"
	ToolRemoteDOM         = "showRemoteDom"
	ToolSearchForm        = "showFlightSearchForm"
	ToolAddressManager    = "addressManager"
)

// Resource URIs identifying each tool's UI payload.
const (
	uriRawHTML      = "ui://raw-html-demo"
	uriExternalURL  = "ui://external-url-demo"
	uriUEM          = "ui://uem-demo"
	uriStaticLWC    = "ui://lwcComponentAsRawHtml"
	uriLWCComponent = "ui://lwcComponent"
	uriRemoteDOM    = "ui://remote-dom-demo"
	uriSearchForm   = "ui://flight-search-form"
	uriAddressMgr   = "ui://address-manager"
)

// Toolset binds the flight tools to their collaborators.
type Toolset struct {
	catalog       *catalog.Provider
	renderer      *render.Renderer
	lwc           *render.LWCRenderer
	publicBaseURL string
	externalURL   string
	logger        *logging.Logger
}

// NewToolset creates the toolset.
func NewToolset(provider *catalog.Provider, renderer *render.Renderer, lwc *render.LWCRenderer, publicBaseURL, externalURL string, logger *logging.Logger) *Toolset {
	if logger == nil {
		logger = logging.Default()
	}
	return &Toolset{
		catalog:       provider,
		renderer:      renderer,
		lwc:           lwc,
		publicBaseURL: publicBaseURL,
		externalURL:   externalURL,
		logger:        logger,
	}
}

// searchResults is the structured payload shared by the search tools.
type searchResults struct {
	Flights []domain.FlightOffer `json:"flights"`
}

// searchRequest is the decoded form of the shared search input.
type searchRequest struct {
	OriginCity      string
	DestinationCity string
	DateOfTravel    string
	MaxPrice        float64
	MinDiscount     float64
}

func decodeSearchRequest(args map[string]interface{}) searchRequest {
	req := searchRequest{
		OriginCity:      stringArg(args, "originCity"),
		DestinationCity: stringArg(args, "destinationCity"),
		DateOfTravel:    stringArg(args, "dateOfTravel"),
	}
	if filters, ok := args["filters"].(map[string]interface{}); ok {
		req.MaxPrice = numberArg(filters, "price")
		req.MinDiscount = numberArg(filters, "discountPercentage")
	}
	return req
}

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func numberArg(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	}
	return 0
}

func (t *Toolset) search(req searchRequest) searchResults {
	t.logger.Info("flight search", logging.Fields{
		"origin":      req.OriginCity,
		"destination": req.DestinationCity,
		"date":        req.DateOfTravel,
		"maxPrice":    req.MaxPrice,
		"minDiscount": req.MinDiscount,
	})
	return searchResults{Flights: t.catalog.Search(catalog.Query{
		Origin:      req.OriginCity,
		Destination: req.DestinationCity,
		MaxPrice:    req.MaxPrice,
		MinDiscount: req.MinDiscount,
	})}
}

func uiResult(res domain.UIResource) *shared.CallToolResult {
	return &shared.CallToolResult{
		Content: []shared.Content{shared.NewUIResourceContent(res)},
	}
}

// RegisterAll adds every flight tool to the registry in the order they
// are advertised.
func (t *Toolset) RegisterAll(reg *registry.Registry) error {
	descriptors := []registry.Descriptor{
		{
			Name:         ToolStructuredContent,
			Title:        "Search Flights",
			Description:  "Search for available flights between two cities on a specific date. Returns flight details including prices and times.",
			InputSchema:  searchRequestSchema(),
			OutputSchema: searchResponseSchema(),
			Handler:      t.handleStructuredContent,
		},
		{
			Name:        ToolRawHTML,
			Title:       "Search Flights",
			Description: "Search for available flights between two cities on a specific date. Returns flight details including prices and times. Returns the results as raw HTML.",
			InputSchema: searchRequestSchema(),
			Handler:     t.handleRawHTML,
		},
		{
			Name:        ToolExternalURL,
			Title:       "Search Flights",
			Description: "Search for available flights between two cities on a specific date. Returns flight details including prices and times. Returns the results as an embedded external page.",
			InputSchema: searchRequestSchema(),
			Handler:     t.handleExternalURL,
		},
		{
			Name:        ToolUEM,
			Title:       "Search Flights",
			Description: "Search for available flights between two cities on a specific date. Returns flight details including prices and times. Returns the results as UEM that is translated client-side.",
			InputSchema: searchRequestSchema(),
			Handler:     t.handleUEM,
		},
		{
			Name:        ToolStaticLWC,
			Title:       "Get Static LWC Component",
			Description: "Static LWC Component",
			Handler:     t.handleStaticLWC,
		},
		{
			Name:        ToolFlightDetailsLWC,
			Title:       "Get LWC Component",
			Description: "LWC Component",
			InputSchema: searchRequestSchema(),
			Handler:     t.handleFlightDetailsLWC,
		},
		{
			Name:        ToolRemoteDOM,
			Title:       "Show Remote DOM",
			Description: "Shows todays weather forecast using remote DOM script.",
			InputSchema: emptySchema(),
			Handler:     t.handleRemoteDOM,
		},
		{
			Name:        ToolSearchForm,
			Title:       "Show Flight Search Form",
			Description: "Displays an interactive form to search for flights with tool selection.",
			InputSchema: emptySchema(),
			Handler:     t.handleSearchForm,
		},
		{
			Name:        ToolAddressManager,
			Title:       "Address Manager",
			Description: "Self-contained address manager that allows entering and displaying address information in one UI.",
			InputSchema: emptySchema(),
			Handler:     t.handleAddressManager,
		},
	}

	for _, d := range descriptors {
		if err := reg.Register(d); err != nil {
			return errors.Wrapf(err, "registering %s", d.Name)
		}
	}
	return nil
}

func (t *Toolset) handleStructuredContent(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	results := t.search(decodeSearchRequest(args))

	text, err := json.Marshal(results)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling flight results")
	}
	return &shared.CallToolResult{
		Content:           []shared.Content{shared.NewTextContent(string(text))},
		StructuredContent: results,
	}, nil
}

func (t *Toolset) handleRawHTML(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	req := decodeSearchRequest(args)
	results := t.search(req)

	html := t.renderer.ResultsHTML(results.Flights, req.OriginCity, req.DestinationCity, req.DateOfTravel)
	return uiResult(domain.NewRawHTMLResource(uriRawHTML, html)), nil
}

func (t *Toolset) handleExternalURL(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	return uiResult(t.renderer.ExternalURL(uriExternalURL, t.externalURL)), nil
}

func (t *Toolset) handleUEM(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	req := decodeSearchRequest(args)
	results := t.search(req)

	html := t.renderer.ResultsHTML(results.Flights, req.OriginCity, req.DestinationCity, req.DateOfTravel)
	return uiResult(domain.NewRawHTMLResource(uriUEM, html)), nil
}

func (t *Toolset) handleStaticLWC(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	page, err := t.lwc.RenderComponent("x-app", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	return uiResult(domain.NewRawHTMLResource(uriStaticLWC, page)), nil
}

func (t *Toolset) handleFlightDetailsLWC(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	url := fmt.Sprintf("%s/lwc/x-flightDetails", t.publicBaseURL)
	return uiResult(domain.NewExternalURLResource(uriLWCComponent, url)), nil
}

func (t *Toolset) handleRemoteDOM(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	return uiResult(t.renderer.RemoteDOM(uriRemoteDOM)), nil
}

func (t *Toolset) handleSearchForm(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	res, err := t.renderer.FlightSearchForm(uriSearchForm)
	if err != nil {
		return nil, err
	}
	return uiResult(res), nil
}

func (t *Toolset) handleAddressManager(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	res, err := t.renderer.AddressManager(uriAddressMgr)
	if err != nil {
		return nil, err
	}
	return uiResult(res), nil
}
