package flights

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/catalog"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/registry"
	"github.com/skypeak/flight-mcp-ui/internal/usecases/render"
)

func newTestToolset(t *testing.T) (*Toolset, *registry.Registry) {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"flightSearchForm.html":     "<form id=\"flightSearchForm\"></form><script>{{SCRIPT_PLACEHOLDER}}</script>",
		"addressSelfContained.html": "<html>address manager</html>",
		"lwc-bundle.js":             "console.log('bundle');",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	ts := NewToolset(
		catalog.NewProvider(),
		render.New(dir),
		render.NewLWC(dir),
		"http://localhost:3000",
		"https://example.com",
		nil,
	)
	reg := registry.New(nil)
	require.NoError(t, ts.RegisterAll(reg))
	return ts, reg
}

func searchArgs(maxPrice, minDiscount float64) map[string]interface{} {
	return map[string]interface{}{
		"originCity":      "SFO",
		"destinationCity": "JFK",
		"dateOfTravel":    "2025-06-01",
		"filters": map[string]interface{}{
			"price":              maxPrice,
			"discountPercentage": minDiscount,
		},
	}
}

func embeddedResource(t *testing.T, result *shared.CallToolResult) shared.ResourceContents {
	t.Helper()
	require.Len(t, result.Content, 1)
	res, ok := result.Content[0].(shared.EmbeddedResource)
	require.True(t, ok, "expected an embedded resource content item")
	assert.Equal(t, "resource", res.Type)
	return res.Resource
}

func TestRegisterAllAdvertisesEveryTool(t *testing.T) {
	_, reg := newTestToolset(t)

	tools := reg.List()
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}

	assert.Equal(t, []string{
		"getFlightResultsAsStructuredContent",
		"getFlightResultsAsRawHtml",
		"getFlightsAsExternalUrl",
		"getFlightResultsAsUem",
		"getStaticLwc",
		"getFlightDetailsAndRenderinLWC",
		"showRemoteDom",
		"showFlightSearchForm",
		"addressManager",
	}, names)
}

func TestStructuredContentTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolStructuredContent, searchArgs(400, 5))
	require.NoError(t, err)

	structured, ok := result.StructuredContent.(searchResults)
	require.True(t, ok)
	require.Len(t, structured.Flights, 2)
	assert.Equal(t, "AA123", structured.Flights[0].FlightID)
	assert.Equal(t, "DL789", structured.Flights[1].FlightID)

	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(shared.TextContent)
	require.True(t, ok)

	var decoded map[string][]domain.FlightOffer
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.Len(t, decoded["flights"], 2)
}

func TestStructuredContentToolRejectsMissingFilters(t *testing.T) {
	_, reg := newTestToolset(t)

	args := searchArgs(400, 5)
	delete(args, "filters")

	_, err := reg.Invoke(context.Background(), ToolStructuredContent, args)

	var inputErr *domain.InputValidationError
	require.ErrorAs(t, err, &inputErr)
}

func TestRawHTMLTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolRawHTML, searchArgs(1000, 0))
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://raw-html-demo", res.URI)
	assert.Equal(t, "text/html", res.MIMEType)
	assert.Contains(t, res.Text, "Flights from SFO to JFK")
	assert.Contains(t, res.Text, "SW011")
}

func TestExternalURLTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolExternalURL, searchArgs(400, 0))
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://external-url-demo", res.URI)
	assert.Equal(t, "text/uri-list", res.MIMEType)
	assert.Equal(t, "https://example.com", res.Text)
}

func TestUEMTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolUEM, searchArgs(300, 0))
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://uem-demo", res.URI)
	assert.Contains(t, res.Text, "DL789")
	assert.NotContains(t, res.Text, "UA456")
}

func TestStaticLWCTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolStaticLWC, nil)
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://lwcComponentAsRawHtml", res.URI)
	assert.Equal(t, "text/html", res.MIMEType)
	assert.Contains(t, res.Text, "console.log('bundle');")
}

func TestFlightDetailsLWCTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolFlightDetailsLWC, searchArgs(400, 0))
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://lwcComponent", res.URI)
	assert.Equal(t, "text/uri-list", res.MIMEType)
	assert.Equal(t, "http://localhost:3000/lwc/x-flightDetails", res.Text)
}

func TestRemoteDOMTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolRemoteDOM, nil)
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://remote-dom-demo", res.URI)
	assert.Equal(t, "application/vnd.mcp-ui.remote-dom+javascript; framework=react", res.MIMEType)
	assert.Contains(t, res.Text, "ui-text")
}

func TestSearchFormTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolSearchForm, nil)
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://flight-search-form", res.URI)
	assert.Contains(t, res.Text, "postMessage")
	assert.NotContains(t, res.Text, "{{SCRIPT_PLACEHOLDER}}")
}

func TestAddressManagerTool(t *testing.T) {
	_, reg := newTestToolset(t)

	result, err := reg.Invoke(context.Background(), ToolAddressManager, nil)
	require.NoError(t, err)

	res := embeddedResource(t, result)
	assert.Equal(t, "ui://address-manager", res.URI)
	assert.Contains(t, res.Text, "address manager")
}

func TestSearchFormToolMissingAsset(t *testing.T) {
	dir := t.TempDir()
	ts := NewToolset(catalog.NewProvider(), render.New(dir), render.NewLWC(dir), "http://localhost:3000", "https://example.com", nil)
	reg := registry.New(nil)
	require.NoError(t, ts.RegisterAll(reg))

	_, err := reg.Invoke(context.Background(), ToolSearchForm, nil)

	var assetErr *domain.AssetLoadError
	require.ErrorAs(t, err, &assetErr)
}
