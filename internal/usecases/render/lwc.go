package render

import (
	"encoding/json"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
)

// bundleFile is the prebuilt component bundle shipped alongside the
// HTML assets.
const bundleFile = "lwc-bundle.js"

// knownComponents maps namespace-component names to the bootstrap
// element rendered for them.
var knownComponents = map[string]string{
	"x-app":           "x-app",
	"x-flightDetails": "x-flight-details",
}

// LWCRenderer serves server-rendered component pages backed by a
// prebuilt bundle.
type LWCRenderer struct {
	assetDir string
}

// NewLWC creates a component renderer reading the bundle from assetDir.
func NewLWC(assetDir string) *LWCRenderer {
	return &LWCRenderer{assetDir: assetDir}
}

// ParseComponentName validates a namespace-component name and returns
// the namespace and component halves.
func ParseComponentName(name string) (string, string, error) {
	namespace, component, found := strings.Cut(name, "-")
	if !found || namespace == "" || component == "" {
		return "", "", domain.NewComponentNameError(name)
	}
	return namespace, component, nil
}

// RenderComponent builds the full HTML page for a named component with
// the given data payload. The name must be of the form
// namespace-component and must identify a known component.
func (l *LWCRenderer) RenderComponent(name string, data interface{}) (string, error) {
	if _, _, err := ParseComponentName(name); err != nil {
		return "", err
	}
	if _, ok := knownComponents[name]; !ok {
		return "", domain.NewComponentNotFoundError(name)
	}

	bundle, err := l.loadBundle()
	if err != nil {
		return "", err
	}

	payload, err := embedJSON(data)
	if err != nil {
		return "", err
	}

	return componentPage(name, bundle, payload), nil
}

// RenderDefault builds the legacy flight details page, optionally
// seeded with data.
func (l *LWCRenderer) RenderDefault(data interface{}) (string, error) {
	return l.RenderComponent("x-flightDetails", data)
}

// BundleAvailable reports whether the component bundle can be read.
func (l *LWCRenderer) BundleAvailable() bool {
	_, err := os.Stat(filepath.Join(l.assetDir, bundleFile))
	return err == nil
}

func (l *LWCRenderer) loadBundle() (string, error) {
	path := filepath.Join(l.assetDir, bundleFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", domain.NewAssetLoadError(path)
	}
	return string(data), nil
}

// embedJSON serializes data for inclusion inside a script context. This
// is the one injection-sensitive step: json.Marshal escapes <, >, and &
// so the payload cannot break out of the surrounding script element.
func embedJSON(data interface{}) (string, error) {
	if data == nil {
		return "null", nil
	}
	out, err := json.Marshal(data)
	if err != nil {
		return "", domain.NewError(fmt.Sprintf("serializing component data: %v", err), 500)
	}
	return string(out), nil
}

func componentPage(name, bundle, payload string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>`)
	b.WriteString(html.EscapeString(name))
	b.WriteString(` Component</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 800px;
            margin: 0 auto;
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
    </style>
</head>
<body>
    <div class="container">
        <div id="lwc-container">
            <p>Loading component...</p>
        </div>
    </div>
    <script>
        window.componentData = `)
	b.WriteString(payload)
	b.WriteString(`;
        window.componentName = `)
	nameJSON, _ := json.Marshal(name)
	b.Write(nameJSON)
	b.WriteString(`;
    </script>
    <script>
`)
	b.WriteString(bundle)
	b.WriteString(`
    </script>
</body>
</html>`)
	return b.String()
}
