package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
)

func writeBundle(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "lwc-bundle.js"), []byte("console.log('bundle');"), 0o644)
	require.NoError(t, err)
	return dir
}

func TestParseComponentName(t *testing.T) {
	tests := []struct {
		name          string
		wantNamespace string
		wantComponent string
		wantErr       bool
	}{
		{name: "x-flightDetails", wantNamespace: "x", wantComponent: "flightDetails"},
		{name: "x-app", wantNamespace: "x", wantComponent: "app"},
		{name: "badnameformat", wantErr: true},
		{name: "-app", wantErr: true},
		{name: "x-", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, comp, err := ParseComponentName(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				var nameErr *domain.ComponentNameError
				assert.ErrorAs(t, err, &nameErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNamespace, ns)
			assert.Equal(t, tt.wantComponent, comp)
		})
	}
}

func TestRenderComponent(t *testing.T) {
	l := NewLWC(writeBundle(t))

	page, err := l.RenderComponent("x-flightDetails", map[string]interface{}{
		"flights": []map[string]interface{}{{"flightId": "AA123"}},
	})
	require.NoError(t, err)

	assert.Contains(t, page, "console.log('bundle');")
	assert.Contains(t, page, `window.componentData = {"flights":[{"flightId":"AA123"}]};`)
	assert.Contains(t, page, `window.componentName = "x-flightDetails";`)
	assert.Contains(t, page, "<!DOCTYPE html>")
}

func TestRenderComponentNilData(t *testing.T) {
	l := NewLWC(writeBundle(t))

	page, err := l.RenderComponent("x-app", nil)
	require.NoError(t, err)

	assert.Contains(t, page, "window.componentData = null;")
}

func TestRenderComponentEscapesPayload(t *testing.T) {
	l := NewLWC(writeBundle(t))

	page, err := l.RenderComponent("x-app", map[string]string{
		"note": "</script><script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, page, "</script><script>alert(1)")
	assert.Contains(t, page, `</script>`)
}

func TestRenderComponentMalformedName(t *testing.T) {
	l := NewLWC(writeBundle(t))

	_, err := l.RenderComponent("badnameformat", nil)

	var nameErr *domain.ComponentNameError
	require.ErrorAs(t, err, &nameErr)
	assert.Contains(t, err.Error(), "namespace-component")
}

func TestRenderComponentUnknown(t *testing.T) {
	l := NewLWC(writeBundle(t))

	_, err := l.RenderComponent("x-unknown", nil)

	var notFound *domain.ComponentNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "x-unknown", notFound.Name)
}

func TestRenderComponentMissingBundle(t *testing.T) {
	l := NewLWC(t.TempDir())

	_, err := l.RenderComponent("x-app", nil)

	var assetErr *domain.AssetLoadError
	require.ErrorAs(t, err, &assetErr)
}

func TestBundleAvailable(t *testing.T) {
	assert.True(t, NewLWC(writeBundle(t)).BundleAvailable())
	assert.False(t, NewLWC(t.TempDir()).BundleAvailable())
}
