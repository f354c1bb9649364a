package registry

import (
	"context"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
)

func echoHandler(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
	return &shared.CallToolResult{
		Content: []shared.Content{shared.NewTextContent("ok")},
	}, nil
}

func citySchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"originCity": {Type: "string"},
		},
		Required: []string{"originCity"},
	}
}

func TestRegisterAndList(t *testing.T) {
	r := New(nil)

	require.NoError(t, r.Register(Descriptor{Name: "beta", Title: "Beta", Handler: echoHandler}))
	require.NoError(t, r.Register(Descriptor{Name: "alpha", Title: "Alpha", Handler: echoHandler, InputSchema: citySchema()}))

	tools := r.List()
	require.Len(t, tools, 2)
	// Registration order, not lexical order.
	assert.Equal(t, "beta", tools[0].Name)
	assert.Equal(t, "alpha", tools[1].Name)

	// Tools without a declared schema still advertise an object schema.
	assert.NotNil(t, tools[0].InputSchema)
}

func TestRegisterDuplicate(t *testing.T) {
	r := New(nil)

	require.NoError(t, r.Register(Descriptor{Name: "dup", Handler: echoHandler}))
	err := r.Register(Descriptor{Name: "dup", Handler: echoHandler})

	var dupErr *domain.DuplicateToolError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.Name)
}

func TestRegisterInvalid(t *testing.T) {
	r := New(nil)

	assert.Error(t, r.Register(Descriptor{Handler: echoHandler}))
	assert.Error(t, r.Register(Descriptor{Name: "nohandler"}))
}

func TestInvokeUnknownTool(t *testing.T) {
	r := New(nil)

	_, err := r.Invoke(context.Background(), "missing", nil)

	var notFound *domain.ToolNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestInvokeValidatesInput(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register(Descriptor{
		Name:        "search",
		InputSchema: citySchema(),
		Handler:     echoHandler,
	}))

	_, err := r.Invoke(context.Background(), "search", map[string]interface{}{})
	var inputErr *domain.InputValidationError
	require.ErrorAs(t, err, &inputErr)

	_, err = r.Invoke(context.Background(), "search", map[string]interface{}{"originCity": 42})
	require.ErrorAs(t, err, &inputErr)

	result, err := r.Invoke(context.Background(), "search", map[string]interface{}{"originCity": "SFO"})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
}

func TestInvokeValidatesOutput(t *testing.T) {
	r := New(nil)
	outputSchema := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"count": {Type: "integer"},
		},
		Required: []string{"count"},
	}

	require.NoError(t, r.Register(Descriptor{
		Name:         "good",
		OutputSchema: outputSchema,
		Handler: func(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
			return &shared.CallToolResult{
				Content:           []shared.Content{shared.NewTextContent("x")},
				StructuredContent: map[string]interface{}{"count": 2},
			}, nil
		},
	}))
	require.NoError(t, r.Register(Descriptor{
		Name:         "bad",
		OutputSchema: outputSchema,
		Handler: func(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
			return &shared.CallToolResult{
				Content:           []shared.Content{shared.NewTextContent("x")},
				StructuredContent: map[string]interface{}{"count": "two"},
			}, nil
		},
	}))

	_, err := r.Invoke(context.Background(), "good", nil)
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), "bad", nil)
	var outErr *domain.OutputValidationError
	require.ErrorAs(t, err, &outErr)
}

func TestInvokeContainsPanic(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register(Descriptor{
		Name: "boom",
		Handler: func(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
			panic("handler exploded")
		},
	}))

	result, err := r.Invoke(context.Background(), "boom", nil)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "internal error")
	assert.NotContains(t, err.Error(), "handler exploded")
}

func TestInvokeNilResult(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register(Descriptor{
		Name: "empty",
		Handler: func(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error) {
			return nil, nil
		},
	}))

	_, err := r.Invoke(context.Background(), "empty", nil)
	assert.Error(t, err)
}
