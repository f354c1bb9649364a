// Package registry holds the per-session tool table and validates tool
// input and output against their declared schemas.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
)

// Handler executes a tool with validated arguments.
type Handler func(ctx context.Context, args map[string]interface{}) (*shared.CallToolResult, error)

// Descriptor describes one tool: its protocol-visible metadata, the
// schemas constraining its input and structured output, and its
// handler. Handlers must not mutate process-wide state.
type Descriptor struct {
	Name         string
	Title        string
	Description  string
	InputSchema  *jsonschema.Schema
	OutputSchema *jsonschema.Schema
	Handler      Handler
}

type registeredTool struct {
	descriptor Descriptor
	input      *jsonschema.Resolved
	output     *jsonschema.Resolved
}

// Registry is a named tool table. Each session owns exactly one
// registry instance; registries are never shared across sessions.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*registeredTool
	order  []string
	logger *logging.Logger
}

// New creates an empty registry.
func New(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	return &Registry{
		tools:  make(map[string]*registeredTool),
		logger: logger,
	}
}

// Register adds a tool. The name must be unique within this registry.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return domain.NewError("tool name must not be empty", 400)
	}
	if d.Handler == nil {
		return domain.NewError(fmt.Sprintf("tool %s has no handler", d.Name), 500)
	}

	rt := &registeredTool{descriptor: d}

	if d.InputSchema != nil {
		resolved, err := d.InputSchema.Resolve(nil)
		if err != nil {
			return domain.NewError(fmt.Sprintf("tool %s input schema: %v", d.Name, err), 500)
		}
		rt.input = resolved
	}
	if d.OutputSchema != nil {
		resolved, err := d.OutputSchema.Resolve(nil)
		if err != nil {
			return domain.NewError(fmt.Sprintf("tool %s output schema: %v", d.Name, err), 500)
		}
		rt.output = resolved
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[d.Name]; exists {
		return domain.NewDuplicateToolError(d.Name)
	}
	r.tools[d.Name] = rt
	r.order = append(r.order, d.Name)
	return nil
}

// List returns the protocol view of all tools in registration order.
func (r *Registry) List() []shared.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shared.Tool, 0, len(r.order))
	for _, name := range r.order {
		d := r.tools[name].descriptor
		tool := shared.Tool{
			Name:        d.Name,
			Title:       d.Title,
			Description: d.Description,
			InputSchema: schemaOrEmpty(d.InputSchema),
		}
		if d.OutputSchema != nil {
			tool.OutputSchema = d.OutputSchema
		}
		out = append(out, tool)
	}
	return out
}

// Invoke validates args against the tool's input schema, runs the
// handler, and validates any structured content against the output
// schema. Validation failures are client or server errors respectively;
// a handler panic is contained and reported as an internal error.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (result *shared.CallToolResult, err error) {
	r.mu.RLock()
	rt, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NewToolNotFoundError(name)
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	if rt.input != nil {
		if verr := rt.input.Validate(args); verr != nil {
			return nil, domain.NewInputValidationError(name, verr.Error())
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tool handler panicked", logging.Fields{
				"tool":  name,
				"panic": fmt.Sprint(rec),
			})
			result = nil
			err = domain.NewError(fmt.Sprintf("internal error executing tool %s", name), 500)
		}
	}()

	result, err = rt.descriptor.Handler(ctx, args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, domain.NewError(fmt.Sprintf("tool %s returned no result", name), 500)
	}

	if rt.output != nil && result.StructuredContent != nil {
		instance, cerr := toJSONValue(result.StructuredContent)
		if cerr != nil {
			return nil, domain.NewOutputValidationError(name, cerr.Error())
		}
		if verr := rt.output.Validate(instance); verr != nil {
			return nil, domain.NewOutputValidationError(name, verr.Error())
		}
	}
	return result, nil
}

// toJSONValue normalizes typed structured content to the generic JSON
// shape the schema validator operates on.
func toJSONValue(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var emptyObjectSchema = &jsonschema.Schema{Type: "object"}

func schemaOrEmpty(s *jsonschema.Schema) *jsonschema.Schema {
	if s == nil {
		return emptyObjectSchema
	}
	return s
}
