package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skypeak/flight-mcp-ui/internal/domain"
	"github.com/skypeak/flight-mcp-ui/internal/domain/shared"
	"github.com/skypeak/flight-mcp-ui/internal/infrastructure/logging"
)

// Dispatcher routes JSON-RPC messages for a session to their handlers.
type Dispatcher struct {
	serverInfo shared.Implementation
	logger     *logging.Logger
}

// NewDispatcher creates a dispatcher advertising the given server
// identity during the handshake.
func NewDispatcher(name, version string, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		serverInfo: shared.Implementation{Name: name, Version: version},
		logger:     logger,
	}
}

// Dispatch processes one message on the session and returns the
// response, or nil when the message is a notification. The caller
// holds the session's processing lock, so messages on one session are
// handled strictly in arrival order.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *Session, req shared.JSONRPCRequest) *shared.JSONRPCResponse {
	switch req.Method {
	case shared.MethodInitialize:
		if sess.State() != domain.SessionInitializing {
			return errorResponse(req, shared.InvalidRequest, "session already initialized")
		}
		return d.handleInitialize(req)
	case shared.MethodInitialized:
		sess.Activate()
		d.logger.Debug("session active", logging.Fields{"session_id": sess.ID()})
		return nil
	case shared.MethodPing:
		return response(req, struct{}{})
	case shared.MethodListTools:
		return response(req, shared.ListToolsResult{Tools: sess.Registry().List()})
	case shared.MethodCallTool:
		return d.handleCallTool(ctx, sess, req)
	default:
		if req.IsNotification() {
			d.logger.Debug("ignoring unknown notification", logging.Fields{
				"session_id": sess.ID(),
				"method":     req.Method,
			})
			return nil
		}
		return errorResponse(req, shared.MethodNotFound, fmt.Sprintf("method %s not found", req.Method))
	}
}

func (d *Dispatcher) handleInitialize(req shared.JSONRPCRequest) *shared.JSONRPCResponse {
	var params shared.InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req, shared.InvalidParams, "invalid initialize params")
		}
	}

	return response(req, shared.InitializeResult{
		ProtocolVersion: shared.ProtocolVersion,
		ServerInfo:      d.serverInfo,
		Capabilities: shared.Capabilities{
			Tools: &shared.ToolsCapability{},
		},
	})
}

func (d *Dispatcher) handleCallTool(ctx context.Context, sess *Session, req shared.JSONRPCRequest) *shared.JSONRPCResponse {
	var params shared.CallToolParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req, shared.InvalidParams, "invalid tools/call params")
	}
	if params.Name == "" {
		return errorResponse(req, shared.InvalidParams, "tool name is required")
	}

	result, err := sess.Registry().Invoke(ctx, params.Name, params.Arguments)
	if err != nil {
		return d.callToolError(req, sess, params.Name, err)
	}
	return response(req, result)
}

// callToolError maps a failed invocation onto the wire. Validation and
// lookup failures become protocol errors; execution failures inside a
// handler become a tool result flagged as an error, with detail logged
// server-side only.
func (d *Dispatcher) callToolError(req shared.JSONRPCRequest, sess *Session, tool string, err error) *shared.JSONRPCResponse {
	switch e := err.(type) {
	case *domain.ToolNotFoundError:
		return errorResponse(req, shared.NotFound, e.Error())
	case *domain.InputValidationError:
		return errorResponse(req, shared.InvalidParams, e.Error())
	case *domain.OutputValidationError:
		d.logger.Error("tool produced invalid output", logging.Fields{
			"session_id": sess.ID(),
			"tool":       tool,
			"error":      e.Error(),
		})
		return errorResponse(req, shared.InternalError, e.Error())
	case *domain.AssetLoadError:
		d.logger.Error("asset load failed", logging.Fields{
			"session_id": sess.ID(),
			"tool":       tool,
			"path":       e.Path,
		})
		return response(req, &shared.CallToolResult{
			Content: []shared.Content{shared.NewTextContent(e.Error())},
			IsError: true,
		})
	default:
		d.logger.Error("tool execution failed", logging.Fields{
			"session_id": sess.ID(),
			"tool":       tool,
			"error":      err.Error(),
		})
		return response(req, &shared.CallToolResult{
			Content: []shared.Content{shared.NewTextContent(fmt.Sprintf("error executing tool %s", tool))},
			IsError: true,
		})
	}
}

func response(req shared.JSONRPCRequest, result interface{}) *shared.JSONRPCResponse {
	resp := shared.NewResponse(req, result)
	return &resp
}

func errorResponse(req shared.JSONRPCRequest, code shared.ErrorCode, message string) *shared.JSONRPCResponse {
	resp := shared.NewErrorResponse(req, code, message)
	return &resp
}
