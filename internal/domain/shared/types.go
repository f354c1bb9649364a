package shared

import "github.com/skypeak/flight-mcp-ui/internal/domain"

// Tool represents a tool exposed by the server
type Tool struct {
	Name         string      `json:"name"`
	Title        string      `json:"title,omitempty"`
	Description  string      `json:"description,omitempty"`
	InputSchema  interface{} `json:"inputSchema"`
	OutputSchema interface{} `json:"outputSchema,omitempty"`
}

// Content represents a single content item returned by tools
type Content interface {
	GetType() string
}

// TextContent represents text content
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GetType returns the content type
func (t TextContent) GetType() string {
	return t.Type
}

// NewTextContent creates a text content item.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}

// ResourceContents is the inner payload of an embedded resource.
type ResourceContents struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

// EmbeddedResource wraps a UI resource as an MCP embedded-resource content
// item. The mime type discriminates the encoding for the client.
type EmbeddedResource struct {
	Type     string           `json:"type"`
	Resource ResourceContents `json:"resource"`
}

// GetType returns the content type
func (e EmbeddedResource) GetType() string {
	return e.Type
}

// NewUIResourceContent serializes a UIResource as an embedded-resource
// content item.
func NewUIResourceContent(r domain.UIResource) EmbeddedResource {
	return EmbeddedResource{
		Type: "resource",
		Resource: ResourceContents{
			URI:      r.URI,
			MIMEType: r.MIMEType(),
			Text:     r.Text(),
		},
	}
}

// CallToolResult is the response envelope produced by tool handlers: an
// ordered sequence of content items plus an optional structured payload
// mirroring the same data for non-UI consumers.
type CallToolResult struct {
	Content           []Content   `json:"content"`
	StructuredContent interface{} `json:"structuredContent,omitempty"`
	IsError           bool        `json:"isError,omitempty"`
}
