// Package domain defines the core entities for the flight MCP UI demo server.
package domain

// SessionState represents the lifecycle state of a client session.
type SessionState int

// Session lifecycle states. A session starts as Initializing when the
// initialize request is accepted, becomes Active once the client confirms the
// handshake, and ends Closed. There is no transition out of Closed.
const (
	SessionInitializing SessionState = iota
	SessionActive
	SessionClosed
)

// String returns a human-readable name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionInitializing:
		return "initializing"
	case SessionActive:
		return "active"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// FlightOffer is a single offer from the static catalog. Offers are immutable
// once created.
type FlightOffer struct {
	FlightID           string  `json:"flightId"`
	Price              float64 `json:"price"`
	DiscountPercentage float64 `json:"discountPercentage"`
	DurationInMin      int     `json:"durationInMin"`
	NumLayovers        int     `json:"numLayovers"`
	IsPetAllowed       bool    `json:"isPetAllowed"`
}

// UIResourceKind discriminates the supported UI resource encodings.
type UIResourceKind int

// Supported encodings for tool results that carry a renderable UI payload.
const (
	UIResourceRawHTML UIResourceKind = iota
	UIResourceExternalURL
	UIResourceRemoteDOM
)

// UIResource is a tagged payload instructing a client how to render tool
// output. Exactly one of HTML, IframeURL or Script is populated, selected by
// Kind. Instances are never mutated after creation.
type UIResource struct {
	URI  string
	Kind UIResourceKind

	// HTML is the inline document for UIResourceRawHTML.
	HTML string

	// IframeURL is the external reference for UIResourceExternalURL. No offer
	// data is embedded; the client fetches content itself.
	IframeURL string

	// Script and Framework describe a declarative remote-DOM construction for
	// UIResourceRemoteDOM. The script is opaque to this server and executed by
	// a remote-DOM-capable client.
	Script    string
	Framework string
}

// NewRawHTMLResource creates a UIResource carrying an inline HTML document.
func NewRawHTMLResource(uri, html string) UIResource {
	return UIResource{URI: uri, Kind: UIResourceRawHTML, HTML: html}
}

// NewExternalURLResource creates a UIResource referencing an external URL to
// be rendered in an iframe.
func NewExternalURLResource(uri, iframeURL string) UIResource {
	return UIResource{URI: uri, Kind: UIResourceExternalURL, IframeURL: iframeURL}
}

// NewRemoteDOMResource creates a UIResource carrying a remote-DOM script for
// the given target framework.
func NewRemoteDOMResource(uri, script, framework string) UIResource {
	return UIResource{URI: uri, Kind: UIResourceRemoteDOM, Script: script, Framework: framework}
}

// MIMEType returns the media type used when the resource is serialized as an
// embedded MCP resource.
func (r UIResource) MIMEType() string {
	switch r.Kind {
	case UIResourceExternalURL:
		return "text/uri-list"
	case UIResourceRemoteDOM:
		return "application/vnd.mcp-ui.remote-dom+javascript; framework=" + r.Framework
	default:
		return "text/html"
	}
}

// Text returns the textual payload of the resource.
func (r UIResource) Text() string {
	switch r.Kind {
	case UIResourceExternalURL:
		return r.IframeURL
	case UIResourceRemoteDOM:
		return r.Script
	default:
		return r.HTML
	}
}
