package flights

import "github.com/google/jsonschema-go/jsonschema"

// searchRequestSchema constrains the shared search input of the flight
// tools.
func searchRequestSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"originCity": {
				Type:        "string",
				Description: "City the flight departs from",
			},
			"destinationCity": {
				Type:        "string",
				Description: "City the flight arrives at",
			},
			"dateOfTravel": {
				Type:        "string",
				Description: "Requested travel date",
			},
			"filters": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"price": {
						Type:        "number",
						Description: "Maximum acceptable price",
					},
					"discountPercentage": {
						Type:        "number",
						Description: "Minimum acceptable discount percentage",
					},
				},
				Required: []string{"price", "discountPercentage"},
			},
		},
		Required: []string{"originCity", "destinationCity", "dateOfTravel", "filters"},
	}
}

// searchResponseSchema constrains the structured flight list payload.
func searchResponseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"flights": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"flightId":           {Type: "string"},
						"price":              {Type: "number"},
						"discountPercentage": {Type: "number"},
						"durationInMin":      {Type: "integer"},
						"numLayovers":        {Type: "integer"},
						"isPetAllowed":       {Type: "boolean"},
					},
					Required: []string{"flightId", "price", "discountPercentage", "durationInMin", "numLayovers", "isPetAllowed"},
				},
			},
		},
		Required: []string{"flights"},
	}
}

// emptySchema is used by tools accepting no arguments.
func emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}
