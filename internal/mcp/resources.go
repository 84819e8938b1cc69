package mcp

// Resource URIs
const (
	uriSummary     = "campusfind://summary"
	uriRecentLost  = "campusfind://recent-lost"
	uriRecentFound = "campusfind://recent-found"
)

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         uriSummary,
		Name:        "Lost & Found Summary",
		Description: "Item counts by kind and status",
		MimeType:    "text/plain",
	},
	{
		URI:         uriRecentLost,
		Name:        "Recent Lost Items",
		Description: "The 10 most recently reported lost items that are still active",
		MimeType:    "text/plain",
	},
	{
		URI:         uriRecentFound,
		Name:        "Recent Found Items",
		Description: "The 10 most recently reported found items that are still active",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
