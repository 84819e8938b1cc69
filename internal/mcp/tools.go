package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": description}
}

// itemProperties are the report attributes shared by find_matches and report_item
func itemProperties() map[string]interface{} {
	return map[string]interface{}{
		"kind": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"lost", "found"},
			"description": "Report kind. Lost items are matched against found items and vice versa.",
		},
		"name":        stringProp("Short item name, e.g. 'Blue Backpack'"),
		"description": stringProp("Free-text description; shared keywords of 4+ characters add to the score"),
		"location":    stringProp("Where the item was lost or found, e.g. 'Library'"),
		"category":    stringProp("Item category, e.g. 'Electronics'"),
		"color":       stringProp("Primary color (compared case-insensitively)"),
		"brand":       stringProp("Brand name (compared case-insensitively)"),
	}
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name: "find_matches",
		Description: "Preview likely matches for a partial description without storing anything. " +
			"Kind defaults to 'lost'. Returns candidates with a 0-100 score and per-factor breakdown.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": func() map[string]interface{} {
				p := itemProperties()
				p["min_score"] = integerProp("Only return candidates scoring strictly above this (default: search profile)")
				p["top_k"] = integerProp("Maximum number of candidates to return (default: search profile)")
				return p
			}(),
		},
	},
	{
		Name:        "report_item",
		Description: "Store a new lost or found report and return the matches found for it.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": func() map[string]interface{} {
				p := itemProperties()
				p["contact"] = stringProp("How the reporter can be reached")
				return p
			}(),
			"required": []string{"kind", "name"},
		},
	},
	{
		Name:        "similar_items",
		Description: "Get the best matches for an already stored item.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": stringProp("Item ID"),
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "list_items",
		Description: "List stored items, newest report first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"kind": map[string]interface{}{
					"type": "string",
					"enum": []string{"lost", "found", "all"},
				},
				"status": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"active", "claimed", "closed", "all"},
					"description": "Filter by status. Use 'all' or omit for no filter.",
				},
				"location": stringProp("Exact location tag"),
				"category": stringProp("Exact category tag"),
				"limit":    integerProp("Maximum number of results to return (default: 20)"),
			},
		},
	},
	{
		Name:        "get_item",
		Description: "Get a stored item by ID.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": stringProp("Item ID"),
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "update_status",
		Description: "Mark an item as claimed or closed, or reopen it. Only active items are matched.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": stringProp("Item ID"),
				"status": map[string]interface{}{
					"type": "string",
					"enum": []string{"active", "claimed", "closed"},
				},
			},
			"required": []string{"id", "status"},
		},
	},
	{
		Name:        "get_stats",
		Description: "Get item counts by kind and status.",
		InputSchema: map[string]interface{}{
			"type":       "object",
			"properties": map[string]interface{}{},
		},
	},
}
