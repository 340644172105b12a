package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names
const (
	toolParseReaction   = "parse_reaction_smiles"
	toolConvertReaction = "convert_reaction_smiles"
	toolCombine         = "combine_reactions"
	toolBatchConvert    = "batch_convert"
	toolStoreReaction   = "store_reaction"
	toolFindReactions   = "find_reactions"
	toolGetReaction     = "get_reaction"
)

var formatNames = []string{"standard", "standard_with_tilde", "extended"}

// toolDefinitions returns every tool in registration order
func toolDefinitions() []mcp.Tool {
	return []mcp.Tool{
		parseReactionTool(),
		convertReactionTool(),
		combineReactionsTool(),
		batchConvertTool(),
		storeReactionTool(),
		findReactionsTool(),
		getReactionTool(),
	}
}

func formatProperty(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
		"enum":        formatNames,
	}
}

// parseReactionTool returns the tool definition for parse_reaction_smiles
func parseReactionTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolParseReaction,
		Description: "Split a reaction SMILES into reactants, agents and products, keeping multi-fragment molecules such as salts together",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"reaction_smiles": map[string]any{
					"type":        "string",
					"description": "Reaction SMILES, f.i. 'CC.O.[Na+]~[Cl-]>>CCO' or 'CC.[Na+].[Cl-]>>CCO |f:1.2|'",
				},
				"format": formatProperty("Format of the input; detected from the string when omitted"),
			},
			Required: []string{"reaction_smiles"},
		},
	}
}

// convertReactionTool returns the tool definition for convert_reaction_smiles
func convertReactionTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolConvertReaction,
		Description: "Convert a reaction SMILES between the standard, tilde and extended formats",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"reaction_smiles": map[string]any{
					"type":        "string",
					"description": "Reaction SMILES in any supported format",
				},
				"target_format": formatProperty("Output format (default: standard_with_tilde)"),
				"standardize": map[string]any{
					"type":        "boolean",
					"description": "Merge agents into reactants, canonicalize, sort and deduplicate compounds",
					"default":     false,
				},
				"canonicalize": map[string]any{
					"type":        "boolean",
					"description": "Canonicalize every compound, keeping roles and order",
					"default":     false,
				},
				"reverse": map[string]any{
					"type":        "boolean",
					"description": "Swap reactants and products",
					"default":     false,
				},
			},
			Required: []string{"reaction_smiles"},
		},
	}
}

// combineReactionsTool returns the tool definition for combine_reactions
func combineReactionsTool() mcp.Tool {
	stringArray := func(description string) map[string]any {
		return map[string]any{
			"type":        "array",
			"description": description,
			"items":       map[string]any{"type": "string"},
		}
	}

	return mcp.Tool{
		Name:        toolCombine,
		Description: "Combine precursors with products, or partial reactions with partial reactions, into full reaction SMILES",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"fragments_1": stringArray("Precursors or partial reactions; may be tokenized"),
				"fragments_2": stringArray("Products or partial reactions; one length must be a multiple of the other"),
				"standardize": map[string]any{
					"type":        "boolean",
					"description": "Canonicalize and sort the compounds of each reaction",
					"default":     false,
				},
				"target_format": formatProperty("Output format (default: standard_with_tilde)"),
				"fallback": map[string]any{
					"type":        "string",
					"description": "Emitted for pairs that cannot be combined (default: '>>')",
				},
			},
			Required: []string{"fragments_1", "fragments_2"},
		},
	}
}

// batchConvertTool returns the tool definition for batch_convert
func batchConvertTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolBatchConvert,
		Description: "Convert many reaction SMILES concurrently; failed lines are replaced by the fallback",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"reactions": map[string]any{
					"type":        "array",
					"description": "Reaction SMILES in any supported format",
					"items":       map[string]any{"type": "string"},
				},
				"target_format": formatProperty("Output format (default: standard_with_tilde)"),
				"standardize": map[string]any{
					"type":        "boolean",
					"description": "Merge agents, canonicalize, sort and deduplicate compounds",
					"default":     false,
				},
				"store": map[string]any{
					"type":        "boolean",
					"description": "Save converted reactions to the reaction store",
					"default":     false,
				},
			},
			Required: []string{"reactions"},
		},
	}
}

// storeReactionTool returns the tool definition for store_reaction
func storeReactionTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolStoreReaction,
		Description: "Save a reaction SMILES to the reaction store; saving the same reaction twice returns the same id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"reaction_smiles": map[string]any{
					"type":        "string",
					"description": "Reaction SMILES in any supported format",
				},
			},
			Required: []string{"reaction_smiles"},
		},
	}
}

// findReactionsTool returns the tool definition for find_reactions
func findReactionsTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolFindReactions,
		Description: "Find stored reactions that contain a compound",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"compound": map[string]any{
					"type":        "string",
					"description": "Compound SMILES, matched after canonicalization",
				},
				"role": map[string]any{
					"type":        "string",
					"description": "Restrict matches to one role",
					"enum":        []string{"reactant", "agent", "product"},
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
			Required: []string{"compound"},
		},
	}
}

// getReactionTool returns the tool definition for get_reaction
func getReactionTool() mcp.Tool {
	return mcp.Tool{
		Name:        toolGetReaction,
		Description: "Fetch a stored reaction by id",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"id": map[string]any{
					"type":        "integer",
					"description": "Reaction id returned by store_reaction or find_reactions",
					"minimum":     1,
				},
			},
			Required: []string{"id"},
		},
	}
}
