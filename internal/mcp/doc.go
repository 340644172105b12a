// Package mcp implements the Model Context Protocol (MCP) server for reaction SMILES.
//
// The MCP server exposes seven tools:
//   - parse_reaction_smiles: Split a reaction into reactants, agents and products
//   - convert_reaction_smiles: Convert between standard, tilde and extended formats
//   - combine_reactions: Build reactions from precursor and product lists
//   - batch_convert: Convert many reactions concurrently
//   - store_reaction: Save a reaction to the reaction store
//   - find_reactions: Look up stored reactions by compound
//   - get_reaction: Fetch a stored reaction by id
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// # Tool: parse_reaction_smiles
//
//	Request:
//	{
//	  "name": "parse_reaction_smiles",
//	  "arguments": {
//	    "reaction_smiles": "CC.O.[Na+].[Cl-]>>CCO |f:2.3|"
//	  }
//	}
//
//	Response:
//	{
//	  "format": "extended",
//	  "reactants": ["CC", "O", "[Cl-].[Na+]"],
//	  "agents": [],
//	  "products": ["CCO"]
//	}
//
// # Tool: convert_reaction_smiles
//
//	Request:
//	{
//	  "name": "convert_reaction_smiles",
//	  "arguments": {
//	    "reaction_smiles": "CC.O.[Na+]~[Cl-]>>CCO",
//	    "target_format": "extended"
//	  }
//	}
//
//	Response:
//	{
//	  "reaction_smiles": "CC.O.[Na+].[Cl-]>>CCO |f:2.3|",
//	  "source_format": "standard_with_tilde",
//	  "target_format": "extended"
//	}
//
// # Tool: combine_reactions
//
// One list length must be a multiple of the other. Items of the shorter list
// are repeated in place:
//
//	Request:
//	{
//	  "name": "combine_reactions",
//	  "arguments": {
//	    "fragments_1": ["CC.O"],
//	    "fragments_2": ["CCO", "CCOC"]
//	  }
//	}
//
//	Response:
//	{
//	  "reactions": ["CC.O>>CCO", "CC.O>>CCOC"]
//	}
//
// # Tool: find_reactions
//
// The compound is canonicalized before matching:
//
//	Request:
//	{
//	  "name": "find_reactions",
//	  "arguments": {
//	    "compound": "[Na+].[Cl-]",
//	    "role": "reactant"
//	  }
//	}
//
// # Configuration
//
// ConfigFromEnv reads RXNSMILES_DB_PATH, RXNSMILES_CACHE_SIZE,
// RXNSMILES_WORKERS, RXNSMILES_REMOVE_ATOM_MAPS, RXNSMILES_FALLBACK and
// RXNSMILES_LOG_LEVEL.
//
// # Error Handling
//
// Handlers return *MCPError values, which the framework encodes as JSON-RPC
// errors:
//
//	{
//	  "error": {
//	    "code": -32001,
//	    "message": "failed to parse reaction SMILES",
//	    "data": {
//	      "smiles": "CC",
//	      "error": "\"CC\" is not a valid reaction SMILES string"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (database, cancellation)
//   - -32001: Invalid SMILES or reaction SMILES
//   - -32002: Unsupported format or fragment annotation
//   - -32003: Fragment lists cannot be paired
//   - -32004: Reaction not found
//   - -32005: Another batch is storing reactions
//
// # Logging
//
// The server logs through log/slog to stderr; stdout is reserved for the
// MCP protocol.
package mcp
