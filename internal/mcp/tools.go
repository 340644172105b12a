package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/rxnsmiles-mcp/internal/batch"
	"github.com/dshills/rxnsmiles-mcp/internal/chem"
	"github.com/dshills/rxnsmiles-mcp/internal/combiner"
	"github.com/dshills/rxnsmiles-mcp/internal/rxnsmiles"
	"github.com/dshills/rxnsmiles-mcp/internal/storage"
	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams       = -32602 // Invalid method parameters
	ErrorCodeInternalError       = -32603 // Internal JSON-RPC error
	ErrorCodeInvalidSmiles       = -32001 // SMILES or reaction SMILES cannot be parsed
	ErrorCodeUnsupportedFormat   = -32002 // Unknown reaction format or unsupported fragment annotation
	ErrorCodeIncompatibleLengths = -32003 // Combination inputs cannot be paired
	ErrorCodeNotFound            = -32004 // Stored reaction not found
	ErrorCodeBatchInProgress     = -32005 // Another batch is storing reactions
)

const maxErrorsReported = 5

// handleParseReaction handles the parse_reaction_smiles tool invocation
func (s *Server) handleParseReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	reactionSmiles, err := requireString(args, "reaction_smiles")
	if err != nil {
		return nil, err
	}

	format := rxnsmiles.DetermineFormat(reactionSmiles)
	if name := getStringDefault(args, "format", ""); name != "" {
		format, err = parseFormatParam("format", name)
		if err != nil {
			return nil, err
		}
	}

	eq, err := s.codec.Parse(reactionSmiles, format)
	if err != nil {
		return nil, smilesError("failed to parse reaction SMILES", err)
	}

	response := map[string]any{
		"format":    format.String(),
		"reactants": eq.Reactants,
		"agents":    eq.Agents,
		"products":  eq.Products,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleConvertReaction handles the convert_reaction_smiles tool invocation
func (s *Server) handleConvertReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	reactionSmiles, err := requireString(args, "reaction_smiles")
	if err != nil {
		return nil, err
	}

	target, err := parseFormatParam("target_format", getStringDefault(args, "target_format", types.FormatStandardWithTilde.String()))
	if err != nil {
		return nil, err
	}

	source := rxnsmiles.DetermineFormat(reactionSmiles)
	eq, err := s.codec.Parse(reactionSmiles, source)
	if err != nil {
		return nil, smilesError("failed to parse reaction SMILES", err)
	}

	if getBoolDefault(args, "reverse", false) {
		eq = eq.Reverse()
	}

	switch {
	case getBoolDefault(args, "standardize", false):
		eq, err = eq.Standardize(s.toolkit)
	case getBoolDefault(args, "canonicalize", false):
		eq, err = eq.CanonicalizeCompounds(s.toolkit, true)
	}
	if err != nil {
		return nil, smilesError("failed to canonicalize compounds", err)
	}

	out, err := s.codec.Format(eq, target)
	if err != nil {
		return nil, smilesError("failed to format reaction SMILES", err)
	}

	response := map[string]any{
		"reaction_smiles": out,
		"source_format":   source.String(),
		"target_format":   target.String(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCombineReactions handles the combine_reactions tool invocation
func (s *Server) handleCombineReactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	fragments1, err := requireStringSlice(args, "fragments_1")
	if err != nil {
		return nil, err
	}
	fragments2, err := requireStringSlice(args, "fragments_2")
	if err != nil {
		return nil, err
	}

	format, err := parseFormatParam("target_format", getStringDefault(args, "target_format", types.FormatStandardWithTilde.String()))
	if err != nil {
		return nil, err
	}

	c := combiner.New(combiner.Config{
		Standardize: getBoolDefault(args, "standardize", false),
		Format:      format,
		Fallback:    getStringDefault(args, "fallback", s.config.Fallback),
	}, s.toolkit)

	seq, err := c.Combine(fragments1, fragments2)
	if err != nil {
		return nil, newMCPError(ErrorCodeIncompatibleLengths, "cannot pair fragment lists", map[string]any{
			"fragments_1": len(fragments1),
			"fragments_2": len(fragments2),
			"error":       err.Error(),
		})
	}

	reactions := make([]string, 0, max(len(fragments1), len(fragments2)))
	for rxn := range seq {
		if ctx.Err() != nil {
			return nil, newMCPError(ErrorCodeInternalError, "combination cancelled", nil)
		}
		reactions = append(reactions, rxn)
	}

	response := map[string]any{
		"reactions": reactions,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleBatchConvert handles the batch_convert tool invocation
func (s *Server) handleBatchConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	reactions, err := requireStringSlice(args, "reactions")
	if err != nil {
		return nil, err
	}

	format, err := parseFormatParam("target_format", getStringDefault(args, "target_format", types.FormatStandardWithTilde.String()))
	if err != nil {
		return nil, err
	}

	config := &batch.Config{
		Workers:      s.config.Workers,
		TargetFormat: format,
		Standardize:  getBoolDefault(args, "standardize", false),
		Fallback:     s.config.Fallback,
		Store:        getBoolDefault(args, "store", false),
	}

	result, err := s.batch.Convert(ctx, reactions, config)
	if errors.Is(err, batch.ErrStoreInProgress) {
		return nil, newMCPError(ErrorCodeBatchInProgress, "another batch is storing reactions", nil)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "batch conversion failed", map[string]any{
			"error": err.Error(),
		})
	}

	response := map[string]any{
		"reactions":   result.Reactions,
		"converted":   result.Converted,
		"failed":      result.Failed,
		"stored":      result.Stored,
		"duration_ms": result.Duration.Milliseconds(),
	}

	if len(result.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(result.ErrorMessages)
		if errorCount > maxErrorsReported {
			response["errors"] = result.ErrorMessages[:maxErrorsReported]
			response["error_count"] = errorCount
		} else {
			response["errors"] = result.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleStoreReaction handles the store_reaction tool invocation
func (s *Server) handleStoreReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	reactionSmiles, err := requireString(args, "reaction_smiles")
	if err != nil {
		return nil, err
	}

	eq, err := s.codec.ParseAny(reactionSmiles)
	if err != nil {
		return nil, smilesError("failed to parse reaction SMILES", err)
	}

	// Compounds are stored canonical so find_reactions can match them
	eq, err = eq.CanonicalizeCompounds(s.toolkit, false)
	if err != nil {
		return nil, smilesError("failed to canonicalize compounds", err)
	}

	// Extended format keeps multi-fragment molecules without tildes
	stored, err := s.codec.Format(eq, types.FormatExtended)
	if err != nil {
		return nil, smilesError("failed to format reaction SMILES", err)
	}

	rxn := storage.NewReaction(stored, eq)
	if err := s.storage.SaveReaction(ctx, rxn); err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to store reaction", map[string]any{
			"error": err.Error(),
		})
	}

	s.logger.Debug("reaction stored", "id", rxn.ID, "reaction_smiles", stored)

	response := map[string]any{
		"id":              rxn.ID,
		"reaction_smiles": stored,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleFindReactions handles the find_reactions tool invocation
func (s *Server) handleFindReactions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	compound, err := requireString(args, "compound")
	if err != nil {
		return nil, err
	}

	role, err := storage.ParseRole(getStringDefault(args, "role", ""))
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid role", map[string]any{
			"param":   "role",
			"reason":  err.Error(),
			"allowed": []string{"reactant", "agent", "product"},
		})
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]any{
			"param": "limit",
			"value": limit,
		})
	}

	canonical, err := chem.MaybeCanonicalize(s.toolkit, compound, false)
	if err != nil {
		return nil, smilesError("failed to canonicalize compound", err)
	}

	found, err := s.storage.FindByCompound(ctx, canonical, role, limit)
	if err == nil && len(found) == 0 && canonical != compound {
		// Reactions stored by batch_convert keep their compounds as written
		found, err = s.storage.FindByCompound(ctx, compound, role, limit)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to find reactions", map[string]any{
			"error": err.Error(),
		})
	}

	results := make([]map[string]any, 0, len(found))
	for _, rxn := range found {
		results = append(results, reactionResponse(rxn))
	}

	response := map[string]any{
		"compound":  canonical,
		"count":     len(results),
		"reactions": results,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetReaction handles the get_reaction tool invocation
func (s *Server) handleGetReaction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	id := getIntDefault(args, "id", 0)
	if id < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "id parameter is required", map[string]any{
			"param":  "id",
			"reason": "missing or not positive",
		})
	}

	rxn, err := s.storage.GetReaction(ctx, int64(id))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeNotFound, "reaction not found", map[string]any{
			"id": id,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get reaction", map[string]any{
			"error": err.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(reactionResponse(rxn))), nil
}

// Helper functions

func reactionResponse(rxn *storage.Reaction) map[string]any {
	return map[string]any{
		"id":              rxn.ID,
		"reaction_smiles": rxn.ReactionSmiles,
		"reactants":       rxn.Equation.Reactants,
		"agents":          rxn.Equation.Agents,
		"products":        rxn.Equation.Products,
		"created_at":      rxn.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data any) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    any
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// smilesError maps domain errors to MCP error codes
func smilesError(message string, err error) error {
	code := ErrorCodeInternalError
	switch {
	case errors.Is(err, types.ErrUnsupportedFormat),
		errors.Is(err, types.ErrUnsupportedExtendedReactionSmiles):
		code = ErrorCodeUnsupportedFormat
	case errors.Is(err, types.ErrInvalidSmiles):
		code = ErrorCodeInvalidSmiles
	case errors.Is(err, types.ErrIncompatibleLengths):
		code = ErrorCodeIncompatibleLengths
	}

	data := map[string]any{"error": err.Error()}
	var se *types.SmilesError
	if errors.As(err, &se) {
		data["smiles"] = se.Smiles
	}
	return newMCPError(code, message, data)
}

// parseFormatParam converts a format parameter, reporting unknown names as invalid params
func parseFormatParam(param, name string) (types.ReactionFormat, error) {
	format, err := types.ParseReactionFormat(name)
	if err != nil {
		return 0, newMCPError(ErrorCodeInvalidParams, "invalid "+param, map[string]any{
			"param":   param,
			"value":   name,
			"allowed": formatNames,
		})
	}
	return format, nil
}

// requireString extracts a required, non-empty string parameter
func requireString(args map[string]any, key string) (string, error) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]any{
			"param":  key,
			"reason": "missing or empty",
		})
	}
	return val, nil
}

// requireStringSlice extracts a required array of strings
func requireStringSlice(args map[string]any, key string) ([]string, error) {
	invalid := func(reason string) error {
		return newMCPError(ErrorCodeInvalidParams, key+" parameter must be an array of strings", map[string]any{
			"param":  key,
			"reason": reason,
		})
	}

	switch raw := args[key].(type) {
	case []string:
		return raw, nil
	case []any:
		out := make([]string, 0, len(raw))
		for i, item := range raw {
			str, ok := item.(string)
			if !ok {
				return nil, invalid(fmt.Sprintf("item %d is not a string", i))
			}
			out = append(out, str)
		}
		return out, nil
	case nil:
		return nil, invalid("missing")
	default:
		return nil, invalid(fmt.Sprintf("unexpected type %T", raw))
	}
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]any) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]any, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]any, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]any, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}
