package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Mesoplan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Mesoplan training-plan server. Preview mesocycles from a weekly availability, inspect the current plan and its sessions, and record end-of-cycle feedback that steers the next cycle. Plans and feedback are scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolPlanPreview, Handler: h.planPreview},
		server.ServerTool{Tool: toolSelectSplit, Handler: h.selectSplit},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
		server.ServerTool{Tool: toolCreatePlan, Handler: h.createPlan},
		server.ServerTool{Tool: toolGetCurrentPlan, Handler: h.getCurrentPlan},
		server.ServerTool{Tool: toolGetSessionDetail, Handler: h.getSessionDetail},
		server.ServerTool{Tool: toolGetPlanHistory, Handler: h.getPlanHistory},
		server.ServerTool{Tool: toolGetPlanStats, Handler: h.getPlanStats},
		server.ServerTool{Tool: toolSubmitFeedback, Handler: h.submitFeedback},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentPlan, Handler: h.currentPlan},
		server.ServerResource{Resource: resSplitCatalog, Handler: h.splitCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCurrentPlan = mcp.NewResource(
	"mesoplan://current_plan",
	"Current Plan",
	mcp.WithResourceDescription("The user's current mesocycle with every week, day, intensity target and session content"),
	mcp.WithMIMEType("application/json"),
)

var resSplitCatalog = mcp.NewResource(
	"mesoplan://split_catalog",
	"Split Catalog",
	mcp.WithResourceDescription("All split architectures with their session order and the weekly day counts that select them"),
	mcp.WithMIMEType("application/json"),
)
