package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/oops"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/tzlabel/internal/datefmt"
)

const (
	ErrDomain = "mcp"

	ToolFormatTimestamp = "format_timestamp"
	ToolTimezoneLabel   = "timezone_label"

	InvalidTimestampMsg = "invalid timestamp"
)

// Server exposes the formatter as MCP tools.
type Server struct {
	mcpServer     *server.MCPServer
	formatter     *datefmt.Formatter
	defaultLocale string
	now           func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces the clock used when a request names no timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server with all tools registered.
func New(version string, formatter *datefmt.Formatter, defaultLocale string, opts ...Option) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"tzlabel MCP Server",
			version,
			server.WithToolCapabilities(false),
			server.WithLogging(),
			server.WithRecovery(),
		),
		formatter:     formatter,
		defaultLocale: defaultLocale,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer.AddTool(mcp.NewTool(ToolFormatTimestamp,
		mcp.WithDescription("Formats an ISO-8601 timestamp as 'YYYY-MM-DD HH:MM:SS ZONE' in the server timezone."),
		mcp.WithString("timestamp", mcp.Required(), mcp.Description("ISO-8601 timestamp, e.g. 2025-12-19T14:00:00Z.")),
		mcp.WithString("locale", mcp.Description("BCP-47 locale used for the zone label, e.g. en-US.")),
	), s.FormatTimestamp)

	s.mcpServer.AddTool(mcp.NewTool(ToolTimezoneLabel,
		mcp.WithDescription("Returns the timezone label and how it was resolved for a timestamp, or for now."),
		mcp.WithString("timestamp", mcp.Description("Optional ISO-8601 timestamp, defaults to the current time.")),
		mcp.WithString("locale", mcp.Description("BCP-47 locale used for the zone label, e.g. en-US.")),
	), s.TimezoneLabel)

	return s
}

// ServeStdio serves the tools on stdin and stdout until the input is closed.
func (s *Server) ServeStdio(ctx context.Context) error {
	slogctx.Info(ctx, "serving MCP tools on stdio")

	err := server.ServeStdio(s.mcpServer)
	if err != nil {
		return oops.In(ErrDomain).
			WithContext(ctx).
			Wrapf(err, "serving stdio")
	}

	return nil
}

// FormatTimestamp handles the format_timestamp tool.
func (s *Server) FormatTimestamp(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timestamp, _ := request.Params.Arguments["timestamp"].(string)

	formatted, ok := s.formatter.Format(ctx, timestamp, s.locale(request))
	if !ok {
		return mcp.NewToolResultError(InvalidTimestampMsg), nil
	}

	return mcp.NewToolResultText(formatted), nil
}

type labelResult struct {
	Label string `json:"label"`
	Tier  string `json:"tier"`
}

// TimezoneLabel handles the timezone_label tool.
func (s *Server) TimezoneLabel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.now()

	if timestamp, _ := request.Params.Arguments["timestamp"].(string); timestamp != "" {
		parsed, err := s.formatter.Parse(timestamp)
		if err != nil {
			return mcp.NewToolResultError(InvalidTimestampMsg), nil
		}
		t = parsed
	}

	label := s.formatter.Label(ctx, t, s.locale(request))

	body, err := json.Marshal(labelResult{Label: label.Text, Tier: label.Tier.String()})
	if err != nil {
		return nil, oops.In(ErrDomain).
			WithContext(ctx).
			Wrapf(err, "encoding label")
	}

	return mcp.NewToolResultText(string(body)), nil
}

func (s *Server) locale(request mcp.CallToolRequest) string {
	if locale, ok := request.Params.Arguments["locale"].(string); ok && locale != "" {
		return locale
	}

	return s.defaultLocale
}
