package shader

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thinkinrocks/thinkin.rocks/internal/shader"
)

const (
	mcpServerName    = "thinkin-rocks-shader"
	mcpServerVersion = "1.0.0"
)

// GetConfigInput is empty; the tool takes no arguments.
type GetConfigInput struct{}

// SetGroupInput merges values into one parameter group.
type SetGroupInput struct {
	Group  string         `json:"group" jsonschema:"parameter group (flowField, stripes, simplexNoise, dither, imageTexture, chromaticAberration)"`
	Values map[string]any `json:"values" jsonschema:"partial group values keyed by field name"`
}

// SetAspectRatioInput selects the preview aspect ratio.
type SetAspectRatioInput struct {
	AspectRatio string `json:"aspect_ratio" jsonschema:"aspect ratio (16:9, 4:3, 1:1, free)"`
}

// ResetInput is empty; the tool takes no arguments.
type ResetInput struct{}

// LoadPresetInput names a preset to load.
type LoadPresetInput struct {
	Name string `json:"name" jsonschema:"preset name (default, marble)"`
}

// ConfigResult is the configuration after a tool call.
type ConfigResult struct {
	Config shader.Config `json:"config"`
}

func newMCPServer(svc *service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: mcpServerName, Version: mcpServerVersion}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_shader_config",
		Description: "Returns the current background shader configuration",
	}, getConfigHandler(svc))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_shader_group",
		Description: "Merges partial values into one shader parameter group",
	}, setGroupHandler(svc))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_aspect_ratio",
		Description: "Selects the preview aspect ratio",
	}, setAspectRatioHandler(svc))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "reset_shader",
		Description: "Restores the default shader configuration",
	}, resetHandler(svc))
	mcp.AddTool(server, &mcp.Tool{
		Name:        "load_shader_preset",
		Description: "Replaces the configuration with a named preset",
	}, loadPresetHandler(svc))
	return server
}

func newMCPHandler(svc *service) http.Handler {
	server := newMCPServer(svc)
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func configResult(current state) ConfigResult {
	return ConfigResult{Config: current.Config}
}

func getConfigHandler(svc *service) mcp.ToolHandlerFor[GetConfigInput, ConfigResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ GetConfigInput) (*mcp.CallToolResult, ConfigResult, error) {
		return nil, configResult(svc.state()), nil
	}
}

func setGroupHandler(svc *service) mcp.ToolHandlerFor[SetGroupInput, ConfigResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetGroupInput) (*mcp.CallToolResult, ConfigResult, error) {
		patch, err := json.Marshal(input.Values)
		if err != nil {
			return nil, ConfigResult{}, fmt.Errorf("encode group values: %w", err)
		}
		current, err := svc.setGroup(input.Group, patch)
		if err != nil {
			return nil, ConfigResult{}, err
		}
		return nil, configResult(current), nil
	}
}

func setAspectRatioHandler(svc *service) mcp.ToolHandlerFor[SetAspectRatioInput, ConfigResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SetAspectRatioInput) (*mcp.CallToolResult, ConfigResult, error) {
		current, err := svc.setAspectRatio(input.AspectRatio)
		if err != nil {
			return nil, ConfigResult{}, err
		}
		return nil, configResult(current), nil
	}
}

func resetHandler(svc *service) mcp.ToolHandlerFor[ResetInput, ConfigResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ResetInput) (*mcp.CallToolResult, ConfigResult, error) {
		return nil, configResult(svc.reset()), nil
	}
}

func loadPresetHandler(svc *service) mcp.ToolHandlerFor[LoadPresetInput, ConfigResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input LoadPresetInput) (*mcp.CallToolResult, ConfigResult, error) {
		current, err := svc.loadPreset(input.Name)
		if err != nil {
			return nil, ConfigResult{}, err
		}
		return nil, configResult(current), nil
	}
}
