package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tlind/huemcp/pkg/control"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bridgeStatus := "connected"
	status := "healthy"
	if err := s.controller.Ping(ctx); err != nil {
		bridgeStatus = "disconnected"
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Bridge:    bridgeStatus,
		Lights:    len(s.controller.Lights()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- queries ---

func (s *Server) handleGetAllLights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := LightsToInfos(s.controller.Lights())

	out := ListLightsOutput{
		Lights: infos,
		Count:  len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	l, err := s.controller.Light(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := GetLightOutput{Light: LightToInfo(l)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetAllGroups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groups, err := s.controller.Groups(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list groups: %s", err)), nil
	}

	infos := GroupsToInfos(groups)
	out := ListGroupsOutput{
		Groups: infos,
		Count:  len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	g, err := s.controller.Group(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := GetGroupOutput{Group: GroupToInfo(g)}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetAllScenes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scenes, err := s.controller.Scenes(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list scenes: %s", err)), nil
	}

	infos := ScenesToInfos(scenes)
	out := ListScenesOutput{
		Scenes: infos,
		Count:  len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleFindLightByName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredString(request, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := s.controller.FindLights(name)
	infos := make([]LightInfo, 0, len(matches))
	for _, l := range matches {
		infos = append(infos, LightToInfo(l))
	}

	out := FindLightsOutput{
		Matches: infos,
		Count:   len(infos),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- single-light commands ---

func (s *Server) handleTurnOnLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetLightPower(ctx, id, true))
}

func (s *Server) handleTurnOffLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetLightPower(ctx, id, false))
}

func (s *Server) handleSetBrightness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	brightness, err := requiredInt(request, "brightness")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetLightBrightness(ctx, id, brightness))
}

func (s *Server) handleSetColorRGB(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, g, b, err := requiredRGB(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetLightColor(ctx, id, r, g, b))
}

func (s *Server) handleSetColorPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := requiredString(request, "preset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.ApplyLightPreset(ctx, id, name))
}

func (s *Server) handleAlertLight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.AlertLight(ctx, id))
}

func (s *Server) handleSetLightEffect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	effect, err := requiredString(request, "effect")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetLightEffect(ctx, id, effect))
}

func (s *Server) handleSetLightState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "light_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	stateRaw, ok := request.GetArguments()["state"]
	if !ok || stateRaw == nil {
		return mcp.NewToolResultError(`required parameter "state" is missing`), nil
	}
	stateMap, ok := stateRaw.(map[string]any)
	if !ok {
		return mcp.NewToolResultError(`parameter "state" must be an object`), nil
	}

	l, err := s.controller.Light(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Validate against a schema built from the light's capabilities before
	// anything is written.
	if s.validator != nil {
		if err := s.validator.ValidateState(l, stateMap); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
		}
	}

	return s.command(s.controller.ApplyLightState(ctx, id, stateMap))
}

// --- group commands ---

func (s *Server) handleTurnOnGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetGroupPower(ctx, id, true))
}

func (s *Server) handleTurnOffGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetGroupPower(ctx, id, false))
}

func (s *Server) handleSetGroupBrightness(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	brightness, err := requiredInt(request, "brightness")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetGroupBrightness(ctx, id, brightness))
}

func (s *Server) handleSetGroupColorRGB(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, g, b, err := requiredRGB(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.SetGroupColor(ctx, id, r, g, b))
}

func (s *Server) handleSetGroupColorPreset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := requiredString(request, "preset")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.ApplyGroupPreset(ctx, id, name))
}

func (s *Server) handleSetScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requiredInt(request, "group_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sceneID, err := requiredString(request, "scene_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.command(s.controller.ApplyScene(ctx, groupID, sceneID))
}

// --- management ---

func (s *Server) handleCreateGroup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredString(request, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lightIDs, err := requiredIntList(request, "light_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, msg, err := s.controller.CreateGroup(ctx, name, lightIDs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := CreateGroupOutput{
		Success: true,
		GroupID: id,
		Message: msg,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleQuickScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requiredString(request, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := control.QuickScene{Name: name}
	if id, ok, err := optionalInt(request, "group_id"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		req.GroupID = id
	}
	if v, ok, err := optionalInt(request, "brightness"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		req.Brightness = &v
	}
	if v, ok, err := optionalInt(request, "temperature"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	} else if ok {
		req.Temperature = &v
	}
	if rgbRaw, ok := request.GetArguments()["rgb"]; ok && rgbRaw != nil {
		list, ok := rgbRaw.([]any)
		if !ok || len(list) != 3 {
			return mcp.NewToolResultError(`parameter "rgb" must be an array of three numbers`), nil
		}
		var rgb [3]int
		for i, v := range list {
			f, ok := v.(float64)
			if !ok || f != math.Trunc(f) {
				return mcp.NewToolResultError(`parameter "rgb" must contain only whole numbers`), nil
			}
			rgb[i] = int(f)
		}
		req.RGB = &rgb
	}

	return s.command(s.controller.ApplyQuickScene(ctx, req))
}

func (s *Server) handleRefreshLights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.controller.RefreshLights(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to refresh lights: %s", err)), nil
	}

	out := RefreshLightsOutput{
		Count:   n,
		Message: fmt.Sprintf("Light cache refreshed, %d lights known.", n),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

// command wraps the controller's (message, error) result shape into a tool
// result.
func (s *Server) command(msg string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out := CommandOutput{
		Success: true,
		Message: msg,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requiredInt(request mcp.CallToolRequest, key string) (int, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("required parameter %q is missing", key)
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("parameter %q must be a whole number", key)
	}
	return int(f), nil
}

func optionalInt(request mcp.CallToolRequest, key string) (int, bool, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("parameter %q must be a whole number", key)
	}
	return int(f), true, nil
}

func requiredIntList(request mcp.CallToolRequest, key string) ([]int, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("required parameter %q is missing", key)
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("parameter %q must be a non-empty array of numbers", key)
	}
	out := make([]int, 0, len(list))
	for _, item := range list {
		f, ok := item.(float64)
		if !ok || f != math.Trunc(f) {
			return nil, fmt.Errorf("parameter %q must contain only whole numbers", key)
		}
		out = append(out, int(f))
	}
	return out, nil
}

func requiredRGB(request mcp.CallToolRequest) (int, int, int, error) {
	r, err := requiredInt(request, "red")
	if err != nil {
		return 0, 0, 0, err
	}
	g, err := requiredInt(request, "green")
	if err != nil {
		return 0, 0, 0, err
	}
	b, err := requiredInt(request, "blue")
	if err != nil {
		return 0, 0, 0, err
	}
	return r, g, b, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
