package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the huemcp service and bridge connectivity"),
		),
		s.handleGetHealth,
	)

	// --- Queries ---

	s.mcpServer.AddTool(
		mcp.NewTool("get_all_lights",
			mcp.WithDescription("Get information about all lights known to the Hue bridge, from the cache snapshot"),
		),
		s.handleGetAllLights,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_light",
			mcp.WithDescription("Get detailed information about a specific light"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
		),
		s.handleGetLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_all_groups",
			mcp.WithDescription("Get information about all light groups, read live from the bridge"),
		),
		s.handleGetAllGroups,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_group",
			mcp.WithDescription("Get information about a specific light group"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group (0 is the all-lights group)"),
			),
		),
		s.handleGetGroup,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("get_all_scenes",
			mcp.WithDescription("Get information about all scenes stored on the bridge"),
		),
		s.handleGetAllScenes,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("find_light_by_name",
			mcp.WithDescription("Find lights whose name contains the query, case-insensitively"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Partial or full name to search for"),
			),
		),
		s.handleFindLightByName,
	)

	// --- Single-light commands ---

	s.mcpServer.AddTool(
		mcp.NewTool("turn_on_light",
			mcp.WithDescription("Turn on a specific light by ID"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light to turn on"),
			),
		),
		s.handleTurnOnLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_off_light",
			mcp.WithDescription("Turn off a specific light by ID"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light to turn off"),
			),
		),
		s.handleTurnOffLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_brightness",
			mcp.WithDescription("Set the brightness of a light. Turns the light on first if it is off."),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
			mcp.WithNumber("brightness",
				mcp.Required(),
				mcp.Description("Brightness level (0-254)"),
			),
		),
		s.handleSetBrightness,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_color_rgb",
			mcp.WithDescription("Set light color using RGB values. Rejected for lights without a color channel."),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
			mcp.WithNumber("red",
				mcp.Required(),
				mcp.Description("Red value (0-255)"),
			),
			mcp.WithNumber("green",
				mcp.Required(),
				mcp.Description("Green value (0-255)"),
			),
			mcp.WithNumber("blue",
				mcp.Required(),
				mcp.Description("Blue value (0-255)"),
			),
		),
		s.handleSetColorRGB,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_color_preset",
			mcp.WithDescription("Apply a named color preset to a light (warm, cool, daylight, concentration, relax, reading, energize, red, green, blue, purple, orange)"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
			mcp.WithString("preset",
				mcp.Required(),
				mcp.Description("Preset name"),
			),
		),
		s.handleSetColorPreset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("alert_light",
			mcp.WithDescription("Make a light flash briefly to identify it"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light to alert"),
			),
		),
		s.handleAlertLight,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_light_effect",
			mcp.WithDescription("Set a dynamic effect on a color-capable light"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
			mcp.WithString("effect",
				mcp.Required(),
				mcp.Description("Effect type"),
				mcp.Enum("none", "colorloop"),
			),
		),
		s.handleSetLightEffect,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_light_state",
			mcp.WithDescription("Set raw light state parameters (on, bri, xy, ct, alert, effect), validated against the light's capabilities"),
			mcp.WithNumber("light_id",
				mcp.Required(),
				mcp.Description("The ID of the light"),
			),
			mcp.WithObject("state",
				mcp.Required(),
				mcp.Description("State parameters to set (e.g. {\"on\": true, \"bri\": 200})"),
			),
		),
		s.handleSetLightState,
	)

	// --- Group commands ---

	s.mcpServer.AddTool(
		mcp.NewTool("turn_on_group",
			mcp.WithDescription("Turn on all lights in a specific group"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
		),
		s.handleTurnOnGroup,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("turn_off_group",
			mcp.WithDescription("Turn off all lights in a specific group"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
		),
		s.handleTurnOffGroup,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_group_brightness",
			mcp.WithDescription("Set the brightness of all lights in a group. Turns the group on first if every member is off."),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
			mcp.WithNumber("brightness",
				mcp.Required(),
				mcp.Description("Brightness level (0-254)"),
			),
		),
		s.handleSetGroupBrightness,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_group_color_rgb",
			mcp.WithDescription("Set color for all lights in a group using RGB values"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
			mcp.WithNumber("red",
				mcp.Required(),
				mcp.Description("Red value (0-255)"),
			),
			mcp.WithNumber("green",
				mcp.Required(),
				mcp.Description("Green value (0-255)"),
			),
			mcp.WithNumber("blue",
				mcp.Required(),
				mcp.Description("Blue value (0-255)"),
			),
		),
		s.handleSetGroupColorRGB,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_group_color_preset",
			mcp.WithDescription("Apply a named color preset to all lights in a group"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
			mcp.WithString("preset",
				mcp.Required(),
				mcp.Description("Preset name"),
			),
		),
		s.handleSetGroupColorPreset,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("set_scene",
			mcp.WithDescription("Apply a bridge-stored scene to a group"),
			mcp.WithNumber("group_id",
				mcp.Required(),
				mcp.Description("The ID of the group"),
			),
			mcp.WithString("scene_id",
				mcp.Required(),
				mcp.Description("The ID of the scene"),
			),
		),
		s.handleSetScene,
	)

	// --- Management ---

	s.mcpServer.AddTool(
		mcp.NewTool("create_group",
			mcp.WithDescription("Create a new group of lights. Every light ID must exist."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the new group"),
			),
			mcp.WithArray("light_ids",
				mcp.Required(),
				mcp.Description("Light IDs to include in the group"),
				mcp.Items(map[string]any{"type": "number"}),
			),
		),
		s.handleCreateGroup,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("quick_scene",
			mcp.WithDescription("Quickly set up a lighting scene for a group: any combination of brightness, RGB color and color temperature. Turns the group on."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Name for the scene, used in the confirmation"),
			),
			mcp.WithNumber("group_id",
				mcp.Description("Group ID to apply settings to (default 0, the all-lights group)"),
			),
			mcp.WithNumber("brightness",
				mcp.Description("Optional brightness (0-254)"),
			),
			mcp.WithArray("rgb",
				mcp.Description("Optional RGB values [r, g, b], each 0-255"),
				mcp.Items(map[string]any{"type": "number"}),
			),
			mcp.WithNumber("temperature",
				mcp.Description("Optional color temperature in Kelvin (2000-6500)"),
			),
		),
		s.handleQuickScene,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("refresh_lights",
			mcp.WithDescription("Refresh the light cache snapshot. Useful after lights were added, removed or changed outside this session."),
		),
		s.handleRefreshLights,
	)
}
