package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tlind/huemcp/pkg/api/types"
	"github.com/tlind/huemcp/pkg/control"
)

// GroupsHandler handles group query and command endpoints
type GroupsHandler struct {
	controller *control.Controller
}

// NewGroupsHandler creates a new groups handler
func NewGroupsHandler(controller *control.Controller) *GroupsHandler {
	return &GroupsHandler{controller: controller}
}

// ListGroups handles GET /groups
// @Summary      List all groups
// @Description  Returns all groups, read live from the bridge
// @Tags         groups
// @Produce      json
// @Success      200  {object}  types.ListGroupsResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups [get]
func (h *GroupsHandler) ListGroups(c *gin.Context) {
	groups, err := h.controller.Groups(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := groupDTOs(groups)
	c.JSON(http.StatusOK, types.ListGroupsResponse{
		Groups: dtos,
		Count:  len(dtos),
	})
}

// GetGroup handles GET /groups/:id
// @Summary      Get group details
// @Tags         groups
// @Produce      json
// @Param        id   path      int  true  "Group ID (0 is the all-lights group)"
// @Success      200  {object}  types.GroupResponse
// @Failure      404  {object}  types.ErrorResponse  "Group not found"
// @Failure      502  {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id} [get]
func (h *GroupsHandler) GetGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	g, err := h.controller.Group(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.GroupResponse{Group: groupDTO(g)})
}

// CreateGroup handles POST /groups
// @Summary      Create a new group
// @Description  Creates a group from light IDs, all of which must exist
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateGroupRequest  true  "Group name and member light IDs"
// @Success      201      {object}  types.CreateGroupResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Unknown light IDs"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups [post]
func (h *GroupsHandler) CreateGroup(c *gin.Context) {
	var req types.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name and light_ids are required")
		return
	}
	if len(req.LightIDs) == 0 {
		badRequest(c, "light_ids must not be empty")
		return
	}

	id, msg, err := h.controller.CreateGroup(c.Request.Context(), req.Name, req.LightIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.CreateGroupResponse{
		Success: true,
		GroupID: id,
		Message: msg,
	})
}

// SetPower handles POST /groups/:id/power
// @Summary      Turn a group on or off
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Group ID"
// @Param        request  body      types.PowerRequest  true  "Desired power state"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Group not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id}/power [post]
func (h *GroupsHandler) SetPower(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.PowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "on is required")
		return
	}

	msg, err := h.controller.SetGroupPower(c.Request.Context(), id, *req.On)
	commandResult(c, msg, err)
}

// SetBrightness handles POST /groups/:id/brightness
// @Summary      Set group brightness
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Group ID"
// @Param        request  body      types.BrightnessRequest  true  "Brightness level (0-254)"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Group not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id}/brightness [post]
func (h *GroupsHandler) SetBrightness(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.BrightnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "brightness is required")
		return
	}

	msg, err := h.controller.SetGroupBrightness(c.Request.Context(), id, *req.Brightness)
	commandResult(c, msg, err)
}

// SetColor handles POST /groups/:id/color
// @Summary      Set group color from RGB
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Group ID"
// @Param        request  body      types.ColorRequest  true  "RGB channels (0-255)"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Group not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id}/color [post]
func (h *GroupsHandler) SetColor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "red, green and blue are required")
		return
	}

	msg, err := h.controller.SetGroupColor(c.Request.Context(), id, *req.Red, *req.Green, *req.Blue)
	commandResult(c, msg, err)
}

// SetPreset handles POST /groups/:id/preset
// @Summary      Apply a color preset to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Group ID"
// @Param        request  body      types.PresetRequest  true  "Preset name"
// @Success      200      {object}  types.CommandResponse
// @Failure      404      {object}  types.ErrorResponse  "Group or preset not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id}/preset [post]
func (h *GroupsHandler) SetPreset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "preset is required")
		return
	}

	msg, err := h.controller.ApplyGroupPreset(c.Request.Context(), id, req.Preset)
	commandResult(c, msg, err)
}

// SetScene handles POST /groups/:id/scene
// @Summary      Apply a bridge-stored scene to a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Group ID"
// @Param        request  body      types.SceneRequest  true  "Scene ID"
// @Success      200      {object}  types.CommandResponse
// @Failure      404      {object}  types.ErrorResponse  "Group or scene not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /groups/{id}/scene [post]
func (h *GroupsHandler) SetScene(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "scene_id is required")
		return
	}

	msg, err := h.controller.ApplyScene(c.Request.Context(), id, req.SceneID)
	commandResult(c, msg, err)
}
