package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tlind/huemcp/pkg/api/types"
	"github.com/tlind/huemcp/pkg/control"
)

// ScenesHandler handles scene endpoints and composite scene commands
type ScenesHandler struct {
	controller *control.Controller
}

// NewScenesHandler creates a new scenes handler
func NewScenesHandler(controller *control.Controller) *ScenesHandler {
	return &ScenesHandler{controller: controller}
}

// ListScenes handles GET /scenes
// @Summary      List all scenes
// @Description  Returns all scenes stored on the bridge
// @Tags         scenes
// @Produce      json
// @Success      200  {object}  types.ListScenesResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge error"
// @Router       /scenes [get]
func (h *ScenesHandler) ListScenes(c *gin.Context) {
	scenes, err := h.controller.Scenes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	dtos := sceneDTOs(scenes)
	c.JSON(http.StatusOK, types.ListScenesResponse{
		Scenes: dtos,
		Count:  len(dtos),
	})
}

// QuickScene handles POST /quick-scene
// @Summary      Apply a quick scene to a group
// @Description  Turns the group on and applies any combination of brightness, RGB color and color temperature
// @Tags         scenes
// @Accept       json
// @Produce      json
// @Param        request  body      types.QuickSceneRequest  true  "Scene settings"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Group not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /quick-scene [post]
func (h *ScenesHandler) QuickScene(c *gin.Context) {
	var req types.QuickSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}
	if req.RGB != nil && len(req.RGB) != 3 {
		badRequest(c, "rgb must be an array of three values")
		return
	}

	qs := control.QuickScene{
		Name:        req.Name,
		GroupID:     req.GroupID,
		Brightness:  req.Brightness,
		Temperature: req.Temperature,
	}
	if req.RGB != nil {
		qs.RGB = &[3]int{req.RGB[0], req.RGB[1], req.RGB[2]}
	}

	msg, err := h.controller.ApplyQuickScene(c.Request.Context(), qs)
	commandResult(c, msg, err)
}
