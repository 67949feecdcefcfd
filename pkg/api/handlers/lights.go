package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tlind/huemcp/pkg/api/types"
	"github.com/tlind/huemcp/pkg/bridge/schema"
	"github.com/tlind/huemcp/pkg/control"
)

// LightsHandler handles light query and command endpoints
type LightsHandler struct {
	controller *control.Controller
	validator  *schema.Validator
}

// NewLightsHandler creates a new lights handler
func NewLightsHandler(controller *control.Controller, validator *schema.Validator) *LightsHandler {
	return &LightsHandler{controller: controller, validator: validator}
}

// ListLights handles GET /lights
// @Summary      List all lights
// @Description  Returns the cached snapshot of all lights, optionally filtered by name
// @Tags         lights
// @Produce      json
// @Param        name  query     string  false  "Case-insensitive name filter"
// @Success      200   {object}  types.ListLightsResponse
// @Router       /lights [get]
func (h *LightsHandler) ListLights(c *gin.Context) {
	var lights []types.Light
	if name := c.Query("name"); name != "" {
		matches := h.controller.FindLights(name)
		lights = make([]types.Light, 0, len(matches))
		for _, l := range matches {
			lights = append(lights, lightDTO(l))
		}
	} else {
		lights = lightDTOs(h.controller.Lights())
	}

	c.JSON(http.StatusOK, types.ListLightsResponse{
		Lights: lights,
		Count:  len(lights),
	})
}

// GetLight handles GET /lights/:id
// @Summary      Get light details
// @Description  Returns the cached record for one light
// @Tags         lights
// @Produce      json
// @Param        id   path      int  true  "Light ID"
// @Success      200  {object}  types.LightResponse
// @Failure      404  {object}  types.ErrorResponse  "Light not found"
// @Router       /lights/{id} [get]
func (h *LightsHandler) GetLight(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.controller.Light(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.LightResponse{Light: lightDTO(l)})
}

// SetPower handles POST /lights/:id/power
// @Summary      Turn a light on or off
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Light ID"
// @Param        request  body      types.PowerRequest  true  "Desired power state"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/power [post]
func (h *LightsHandler) SetPower(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.PowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "on is required")
		return
	}

	msg, err := h.controller.SetLightPower(c.Request.Context(), id, *req.On)
	commandResult(c, msg, err)
}

// SetBrightness handles POST /lights/:id/brightness
// @Summary      Set light brightness
// @Description  Sets brightness on the bridge's 0-254 scale, turning the light on first if needed
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int                      true  "Light ID"
// @Param        request  body      types.BrightnessRequest  true  "Brightness level"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/brightness [post]
func (h *LightsHandler) SetBrightness(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.BrightnessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "brightness is required")
		return
	}

	msg, err := h.controller.SetLightBrightness(c.Request.Context(), id, *req.Brightness)
	commandResult(c, msg, err)
}

// SetColor handles POST /lights/:id/color
// @Summary      Set light color from RGB
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int                 true  "Light ID"
// @Param        request  body      types.ColorRequest  true  "RGB channels (0-255)"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or unsupported capability"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/color [post]
func (h *LightsHandler) SetColor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.ColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "red, green and blue are required")
		return
	}

	msg, err := h.controller.SetLightColor(c.Request.Context(), id, *req.Red, *req.Green, *req.Blue)
	commandResult(c, msg, err)
}

// SetPreset handles POST /lights/:id/preset
// @Summary      Apply a color preset to a light
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Light ID"
// @Param        request  body      types.PresetRequest  true  "Preset name"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or unsupported capability"
// @Failure      404      {object}  types.ErrorResponse  "Light or preset not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/preset [post]
func (h *LightsHandler) SetPreset(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "preset is required")
		return
	}

	msg, err := h.controller.ApplyLightPreset(c.Request.Context(), id, req.Preset)
	commandResult(c, msg, err)
}

// Alert handles POST /lights/:id/alert
// @Summary      Flash a light briefly to identify it
// @Tags         lights
// @Produce      json
// @Param        id   path      int  true  "Light ID"
// @Success      200  {object}  types.CommandResponse
// @Failure      404  {object}  types.ErrorResponse  "Light not found"
// @Failure      502  {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/alert [post]
func (h *LightsHandler) Alert(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	msg, err := h.controller.AlertLight(c.Request.Context(), id)
	commandResult(c, msg, err)
}

// SetEffect handles POST /lights/:id/effect
// @Summary      Set a dynamic effect on a light
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "Light ID"
// @Param        request  body      types.EffectRequest  true  "Effect (none or colorloop)"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Invalid request or unsupported capability"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/effect [post]
func (h *LightsHandler) SetEffect(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req types.EffectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "effect is required")
		return
	}

	msg, err := h.controller.SetLightEffect(c.Request.Context(), id, req.Effect)
	commandResult(c, msg, err)
}

// SetState handles POST /lights/:id/state
// @Summary      Set raw light state
// @Description  Writes raw state parameters after validating them against the light's capability schema
// @Tags         lights
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Light ID"
// @Param        request  body      map[string]any  true  "State parameters"
// @Success      200      {object}  types.CommandResponse
// @Failure      400      {object}  types.ErrorResponse  "Validation error"
// @Failure      404      {object}  types.ErrorResponse  "Light not found"
// @Failure      502      {object}  types.ErrorResponse  "Bridge error"
// @Router       /lights/{id}/state [post]
func (h *LightsHandler) SetState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var stateMap map[string]any
	if err := c.ShouldBindJSON(&stateMap); err != nil {
		badRequest(c, "request body must be a JSON object")
		return
	}

	l, err := h.controller.Light(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.validator != nil {
		if err := h.validator.ValidateState(l, stateMap); err != nil {
			badRequest(c, fmt.Sprintf("validation error: %s", err))
			return
		}
	}

	msg, err := h.controller.ApplyLightState(c.Request.Context(), id, stateMap)
	commandResult(c, msg, err)
}

// Refresh handles POST /refresh
// @Summary      Refresh the light cache
// @Description  Re-reads every light from the bridge and replaces the cache snapshot
// @Tags         lights
// @Produce      json
// @Success      200  {object}  types.RefreshResponse
// @Failure      502  {object}  types.ErrorResponse  "Bridge error"
// @Router       /refresh [post]
func (h *LightsHandler) Refresh(c *gin.Context) {
	n, err := h.controller.RefreshLights(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.RefreshResponse{
		Count:   n,
		Message: fmt.Sprintf("Light cache refreshed, %d lights known.", n),
	})
}
