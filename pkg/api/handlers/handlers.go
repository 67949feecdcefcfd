// Package handlers implements the HTTP handlers behind the REST API.
package handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tlind/huemcp/pkg/api/types"
	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/control"
)

// respondError maps command-layer errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, control.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, control.ErrOutOfRange), errors.Is(err, control.ErrUnsupported):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
	case errors.Is(err, control.ErrUpstream):
		c.JSON(http.StatusBadGateway, types.ErrorResponse{
			Error:   "bridge_error",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, types.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func commandResult(c *gin.Context, msg string, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CommandResponse{
		Success: true,
		Message: msg,
	})
}

func lightDTO(l bridge.Light) types.Light {
	out := types.Light{
		ID:                l.ID,
		Name:              l.Name,
		On:                l.State.On,
		Reachable:         l.State.Reachable,
		Brightness:        l.State.Bri,
		ColorMode:         l.State.ColorMode,
		ColorTemp:         l.State.CT,
		Type:              l.Type,
		Model:             l.ModelID,
		SupportsColor:     l.SupportsColor(),
		SupportsColorTemp: l.SupportsColorTemp(),
	}
	if l.State.XY != nil {
		out.XY = &[2]float64{l.State.XY.X, l.State.XY.Y}
	}
	return out
}

func lightDTOs(lights map[int]bridge.Light) []types.Light {
	out := make([]types.Light, 0, len(lights))
	for _, l := range lights {
		out = append(out, lightDTO(l))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func groupDTO(g bridge.Group) types.Group {
	lights := []int(g.Lights)
	if lights == nil {
		lights = []int{}
	}
	return types.Group{
		ID:     g.ID,
		Name:   g.Name,
		Type:   g.Type,
		Lights: lights,
		AllOn:  g.State.AllOn,
		AnyOn:  g.State.AnyOn,
	}
}

func groupDTOs(groups map[int]bridge.Group) []types.Group {
	out := make([]types.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupDTO(g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sceneDTO(s bridge.Scene) types.Scene {
	return types.Scene{
		ID:     s.ID,
		Name:   s.Name,
		Type:   s.Type,
		Group:  s.Group,
		Lights: s.Lights,
	}
}

func sceneDTOs(scenes map[string]bridge.Scene) []types.Scene {
	out := make([]types.Scene, 0, len(scenes))
	for _, s := range scenes {
		out = append(out, sceneDTO(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
