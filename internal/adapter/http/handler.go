package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"gridharvest/internal/app/command"
	"gridharvest/internal/app/observe"
	"gridharvest/internal/app/ports"
	"gridharvest/internal/app/replay"
	"gridharvest/internal/app/simulation"
	"gridharvest/internal/app/status"
	"gridharvest/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	ObserveUC observe.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	SpawnUC   command.SpawnUseCase
	MoveUC    command.MoveUseCase
	HarvestUC command.HarvestUseCase
	DestroyUC command.DestroyUseCase
	RebuildUC command.RebuildUseCase
	TickUC    command.TickUseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	api.GET("/world", h.world)
	api.POST("/world/rebuild", h.rebuild)
	api.POST("/units", h.spawn)
	api.DELETE("/units/:id", h.destroy)
	api.POST("/units/:id/move", h.move)
	api.POST("/units/:id/harvest", h.harvest)
	api.POST("/tick", h.tick)
	api.GET("/economy", h.economy)
	api.GET("/events", h.events)

	s.GET("/ops/kpi", h.kpi)
}

var ErrInvalidUnitID = errors.New("invalid unit id")

func (h Handler) world(c context.Context, ctx *app.RequestContext) {
	radius, _ := strconv.Atoi(string(ctx.Query("radius")))
	ci, _ := strconv.Atoi(string(ctx.Query("i")))
	cj, _ := strconv.Atoi(string(ctx.Query("j")))
	tiles := string(ctx.Query("tiles"))

	resp, err := h.ObserveUC.Execute(c, observe.Request{
		IncludeTiles: tiles == "1" || strings.EqualFold(tiles, "true"),
		Center:       world.Point{I: ci, J: cj},
		Radius:       radius,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) rebuild(c context.Context, ctx *app.RequestContext) {
	var body command.RebuildRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.RebuildUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) spawn(c context.Context, ctx *app.RequestContext) {
	var body command.SpawnRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.SpawnUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) destroy(c context.Context, ctx *app.RequestContext) {
	id, err := unitIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.DestroyUC.Execute(c, command.DestroyRequest{UnitID: id}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

func (h Handler) move(c context.Context, ctx *app.RequestContext) {
	id, err := unitIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body command.MoveRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	body.UnitID = id
	resp, err := h.MoveUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) harvest(c context.Context, ctx *app.RequestContext) {
	id, err := unitIDParam(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body command.HarvestRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	body.UnitID = id
	resp, err := h.HarvestUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) tick(c context.Context, ctx *app.RequestContext) {
	var body command.TickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.TickUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) economy(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		BuildID:      string(ctx.Query("build_id")),
		Limit:        limit,
		Kind:         string(ctx.Query("kind")),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func unitIDParam(ctx *app.RequestContext) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(ctx.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUnitID
	}
	return id, nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidUnitID):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_unit_id", err.Error())
	case errors.Is(err, simulation.ErrInvalidKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_unit_kind", err.Error())
	case errors.Is(err, command.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrTileBlocked):
		writeErrorBody(ctx, consts.StatusConflict, "tile_blocked", err.Error())
	case errors.Is(err, simulation.ErrNotHarvester):
		writeErrorBody(ctx, consts.StatusConflict, "not_harvester", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case errors.Is(err, ports.ErrNotBuilt):
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "world_not_built", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
