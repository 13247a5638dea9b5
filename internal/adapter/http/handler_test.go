package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	metricsinmem "gridharvest/internal/adapter/metrics/inmemory"
	"gridharvest/internal/adapter/movement"
	"gridharvest/internal/adapter/repo/memory"
	worldmock "gridharvest/internal/adapter/world/mock"
	worldruntime "gridharvest/internal/adapter/world/runtime"
	"gridharvest/internal/app/command"
	"gridharvest/internal/app/observe"
	"gridharvest/internal/app/ports"
	"gridharvest/internal/app/replay"
	"gridharvest/internal/app/simulation"
	"gridharvest/internal/app/status"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

var testLayout = []string{
	".....",
	".M...",
	".....",
	"...B.",
	".....",
}

type fixture struct {
	h   Handler
	sim *simulation.Simulation
	kpi *metricsinmem.Recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	events := memory.NewEventRepo(store)
	kpi := metricsinmem.NewRecorder()
	sim := simulation.New(simulation.Config{
		Seed: 1,
		Build: world.BuildConfig{
			Topology:       world.TopologyCardinal,
			InitialAmounts: map[world.ResourceType]float64{world.ResourceMineral: 1000, world.ResourceGem: 1000},
		},
		Harvest: unit.HarvestConfig{Threshold: 0.25, Speed: 0.5},
	}, simulation.Deps{
		Terrain: worldruntime.NewProvider(worldruntime.Config{
			NewGenerator: func(int64) world.Generator { return worldmock.NewGenerator(testLayout...) },
			Cache:        memory.NewTerrainRepo(store),
		}),
		NewMover: func(g *world.Grid, id world.UnitID, at world.TileID, m world.Mobility) unit.Movement {
			return movement.New(g, id, at, m, 4)
		},
		Events:    events,
		TxManager: memory.NewTxManager(store),
		Metrics:   kpi,
		Now:       func() time.Time { return time.Unix(1700000000, 0) },
	})
	if _, err := sim.Build(context.Background(), 1); err != nil {
		t.Fatalf("build: %v", err)
	}
	return fixture{
		sim: sim,
		kpi: kpi,
		h: Handler{
			ObserveUC: observe.UseCase{World: sim},
			StatusUC:  status.UseCase{World: sim},
			ReplayUC:  replay.UseCase{Events: events, World: sim},
			SpawnUC:   command.SpawnUseCase{World: sim},
			MoveUC:    command.MoveUseCase{World: sim},
			HarvestUC: command.HarvestUseCase{World: sim},
			DestroyUC: command.DestroyUseCase{World: sim},
			RebuildUC: command.RebuildUseCase{World: sim},
			TickUC:    command.TickUseCase{World: sim},
			KPI:       kpi,
		},
	}
}

func jsonCtx(body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	return ctx
}

func withID(ctx *app.RequestContext, id int64) *app.RequestContext {
	ctx.Params = param.Params{{Key: "id", Value: fmt.Sprint(id)}}
	return ctx
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	code, _ := body["error"]["code"].(string)
	return code
}

func (f fixture) spawn(t *testing.T, body string) simulation.UnitView {
	t.Helper()
	ctx := jsonCtx(body)
	f.h.spawn(context.Background(), ctx)
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("spawn status mismatch: got=%d want=%d body=%s", got, want, ctx.Response.Body())
	}
	var resp command.UnitResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal spawn: %v", err)
	}
	return resp.Unit
}

func TestSpawn_Created(t *testing.T) {
	f := newFixture(t)
	u := f.spawn(t, `{"kind":"harvester","i":0,"j":0}`)
	if u.ID <= 0 || u.Kind != "harvester" || u.I != 0 || u.J != 0 {
		t.Fatalf("unexpected unit: %+v", u)
	}
}

func TestSpawn_Errors(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		body   string
		status int
		code   string
	}{
		{`{"kind":"tank","i":0,"j":0}`, consts.StatusBadRequest, "bad_request"},
		{`{"kind":"harvester","i":3,"j":1}`, consts.StatusConflict, "tile_blocked"},
		{`{"kind":"harvester","i":9,"j":9}`, consts.StatusNotFound, "not_found"},
		{`{"kind":`, consts.StatusBadRequest, "invalid_json"},
	}
	for _, c := range cases {
		ctx := jsonCtx(c.body)
		f.h.spawn(context.Background(), ctx)
		if got := ctx.Response.StatusCode(); got != c.status {
			t.Fatalf("%s: status got=%d want=%d", c.body, got, c.status)
		}
		if got := errorCode(t, ctx); got != c.code {
			t.Fatalf("%s: code got=%q want=%q", c.body, got, c.code)
		}
	}
}

func TestHarvestFlow_ThroughTicks(t *testing.T) {
	f := newFixture(t)
	u := f.spawn(t, `{"kind":"harvester","i":0,"j":0}`)

	view, err := f.sim.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	resID := view.Resources[0].ID

	ctx := withID(jsonCtx(fmt.Sprintf(`{"resource_id":%d}`, resID)), u.ID)
	f.h.harvest(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("harvest status=%d body=%s", got, ctx.Response.Body())
	}

	for i := 0; i < 10; i++ {
		tc := jsonCtx(`{"dt":1}`)
		f.h.tick(context.Background(), tc)
		if got := tc.Response.StatusCode(); got != consts.StatusOK {
			t.Fatalf("tick status=%d body=%s", got, tc.Response.Body())
		}
	}

	ec := jsonCtx("")
	f.h.economy(context.Background(), ec)
	var eco status.Response
	if err := json.Unmarshal(ec.Response.Body(), &eco); err != nil {
		t.Fatalf("unmarshal economy: %v", err)
	}
	mineral := 0
	for _, b := range eco.Balances {
		if b.Type == world.ResourceMineral {
			mineral = b.Total
		}
	}
	if mineral <= 0 {
		t.Fatalf("expected mineral income, got balances %+v", eco.Balances)
	}

	rc := jsonCtx("")
	rc.Request.SetRequestURI("/api/events?kind=extracted&limit=100")
	f.h.events(context.Background(), rc)
	var rep replay.Response
	if err := json.Unmarshal(rc.Response.Body(), &rep); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if len(rep.Events) == 0 || rep.Totals[string(world.ResourceMineral)] != mineral {
		t.Fatalf("expected replayed totals to match ledger %d, got %+v", mineral, rep.Totals)
	}

	kc := jsonCtx("")
	f.h.kpi(context.Background(), kc)
	var snap metricsinmem.Snapshot
	if err := json.Unmarshal(kc.Response.Body(), &snap); err != nil {
		t.Fatalf("unmarshal kpi: %v", err)
	}
	if snap.ExtractionTotal != uint64(len(rep.Events)) {
		t.Fatalf("kpi extractions=%d events=%d", snap.ExtractionTotal, len(rep.Events))
	}
}

func TestHarvest_ScoutConflict(t *testing.T) {
	f := newFixture(t)
	u := f.spawn(t, `{"kind":"scout","i":4,"j":4}`)
	ctx := withID(jsonCtx(`{"resource_id":1}`), u.ID)
	f.h.harvest(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusConflict {
		t.Fatalf("status=%d body=%s", got, ctx.Response.Body())
	}
	if got := errorCode(t, ctx); got != "not_harvester" {
		t.Fatalf("code=%q", got)
	}
}

func TestMoveAndDestroy(t *testing.T) {
	f := newFixture(t)
	u := f.spawn(t, `{"kind":"harvester","i":0,"j":0}`)

	mc := withID(jsonCtx(`{"i":4,"j":0}`), u.ID)
	f.h.move(context.Background(), mc)
	if got := mc.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("move status=%d body=%s", got, mc.Response.Body())
	}

	dc := withID(jsonCtx(""), u.ID)
	f.h.destroy(context.Background(), dc)
	if got := dc.Response.StatusCode(); got != consts.StatusNoContent {
		t.Fatalf("destroy status=%d", got)
	}

	again := withID(jsonCtx(""), u.ID)
	f.h.destroy(context.Background(), again)
	if got := again.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("second destroy status=%d", got)
	}
}

func TestUnitIDParam_Invalid(t *testing.T) {
	f := newFixture(t)
	ctx := jsonCtx(`{"i":1,"j":1}`)
	ctx.Params = param.Params{{Key: "id", Value: "abc"}}
	f.h.move(context.Background(), ctx)
	if got := errorCode(t, ctx); got != "invalid_unit_id" {
		t.Fatalf("code=%q", got)
	}
}

func TestRebuild_NewBuildID(t *testing.T) {
	f := newFixture(t)
	before := f.sim.BuildID()
	f.spawn(t, `{"kind":"harvester","i":0,"j":0}`)

	ctx := jsonCtx(`{"seed":5}`)
	f.h.rebuild(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("rebuild status=%d body=%s", got, ctx.Response.Body())
	}
	var resp command.RebuildResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("unmarshal rebuild: %v", err)
	}
	if resp.Build.BuildID == before || resp.Build.Seed != 5 {
		t.Fatalf("unexpected rebuild: %+v", resp.Build)
	}

	wc := jsonCtx("")
	f.h.world(context.Background(), wc)
	var obs observe.Response
	if err := json.Unmarshal(wc.Response.Body(), &obs); err != nil {
		t.Fatalf("unmarshal world: %v", err)
	}
	if len(obs.World.Units) != 0 {
		t.Fatalf("expected no units after rebuild, got %d", len(obs.World.Units))
	}
}

func TestTick_RejectsBadDT(t *testing.T) {
	f := newFixture(t)
	ctx := jsonCtx(`{"dt":0}`)
	f.h.tick(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("status=%d", got)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ports.ErrNotBuilt, consts.StatusServiceUnavailable, "world_not_built"},
		{fmt.Errorf("wrap: %w", ports.ErrConflict), consts.StatusConflict, "conflict"},
		{replay.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{simulation.ErrInvalidKind, consts.StatusBadRequest, "invalid_unit_kind"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, c := range cases {
		ctx := &app.RequestContext{}
		writeError(ctx, c.err)
		if got := ctx.Response.StatusCode(); got != c.status {
			t.Fatalf("%v: status got=%d want=%d", c.err, got, c.status)
		}
		if got := errorCode(t, ctx); got != c.code {
			t.Fatalf("%v: code got=%q want=%q", c.err, got, c.code)
		}
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := &app.RequestContext{}
	Handler{}.kpi(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status=%d", got)
	}
}
