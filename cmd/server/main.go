package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gridharvest/internal/adapter/eventlog"
	httpadapter "gridharvest/internal/adapter/http"
	metricsinmem "gridharvest/internal/adapter/metrics/inmemory"
	"gridharvest/internal/adapter/movement"
	gormrepo "gridharvest/internal/adapter/repo/gorm"
	"gridharvest/internal/adapter/repo/memory"
	sqliterepo "gridharvest/internal/adapter/repo/sqlite"
	"gridharvest/internal/adapter/terrain/noise"
	worldruntime "gridharvest/internal/adapter/world/runtime"
	"gridharvest/internal/app/command"
	"gridharvest/internal/app/observe"
	"gridharvest/internal/app/ports"
	"gridharvest/internal/app/replay"
	"gridharvest/internal/app/simulation"
	"gridharvest/internal/app/status"
	"gridharvest/internal/app/tuning"
	"gridharvest/internal/domain/unit"
	"gridharvest/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/app/server"
)

type config struct {
	Addr          string
	DSN           string
	SQLitePath    string
	EventLogDir   string
	MigrationsDir string
	Tuning        tuning.Tuning
}

type backend struct {
	Events  ports.HarvestEventRepository
	Terrain ports.TerrainRepository
	Tx      ports.TxManager
	Close   func()
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	be, err := openBackend(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open backend: %v", err)
	}
	defer be.Close()

	var sink *eventlog.Writer
	if cfg.EventLogDir != "" {
		sink = eventlog.NewWriter(cfg.EventLogDir)
		defer sink.Close()
	}

	kpiRecorder := metricsinmem.NewRecorder()
	sim := newSimulation(cfg.Tuning, be, sink, kpiRecorder, log.New(os.Stdout, "[sim] ", log.LstdFlags|log.Lmicroseconds))
	info, err := sim.Build(context.Background(), cfg.Tuning.Seed)
	if err != nil {
		log.Fatalf("build world: %v", err)
	}
	spawnDefaults(sim)

	h := httpadapter.Handler{
		ObserveUC: observe.UseCase{World: sim},
		StatusUC:  status.UseCase{World: sim},
		ReplayUC:  replay.UseCase{Events: be.Events, World: sim},
		SpawnUC:   command.SpawnUseCase{World: sim},
		MoveUC:    command.MoveUseCase{World: sim},
		HarvestUC: command.HarvestUseCase{World: sim},
		DestroyUC: command.DestroyUseCase{World: sim},
		RebuildUC: command.RebuildUseCase{World: sim},
		TickUC:    command.TickUseCase{World: sim},
		KPI:       kpiRecorder,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := sim.Run(ctx, cfg.Tuning.TickRateHz); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("simulation loop: %v", err)
		}
	}()

	s := server.Default(server.WithHostPorts(cfg.Addr))
	h.RegisterRoutes(s)

	log.Printf("gridharvest listening on %s (build %s, size %d, %d Hz)", cfg.Addr, info.BuildID, info.Size, cfg.Tuning.TickRateHz)
	s.Spin()
}

func loadConfig() (config, error) {
	t := tuning.Defaults()
	if path := strings.TrimSpace(os.Getenv("GRID_TUNING")); path != "" {
		loaded, err := tuning.Load(path)
		if err != nil {
			return config{}, err
		}
		t = loaded
	}
	t.WorldSize = intEnv("GRID_WORLD_SIZE", t.WorldSize)
	t.Seed = int64(intEnv("GRID_SEED", int(t.Seed)))
	t.TickRateHz = intEnv("GRID_TICK_HZ", t.TickRateHz)
	t.HarvestSpeed = floatEnv("GRID_HARVEST_SPEED", t.HarvestSpeed)
	t.MoverSpeed = floatEnv("GRID_MOVER_SPEED", t.MoverSpeed)
	if t.Caps == nil {
		t.Caps = map[string]int{}
	}
	for k, v := range resourcesEnv("GRID_CAPS") {
		t.Caps[k] = v
	}
	if err := t.Validate(); err != nil {
		return config{}, err
	}

	return config{
		Addr:          stringEnv("GRID_ADDR", ":8080"),
		DSN:           strings.TrimSpace(os.Getenv("GRID_DB_DSN")),
		SQLitePath:    strings.TrimSpace(os.Getenv("GRID_SQLITE_PATH")),
		EventLogDir:   strings.TrimSpace(os.Getenv("GRID_EVENT_LOG_DIR")),
		MigrationsDir: stringEnv("GRID_MIGRATIONS_DIR", "db/migrations"),
		Tuning:        t,
	}, nil
}

// openBackend picks postgres when a DSN is set, then sqlite, then the
// in-process store.
func openBackend(ctx context.Context, cfg config) (backend, error) {
	switch {
	case cfg.DSN != "":
		db, err := gormrepo.OpenPostgres(cfg.DSN)
		if err != nil {
			return backend{}, err
		}
		applied, err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir)
		if err != nil {
			return backend{}, err
		}
		if len(applied) > 0 {
			log.Printf("applied migrations: %s", strings.Join(applied, ", "))
		}
		return backend{
			Events:  gormrepo.NewEventRepo(db),
			Terrain: gormrepo.NewTerrainRepo(db),
			Tx:      gormrepo.NewTxManager(db),
			Close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	case cfg.SQLitePath != "":
		store, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return backend{}, err
		}
		return backend{
			Events:  store,
			Terrain: store.TerrainRepo(),
			Close:   func() { _ = store.Close() },
		}, nil
	default:
		store := memory.NewStore()
		return backend{
			Events:  memory.NewEventRepo(store),
			Terrain: memory.NewTerrainRepo(store),
			Tx:      memory.NewTxManager(store),
			Close:   func() {},
		}, nil
	}
}

func newSimulation(t tuning.Tuning, be backend, sink *eventlog.Writer, metrics ports.HarvestMetrics, logger *log.Logger) *simulation.Simulation {
	size := t.WorldSize
	speed := t.MoverSpeed
	deps := simulation.Deps{
		Terrain: worldruntime.NewProvider(worldruntime.Config{
			NewGenerator: func(seed int64) world.Generator {
				return noise.New(noise.Config{Size: size, Seed: seed})
			},
			Cache: be.Terrain,
		}),
		NewMover: func(g *world.Grid, id world.UnitID, at world.TileID, m world.Mobility) unit.Movement {
			return movement.New(g, id, at, m, speed)
		},
		Events:    be.Events,
		TxManager: be.Tx,
		Metrics:   metrics,
		Now:       time.Now,
		Logger:    logger,
	}
	if sink != nil {
		deps.Sink = sink
	}
	return simulation.New(simulation.Config{
		Seed:            t.Seed,
		Build:           t.BuildConfig(),
		Harvest:         t.HarvestConfig(),
		Yields:          t.YieldTable(),
		Caps:            t.CapMap(),
		DespawnDepleted: t.DespawnDepleted,
	}, deps)
}

func spawnDefaults(sim *simulation.Simulation) {
	for _, s := range []struct {
		kind unit.Kind
		i, j int
	}{
		{unit.KindHarvester, 54, 54},
		{unit.KindScout, 56, 54},
	} {
		v, err := sim.SpawnNear(s.kind, s.i, s.j)
		if err != nil {
			log.Printf("spawn %s: %v", s.kind, err)
			continue
		}
		log.Printf("spawned %s id=%d at (%d,%d)", v.Kind, v.ID, v.I, v.J)
	}
}

func stringEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func resourcesEnv(key string) map[string]int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := map[string]int{}
	for _, pair := range strings.Split(raw, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			continue
		}
		name := strings.TrimSpace(kv[0])
		if name == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			continue
		}
		out[name] = n
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
