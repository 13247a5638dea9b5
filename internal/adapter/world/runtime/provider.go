package runtime

import (
	"context"
	"errors"
	"fmt"

	"gridharvest/internal/app/ports"
	"gridharvest/internal/domain/world"
)

// GeneratorFactory returns the generator for one seed.
type GeneratorFactory func(seed int64) world.Generator

type Config struct {
	NewGenerator GeneratorFactory
	// Cache is optional. When set, generated maps are stored per (seed, size)
	// and reused on the next build with the same seed.
	Cache ports.TerrainRepository
}

type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) Provider {
	return Provider{cfg: cfg}
}

func (p Provider) Terrain(ctx context.Context, seed int64) (ports.Terrain, error) {
	if p.cfg.NewGenerator == nil {
		return ports.Terrain{}, errors.New("terrain provider: generator factory is required")
	}
	gen := p.cfg.NewGenerator(seed)
	size := gen.WorldSize()
	out := ports.Terrain{Seed: seed, InBounds: gen.IsInBounds}

	if p.cfg.Cache != nil {
		cached, err := p.cfg.Cache.Get(ctx, seed, size)
		switch {
		case err == nil && cached.Size() == size:
			out.Types = cached
			return out, nil
		case err != nil && !errors.Is(err, ports.ErrNotFound):
			return ports.Terrain{}, fmt.Errorf("load terrain: %w", err)
		}
	}

	out.Types = gen.Generate()
	if p.cfg.Cache != nil {
		if err := p.cfg.Cache.Save(ctx, seed, size, out.Types); err != nil {
			return ports.Terrain{}, fmt.Errorf("save terrain: %w", err)
		}
	}
	return out, nil
}
