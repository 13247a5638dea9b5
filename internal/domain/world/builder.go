package world

type BuildConfig struct {
	Topology       Topology
	TileSize       float64
	InitialAmounts map[ResourceType]float64
}

// BuildResult is the complete static world produced from one type map.
type BuildResult struct {
	Grid       *Grid
	Resources  []*ResourceObject
	Structures []Structure
}

// Builder turns generated type maps into grids. It keeps its id counters
// across builds so handles from a discarded world never alias new objects.
type Builder struct {
	cfg           BuildConfig
	lastResource  ResourceID
	lastStructure StructureID
}

func NewBuilder(cfg BuildConfig) *Builder {
	if cfg.TileSize <= 0 {
		cfg.TileSize = 1
	}
	return &Builder{cfg: cfg}
}

func (b *Builder) Config() BuildConfig { return b.cfg }

func (b *Builder) Build(types TypeMap, inBounds BoundsFunc) BuildResult {
	size := types.Size()
	if inBounds == nil {
		inBounds = SquareBounds(size)
	}
	g := &Grid{
		size:     size,
		tileSize: b.cfg.TileSize,
		topology: b.cfg.Topology,
		tiles:    make([]TileData, size*size),
	}

	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			id := g.index(i, j)
			typ := TileNone
			if types.has(i, j) && !types[i][j].IsEmpty() {
				typ = types[i][j]
			}
			g.tiles[id] = TileData{
				ID:       id,
				I:        i,
				J:        j,
				Type:     typ,
				WorldPos: TilePos(size, b.cfg.TileSize, i, j),
			}
		}
	}

	out := BuildResult{Grid: g}
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			t := &g.tiles[g.index(i, j)]
			if t.Type.IsEmpty() {
				continue
			}
			t.Edge = IsEdgeTile(types, inBounds, i, j)
			t.connections = b.connect(g, types, inBounds, i, j)

			switch t.Type {
			case TileBase:
				b.lastStructure++
				out.Structures = append(out.Structures, Structure{
					ID:   b.lastStructure,
					Kind: StructureBase,
					Tile: t.ID,
					Pos:  t.Pos(),
				})
			case TileMine:
				b.lastResource++
				out.Resources = append(out.Resources, NewResourceObject(b.lastResource, t, ResourceGem, b.cfg.InitialAmounts[ResourceGem]))
			case TileMineral:
				b.lastResource++
				out.Resources = append(out.Resources, NewResourceObject(b.lastResource, t, ResourceMineral, b.cfg.InitialAmounts[ResourceMineral]))
			}
		}
	}
	return out
}

func (b *Builder) connect(g *Grid, types TypeMap, inBounds BoundsFunc, i, j int) []Connection {
	offsets := cardinalOffsets
	if b.cfg.Topology == TopologyOctile {
		offsets = append(append([]offset{}, cardinalOffsets...), diagonalOffsets...)
	}
	out := make([]Connection, 0, len(offsets))
	for k, o := range offsets {
		ni, nj := i+o.di, j+o.dj
		if !solidAt(types, inBounds, ni, nj) || !g.InBounds(ni, nj) {
			continue
		}
		to := &g.tiles[g.index(ni, nj)]
		c := Connection{To: to.ID, Diagonal: k >= len(cardinalOffsets)}
		for m := Mobility(0); m < mobilityCount; m++ {
			c.access[m] = to.Type.Accessible(m)
		}
		out = append(out, c)
	}
	return out
}
