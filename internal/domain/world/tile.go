package world

type TileType string

const (
	TileNone    TileType = "none"
	TileGround  TileType = "ground"
	TileWater   TileType = "water"
	TileBase    TileType = "base"
	TileMine    TileType = "mine"
	TileMineral TileType = "mineral"
)

// IsEmpty reports whether the tile type is the "no tile" value. The zero
// value counts as empty so a partially filled type map stays safe to build.
func (t TileType) IsEmpty() bool {
	return t == TileNone || t == ""
}

func (t TileType) IsStructure() bool {
	switch t {
	case TileBase, TileMine, TileMineral:
		return true
	}
	return false
}

type Mobility int

const (
	MobilityGround Mobility = iota
	MobilityFlying
	mobilityCount
)

func (m Mobility) String() string {
	if m == MobilityFlying {
		return "flying"
	}
	return "ground"
}

// Accessible reports whether a unit with mobility m may stand on a tile of
// type t. Structures block everyone; water only carries flyers.
func (t TileType) Accessible(m Mobility) bool {
	switch t {
	case TileGround:
		return true
	case TileWater:
		return m == MobilityFlying
	default:
		return false
	}
}

type TileID int

type UnitID int

const NoUnit UnitID = 0

type Point struct {
	I int `json:"i"`
	J int `json:"j"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f} }

// Connection is a directed half of a symmetric neighbour relation. Access is
// resolved once at build time and only read afterwards.
type Connection struct {
	To       TileID
	Diagonal bool
	access   [mobilityCount]bool
}

func (c Connection) Accessible(m Mobility) bool {
	if m < 0 || m >= mobilityCount {
		return false
	}
	return c.access[m]
}

type TileData struct {
	ID       TileID
	I        int
	J        int
	Type     TileType
	WorldPos Vec3
	Edge     bool

	connections []Connection
	occupant    UnitID
}

func (t *TileData) Pos() Point { return Point{I: t.I, J: t.J} }

// Connections returns the neighbour list in build order. Callers must not
// modify the returned slice.
func (t *TileData) Connections() []Connection { return t.connections }

func (t *TileData) ConnectedTo(id TileID) bool {
	for _, c := range t.connections {
		if c.To == id {
			return true
		}
	}
	return false
}

func (t *TileData) Occupant() UnitID { return t.occupant }

func (t *TileData) IsFree() bool { return t.occupant == NoUnit }

// FreeFor reports whether the tile is empty or already held by unit.
func (t *TileData) FreeFor(unit UnitID) bool {
	return t.occupant == NoUnit || t.occupant == unit
}

func (t *TileData) IsTileAccessible(m Mobility) bool {
	return t.Type.Accessible(m)
}
