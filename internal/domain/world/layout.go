package world

// Layout characters understood by ParseLayout.
const (
	LayoutEmpty   = ' '
	LayoutGround  = '.'
	LayoutWater   = '~'
	LayoutBase    = 'B'
	LayoutMine    = 'G'
	LayoutMineral = 'M'
)

// ParseLayout reads an ASCII layout, top row first, so row r maps to
// j = len(rows)-1-r and column c to i. Unknown characters are empty tiles.
// The map is square with the side of the longest dimension.
func ParseLayout(rows ...string) TypeMap {
	size := len(rows)
	for _, row := range rows {
		if len(row) > size {
			size = len(row)
		}
	}
	m := NewTypeMap(size)
	for r, row := range rows {
		j := len(rows) - 1 - r
		for i, ch := range row {
			m[i][j] = layoutType(ch)
		}
	}
	return m
}

func layoutType(ch rune) TileType {
	switch ch {
	case LayoutGround:
		return TileGround
	case LayoutWater:
		return TileWater
	case LayoutBase:
		return TileBase
	case LayoutMine:
		return TileMine
	case LayoutMineral:
		return TileMineral
	default:
		return TileNone
	}
}

// FormatLayout is the inverse of ParseLayout for square maps.
func FormatLayout(m TypeMap) []string {
	size := m.Size()
	rows := make([]string, size)
	buf := make([]rune, size)
	for r := 0; r < size; r++ {
		j := size - 1 - r
		for i := 0; i < size; i++ {
			buf[i] = layoutChar(m[i][j])
		}
		rows[r] = string(buf)
	}
	return rows
}

func layoutChar(t TileType) rune {
	switch t {
	case TileGround:
		return LayoutGround
	case TileWater:
		return LayoutWater
	case TileBase:
		return LayoutBase
	case TileMine:
		return LayoutMine
	case TileMineral:
		return LayoutMineral
	default:
		return LayoutEmpty
	}
}
