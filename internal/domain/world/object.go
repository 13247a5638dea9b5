package world

import "errors"

type StructureKind string

const (
	StructureBase StructureKind = "base"
)

type StructureID int

type Structure struct {
	ID   StructureID
	Kind StructureKind
	Tile TileID
	Pos  Point
}

var ErrInvalidStructure = errors.New("invalid structure")

func (s Structure) Validate() error {
	if s.ID <= 0 || s.Kind == "" || s.Tile < 0 {
		return ErrInvalidStructure
	}
	return nil
}
