package ports

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrTileBlocked = errors.New("tile blocked")
	ErrNotBuilt    = errors.New("world not built")
)
