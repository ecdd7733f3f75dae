package tilemosaic

import "errors"

var (
	// ErrNoTilesFound is returned when the tile directory yields no
	// decodable tiles.
	ErrNoTilesFound = errors.New("tilemosaic: no tiles found")

	// ErrReferenceUnreadable is returned when the reference image cannot
	// be opened or decoded.
	ErrReferenceUnreadable = errors.New("tilemosaic: reference image unreadable")

	// ErrReferenceTooSmall is returned when the preprocessed reference
	// holds no whole cell of the tile size.
	ErrReferenceTooSmall = errors.New("tilemosaic: reference too small for tile size")

	// ErrOutputWriteFailed is returned when the mosaic cannot be written.
	ErrOutputWriteFailed = errors.New("tilemosaic: output write failed")

	// ErrInsufficientTiles is returned when the catalog has fewer tiles
	// than the grid has cells.
	ErrInsufficientTiles = errors.New("tilemosaic: fewer tiles than cells")

	// ErrInvalidIterations is returned for a negative iteration count.
	ErrInvalidIterations = errors.New("tilemosaic: invalid iteration count")

	// ErrObserverClosed is returned by StepGate when its input ends.
	ErrObserverClosed = errors.New("tilemosaic: observer input closed")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("tilemosaic: invalid config")
)
