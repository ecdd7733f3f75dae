package tilemosaic

import (
	"fmt"
	"image"
	"log"

	"github.com/wbrown/tilemosaic/imageutil"
)

// State is one mosaic run: the tile catalog, the preprocessed reference
// grid and the optimizer working on them.
type State struct {
	Catalog *Catalog
	Grid    *Grid

	opt        *Optimizer
	observer   Observer
	logger     *log.Logger
	iterations int
}

type options struct {
	tileSize   int
	rng        Source
	logger     *log.Logger
	observer   Observer
	extensions []string
	workers    int
}

// Option configures Initialize and New.
type Option func(*options)

// WithTileSize resamples every tile to size x size while loading instead
// of taking the first tile's size. It only affects Initialize.
func WithTileSize(size int) Option {
	return func(o *options) {
		o.tileSize = size
	}
}

// WithRand sets the random source for the initial shuffle and all moves.
func WithRand(src Source) Option {
	return func(o *options) {
		o.rng = src
	}
}

// WithSeed is WithRand(NewRand(seed)).
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = NewRand(seed)
	}
}

// WithLogger sets the logger for load and preprocessing messages.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver registers an observer called after every iteration.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithExtensions sets the recognized tile file extensions.
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithLoadWorkers bounds concurrent tile decoding.
func WithLoadWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.rng == nil {
		o.rng = NewRand(0)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return o
}

// Initialize loads the tiles in tilesDir and the reference image at
// referencePath, builds the target grid and draws the initial assignment.
func Initialize(referencePath, tilesDir string, opts ...Option) (*State, error) {
	o := newOptions(opts)

	catalog, err := LoadCatalog(tilesDir, LoadOptions{
		TileSize:   o.tileSize,
		Extensions: o.extensions,
		Workers:    o.workers,
		Logger:     o.logger,
	})
	if err != nil {
		return nil, err
	}

	ref, err := imageutil.LoadImage(referencePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReferenceUnreadable, err)
	}
	return newState(catalog, ref, o)
}

// New is Initialize for a catalog and reference already in memory.
func New(catalog *Catalog, reference image.Image, opts ...Option) (*State, error) {
	return newState(catalog, reference, newOptions(opts))
}

func newState(catalog *Catalog, ref image.Image, o *options) (*State, error) {
	grid, err := BuildGrid(ref, catalog.TileSize(), catalog.Len(), o.logger)
	if err != nil {
		return nil, err
	}
	opt, err := NewOptimizer(catalog, grid, o.rng)
	if err != nil {
		return nil, err
	}
	return &State{
		Catalog:  catalog,
		Grid:     grid,
		opt:      opt,
		observer: o.observer,
		logger:   o.logger,
	}, nil
}

// RunIterations runs exactly n iterations and returns the score after
// each one. The observer, if any, is called after every iteration; an
// observer error stops the run and is returned with the scores so far.
func (s *State) RunIterations(n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, n)
	}
	scores := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		sweep := s.opt.Iterate()
		s.iterations++
		scores = append(scores, sweep.Score)
		if s.observer == nil {
			continue
		}
		err := s.observer.Observe(Progress{
			Iteration: i,
			Of:        n,
			Total:     s.iterations,
			Sweep:     sweep,
			State:     s,
		})
		if err != nil {
			return scores, fmt.Errorf("run stopped after iteration %d: %w", i, err)
		}
	}
	return scores, nil
}

// Render composes the mosaic for the current assignment.
func (s *State) Render() *Buffer {
	return Render(s.Catalog, s.opt.assignment, s.Grid.Rows, s.Grid.Cols)
}

// Save renders the mosaic and writes it to path, encoded by extension.
func (s *State) Save(path string, jpegQuality int) error {
	if err := imageutil.SaveImageQuality(s.Render().Image(), path, jpegQuality); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWriteFailed, err)
	}
	return nil
}

// Score returns the current objective score.
func (s *State) Score() float64 { return s.opt.Score() }

// Assignment returns a copy of the tile id on each cell.
func (s *State) Assignment() []int { return s.opt.Assignment() }

// Available returns a copy of the unused tile ids.
func (s *State) Available() []int { return s.opt.Available() }

// Iterations returns the number of iterations run so far.
func (s *State) Iterations() int { return s.iterations }
