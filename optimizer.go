package tilemosaic

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Optimizer owns the cell to tile assignment and the pool of unused tiles
// and improves the assignment by randomized local search. Each iteration
// runs one Replace sweep followed by one Swap sweep over every cell.
//
// The assignment never holds a tile id twice, and every catalog id is in
// exactly one of the assignment or the pool.
type Optimizer struct {
	catalog    *Catalog
	grid       *Grid
	rng        Source
	assignment []int
	pool       *Pool
	snapshot   []float64
}

// Sweep reports what one iteration changed.
type Sweep struct {
	Replaced int // accepted Replace moves
	Swapped  int // accepted Swap moves
	Score    float64
}

// NewOptimizer shuffles the catalog ids with rng, places the first
// grid.Size() of them on the grid and pools the rest.
func NewOptimizer(catalog *Catalog, grid *Grid, rng Source) (*Optimizer, error) {
	size, n := grid.Size(), catalog.Len()
	if size > n {
		return nil, fmt.Errorf("%w: %d cells, %d tiles", ErrInsufficientTiles, size, n)
	}
	if catalog.TileSize() != grid.TileSize {
		return nil, fmt.Errorf("tilemosaic: catalog tile size %d does not match grid tile size %d",
			catalog.TileSize(), grid.TileSize)
	}

	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	rng.Shuffle(n, func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	o := &Optimizer{
		catalog:    catalog,
		grid:       grid,
		rng:        rng,
		assignment: ids[:size:size],
		pool:       NewPool(n),
		snapshot:   make([]float64, size),
	}
	for _, id := range ids[size:] {
		o.pool.Add(id)
	}
	return o, nil
}

// Iterate runs one Replace sweep and one Swap sweep and returns the
// resulting score.
func (o *Optimizer) Iterate() Sweep {
	replaced := o.replaceSweep()
	swapped := o.swapSweep()
	return Sweep{Replaced: replaced, Swapped: swapped, Score: o.Score()}
}

// cellError is the live squared distance between cell k's tile and its
// target.
func (o *Optimizer) cellError(k int) float64 {
	return o.catalog.Tile(o.assignment[k]).Mean.SquaredDistance(o.grid.Targets[k])
}

// replaceSweep offers every cell one tile drawn uniformly from the pool
// and takes it if it beats the cell's error as of the start of the
// sweep. The displaced tile goes back to the pool and may be drawn again
// later in the same sweep.
func (o *Optimizer) replaceSweep() int {
	if o.pool.Len() == 0 {
		return 0
	}
	for k := range o.snapshot {
		o.snapshot[k] = o.cellError(k)
	}

	accepted := 0
	for i := range o.assignment {
		k := o.rng.Intn(o.pool.Len())
		candidate := o.pool.At(k)
		if o.catalog.Tile(candidate).Mean.SquaredDistance(o.grid.Targets[i]) < o.snapshot[i] {
			o.assignment[i] = o.pool.Exchange(k, o.assignment[i])
			accepted++
		}
	}
	return accepted
}

// swapSweep pairs every cell i with a uniformly drawn other cell j and
// exchanges their tiles if that lowers the pair's summed error. It
// compares live errors, so earlier swaps in the sweep affect later ones.
func (o *Optimizer) swapSweep() int {
	size := len(o.assignment)
	if size <= 1 {
		return 0
	}

	accepted := 0
	for i := 0; i < size; i++ {
		j := o.rng.Intn(size - 1)
		if j >= i {
			j++
		}
		ti, tj := o.catalog.Tile(o.assignment[i]), o.catalog.Tile(o.assignment[j])
		current := ti.Mean.SquaredDistance(o.grid.Targets[i]) + tj.Mean.SquaredDistance(o.grid.Targets[j])
		swapped := tj.Mean.SquaredDistance(o.grid.Targets[i]) + ti.Mean.SquaredDistance(o.grid.Targets[j])
		if swapped < current {
			o.assignment[i], o.assignment[j] = o.assignment[j], o.assignment[i]
			accepted++
		}
	}
	return accepted
}

// CellErrors returns the live squared error of every cell.
func (o *Optimizer) CellErrors() []float64 {
	errs := make([]float64, len(o.assignment))
	for k := range errs {
		errs[k] = o.cellError(k)
	}
	return errs
}

// Score is the mean squared color distance between assigned tiles and
// targets. Lower is better.
func (o *Optimizer) Score() float64 {
	return stat.Mean(o.CellErrors(), nil)
}

// Assignment returns a copy of the tile id placed on each cell.
func (o *Optimizer) Assignment() []int {
	out := make([]int, len(o.assignment))
	copy(out, o.assignment)
	return out
}

// Available returns a copy of the pooled tile ids.
func (o *Optimizer) Available() []int {
	return o.pool.IDs()
}
