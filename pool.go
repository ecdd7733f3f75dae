package tilemosaic

// Pool is the set of tile ids not currently placed in the assignment.
// Ids live in a dense slice so a uniform draw is a single Intn, and a
// position index makes removal O(1) by swapping with the last element.
type Pool struct {
	ids []int
	pos []int // pos[id] is the index of id in ids, or -1
}

// NewPool returns an empty pool able to hold ids in [0, capacity).
func NewPool(capacity int) *Pool {
	p := &Pool{
		ids: make([]int, 0, capacity),
		pos: make([]int, capacity),
	}
	for i := range p.pos {
		p.pos[i] = -1
	}
	return p
}

// Len returns the number of ids in the pool.
func (p *Pool) Len() int { return len(p.ids) }

// At returns the id stored at position k.
func (p *Pool) At(k int) int { return p.ids[k] }

// Contains reports whether id is in the pool.
func (p *Pool) Contains(id int) bool {
	return id >= 0 && id < len(p.pos) && p.pos[id] >= 0
}

// Add inserts id. Adding an id already present is a no-op.
func (p *Pool) Add(id int) {
	if p.Contains(id) {
		return
	}
	p.pos[id] = len(p.ids)
	p.ids = append(p.ids, id)
}

// RemoveAt removes and returns the id at position k. The last id takes
// its place.
func (p *Pool) RemoveAt(k int) int {
	id := p.ids[k]
	last := len(p.ids) - 1
	moved := p.ids[last]
	p.ids[k] = moved
	p.pos[moved] = k
	p.ids = p.ids[:last]
	p.pos[id] = -1
	return id
}

// Exchange takes the id at position k out of the pool and puts id in its
// place, returning the id taken. id must not already be in the pool.
func (p *Pool) Exchange(k, id int) int {
	taken := p.ids[k]
	p.pos[taken] = -1
	p.ids[k] = id
	p.pos[id] = k
	return taken
}

// IDs returns a copy of the pool contents in storage order.
func (p *Pool) IDs() []int {
	out := make([]int, len(p.ids))
	copy(out, p.ids)
	return out
}
