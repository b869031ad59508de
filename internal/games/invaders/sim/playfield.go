package sim

import "github.com/vovakirdan/tui-invaders/internal/core"

// bucketSize is the edge of one occupancy cell in playfield units.
const bucketSize = 50

// Playfield indexes live entities by position. Each entity is registered in
// every bucket its rectangle touches, so a point query only scans one bucket.
type Playfield struct {
	width, height int
	cols, rows    int
	buckets       [][]*Entity
	nextZ         int
	count         int
}

// NewPlayfield creates an empty index for a width x height field.
func NewPlayfield(width, height int) *Playfield {
	cols := (width + bucketSize) / bucketSize
	rows := (height + bucketSize) / bucketSize
	return &Playfield{
		width:   width,
		height:  height,
		cols:    cols,
		rows:    rows,
		buckets: make([][]*Entity, cols*rows),
	}
}

func (p *Playfield) Width() int { return p.width }
func (p *Playfield) Height() int { return p.height }

// Len returns the number of indexed entities.
func (p *Playfield) Len() int {
	return p.count
}

// Add places e on top of everything already present.
func (p *Playfield) Add(e *Entity) {
	if e.placed {
		return
	}
	p.nextZ++
	e.z = p.nextZ
	p.insert(e)
}

// Remove takes e off the field. Removing an absent entity is a no-op.
func (p *Playfield) Remove(e *Entity) {
	if !e.placed {
		return
	}
	p.eachBucket(e.Rect, func(i int) {
		b := p.buckets[i]
		for j, o := range b {
			if o == e {
				last := len(b) - 1
				b[j] = b[last]
				b[last] = nil
				p.buckets[i] = b[:last]
				break
			}
		}
	})
	e.placed = false
	p.count--
}

// Move translates e by (dx, dy), keeping its stacking order.
func (p *Playfield) Move(e *Entity, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	if !e.placed {
		e.Rect = e.Rect.Translate(dx, dy)
		return
	}
	p.Remove(e)
	e.Rect = e.Rect.Translate(dx, dy)
	p.insert(e)
}

// ElementAt returns the topmost live entity covering (x, y), if any.
func (p *Playfield) ElementAt(x, y int) (*Entity, bool) {
	i, ok := p.bucketIndex(x, y)
	if !ok {
		return nil, false
	}
	var top *Entity
	for _, e := range p.buckets[i] {
		if !e.Alive() || !e.Rect.Contains(x, y) {
			continue
		}
		if top == nil || e.z > top.z {
			top = e
		}
	}
	return top, top != nil
}

func (p *Playfield) insert(e *Entity) {
	p.eachBucket(e.Rect, func(i int) {
		p.buckets[i] = append(p.buckets[i], e)
	})
	e.placed = true
	p.count++
}

func (p *Playfield) bucketIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x > p.width || y > p.height {
		return 0, false
	}
	return (y/bucketSize)*p.cols + x/bucketSize, true
}

// eachBucket visits every bucket touched by r, clipped to the field.
func (p *Playfield) eachBucket(r core.Rect, fn func(int)) {
	x0 := core.Clamp(r.X, 0, p.width) / bucketSize
	x1 := core.Clamp(r.Right(), 0, p.width) / bucketSize
	y0 := core.Clamp(r.Y, 0, p.height) / bucketSize
	y1 := core.Clamp(r.Bottom(), 0, p.height) / bucketSize
	for by := y0; by <= y1; by++ {
		for bx := x0; bx <= x1; bx++ {
			fn(by*p.cols + bx)
		}
	}
}
