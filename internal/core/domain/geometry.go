package domain

// Rect is an integer rectangle anchored at its top-left corner.
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Width  int32 `json:"width"`
	Height int32 `json:"height"`
}

// IsEmpty reports whether the rectangle covers no pixels.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge.
func (r Rect) Right() int32 { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int32 { return r.Top + r.Height }

// Intersect returns the overlap of r and o, or the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	if r.IsEmpty() || o.IsEmpty() {
		return Rect{}
	}
	left := max(r.Left, o.Left)
	top := max(r.Top, o.Top)
	right := min(r.Right(), o.Right())
	bottom := min(r.Bottom(), o.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Join returns the bounding box of r and o. Empty operands are ignored.
func (r Rect) Join(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	left := min(r.Left, o.Left)
	top := min(r.Top, o.Top)
	right := max(r.Right(), o.Right())
	bottom := max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Region is a union of rectangles. Overlap between members is allowed.
type Region []Rect

// IsEmpty reports whether no member covers a pixel.
func (g Region) IsEmpty() bool {
	for _, r := range g {
		if !r.IsEmpty() {
			return false
		}
	}
	return true
}

// IntersectRect clips every member to r and drops the empty results.
func (g Region) IntersectRect(r Rect) Region {
	var out Region
	for _, m := range g {
		if c := m.Intersect(r); !c.IsEmpty() {
			out = append(out, c)
		}
	}
	return out
}

// Or returns the union of g and o.
func (g Region) Or(o Region) Region {
	out := make(Region, 0, len(g)+len(o))
	for _, r := range g {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	for _, r := range o {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// Bounds returns the bounding box of all members.
func (g Region) Bounds() Rect {
	var b Rect
	for _, r := range g {
		b = b.Join(r)
	}
	return b
}
