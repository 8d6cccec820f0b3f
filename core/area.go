package core

import "strconv"

// Position is a zero-based column/row coordinate
type Position struct {
	X, Y int
}

// String formats as "(x,y)"
func (p Position) String() string {
	return "(" + strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y) + ")"
}

// Add returns p translated by o
func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

// Size is a grid dimension in terminal columns and rows
type Size struct {
	Width, Height int
}

// String formats as "WxH"
func (s Size) String() string {
	return strconv.Itoa(s.Width) + "x" + strconv.Itoa(s.Height)
}

// Area returns the number of cells covered
func (s Size) Area() int {
	if s.Width <= 0 || s.Height <= 0 {
		return 0
	}
	return s.Width * s.Height
}

// Contains reports whether p lies inside a grid of this size
func (s Size) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// Area represents a rectangular target region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// Origin returns the top-left corner
func (a Area) Origin() Position {
	return Position{X: a.X, Y: a.Y}
}

// Size returns the area dimensions
func (a Area) Size() Size {
	return Size{Width: a.Width, Height: a.Height}
}

// Intersect clips a to b, empty result has zero width and height
func (a Area) Intersect(b Area) Area {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.Width, b.X+b.Width), min(a.Y+a.Height, b.Y+b.Height)
	if x1 <= x0 || y1 <= y0 {
		return Area{X: x0, Y: y0}
	}
	return Area{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
