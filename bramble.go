package bramble

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is pure white at full opacity.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is pure black at full opacity.
var ColorBlack = Color{0, 0, 0, 1}

// Point is a 2D point in either document or surface space, used for
// positions, anchors, and offsets throughout the API.
type Point struct {
	X, Y float64
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point) DistanceTo(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle in radians from p to other, measured from the
// positive X axis with Y increasing downward.
func (p Point) AngleTo(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle covering both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Expand returns r grown by padding on every side. Negative padding shrinks;
// a rectangle never shrinks past zero size.
func (r Rect) Expand(padding float64) Rect {
	w := r.Width + 2*padding
	h := r.Height + 2*padding
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: r.X - padding, Y: r.Y - padding, Width: w, Height: h}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Shape selects the outline drawn for a node's box.
type Shape uint8

const (
	ShapeRoundedRect Shape = iota // rounded-corner rectangle (default)
	ShapeRect                     // sharp-corner rectangle
	ShapeEllipse                  // ellipse inscribed in the node rect
	ShapeCapsule                  // rectangle with fully rounded short sides
	ShapeUnderline                // no fill, text sits on a baseline stroke
)

// Event names published on the EventBus. The viewport publishes zoom and pan
// changes itself; node and history events are published by commands and the
// history when they are given a bus. Selection changes are host-driven, so
// EventSelectionChanged is emitted by the embedding application.
const (
	EventZoomChanged      = "zoom-changed"      // payload: float64 (new scale)
	EventPanChanged       = "pan-changed"       // payload: Point (new translation)
	EventHistoryChanged   = "history-changed"   // payload: HistoryChange
	EventNodeAdded        = "node-added"        // payload: *Node
	EventNodeRemoved      = "node-removed"      // payload: *Node
	EventNodeUpdated      = "node-updated"      // payload: *Node
	EventSelectionChanged = "selection-changed" // payload: *Node
)
