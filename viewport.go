package bramble

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Transform is the camera mapping between document space and surface space:
// surface = document*Scale + (X, Y). Scale is uniform and always clamped to
// the viewport's configured range; X and Y are unconstrained.
type Transform struct {
	X, Y  float64
	Scale float64
}

// TransformPatch is a partial transform update; nil fields keep their
// current values.
type TransformPatch struct {
	X     *float64
	Y     *float64
	Scale *float64
}

// ViewportConfig configures a Viewport at construction. Zero fields fall
// back to the defaults below.
type ViewportConfig struct {
	MinScale          float64 // default 0.1
	MaxScale          float64 // default 5
	ZoomSpeed         float64 // default 0.1
	InitialScale      float64 // default 1 (clamped into [MinScale, MaxScale])
	InitialX          float64
	InitialY          float64
	AnimationDuration float32 // seconds, default 0.3
}

const (
	defaultMinScale     = 0.1
	defaultMaxScale     = 5.0
	defaultZoomSpeed    = 0.1
	defaultAnimDuration = 0.3
)

// transformAnim holds the tweens of an in-flight animated transition.
type transformAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenS *gween.Tween
}

// Viewport maintains a continuous, invertible mapping between document
// coordinates and surface coordinates, with clamped anchored zoom,
// drag-to-pan, bounds fitting, and tween-driven animated transitions.
// Advance animations by calling Update each frame.
type Viewport struct {
	surfaceW, surfaceH float64

	transform Transform

	minScale  float64
	maxScale  float64
	zoomSpeed float64
	animDur   float32

	bus *EventBus

	dragging   bool
	dragStart  Point
	dragOrigin Point

	anim *transformAnim
}

// NewViewport creates a viewport over a surface of the given size. A nil bus
// disables change notifications.
func NewViewport(surfaceW, surfaceH float64, cfg ViewportConfig, bus *EventBus) *Viewport {
	if cfg.MinScale <= 0 {
		cfg.MinScale = defaultMinScale
	}
	if cfg.MaxScale <= 0 {
		cfg.MaxScale = defaultMaxScale
	}
	if cfg.ZoomSpeed <= 0 {
		cfg.ZoomSpeed = defaultZoomSpeed
	}
	if cfg.InitialScale <= 0 {
		cfg.InitialScale = 1
	}
	if cfg.AnimationDuration <= 0 {
		cfg.AnimationDuration = defaultAnimDuration
	}
	v := &Viewport{
		surfaceW:  surfaceW,
		surfaceH:  surfaceH,
		minScale:  cfg.MinScale,
		maxScale:  cfg.MaxScale,
		zoomSpeed: cfg.ZoomSpeed,
		animDur:   cfg.AnimationDuration,
		bus:       bus,
	}
	v.transform = Transform{
		X:     cfg.InitialX,
		Y:     cfg.InitialY,
		Scale: v.clampScale(cfg.InitialScale),
	}
	return v
}

// Transform returns the current transform.
func (v *Viewport) Transform() Transform {
	return v.transform
}

// SurfaceSize returns the surface dimensions.
func (v *Viewport) SurfaceSize() (w, h float64) {
	return v.surfaceW, v.surfaceH
}

// Resize updates the surface dimensions.
func (v *Viewport) Resize(w, h float64) {
	v.surfaceW = w
	v.surfaceH = h
}

// SetTransform merges the provided fields into the transform, clamping
// scale. When animate is true the change is interpolated over the configured
// duration with an ease-in-out cubic curve; otherwise it is applied
// immediately and scale-changed plus pan-changed notifications are
// published. Either way, any in-flight animated transition is canceled and
// the new change starts from the current (possibly mid-animation) transform.
func (v *Viewport) SetTransform(patch TransformPatch, animate bool) {
	target := v.transform
	if patch.X != nil {
		target.X = *patch.X
	}
	if patch.Y != nil {
		target.Y = *patch.Y
	}
	if patch.Scale != nil {
		target.Scale = v.clampScale(*patch.Scale)
	}

	if animate {
		v.anim = &transformAnim{
			tweenX: gween.New(float32(v.transform.X), float32(target.X), v.animDur, ease.InOutCubic),
			tweenY: gween.New(float32(v.transform.Y), float32(target.Y), v.animDur, ease.InOutCubic),
			tweenS: gween.New(float32(v.transform.Scale), float32(target.Scale), v.animDur, ease.InOutCubic),
		}
		return
	}

	v.anim = nil
	v.apply(target)
}

// apply writes the transform and publishes both change notifications.
func (v *Viewport) apply(t Transform) {
	v.transform = t
	v.bus.emitIfSet(EventZoomChanged, v.transform.Scale)
	v.bus.emitIfSet(EventPanChanged, Point{X: v.transform.X, Y: v.transform.Y})
}

// Update advances an in-flight animated transition by dt seconds. Each step
// applies the intermediate transform with the same notifications as an
// immediate change. No-op when no transition is active.
func (v *Viewport) Update(dt float32) {
	if v.anim == nil {
		return
	}
	x, doneX := v.anim.tweenX.Update(dt)
	y, doneY := v.anim.tweenY.Update(dt)
	s, doneS := v.anim.tweenS.Update(dt)
	if doneX && doneY && doneS {
		v.anim = nil
	}
	v.apply(Transform{X: float64(x), Y: float64(y), Scale: float64(s)})
}

// Animating reports whether an animated transition is in flight.
func (v *Viewport) Animating() bool {
	return v.anim != nil
}

// Zoom multiplies the scale by (1 + delta*ZoomSpeed), clamped. If the scale
// is already pinned at a clamp bound the call is a no-op and publishes
// nothing. When anchor (a surface-space point) is given, the translation is
// adjusted so the document point under the anchor stays under it.
func (v *Viewport) Zoom(delta float64, anchor *Point) {
	oldScale := v.transform.Scale
	newScale := v.clampScale(oldScale * (1 + delta*v.zoomSpeed))
	if newScale == oldScale {
		return
	}

	t := v.transform
	t.Scale = newScale
	if anchor != nil {
		// Keep the document point under the anchor fixed:
		// world = (anchor - translation) / oldScale
		// translation' = anchor - world*newScale
		wx := (anchor.X - t.X) / oldScale
		wy := (anchor.Y - t.Y) / oldScale
		t.X = anchor.X - wx*newScale
		t.Y = anchor.Y - wy*newScale
	}
	v.anim = nil
	v.apply(t)
}

// ZoomIn zooms in one step, optionally anchored.
func (v *Viewport) ZoomIn(anchor *Point) { v.Zoom(1, anchor) }

// ZoomOut zooms out one step, optionally anchored.
func (v *Viewport) ZoomOut(anchor *Point) { v.Zoom(-1, anchor) }

// Pan translates the view by (dx, dy) surface units, immediately.
func (v *Viewport) Pan(dx, dy float64) {
	v.anim = nil
	v.transform.X += dx
	v.transform.Y += dy
	v.bus.emitIfSet(EventPanChanged, Point{X: v.transform.X, Y: v.transform.Y})
}

// CenterTo places the given document point at the surface center, keeping
// the current scale.
func (v *Viewport) CenterTo(p Point, animate bool) {
	x := v.surfaceW/2 - p.X*v.transform.Scale
	y := v.surfaceH/2 - p.Y*v.transform.Scale
	v.SetTransform(TransformPatch{X: &x, Y: &y}, animate)
}

// FitBounds chooses the largest clamped scale at which bounds inflated by
// padding fits the surface, then centers on the bounds' center.
func (v *Viewport) FitBounds(bounds Rect, padding float64, animate bool) {
	availW := v.surfaceW - 2*padding
	availH := v.surfaceH - 2*padding
	if bounds.Width <= 0 || bounds.Height <= 0 || availW <= 0 || availH <= 0 {
		return
	}
	scale := v.clampScale(math.Min(availW/bounds.Width, availH/bounds.Height))

	center := bounds.Center()
	x := v.surfaceW/2 - center.X*scale
	y := v.surfaceH/2 - center.Y*scale
	v.SetTransform(TransformPatch{X: &x, Y: &y, Scale: &scale}, animate)
}

// WorldToScreen maps a document-space point to surface space.
func (v *Viewport) WorldToScreen(p Point) Point {
	return Point{
		X: p.X*v.transform.Scale + v.transform.X,
		Y: p.Y*v.transform.Scale + v.transform.Y,
	}
}

// ScreenToWorld maps a surface-space point to document space. Exact inverse
// of WorldToScreen for a fixed transform.
func (v *Viewport) ScreenToWorld(p Point) Point {
	return Point{
		X: (p.X - v.transform.X) / v.transform.Scale,
		Y: (p.Y - v.transform.Y) / v.transform.Scale,
	}
}

// VisibleBounds inverse-maps the surface rectangle's corners into document
// space. Recomputed on demand, not maintained incrementally.
func (v *Viewport) VisibleBounds() Rect {
	p0 := v.ScreenToWorld(Point{X: 0, Y: 0})
	p1 := v.ScreenToWorld(Point{X: v.surfaceW, Y: 0})
	p2 := v.ScreenToWorld(Point{X: v.surfaceW, Y: v.surfaceH})
	p3 := v.ScreenToWorld(Point{X: 0, Y: v.surfaceH})

	minX := math.Min(math.Min(p0.X, p1.X), math.Min(p2.X, p3.X))
	minY := math.Min(math.Min(p0.Y, p1.Y), math.Min(p2.Y, p3.Y))
	maxX := math.Max(math.Max(p0.X, p1.X), math.Max(p2.X, p3.X))
	maxY := math.Max(math.Max(p0.Y, p1.Y), math.Max(p2.Y, p3.Y))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Drag session ---

// StartDrag begins a pan drag, capturing the anchor surface point and the
// translation at drag start.
func (v *Viewport) StartDrag(p Point) {
	v.dragging = true
	v.dragStart = p
	v.dragOrigin = Point{X: v.transform.X, Y: v.transform.Y}
}

// Drag recomputes the translation as dragOrigin + (p - dragStart). The
// position is a pure function of drag-start state, so pointer jitter cannot
// accumulate. No-op when no drag session is active.
func (v *Viewport) Drag(p Point) {
	if !v.dragging {
		return
	}
	v.transform.X = v.dragOrigin.X + (p.X - v.dragStart.X)
	v.transform.Y = v.dragOrigin.Y + (p.Y - v.dragStart.Y)
	v.bus.emitIfSet(EventPanChanged, Point{X: v.transform.X, Y: v.transform.Y})
}

// EndDrag ends the drag session.
func (v *Viewport) EndDrag() {
	v.dragging = false
}

// Dragging reports whether a drag session is active.
func (v *Viewport) Dragging() bool {
	return v.dragging
}

// Destroy cancels any pending animation and ends any drag session. No steps
// from a canceled transition are ever delivered.
func (v *Viewport) Destroy() {
	v.anim = nil
	v.dragging = false
}

func (v *Viewport) clampScale(s float64) float64 {
	return math.Max(v.minScale, math.Min(s, v.maxScale))
}
