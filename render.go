package bramble

import (
	"errors"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// whitePixel is a 1x1 white image used as the texture for filled vector paths.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// RendererConfig configures a Renderer.
type RendererConfig struct {
	// Face is the text face used for node labels. Required.
	Face text.Face
	// FaceSize is the point size Face was loaded at; node font sizes scale
	// relative to it. Default 14.
	FaceSize float64
	// Background fills the surface before nodes are drawn.
	Background Color
	// SelectionColor outlines selected nodes.
	SelectionColor Color
	// ConnectorColor strokes the parent-child connectors.
	ConnectorColor Color
	// ConnectorWidth is the connector stroke width in document units.
	ConnectorWidth float64
	// CornerRadius is the rounded-rect corner radius in document units.
	CornerRadius float64
	// Antialias enables antialiased path rasterization.
	Antialias bool
}

// Renderer paints a node tree through a viewport onto an Ebitengine image.
// It reads the tree and viewport and owns no document state.
type Renderer struct {
	cfg RendererConfig
}

// ErrNoFace is returned when a Renderer is constructed without a text face.
var ErrNoFace = errors.New("bramble: renderer requires a text face")

// NewRenderer creates a renderer. A missing text face is a construction-time
// fault: there is no later point at which the renderer could recover one.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	if cfg.Face == nil {
		return nil, ErrNoFace
	}
	if cfg.FaceSize <= 0 {
		cfg.FaceSize = 14
	}
	if cfg.SelectionColor == (Color{}) {
		cfg.SelectionColor = Color{R: 1, G: 0.6, B: 0.1, A: 1}
	}
	if cfg.ConnectorColor == (Color{}) {
		cfg.ConnectorColor = Color{R: 0.6, G: 0.65, B: 0.72, A: 1}
	}
	if cfg.ConnectorWidth <= 0 {
		cfg.ConnectorWidth = 2
	}
	if cfg.CornerRadius <= 0 {
		cfg.CornerRadius = 6
	}
	return &Renderer{cfg: cfg}, nil
}

// Draw paints root's visible subtree onto target using vp's current
// transform. Collapsed subtrees and hidden nodes are skipped, and nodes
// outside the visible bounds are culled. Connectors draw beneath boxes.
func (r *Renderer) Draw(target *ebiten.Image, root *Node, vp *Viewport) error {
	if target == nil {
		return errors.New("bramble: nil render target")
	}
	if root == nil || vp == nil {
		return errors.New("bramble: nil tree or viewport")
	}

	if r.cfg.Background.A > 0 {
		target.Fill(toRGBA(r.cfg.Background, 1))
	}

	visible := vp.VisibleBounds()

	// Connector pass.
	eachVisible(root, func(n *Node) {
		for _, child := range n.VisibleChildren() {
			if n.Rect().Union(child.Rect()).Intersects(visible) {
				r.drawConnector(target, vp, n, child)
			}
		}
	})

	// Box pass.
	eachVisible(root, func(n *Node) {
		if !n.Rect().Intersects(visible) {
			return
		}
		r.drawNode(target, vp, n)
	})

	return nil
}

// eachVisible walks the tree respecting Expanded and Hidden.
func eachVisible(n *Node, fn func(*Node)) {
	if n.Hidden {
		return
	}
	fn(n)
	for _, child := range n.VisibleChildren() {
		eachVisible(child, fn)
	}
}

// drawConnector strokes a cubic curve between the two node centers, bowing
// horizontally so sibling connectors fan out.
func (r *Renderer) drawConnector(target *ebiten.Image, vp *Viewport, parent, child *Node) {
	from := vp.WorldToScreen(parent.Center())
	to := vp.WorldToScreen(child.Center())
	scale := vp.Transform().Scale

	midX := (from.X + to.X) / 2

	var path vector.Path
	path.MoveTo(float32(from.X), float32(from.Y))
	path.CubicTo(
		float32(midX), float32(from.Y),
		float32(midX), float32(to.Y),
		float32(to.X), float32(to.Y),
	)

	width := float32(r.cfg.ConnectorWidth * scale)
	if width < 1 {
		width = 1
	}
	r.strokePath(target, &path, width, r.cfg.ConnectorColor, parent.Style().Opacity)
}

// drawNode fills the node's shape, strokes its border, draws its label, and
// outlines it when selected.
func (r *Renderer) drawNode(target *ebiten.Image, vp *Viewport, n *Node) {
	style := n.Style()
	scale := vp.Transform().Scale
	topLeft := vp.WorldToScreen(Point{X: n.X(), Y: n.Y()})
	w := n.Width() * scale
	h := n.Height() * scale
	if w <= 0 || h <= 0 {
		return
	}
	screen := Rect{X: topLeft.X, Y: topLeft.Y, Width: w, Height: h}

	shape := r.shapePath(style.Shape, screen, scale)

	if style.Shape != ShapeUnderline {
		r.fillPath(target, shape, style.FillColor, style.Opacity)
	}
	if style.BorderWidth > 0 {
		bw := float32(style.BorderWidth * scale)
		if bw < 1 {
			bw = 1
		}
		r.strokePath(target, shape, bw, style.BorderColor, style.Opacity)
	}
	if n.Selected {
		sel := r.shapePath(style.Shape, screen.Expand(3*scale), scale)
		r.strokePath(target, sel, float32(2*scale), r.cfg.SelectionColor, 1)
	}

	r.drawLabel(target, n, style, screen, scale)
}

// shapePath builds the outline path for a node shape over a screen rect.
func (r *Renderer) shapePath(shape Shape, rect Rect, scale float64) *vector.Path {
	x := float32(rect.X)
	y := float32(rect.Y)
	w := float32(rect.Width)
	h := float32(rect.Height)

	var path vector.Path
	switch shape {
	case ShapeRect:
		path.MoveTo(x, y)
		path.LineTo(x+w, y)
		path.LineTo(x+w, y+h)
		path.LineTo(x, y+h)
		path.Close()
	case ShapeEllipse:
		cx := x + w/2
		cy := y + h/2
		// Cubic approximation of an ellipse, one curve per quadrant.
		const k = 0.5523
		path.MoveTo(cx, y)
		path.CubicTo(cx+k*w/2, y, x+w, cy-k*h/2, x+w, cy)
		path.CubicTo(x+w, cy+k*h/2, cx+k*w/2, y+h, cx, y+h)
		path.CubicTo(cx-k*w/2, y+h, x, cy+k*h/2, x, cy)
		path.CubicTo(x, cy-k*h/2, cx-k*w/2, y, cx, y)
		path.Close()
	case ShapeCapsule:
		roundedRectPath(&path, x, y, w, h, h/2)
	case ShapeUnderline:
		path.MoveTo(x, y+h)
		path.LineTo(x+w, y+h)
	default: // ShapeRoundedRect
		radius := float32(math.Min(r.cfg.CornerRadius*scale, float64(minF32(w, h))/2))
		roundedRectPath(&path, x, y, w, h, radius)
	}
	return &path
}

// roundedRectPath appends a rounded rectangle outline to path.
func roundedRectPath(path *vector.Path, x, y, w, h, radius float32) {
	if radius > w/2 {
		radius = w / 2
	}
	if radius > h/2 {
		radius = h / 2
	}
	path.MoveTo(x+radius, y)
	path.LineTo(x+w-radius, y)
	path.ArcTo(x+w, y, x+w, y+radius, radius)
	path.LineTo(x+w, y+h-radius)
	path.ArcTo(x+w, y+h, x+w-radius, y+h, radius)
	path.LineTo(x+radius, y+h)
	path.ArcTo(x, y+h, x, y+h-radius, radius)
	path.LineTo(x, y+radius)
	path.ArcTo(x, y, x+radius, y, radius)
	path.Close()
}

// drawLabel renders the node text centered in the screen rect, scaled by the
// viewport and the node's font size.
func (r *Renderer) drawLabel(target *ebiten.Image, n *Node, style Style, screen Rect, scale float64) {
	label := n.Text
	if len(n.Runs) > 0 {
		label = ""
		for _, run := range n.Runs {
			label += run.Text
		}
	}
	if label == "" {
		return
	}

	k := scale * style.FontSize / r.cfg.FaceSize
	if k <= 0 {
		return
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(k, k)
	center := screen.Center()
	op.GeoM.Translate(center.X, center.Y)
	op.ColorScale.Scale(
		float32(style.TextColor.R),
		float32(style.TextColor.G),
		float32(style.TextColor.B),
		float32(style.TextColor.A*style.Opacity),
	)
	text.Draw(target, label, r.cfg.Face, op)
}

// --- Path rasterization ---

func (r *Renderer) fillPath(target *ebiten.Image, path *vector.Path, c Color, opacity float64) {
	verts, inds := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r.submit(target, verts, inds, c, opacity)
}

func (r *Renderer) strokePath(target *ebiten.Image, path *vector.Path, width float32, c Color, opacity float64) {
	opts := &vector.StrokeOptions{Width: width}
	verts, inds := path.AppendVerticesAndIndicesForStroke(nil, nil, opts)
	r.submit(target, verts, inds, c, opacity)
}

func (r *Renderer) submit(target *ebiten.Image, verts []ebiten.Vertex, inds []uint16, c Color, opacity float64) {
	cr := float32(c.R)
	cg := float32(c.G)
	cb := float32(c.B)
	ca := float32(c.A * opacity)
	for i := range verts {
		verts[i].SrcX = 0.5
		verts[i].SrcY = 0.5
		verts[i].ColorR = cr
		verts[i].ColorG = cg
		verts[i].ColorB = cb
		verts[i].ColorA = ca
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: r.cfg.Antialias}
	target.DrawTriangles(verts, inds, whitePixel, op)
}

// toRGBA converts a Color to color.RGBA with premultiplied alpha.
func toRGBA(c Color, opacity float64) color.RGBA {
	a := c.A * opacity
	return color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: uint8(a * 255),
	}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
