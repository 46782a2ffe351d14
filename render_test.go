package bramble

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(RendererConfig{
		Face:     text.NewGoXFace(basicfont.Face7x13),
		FaceSize: 13,
	})
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func TestNewRendererRequiresFace(t *testing.T) {
	_, err := NewRenderer(RendererConfig{})
	if !errors.Is(err, ErrNoFace) {
		t.Errorf("err = %v, want ErrNoFace", err)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := newTestRenderer(t)
	if r.cfg.ConnectorWidth != 2 || r.cfg.CornerRadius != 6 {
		t.Errorf("defaults not applied: %+v", r.cfg)
	}
	if r.cfg.SelectionColor == (Color{}) || r.cfg.ConnectorColor == (Color{}) {
		t.Error("zero colors should fall back to defaults")
	}
}

func TestDrawRejectsNilArguments(t *testing.T) {
	r := newTestRenderer(t)
	target := ebiten.NewImage(320, 240)
	root := NewRootNode(NodeData{Text: "root"})
	vp := NewViewport(320, 240, ViewportConfig{}, nil)

	if err := r.Draw(nil, root, vp); err == nil {
		t.Error("nil target must be rejected")
	}
	if err := r.Draw(target, nil, vp); err == nil {
		t.Error("nil tree must be rejected")
	}
	if err := r.Draw(target, root, nil); err == nil {
		t.Error("nil viewport must be rejected")
	}
}

func TestDrawSmoke(t *testing.T) {
	r := newTestRenderer(t)
	target := ebiten.NewImage(640, 480)
	vp := NewViewport(640, 480, ViewportConfig{}, nil)

	root := NewRootNode(NodeData{Text: "Project"})
	root.SetRect(Rect{X: 260, Y: 220, Width: 120, Height: 40})
	for i, shape := range []Shape{ShapeRoundedRect, ShapeRect, ShapeEllipse, ShapeCapsule, ShapeUnderline} {
		child := root.AddChild(NewNode(NodeData{Text: "child"}))
		child.SetRect(Rect{X: 60 + float64(i)*110, Y: 360, Width: 100, Height: 36})
		child.UpdateStyle(StylePatch{Shape: &shape})
	}
	root.Children()[0].Select()
	root.Children()[1].Hidden = true

	if err := r.Draw(target, root, vp); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Collapsed subtrees and off-surface nodes are culled without error.
	far := root.AddChild(NewNode(NodeData{Text: "offscreen"}))
	far.SetRect(Rect{X: 1e6, Y: 1e6, Width: 10, Height: 10})
	root.Collapse()
	if err := r.Draw(target, root, vp); err != nil {
		t.Fatalf("Draw collapsed: %v", err)
	}
}
