package bramble

// Style is a node's fully resolved presentation record. Every field always
// holds a usable value: defaults are merged in at construction and on every
// partial update, so the renderer never has to special-case missing fields.
type Style struct {
	FillColor   Color   `json:"fillColor"`
	TextColor   Color   `json:"textColor"`
	BorderColor Color   `json:"borderColor"`
	BorderWidth float64 `json:"borderWidth"`
	Shape       Shape   `json:"shape"`
	FontSize    float64 `json:"fontSize"`
	Bold        bool    `json:"bold"`
	Italic      bool    `json:"italic"`
	Padding     float64 `json:"padding"`
	Opacity     float64 `json:"opacity"`
	Icon        string  `json:"icon,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// StylePatch is a partial style update. Nil fields are left untouched when
// the patch is applied, so previously set values survive updates that don't
// mention them. It is also the serialized style shape: a parsed record only
// carries the fields the JSON actually mentioned.
type StylePatch struct {
	FillColor   *Color   `json:"fillColor,omitempty"`
	TextColor   *Color   `json:"textColor,omitempty"`
	BorderColor *Color   `json:"borderColor,omitempty"`
	BorderWidth *float64 `json:"borderWidth,omitempty"`
	Shape       *Shape   `json:"shape,omitempty"`
	FontSize    *float64 `json:"fontSize,omitempty"`
	Bold        *bool    `json:"bold,omitempty"`
	Italic      *bool    `json:"italic,omitempty"`
	Padding     *float64 `json:"padding,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// Patch returns a patch mentioning every field of s, so applying it to any
// base style reproduces s exactly. Empty Icon and Image are left out.
func (s Style) Patch() StylePatch {
	p := StylePatch{
		FillColor:   &s.FillColor,
		TextColor:   &s.TextColor,
		BorderColor: &s.BorderColor,
		BorderWidth: &s.BorderWidth,
		Shape:       &s.Shape,
		FontSize:    &s.FontSize,
		Bold:        &s.Bold,
		Italic:      &s.Italic,
		Padding:     &s.Padding,
		Opacity:     &s.Opacity,
	}
	if s.Icon != "" {
		p.Icon = &s.Icon
	}
	if s.Image != "" {
		p.Image = &s.Image
	}
	return p
}

// DefaultStyle returns the resolved style for a non-root node.
func DefaultStyle() Style {
	return Style{
		FillColor:   Color{R: 0.93, G: 0.95, B: 0.98, A: 1},
		TextColor:   Color{R: 0.13, G: 0.15, B: 0.19, A: 1},
		BorderColor: Color{R: 0.55, G: 0.62, B: 0.72, A: 1},
		BorderWidth: 1.5,
		Shape:       ShapeRoundedRect,
		FontSize:    14,
		Padding:     8,
		Opacity:     1,
	}
}

// DefaultRootStyle returns the resolved style for a root node. Roots get a
// stronger fill and a larger face so the map's center reads at a glance.
func DefaultRootStyle() Style {
	return Style{
		FillColor:   Color{R: 0.23, G: 0.42, B: 0.79, A: 1},
		TextColor:   ColorWhite,
		BorderColor: Color{R: 0.16, G: 0.3, B: 0.58, A: 1},
		BorderWidth: 2,
		Shape:       ShapeCapsule,
		FontSize:    18,
		Bold:        true,
		Padding:     12,
		Opacity:     1,
	}
}

// apply merges the non-nil fields of patch into s.
func (s *Style) apply(patch StylePatch) {
	if patch.FillColor != nil {
		s.FillColor = *patch.FillColor
	}
	if patch.TextColor != nil {
		s.TextColor = *patch.TextColor
	}
	if patch.BorderColor != nil {
		s.BorderColor = *patch.BorderColor
	}
	if patch.BorderWidth != nil {
		s.BorderWidth = *patch.BorderWidth
	}
	if patch.Shape != nil {
		s.Shape = *patch.Shape
	}
	if patch.FontSize != nil {
		s.FontSize = *patch.FontSize
	}
	if patch.Bold != nil {
		s.Bold = *patch.Bold
	}
	if patch.Italic != nil {
		s.Italic = *patch.Italic
	}
	if patch.Padding != nil {
		s.Padding = *patch.Padding
	}
	if patch.Opacity != nil {
		s.Opacity = *patch.Opacity
	}
	if patch.Icon != nil {
		s.Icon = *patch.Icon
	}
	if patch.Image != nil {
		s.Image = *patch.Image
	}
}
