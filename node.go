package bramble

import (
	"github.com/google/uuid"
)

// TextRun is one styled span of a node's content. Nodes with an empty Runs
// slice render their plain Text instead.
type TextRun struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
	Color  *Color `json:"color,omitempty"`
}

// TraverseOp is returned by a traversal visitor to control descent.
type TraverseOp uint8

const (
	// TraverseContinue descends into the node's children.
	TraverseContinue TraverseOp = iota
	// TraverseSkipChildren prunes this node's subtree; traversal continues
	// with the node's siblings.
	TraverseSkipChildren
)

// Node is a single entry in the document tree: one diagram box. A single flat
// struct is used for every node role; presentation differences live entirely
// in the style record.
type Node struct {
	// Identity. Assigned at construction, never reassigned.
	id string

	// Content.
	Text string
	Runs []TextRun
	Type string

	// Hierarchy. Parent is a back-reference only; ownership runs strictly
	// parent -> children.
	Parent   *Node
	children []*Node

	// Presentation. Always fully resolved (see Style).
	style Style

	// State flags.
	Expanded bool
	Selected bool
	Hidden   bool

	// Classification.
	tags []string

	// Host-application payload. Opaque to the core.
	Data map[string]any

	// Geometry. Written only by the layout stage through the setters below.
	x, y          float64
	width, height float64
	rect          Rect
	center        Point
	geomValid     bool
}

// NodeData is the plain record shape a node serializes to and constructs
// from. It is the only serialized representation the core defines.
type NodeData struct {
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text"`
	Runs     []TextRun      `json:"runs,omitempty"`
	Type     string         `json:"type,omitempty"`
	Style    *StylePatch    `json:"style"`
	Expanded *bool          `json:"expanded"`
	Selected bool           `json:"selected"`
	Hidden   bool           `json:"hidden"`
	Tags     []string       `json:"tags"`
	Data     map[string]any `json:"data"`
	X        float64        `json:"x,omitempty"`
	Y        float64        `json:"y,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Children []*NodeData    `json:"children,omitempty"`
}

// NewNode constructs a standalone node (Parent == nil) from a plain data
// record, recursively constructing any children in the record. A record
// without an ID gets a freshly generated one. The record's style fields are
// merged onto the non-root default, so a partial style never leaves the node
// with unresolved presentation.
func NewNode(data NodeData) *Node {
	return newNode(data, DefaultStyle())
}

// NewRootNode constructs a node resolved against the root default style.
// Use it for the single node that anchors a tree.
func NewRootNode(data NodeData) *Node {
	return newNode(data, DefaultRootStyle())
}

func newNode(data NodeData, defaults Style) *Node {
	n := &Node{
		id:       data.ID,
		Text:     data.Text,
		Runs:     append([]TextRun(nil), data.Runs...),
		Type:     data.Type,
		style:    defaults,
		Expanded: true,
		Selected: data.Selected,
		Hidden:   data.Hidden,
		Data:     copyDataMap(data.Data),
		x:        data.X,
		y:        data.Y,
		width:    data.Width,
		height:   data.Height,
	}
	if n.id == "" {
		n.id = uuid.NewString()
	}
	if data.Style != nil {
		n.style.apply(*data.Style)
	}
	if data.Expanded != nil {
		n.Expanded = *data.Expanded
	}
	for _, tag := range data.Tags {
		n.AddTag(tag)
	}
	for _, childData := range data.Children {
		if childData == nil {
			continue
		}
		n.AddChild(NewNode(*childData))
	}
	debugCheckUniqueIDs(n)
	return n
}

// ID returns the node's stable unique identifier.
func (n *Node) ID() string {
	return n.id
}

// --- Tree manipulation ---

// AddChild appends child to this node's children and returns it.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) *Node {
	return n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index, clamped into [0, len].
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) *Node {
	if child == nil {
		panic("bramble: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("bramble: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 {
		index = 0
	}
	if index > len(n.children) {
		index = len(n.children)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	debugCheckTreeDepth(child)
	return child
}

// AddChildData constructs a node from data, appends it, and returns it.
func (n *Node) AddChildData(data NodeData) *Node {
	return n.AddChild(NewNode(data))
}

// AddChildDataAt constructs a node from data and inserts it at index
// (clamped), returning it.
func (n *Node) AddChildDataAt(data NodeData, index int) *Node {
	return n.AddChildAt(NewNode(data), index)
}

// RemoveChild detaches child from this node. Returns false if child is not a
// child of this node. The detached subtree keeps its internal links; only the
// subtree root loses its parent. Descendants are never destroyed.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.Parent != n {
		return false
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	return true
}

// RemoveChildByID detaches the direct child with the given id.
// Returns false if no direct child matches.
func (n *Node) RemoveChildByID(id string) bool {
	for _, c := range n.children {
		if c.id == id {
			return n.RemoveChild(c)
		}
	}
	return false
}

// Remove detaches this node from its parent. Returns false if the node has
// no parent.
func (n *Node) Remove() bool {
	if n.Parent == nil {
		return false
	}
	return n.Parent.RemoveChild(n)
}

// RemoveAllChildren detaches every child, clearing each child's parent.
// Grandchildren keep their links to the detached children.
func (n *Node) RemoveAllChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// MoveTo reparents this node to the end of newParent's children. Returns
// false without mutating anything if newParent is the node itself or a
// descendant of it, which would create a cycle.
func (n *Node) MoveTo(newParent *Node) bool {
	if newParent == nil {
		return false
	}
	return n.MoveToAt(newParent, len(newParent.children))
}

// MoveToAt reparents this node under newParent at the given index (clamped).
// Same cycle rejection as MoveTo.
func (n *Node) MoveToAt(newParent *Node, index int) bool {
	if newParent == nil || newParent == n || isAncestor(n, newParent) {
		return false
	}
	newParent.AddChildAt(n, index)
	return true
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Index returns this node's position among its siblings, or -1 if it has no
// parent.
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// --- Queries ---

// IsRoot reports whether this node has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// IsLeaf reports whether this node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// Depth returns the number of ancestors between this node and its root.
// A root has depth 0.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

// Root returns the topmost ancestor of this node (the node itself if it has
// no parent).
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// VisibleChildren returns the children that should be traversed for layout
// and rendering: none when the node is collapsed, otherwise every child not
// marked hidden.
func (n *Node) VisibleChildren() []*Node {
	if !n.Expanded {
		return nil
	}
	var visible []*Node
	for _, c := range n.children {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}
	return visible
}

// Descendants returns every node below this one in pre-order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	for _, c := range n.children {
		out = append(out, c)
		out = append(out, c.Descendants()...)
	}
	return out
}

// Ancestors returns this node's ancestors, nearest first.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// Siblings returns this node's siblings, excluding the node itself.
func (n *Node) Siblings() []*Node {
	if n.Parent == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Parent.children {
		if c != n {
			out = append(out, c)
		}
	}
	return out
}

// PreviousSibling returns the sibling immediately before this node, or nil.
func (n *Node) PreviousSibling() *Node {
	i := n.Index()
	if i <= 0 {
		return nil
	}
	return n.Parent.children[i-1]
}

// NextSibling returns the sibling immediately after this node, or nil.
func (n *Node) NextSibling() *Node {
	i := n.Index()
	if i < 0 || i >= len(n.Parent.children)-1 {
		return nil
	}
	return n.Parent.children[i+1]
}

// Count returns the number of nodes in this subtree, including the node
// itself.
func (n *Node) Count() int {
	count := 1
	for _, c := range n.children {
		count += c.Count()
	}
	return count
}

// --- Traversal ---

// Traverse visits this node and its descendants in pre-order. Returning
// TraverseSkipChildren from the visitor prunes descent into that node's
// subtree without aborting the rest of the traversal.
func (n *Node) Traverse(visit func(*Node) TraverseOp) {
	if visit(n) == TraverseSkipChildren {
		return
	}
	for _, c := range n.children {
		c.Traverse(visit)
	}
}

// Find returns the first node in this subtree (pre-order, including the node
// itself) matching the predicate, or nil.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Traverse(func(node *Node) TraverseOp {
		if found != nil {
			return TraverseSkipChildren
		}
		if match(node) {
			found = node
			return TraverseSkipChildren
		}
		return TraverseContinue
	})
	return found
}

// FindAll returns every node in this subtree matching the predicate, in
// pre-order.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	n.Traverse(func(node *Node) TraverseOp {
		if match(node) {
			out = append(out, node)
		}
		return TraverseContinue
	})
	return out
}

// FindByID returns the node with the given id in this subtree, or nil.
func (n *Node) FindByID(id string) *Node {
	return n.Find(func(node *Node) bool { return node.id == id })
}

// --- State mutators ---

// Expand makes this node's children visible to layout and rendering.
func (n *Node) Expand() { n.Expanded = true }

// Collapse hides this node's children from layout and rendering.
func (n *Node) Collapse() { n.Expanded = false }

// ToggleExpand flips the expanded flag.
func (n *Node) ToggleExpand() { n.Expanded = !n.Expanded }

// ExpandAll expands this node and every descendant.
func (n *Node) ExpandAll() {
	n.Traverse(func(node *Node) TraverseOp {
		node.Expanded = true
		return TraverseContinue
	})
}

// CollapseAll collapses this node and every descendant.
func (n *Node) CollapseAll() {
	n.Traverse(func(node *Node) TraverseOp {
		node.Expanded = false
		return TraverseContinue
	})
}

// Select marks this node as selected.
func (n *Node) Select() { n.Selected = true }

// Deselect clears this node's selection.
func (n *Node) Deselect() { n.Selected = false }

// ToggleSelect flips the selected flag.
func (n *Node) ToggleSelect() { n.Selected = !n.Selected }

// SetText replaces the node's plain text content.
func (n *Node) SetText(text string) {
	n.Text = text
}

// --- Style ---

// Style returns the node's resolved style record.
func (n *Node) Style() Style {
	return n.style
}

// SetStyle replaces the node's style wholesale. The provided style is taken
// as fully resolved.
func (n *Node) SetStyle(s Style) {
	n.style = s
}

// UpdateStyle shallow-merges the non-nil fields of patch into the resolved
// style. Fields the patch does not mention keep their current values.
func (n *Node) UpdateStyle(patch StylePatch) {
	n.style.apply(patch)
}

// ResetStyle restores the role-appropriate default style: the root default
// for a parentless node, the regular default otherwise.
func (n *Node) ResetStyle() {
	if n.IsRoot() {
		n.style = DefaultRootStyle()
	} else {
		n.style = DefaultStyle()
	}
}

// --- Tags ---

// AddTag adds a tag if not already present. Duplicate adds are no-ops.
func (n *Node) AddTag(tag string) {
	if n.HasTag(tag) {
		return
	}
	n.tags = append(n.tags, tag)
}

// RemoveTag removes a tag. Returns false if the tag was not present.
func (n *Node) RemoveTag(tag string) bool {
	for i, t := range n.tags {
		if t == tag {
			copy(n.tags[i:], n.tags[i+1:])
			n.tags = n.tags[:len(n.tags)-1]
			return true
		}
	}
	return false
}

// HasTag reports whether the node carries the tag.
func (n *Node) HasTag(tag string) bool {
	for _, t := range n.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the node's tags. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Tags() []string {
	return n.tags
}

// --- Geometry ---

// X returns the node's document-space X position.
func (n *Node) X() float64 { return n.x }

// Y returns the node's document-space Y position.
func (n *Node) Y() float64 { return n.y }

// Width returns the node's width.
func (n *Node) Width() float64 { return n.width }

// Height returns the node's height.
func (n *Node) Height() float64 { return n.height }

// SetPosition sets the node's position and invalidates the cached rect and
// center.
func (n *Node) SetPosition(x, y float64) {
	n.x = x
	n.y = y
	n.geomValid = false
}

// SetSize sets the node's size and invalidates the cached rect and center.
func (n *Node) SetSize(width, height float64) {
	n.width = width
	n.height = height
	n.geomValid = false
}

// SetRect sets position and size in one call and invalidates the cache.
func (n *Node) SetRect(r Rect) {
	n.x = r.X
	n.y = r.Y
	n.width = r.Width
	n.height = r.Height
	n.geomValid = false
}

// Rect returns the node's bounding rectangle, recomputing the cache if a
// geometry setter ran since the last read.
func (n *Node) Rect() Rect {
	n.refreshGeom()
	return n.rect
}

// Center returns the node's center point, sharing the rect cache.
func (n *Node) Center() Point {
	n.refreshGeom()
	return n.center
}

func (n *Node) refreshGeom() {
	if n.geomValid {
		return
	}
	n.rect = Rect{X: n.x, Y: n.y, Width: n.width, Height: n.height}
	n.center = n.rect.Center()
	n.geomValid = true
}

// --- Clone ---

// Clone returns a deep value copy of this node with a freshly generated id.
// Style, tags, runs, and the data bag are copied, never aliased. When
// includeChildren is true, descendants are cloned recursively with fresh ids
// of their own. The clone is standalone (Parent == nil).
func (n *Node) Clone(includeChildren bool) *Node {
	c := &Node{
		id:       uuid.NewString(),
		Text:     n.Text,
		Runs:     append([]TextRun(nil), n.Runs...),
		Type:     n.Type,
		style:    n.style,
		Expanded: n.Expanded,
		Selected: n.Selected,
		Hidden:   n.Hidden,
		tags:     append([]string(nil), n.tags...),
		Data:     copyDataMap(n.Data),
		x:        n.x,
		y:        n.y,
		width:    n.width,
		height:   n.height,
	}
	if includeChildren {
		for _, child := range n.children {
			c.AddChild(child.Clone(true))
		}
	}
	return c
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// copyDataMap deep-copies a data bag: nested maps and slices are copied,
// scalar values are shared.
func copyDataMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = copyDataValue(v)
	}
	return dst
}

func copyDataValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyDataMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyDataValue(e)
		}
		return out
	default:
		return v
	}
}
