package bramble

// Built-in reversible commands over the node tree. Each command stores the
// minimal delta it needs to reverse itself; none of them report errors, per
// the history contract. All publish node events when given a Bus.

// --- AddNodeCommand ---

// AddNodeCommand attaches a node under a parent.
type AddNodeCommand struct {
	// Bus, when non-nil, receives EventNodeAdded / EventNodeRemoved.
	Bus *EventBus

	parent *Node
	child  *Node
	index  int // negative = append
}

// NewAddNodeCommand creates a command that appends child under parent.
func NewAddNodeCommand(parent, child *Node) *AddNodeCommand {
	return &AddNodeCommand{parent: parent, child: child, index: -1}
}

// NewAddNodeCommandAt creates a command that inserts child at index (clamped).
func NewAddNodeCommandAt(parent, child *Node, index int) *AddNodeCommand {
	return &AddNodeCommand{parent: parent, child: child, index: index}
}

func (c *AddNodeCommand) Name() string { return "add-node" }

func (c *AddNodeCommand) Execute() {
	if c.index < 0 {
		c.parent.AddChild(c.child)
	} else {
		c.parent.AddChildAt(c.child, c.index)
	}
	c.Bus.emitIfSet(EventNodeAdded, c.child)
}

func (c *AddNodeCommand) Undo() {
	c.parent.RemoveChild(c.child)
	c.Bus.emitIfSet(EventNodeRemoved, c.child)
}

func (c *AddNodeCommand) Redo()                 { c.Execute() }
func (c *AddNodeCommand) CanMerge(Command) bool { return false }
func (c *AddNodeCommand) Merge(Command)         {}

// --- RemoveNodeCommand ---

// RemoveNodeCommand detaches a node from its parent, remembering where it
// sat so Undo can put it back at the same sibling rank.
type RemoveNodeCommand struct {
	Bus *EventBus

	node   *Node
	parent *Node
	index  int
}

// NewRemoveNodeCommand creates a command that detaches node.
func NewRemoveNodeCommand(node *Node) *RemoveNodeCommand {
	return &RemoveNodeCommand{node: node}
}

func (c *RemoveNodeCommand) Name() string { return "remove-node" }

func (c *RemoveNodeCommand) Execute() {
	c.parent = c.node.Parent
	c.index = c.node.Index()
	if c.node.Remove() {
		c.Bus.emitIfSet(EventNodeRemoved, c.node)
	}
}

func (c *RemoveNodeCommand) Undo() {
	if c.parent == nil {
		return
	}
	c.parent.AddChildAt(c.node, c.index)
	c.Bus.emitIfSet(EventNodeAdded, c.node)
}

func (c *RemoveNodeCommand) Redo()                 { c.Execute() }
func (c *RemoveNodeCommand) CanMerge(Command) bool { return false }
func (c *RemoveNodeCommand) Merge(Command)         {}

// --- MoveNodeCommand ---

// MoveNodeCommand reparents a node. A move the tree rejects (self or
// descendant target) leaves the command inert: Undo does nothing.
type MoveNodeCommand struct {
	Bus *EventBus

	node      *Node
	newParent *Node
	newIndex  int
	oldParent *Node
	oldIndex  int
	moved     bool
}

// NewMoveNodeCommand creates a command that moves node under newParent at
// index (clamped; negative appends).
func NewMoveNodeCommand(node, newParent *Node, index int) *MoveNodeCommand {
	return &MoveNodeCommand{node: node, newParent: newParent, newIndex: index}
}

func (c *MoveNodeCommand) Name() string { return "move-node" }

func (c *MoveNodeCommand) Execute() {
	c.oldParent = c.node.Parent
	c.oldIndex = c.node.Index()
	if c.newIndex < 0 {
		c.moved = c.node.MoveTo(c.newParent)
	} else {
		c.moved = c.node.MoveToAt(c.newParent, c.newIndex)
	}
	if c.moved {
		c.Bus.emitIfSet(EventNodeUpdated, c.node)
	}
}

func (c *MoveNodeCommand) Undo() {
	if !c.moved || c.oldParent == nil {
		return
	}
	c.node.MoveToAt(c.oldParent, c.oldIndex)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *MoveNodeCommand) Redo()                 { c.Execute() }
func (c *MoveNodeCommand) CanMerge(Command) bool { return false }
func (c *MoveNodeCommand) Merge(Command)         {}

// --- SetTextCommand ---

// SetTextCommand replaces a node's text. Adjacent SetTextCommands on the
// same node merge, so keystroke-level edits collapse into one undo step
// that restores the text from before the first keystroke.
type SetTextCommand struct {
	Bus *EventBus

	node    *Node
	newText string
	oldText string
}

// NewSetTextCommand creates a command that sets node's text.
func NewSetTextCommand(node *Node, text string) *SetTextCommand {
	return &SetTextCommand{node: node, newText: text}
}

func (c *SetTextCommand) Name() string { return "set-text" }

func (c *SetTextCommand) Execute() {
	c.oldText = c.node.Text
	c.node.SetText(c.newText)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetTextCommand) Undo() {
	c.node.SetText(c.oldText)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetTextCommand) Redo() {
	c.node.SetText(c.newText)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetTextCommand) CanMerge(next Command) bool {
	other, ok := next.(*SetTextCommand)
	return ok && other.node == c.node
}

func (c *SetTextCommand) Merge(next Command) {
	c.newText = next.(*SetTextCommand).newText
}

// --- UpdateStyleCommand ---

// UpdateStyleCommand applies a style patch, snapshotting the prior resolved
// style so Undo restores fields the patch did not mention as well.
type UpdateStyleCommand struct {
	Bus *EventBus

	node  *Node
	patch StylePatch
	prev  Style
}

// NewUpdateStyleCommand creates a command that patches node's style.
func NewUpdateStyleCommand(node *Node, patch StylePatch) *UpdateStyleCommand {
	return &UpdateStyleCommand{node: node, patch: patch}
}

func (c *UpdateStyleCommand) Name() string { return "update-style" }

func (c *UpdateStyleCommand) Execute() {
	c.prev = c.node.Style()
	c.node.UpdateStyle(c.patch)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *UpdateStyleCommand) Undo() {
	c.node.SetStyle(c.prev)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *UpdateStyleCommand) Redo()                 { c.Execute() }
func (c *UpdateStyleCommand) CanMerge(Command) bool { return false }
func (c *UpdateStyleCommand) Merge(Command)         {}

// --- SetGeometryCommand ---

// SetGeometryCommand moves/resizes a node. Adjacent geometry commands on the
// same node merge, coalescing a drag gesture into a single undo step back to
// the pre-drag rect.
type SetGeometryCommand struct {
	Bus *EventBus

	node *Node
	rect Rect
	prev Rect
}

// NewSetGeometryCommand creates a command that sets node's rect.
func NewSetGeometryCommand(node *Node, rect Rect) *SetGeometryCommand {
	return &SetGeometryCommand{node: node, rect: rect}
}

func (c *SetGeometryCommand) Name() string { return "set-geometry" }

func (c *SetGeometryCommand) Execute() {
	c.prev = c.node.Rect()
	c.node.SetRect(c.rect)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetGeometryCommand) Undo() {
	c.node.SetRect(c.prev)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetGeometryCommand) Redo() {
	c.node.SetRect(c.rect)
	c.Bus.emitIfSet(EventNodeUpdated, c.node)
}

func (c *SetGeometryCommand) CanMerge(next Command) bool {
	other, ok := next.(*SetGeometryCommand)
	return ok && other.node == c.node
}

func (c *SetGeometryCommand) Merge(next Command) {
	c.rect = next.(*SetGeometryCommand).rect
}
