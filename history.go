package bramble

// Command is a single reversible mutation of the document. A command instance
// is stateful: after Execute it knows what it changed and how to reverse it.
type Command interface {
	// Name identifies the command in history listings.
	Name() string
	// Execute applies the command's effect.
	Execute()
	// Undo reverses the effect of the most recent Execute (or Redo).
	Undo()
	// Redo re-applies the effect after an Undo. Most commands implement this
	// by calling their own Execute.
	Redo()
	// CanMerge reports whether next can be coalesced into this command.
	CanMerge(next Command) bool
	// Merge folds next's effect into this command so a single Undo reverses
	// both. Only called when CanMerge returned true.
	Merge(next Command)
}

// HistoryDirection tells which stack a history entry currently sits on.
type HistoryDirection uint8

const (
	DirectionUndo HistoryDirection = iota // entry can be undone
	DirectionRedo                         // entry can be redone
)

// HistoryEntry is one row of the flattened history listing.
type HistoryEntry struct {
	Name      string
	Direction HistoryDirection
}

// HistoryChange is the payload published on EventHistoryChanged.
type HistoryChange struct {
	Action  string // "execute", "undo", "redo", or "clear"
	Command string // name of the command involved, empty for "clear"
}

// DefaultMaxHistory is the stack depth used when HistoryConfig.MaxSize is
// zero.
const DefaultMaxHistory = 100

// HistoryConfig configures a History at construction.
type HistoryConfig struct {
	// MaxSize bounds the undo stack. When a new entry would exceed it, the
	// oldest entry is evicted and becomes permanently un-undoable.
	MaxSize int
	// Bus, when non-nil, receives EventHistoryChanged notifications.
	Bus *EventBus
}

// History is a reversible-operation log: two ordered stacks with a
// re-entrancy guard. A command's Execute, Undo, or Redo must never invoke
// the history again; nested calls are silently ignored to keep stack
// ordering consistent.
type History struct {
	undoStack []Command // oldest -> newest
	redoStack []Command // oldest -> newest; top = most recently undone
	maxSize   int
	executing bool
	bus       *EventBus
}

// NewHistory creates an empty history.
func NewHistory(cfg HistoryConfig) *History {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxHistory
	}
	return &History{maxSize: cfg.MaxSize, bus: cfg.Bus}
}

// Execute runs cmd and records it for undo. Returns false without running
// anything when called re-entrantly from inside another command. A command
// that merges into the current undo top does not grow the stack. Any
// successful execute clears the redo stack: new edits invalidate the redo
// branch. If cmd.Execute panics, the guard is released and the panic
// propagates; the stacks keep whatever was committed before the panic.
func (h *History) Execute(cmd Command) bool {
	if h.executing {
		return false
	}
	h.executing = true
	defer func() { h.executing = false }()

	cmd.Execute()

	if top := h.undoTop(); top != nil && top.CanMerge(cmd) {
		top.Merge(cmd)
	} else {
		h.undoStack = append(h.undoStack, cmd)
		if len(h.undoStack) > h.maxSize {
			// Evict the oldest entry; that edit is no longer undoable.
			copy(h.undoStack, h.undoStack[1:])
			h.undoStack[len(h.undoStack)-1] = nil
			h.undoStack = h.undoStack[:len(h.undoStack)-1]
		}
	}
	h.clearRedo()
	h.publish("execute", cmd.Name())
	return true
}

// Undo reverses the most recent committed command. Returns false when the
// undo stack is empty or a command is currently executing.
func (h *History) Undo() bool {
	if h.executing || len(h.undoStack) == 0 {
		return false
	}
	h.executing = true
	defer func() { h.executing = false }()

	cmd := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = nil
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	cmd.Undo()

	h.redoStack = append(h.redoStack, cmd)
	h.publish("undo", cmd.Name())
	return true
}

// Redo re-applies the most recently undone command. Returns false when the
// redo stack is empty or a command is currently executing.
func (h *History) Redo() bool {
	if h.executing || len(h.redoStack) == 0 {
		return false
	}
	h.executing = true
	defer func() { h.executing = false }()

	cmd := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = nil
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	cmd.Redo()

	h.undoStack = append(h.undoStack, cmd)
	h.publish("redo", cmd.Name())
	return true
}

// Clear empties both stacks unconditionally. Pending entries are NOT undone;
// this is a hard reset.
func (h *History) Clear() {
	for i := range h.undoStack {
		h.undoStack[i] = nil
	}
	h.undoStack = h.undoStack[:0]
	h.clearRedo()
	h.publish("clear", "")
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool {
	return !h.executing && len(h.undoStack) > 0
}

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool {
	return !h.executing && len(h.redoStack) > 0
}

// UndoCount returns the undo stack depth.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the redo stack depth.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// Entries returns the flattened history: the undo stack oldest to newest,
// then the redo stack in stack order.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, 0, len(h.undoStack)+len(h.redoStack))
	for _, cmd := range h.undoStack {
		out = append(out, HistoryEntry{Name: cmd.Name(), Direction: DirectionUndo})
	}
	for _, cmd := range h.redoStack {
		out = append(out, HistoryEntry{Name: cmd.Name(), Direction: DirectionRedo})
	}
	return out
}

func (h *History) undoTop() Command {
	if len(h.undoStack) == 0 {
		return nil
	}
	return h.undoStack[len(h.undoStack)-1]
}

func (h *History) clearRedo() {
	for i := range h.redoStack {
		h.redoStack[i] = nil
	}
	h.redoStack = h.redoStack[:0]
}

func (h *History) publish(action, command string) {
	if h.bus != nil {
		h.bus.Emit(EventHistoryChanged, HistoryChange{Action: action, Command: command})
	}
}
