package bramble

import (
	"testing"
)

// probeCommand adds a delta to a shared counter. Used to observe execution
// order, merging, and guard behavior.
type probeCommand struct {
	name    string
	value   *int
	delta   int
	mergeOK bool
	onExec  func()
}

func (c *probeCommand) Name() string { return c.name }

func (c *probeCommand) Execute() {
	*c.value += c.delta
	if c.onExec != nil {
		c.onExec()
	}
}

func (c *probeCommand) Undo() { *c.value -= c.delta }
func (c *probeCommand) Redo() { *c.value += c.delta }

func (c *probeCommand) CanMerge(next Command) bool {
	other, ok := next.(*probeCommand)
	return ok && c.mergeOK && other.mergeOK
}

func (c *probeCommand) Merge(next Command) {
	c.delta += next.(*probeCommand).delta
}

func TestHistoryExecuteUndoRedoOrdering(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "c1", value: &value, delta: 1})
	h.Execute(&probeCommand{name: "c2", value: &value, delta: 10})
	h.Execute(&probeCommand{name: "c3", value: &value, delta: 100})

	if value != 111 {
		t.Fatalf("value = %d, want 111", value)
	}

	if !h.Undo() || !h.Undo() {
		t.Fatal("undo should succeed twice")
	}
	if value != 1 {
		t.Errorf("after two undos value = %d, want 1 (state after c1)", value)
	}

	if !h.Redo() {
		t.Fatal("redo should succeed")
	}
	if value != 11 {
		t.Errorf("after redo value = %d, want 11 (state after c1, c2)", value)
	}
}

func TestHistoryExecuteClearsRedo(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "c1", value: &value, delta: 1})
	h.Execute(&probeCommand{name: "c2", value: &value, delta: 10})
	h.Undo()

	if !h.CanRedo() {
		t.Fatal("redo should be available after an undo")
	}
	h.Execute(&probeCommand{name: "c3", value: &value, delta: 100})
	if h.CanRedo() {
		t.Error("a new edit must invalidate the redo branch")
	}
	if h.RedoCount() != 0 {
		t.Errorf("RedoCount = %d, want 0", h.RedoCount())
	}
}

func TestHistoryMergeCoalescing(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "edit", value: &value, delta: 1, mergeOK: true})
	h.Execute(&probeCommand{name: "edit", value: &value, delta: 2, mergeOK: true})

	if h.UndoCount() != 1 {
		t.Fatalf("UndoCount = %d, mergeable commands must not grow the stack", h.UndoCount())
	}
	if value != 3 {
		t.Fatalf("value = %d, want 3", value)
	}
	h.Undo()
	if value != 0 {
		t.Errorf("a single undo must reverse the combined effect, value = %d", value)
	}
}

func TestHistoryMergeStillClearsRedo(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "a", value: &value, delta: 1})
	h.Execute(&probeCommand{name: "b", value: &value, delta: 10, mergeOK: true})
	h.Undo()
	h.Redo()
	h.Undo()

	// Merged execute counts as a successful edit and must clear redo.
	h.Execute(&probeCommand{name: "c", value: &value, delta: 100, mergeOK: true})
	if h.CanRedo() {
		t.Error("merged execute must clear the redo stack")
	}
}

func TestHistoryCapacityEviction(t *testing.T) {
	h := NewHistory(HistoryConfig{MaxSize: 3})
	value := 0

	for i := 0; i < 4; i++ {
		h.Execute(&probeCommand{name: "c", value: &value, delta: 1 << (4 * i)})
	}
	if h.UndoCount() != 3 {
		t.Fatalf("UndoCount = %d, want 3 after eviction", h.UndoCount())
	}

	for h.Undo() {
	}
	// The evicted oldest edit (delta 1) is permanently un-undoable.
	if value != 1 {
		t.Errorf("value = %d, want 1: evicted entry must not be undone", value)
	}
}

func TestHistoryReentrantExecuteIgnored(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0
	var innerResult bool

	outer := &probeCommand{name: "outer", value: &value, delta: 1}
	outer.onExec = func() {
		innerResult = h.Execute(&probeCommand{name: "inner", value: &value, delta: 100})
	}

	if !h.Execute(outer) {
		t.Fatal("top-level execute should succeed")
	}
	if innerResult {
		t.Error("nested execute must be a no-op returning false")
	}
	if value != 1 {
		t.Errorf("value = %d, nested command must not run", value)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount = %d, want 1", h.UndoCount())
	}
}

func TestHistoryUndoRedoEmpty(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	if h.Undo() {
		t.Error("undo on empty history should return false")
	}
	if h.Redo() {
		t.Error("redo on empty history should return false")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history can neither undo nor redo")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "a", value: &value, delta: 1})
	h.Execute(&probeCommand{name: "b", value: &value, delta: 10})
	h.Undo()

	h.Clear()
	if h.UndoCount() != 0 || h.RedoCount() != 0 {
		t.Error("clear must empty both stacks")
	}
	// Clear is a hard reset: pending entries are not undone.
	if value != 1 {
		t.Errorf("value = %d, clear must not undo anything", value)
	}
}

func TestHistoryEntries(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	h.Execute(&probeCommand{name: "first", value: &value, delta: 1})
	h.Execute(&probeCommand{name: "second", value: &value, delta: 1})
	h.Undo()

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "first" || entries[0].Direction != DirectionUndo {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Name != "second" || entries[1].Direction != DirectionRedo {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

// panicCommand panics on Execute.
type panicCommand struct{}

func (panicCommand) Name() string        { return "boom" }
func (panicCommand) Execute()            { panic("boom") }
func (panicCommand) Undo()               {}
func (panicCommand) Redo()               {}
func (panicCommand) CanMerge(Command) bool { return false }
func (panicCommand) Merge(Command)       {}

func TestHistoryGuardReleasedOnPanic(t *testing.T) {
	h := NewHistory(HistoryConfig{})
	value := 0

	func() {
		defer func() {
			if recover() == nil {
				t.Error("command panic must propagate")
			}
		}()
		h.Execute(panicCommand{})
	}()

	// The guard must be released and the stacks must hold only what was
	// committed before the panic (nothing).
	if h.CanUndo() {
		t.Error("panicking command must not be committed")
	}
	if !h.Execute(&probeCommand{name: "after", value: &value, delta: 1}) {
		t.Error("history must accept commands after a panic")
	}
}

func TestHistoryChangeEvents(t *testing.T) {
	bus := NewEventBus()
	h := NewHistory(HistoryConfig{Bus: bus})
	value := 0

	var actions []string
	bus.On(EventHistoryChanged, func(payload any) {
		actions = append(actions, payload.(HistoryChange).Action)
	})

	h.Execute(&probeCommand{name: "a", value: &value, delta: 1})
	h.Undo()
	h.Redo()
	h.Clear()

	want := []string{"execute", "undo", "redo", "clear"}
	if len(actions) != len(want) {
		t.Fatalf("actions = %v, want %v", actions, want)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("actions = %v, want %v", actions, want)
		}
	}
}

// End-to-end: a command-wrapped add is undone and redone against the tree.
func TestHistoryWithTreeScenario(t *testing.T) {
	root := NewRootNode(NodeData{ID: "root", Text: "Root"})
	h := NewHistory(HistoryConfig{})

	child := NewNode(NodeData{Text: "A"})
	h.Execute(NewAddNodeCommand(root, child))
	if root.Count() != 2 {
		t.Fatalf("Count = %d, want 2", root.Count())
	}

	if !h.Undo() {
		t.Fatal("undo failed")
	}
	if root.Count() != 1 {
		t.Errorf("Count after undo = %d, want 1", root.Count())
	}

	if !h.Redo() {
		t.Fatal("redo failed")
	}
	if root.Count() != 2 {
		t.Errorf("Count after redo = %d, want 2", root.Count())
	}
	if !h.CanUndo() {
		t.Error("CanUndo should be true")
	}
	if h.CanRedo() {
		t.Error("CanRedo should be false")
	}
}
