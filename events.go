package bramble

// Handler receives the payload of an emitted event.
type Handler func(payload any)

type busEntry struct {
	id   uint64
	fn   Handler
	once bool
}

// EventBus decouples the core from its consumers: a mapping from event name
// to an ordered list of handlers with synchronous, fire-and-forget dispatch.
// A panicking handler is isolated so it cannot block delivery to the
// remaining handlers for the same event.
type EventBus struct {
	handlers map[string][]busEntry
	nextID   uint64
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]busEntry)}
}

// EventHandle allows removing a registered handler.
type EventHandle struct {
	bus   *EventBus
	event string
	id    uint64
}

// Remove unregisters this handler so it no longer fires.
func (h EventHandle) Remove() {
	if h.bus == nil {
		return
	}
	h.bus.remove(h.event, h.id)
}

// On registers a handler for the named event and returns a handle for
// unsubscribing. Handlers fire in registration order.
func (b *EventBus) On(event string, fn Handler) EventHandle {
	return b.register(event, fn, false)
}

// Once registers a handler that fires at most once; it is unregistered
// before its first invocation.
func (b *EventBus) Once(event string, fn Handler) EventHandle {
	return b.register(event, fn, true)
}

func (b *EventBus) register(event string, fn Handler, once bool) EventHandle {
	b.nextID++
	b.handlers[event] = append(b.handlers[event], busEntry{id: b.nextID, fn: fn, once: once})
	return EventHandle{bus: b, event: event, id: b.nextID}
}

// Clear removes every handler for the named event.
func (b *EventBus) Clear(event string) {
	delete(b.handlers, event)
}

// ClearAll removes every handler for every event.
func (b *EventBus) ClearAll() {
	b.handlers = make(map[string][]busEntry)
}

// HandlerCount returns the number of handlers registered for the event.
func (b *EventBus) HandlerCount(event string) int {
	return len(b.handlers[event])
}

// Emit synchronously invokes every current handler for the event, in
// registration order. One-shot handlers are unregistered before they run.
// Handlers registered during dispatch do not fire in this round; handlers
// removed during dispatch, including by an earlier handler, do not fire at
// all.
func (b *EventBus) Emit(event string, payload any) {
	entries := b.handlers[event]
	if len(entries) == 0 {
		return
	}
	// Snapshot so handlers can subscribe/unsubscribe mid-dispatch.
	snapshot := make([]busEntry, len(entries))
	copy(snapshot, entries)

	for _, entry := range snapshot {
		if !b.registered(event, entry.id) {
			continue
		}
		if entry.once {
			b.remove(event, entry.id)
		}
		invoke(entry.fn, event, payload)
	}
}

// registered reports whether the handler id is still on the current list.
func (b *EventBus) registered(event string, id uint64) bool {
	for _, entry := range b.handlers[event] {
		if entry.id == id {
			return true
		}
	}
	return false
}

// invoke calls a handler with panic isolation.
func invoke(fn Handler, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			debugf("handler panic on %q: %v", event, r)
		}
	}()
	fn(payload)
}

func (b *EventBus) remove(event string, id uint64) {
	entries := b.handlers[event]
	for i := range entries {
		if entries[i].id == id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = busEntry{}
			b.handlers[event] = entries[:len(entries)-1]
			return
		}
	}
}

// emitIfSet is a nil-safe Emit used by commands that carry an optional bus.
func (b *EventBus) emitIfSet(event string, payload any) {
	if b != nil {
		b.Emit(event, payload)
	}
}
