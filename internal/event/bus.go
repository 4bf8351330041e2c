package event

// Handler receives every event of the type it subscribed to.
type Handler func(Event)

// Middleware wraps the dispatch of a single event. It receives the event
// and a next function and decides whether and how to call next. Middleware
// registered earlier wraps everything registered after it, so global
// concerns installed first run both before and after the core handler set.
type Middleware func(next func(Event), ev Event)

// maxEmitDepth bounds re-entrant emission. The expected nesting is a few
// levels (match -> damage -> on-damage effect -> further damage); blowing
// past this means an effect retrigger loop, which is a programming error.
const maxEmitDepth = 16

// retriggerLoopError is the depth-guard panic value. It carries a
// dedicated type so handler panic recovery re-raises it instead of
// swallowing it.
type retriggerLoopError string

func (e retriggerLoopError) Error() string { return string(e) }

type subscription struct {
	id      int
	handler Handler
}

// Bus is the typed publish/subscribe channel. Not safe for concurrent use;
// the turn engine is the single thread of control.
type Bus struct {
	handlers   map[Type][]subscription
	middleware []Middleware
	nextID     int
	depth      int

	// OnPanic, if set, observes a recovered handler panic. A panicking
	// handler never aborts dispatch to the rest of the chain.
	OnPanic func(ev Event, recovered any)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]subscription)}
}

// On subscribes a handler to an event type and returns its unsubscribe
// function. Dispatch order for a single Emit is registration order.
// Unsubscribing twice is a no-op.
func (b *Bus) On(t Type, h Handler) func() {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, handler: h})

	return func() {
		subs := b.handlers[t]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Use appends a middleware to the chain. The first middleware installed is
// the outermost wrapper.
func (b *Bus) Use(mw Middleware) {
	b.middleware = append(b.middleware, mw)
}

// Emit delivers the event through the middleware chain to every handler
// currently subscribed to its type. Emission is synchronous and re-entrant:
// a handler may itself call Emit, and the nested event is fully processed
// before control returns (depth-first, not queued). Panics if re-entrancy
// exceeds maxEmitDepth.
func (b *Bus) Emit(t Type, p Payload) {
	b.depth++
	if b.depth > maxEmitDepth {
		b.depth--
		panic(retriggerLoopError("event: emit depth exceeded, effect retrigger loop"))
	}
	defer func() { b.depth-- }()

	ev := Event{Type: t, Payload: p}

	dispatch := b.dispatch
	for i := len(b.middleware) - 1; i >= 0; i-- {
		mw := b.middleware[i]
		next := dispatch
		dispatch = func(e Event) { mw(next, e) }
	}
	dispatch(ev)
}

// dispatch runs the core handler set. The subscription list is copied so
// that handlers subscribing or unsubscribing mid-dispatch take effect only
// for subsequent emissions.
func (b *Bus) dispatch(ev Event) {
	subs := b.handlers[ev.Type]
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)

	for _, sub := range snapshot {
		b.safeCall(sub.handler, ev)
	}
}

// safeCall invokes one handler, recovering any panic so the rest of the
// chain still runs. The depth-guard panic is re-raised: a retrigger loop
// must fail loudly, not truncate silently.
func (b *Bus) safeCall(h Handler, ev Event) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(retriggerLoopError); ok {
			panic(r)
		}
		if b.OnPanic != nil {
			b.OnPanic(ev, r)
		}
	}()
	h(ev)
}
