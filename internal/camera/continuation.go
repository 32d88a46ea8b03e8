package camera

// Kind identifies what a continuation does with the output of the command
// that scheduled it. The set is closed: dispatch is a switch in the
// session, not dynamic invocation.
type Kind int

const (
	// KindGet parses a single configuration entry and folds it into the
	// model. With an empty name the output is discarded; this is used for
	// commands like lcd whose output carries no state.
	KindGet Kind = iota

	// KindImage parses a capture result for a full image download.
	KindImage

	// KindPreview parses a capture result for a preview frame.
	KindPreview

	// KindRefreshAll parses the hierarchical config listing and starts
	// the per-entry fan-out.
	KindRefreshAll

	// KindCollectValue stages one fan-out result; the last one collected
	// atomically replaces the model.
	KindCollectValue
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindImage:
		return "image"
	case KindPreview:
		return "preview"
	case KindRefreshAll:
		return "refresh-all"
	case KindCollectValue:
		return "collect-value"
	default:
		return "unknown"
	}
}

// Continuation is a queued follow-up action tied to a previously sent
// command, run once the shell reports idle again.
type Continuation struct {
	// Kind selects the handler.
	Kind Kind
	// Name is the configuration entry the output belongs to, for KindGet
	// and KindCollectValue.
	Name string
}

// Queue is a strict FIFO of pending continuations. It is owned by the
// session, which serializes access; Queue itself is not synchronized.
type Queue struct {
	items []Continuation
}

// Push appends a continuation to the tail.
func (q *Queue) Push(c Continuation) {
	q.items = append(q.items, c)
}

// Pop removes and returns the front continuation.
// Returns false if the queue is empty.
func (q *Queue) Pop() (Continuation, bool) {
	if len(q.items) == 0 {
		return Continuation{}, false
	}
	c := q.items[0]
	q.items = q.items[1:]
	return c, true
}

// Len returns the number of pending continuations.
func (q *Queue) Len() int {
	return len(q.items)
}

// Snapshot returns a copy of the pending continuations in order, for
// diagnostics. The queue itself is never exposed for mutation.
func (q *Queue) Snapshot() []Continuation {
	out := make([]Continuation, len(q.items))
	copy(out, q.items)
	return out
}
