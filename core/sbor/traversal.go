package sbor

import "unicode/utf8"

// EventKind enumerates the located events a Traverser emits.
type EventKind int

const (
	EventContainerStart EventKind = iota
	EventContainerEnd
	EventTerminalValue
	EventTerminalValueBatch
	EventEnd
	EventDecodeError
)

// ContainerHeader describes an opened container: its kind plus whatever
// per-kind metadata is needed to interpret its children (element kind for
// Array, key/value kinds for Map, discriminator for Enum). Length is the
// number of children (map entries count once, not twice).
type ContainerHeader struct {
	Kind          Kind
	Length        int
	ElementKind   Kind // Array only
	KeyKind       Kind // Map only
	ValKind       Kind // Map only
	Discriminator byte // Enum only
}

// AncestorFrame is one entry of a Location's ancestor_path: an open
// container and the index of the child currently being visited inside it.
type AncestorFrame struct {
	Header     ContainerHeader
	ChildIndex int
}

// Location pinpoints where an event's bytes live in the input and which
// containers are open around it.
type Location struct {
	StartOffset  int
	EndOffset    int
	AncestorPath []AncestorFrame
}

// TerminalValueRef borrows the raw body bytes of a terminal value directly
// from the traverser's input — no copy, no allocation.
type TerminalValueRef struct {
	Kind  Kind
	Bytes []byte
}

// Event is one observation from a Traverser or Visitor. Exactly one of the
// payload fields is meaningful, selected by Kind.
type Event struct {
	Kind     EventKind
	Header   ContainerHeader  // ContainerStart, ContainerEnd
	Value    TerminalValueRef // TerminalValue
	Batch    []byte           // TerminalValueBatch (always KindU8 elements)
	Err      error            // DecodeError
	Location Location
}

// StartMode selects how a Traverser interprets its input's very first bytes.
type StartMode struct {
	kind     startModeKind
	prefix   byte
	bodyKind Kind
}

type startModeKind int

const (
	startPayloadPrefix startModeKind = iota
	startValue
	startValueBody
)

// PayloadPrefixMode expects a leading domain-prefix byte before the value.
func PayloadPrefixMode(prefix byte) StartMode {
	return StartMode{kind: startPayloadPrefix, prefix: prefix}
}

// ValueMode expects a kind byte followed by the value body.
func ValueMode() StartMode { return StartMode{kind: startValue} }

// ValueBodyMode expects a body only, for an already-known kind.
func ValueBodyMode(kind Kind) StartMode {
	return StartMode{kind: startValueBody, bodyKind: kind}
}

type frame struct {
	header ContainerHeader
	total  int // number of child slots (map: 2 * entry count)
	idx    int // children fully completed so far
}

// Traverser pulls located events out of an encoded payload without ever
// materializing a Value tree. Ancestor state lives in one slice pre-sized to
// maxDepth; it never grows past that because pushing beyond maxDepth is
// exactly the MaxDepthExceeded condition.
type Traverser struct {
	dec        *Decoder
	mode       StartMode
	maxDepth   int
	checkEnd   bool
	stack      []frame
	started    bool
	rootClosed bool
	done       bool
}

// NewTraverser constructs a Traverser over data. If checkEnd is true, the
// final End event fails with ErrExtraTrailingBytes unless every byte of data
// was consumed.
func NewTraverser(data []byte, mode StartMode, maxDepth, maxSize int, checkEnd bool, custom CustomCodec) *Traverser {
	return &Traverser{
		dec:      NewDecoder(data, maxDepth, maxSize, custom),
		mode:     mode,
		maxDepth: maxDepth,
		checkEnd: checkEnd,
		stack:    make([]frame, 0, maxDepth),
	}
}

// NextEvent pulls the next event. Calling it again after it has returned an
// End or DecodeError event is a programming error.
func (t *Traverser) NextEvent() Event {
	if t.done {
		panic("sbor: Traverser.NextEvent called after End/DecodeError")
	}
	if !t.started {
		t.started = true
		return t.start()
	}
	if t.rootClosed {
		t.done = true
		if t.checkEnd {
			if err := t.dec.CheckEnd(); err != nil {
				return t.errEvent(err)
			}
		}
		off := t.dec.Offset()
		return Event{Kind: EventEnd, Location: Location{StartOffset: off, EndOffset: off}}
	}

	top := &t.stack[len(t.stack)-1]
	if top.idx >= top.total {
		return t.closeTop()
	}
	return t.processChild(top)
}

func (t *Traverser) start() Event {
	switch t.mode.kind {
	case startPayloadPrefix:
		start := t.dec.Offset()
		if err := t.dec.CheckPrefix(t.mode.prefix); err != nil {
			return t.errEvent(err)
		}
		kind, err := t.dec.ReadValueKind()
		if err != nil {
			return t.errEvent(err)
		}
		return t.enter(kind, start)
	case startValue:
		start := t.dec.Offset()
		kind, err := t.dec.ReadValueKind()
		if err != nil {
			return t.errEvent(err)
		}
		return t.enter(kind, start)
	default: // startValueBody
		return t.enter(t.mode.bodyKind, t.dec.Offset())
	}
}

// enter processes a single value (the root, or — via processChild — a
// container child) of the given kind, starting at byte offset `start`.
func (t *Traverser) enter(kind Kind, start int) Event {
	if n, ok := kind.FixedWidth(); ok {
		b, err := t.dec.ReadBytes(n)
		if err != nil {
			return t.errEvent(err)
		}
		return t.terminal(kind, b, start)
	}
	switch kind {
	case KindString:
		n, err := t.dec.ReadSize()
		if err != nil {
			return t.errEvent(err)
		}
		b, err := t.dec.ReadBytes(n)
		if err != nil {
			return t.errEvent(err)
		}
		if !validUTF8(b) {
			return t.errEvent(ErrInvalidUtf8)
		}
		return t.terminal(kind, b, start)
	case KindArray:
		elemKind, err := t.dec.ReadValueKind()
		if err != nil {
			return t.errEvent(err)
		}
		n, err := t.dec.ReadSize()
		if err != nil {
			return t.errEvent(err)
		}
		return t.push(ContainerHeader{Kind: KindArray, Length: n, ElementKind: elemKind}, n, start)
	case KindTuple:
		n, err := t.dec.ReadSize()
		if err != nil {
			return t.errEvent(err)
		}
		return t.push(ContainerHeader{Kind: KindTuple, Length: n}, n, start)
	case KindEnum:
		disc, err := t.dec.readByte()
		if err != nil {
			return t.errEvent(err)
		}
		n, err := t.dec.ReadSize()
		if err != nil {
			return t.errEvent(err)
		}
		return t.push(ContainerHeader{Kind: KindEnum, Length: n, Discriminator: disc}, n, start)
	case KindMap:
		keyKind, err := t.dec.ReadValueKind()
		if err != nil {
			return t.errEvent(err)
		}
		valKind, err := t.dec.ReadValueKind()
		if err != nil {
			return t.errEvent(err)
		}
		n, err := t.dec.ReadSize()
		if err != nil {
			return t.errEvent(err)
		}
		return t.push(ContainerHeader{Kind: KindMap, Length: n, KeyKind: keyKind, ValKind: valKind}, 2*n, start)
	default:
		if kind.IsCustom() {
			// Custom values are always terminal from the traversal's point of
			// view: their internal shape is opaque to SBOR itself.
			before := t.dec.Offset()
			if t.dec.custom == nil {
				return t.errEvent(ErrCustomValue)
			}
			if _, err := t.dec.custom.DecodeBody(t.dec, kind); err != nil {
				return t.errEvent(err)
			}
			b, _ := t.dec.dataSlice(before, t.dec.Offset())
			return t.terminal(kind, b, start)
		}
		return t.errEvent(&ErrUnexpectedValueKind{Actual: kind})
	}
}

func (t *Traverser) terminal(kind Kind, body []byte, start int) Event {
	ancestors := t.ancestorPath()
	t.afterChildDone()
	return Event{
		Kind:  EventTerminalValue,
		Value: TerminalValueRef{Kind: kind, Bytes: body},
		Location: Location{
			StartOffset:  start,
			EndOffset:    t.dec.Offset(),
			AncestorPath: ancestors,
		},
	}
}

func (t *Traverser) push(header ContainerHeader, total int, start int) Event {
	if len(t.stack) >= t.maxDepth {
		return t.errEvent(ErrMaxDepthExceeded)
	}
	ancestors := t.ancestorPath()
	t.stack = append(t.stack, frame{header: header, total: total})
	return Event{
		Kind:   EventContainerStart,
		Header: header,
		Location: Location{
			StartOffset:  start,
			EndOffset:    t.dec.Offset(),
			AncestorPath: ancestors,
		},
	}
}

// afterChildDone marks the current top-of-stack child as completed, if
// there is an enclosing container; at the root it sets rootClosed so the
// next NextEvent call produces End.
func (t *Traverser) afterChildDone() {
	if len(t.stack) == 0 {
		t.rootClosed = true
		return
	}
	t.stack[len(t.stack)-1].idx++
}

func (t *Traverser) closeTop() Event {
	off := t.dec.Offset()
	closed := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	ancestors := t.ancestorPath()
	t.afterChildDone()
	return Event{
		Kind:   EventContainerEnd,
		Header: closed.header,
		Location: Location{
			StartOffset:  off,
			EndOffset:    off,
			AncestorPath: ancestors,
		},
	}
}

func (t *Traverser) processChild(top *frame) Event {
	start := t.dec.Offset()

	// Batch optimization: a whole byte-array's worth of children collapses
	// into one TerminalValueBatch instead of Length individual events.
	if top.header.Kind == KindArray && top.header.ElementKind == KindU8 && top.idx == 0 && top.total > 0 {
		b, err := t.dec.ReadBytes(top.total)
		if err != nil {
			return t.errEvent(err)
		}
		ancestors := t.ancestorPath()
		top.idx = top.total
		return Event{
			Kind:  EventTerminalValueBatch,
			Batch: b,
			Location: Location{
				StartOffset:  start,
				EndOffset:    t.dec.Offset(),
				AncestorPath: ancestors,
			},
		}
	}

	kind, needsKindByte, err := t.childKind(top)
	if err != nil {
		return t.errEvent(err)
	}
	if needsKindByte {
		start = t.dec.Offset()
	}
	return t.enter(kind, start)
}

func (t *Traverser) childKind(top *frame) (kind Kind, needsKindByte bool, err error) {
	switch top.header.Kind {
	case KindArray:
		return top.header.ElementKind, false, nil
	case KindMap:
		if top.idx%2 == 0 {
			return top.header.KeyKind, false, nil
		}
		return top.header.ValKind, false, nil
	default: // Tuple, Enum
		k, err := t.dec.ReadValueKind()
		return k, true, err
	}
}

// ancestorPath returns a fresh copy of the currently open containers, each
// annotated with the index of the child being visited. It is a copy (not a
// view) so callers may hold onto an Event after further traversal.
func (t *Traverser) ancestorPath() []AncestorFrame {
	if len(t.stack) == 0 {
		return nil
	}
	out := make([]AncestorFrame, len(t.stack))
	for i, f := range t.stack {
		out[i] = AncestorFrame{Header: f.header, ChildIndex: f.idx}
	}
	return out
}

func (t *Traverser) errEvent(err error) Event {
	t.done = true
	off := t.dec.Offset()
	return Event{Kind: EventDecodeError, Err: err, Location: Location{StartOffset: off, EndOffset: off, AncestorPath: t.ancestorPath()}}
}

func validUTF8(b []byte) bool {
	return utf8.Valid(b)
}
