package sbor

import "testing"

// collectEvents runs a Traverser to completion and returns every event
// observed, including the terminal End/DecodeError event.
func collectEvents(t *testing.T, payload []byte, prefix byte) []Event {
	t.Helper()
	tr := NewTraverser(payload, PayloadPrefixMode(prefix), testMaxDepth, testMaxSize, true, nil)
	var events []Event
	for {
		ev := tr.NextEvent()
		events = append(events, ev)
		if ev.Kind == EventEnd || ev.Kind == EventDecodeError {
			return events
		}
	}
}

// TestTraversalTotality checks that traversal of any well-formed payload
// terminates in exactly one End event and never panics, regardless of shape
// — the pull loop must make progress on every call.
func TestTraversalTotality(t *testing.T) {
	cases := map[string]Value{
		"bool":  BoolValue(true),
		"tuple": TupleValue{Elements: []Value{U8Value(1), StringValue("x")}},
		"nested": TupleValue{Elements: []Value{
			ArrayValue{ElementKind: KindU8, Elements: []Value{U8Value(1), U8Value(2), U8Value(3)}},
			MapValue{KeyKind: KindString, ValKind: KindU32, Entries: []MapEntry{
				{Key: StringValue("k"), Value: U32Value(9)},
			}},
			EnumValue{Discriminator: 2, Fields: []Value{I64Value(-1)}},
		}},
		"empty array": ArrayValue{ElementKind: KindU8, Elements: nil},
		"empty tuple": TupleValue{},
		"deep": deepTuple(10),
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			payload, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			events := collectEvents(t, payload, PrefixScryptoPayload)
			last := events[len(events)-1]
			if last.Kind != EventEnd {
				t.Fatalf("last event %v, want End (err=%v)", last.Kind, last.Err)
			}
			for _, ev := range events[:len(events)-1] {
				if ev.Kind == EventDecodeError {
					t.Fatalf("unexpected DecodeError mid-traversal: %v", ev.Err)
				}
			}
		})
	}
}

func deepTuple(n int) Value {
	var v Value = U8Value(1)
	for i := 0; i < n; i++ {
		v = TupleValue{Elements: []Value{v}}
	}
	return v
}

// TestTraversalByteArrayBatch checks that a byte array's children collapse
// into a single TerminalValueBatch event instead of one event per byte.
func TestTraversalByteArrayBatch(t *testing.T) {
	v := ArrayValue{ElementKind: KindU8, Elements: []Value{U8Value(1), U8Value(2), U8Value(3), U8Value(4)}}
	payload, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	events := collectEvents(t, payload, PrefixScryptoPayload)
	// ContainerStart, TerminalValueBatch, ContainerEnd, End
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4: %+v", len(events), events)
	}
	if events[0].Kind != EventContainerStart {
		t.Fatalf("event 0 = %v, want ContainerStart", events[0].Kind)
	}
	if events[1].Kind != EventTerminalValueBatch {
		t.Fatalf("event 1 = %v, want TerminalValueBatch", events[1].Kind)
	}
	if string(events[1].Batch) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("batch = %v, want [1 2 3 4]", events[1].Batch)
	}
	if events[2].Kind != EventContainerEnd {
		t.Fatalf("event 2 = %v, want ContainerEnd", events[2].Kind)
	}
	if events[3].Kind != EventEnd {
		t.Fatalf("event 3 = %v, want End", events[3].Kind)
	}
}

// TestTraversalAncestorPath checks the ancestor_path reported for a value
// nested two containers deep names both enclosing frames in order.
func TestTraversalAncestorPath(t *testing.T) {
	v := TupleValue{Elements: []Value{
		ArrayValue{ElementKind: KindTuple, Elements: []Value{
			TupleValue{Elements: []Value{U8Value(42)}},
		}},
	}}
	payload, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tr := NewTraverser(payload, PayloadPrefixMode(PrefixScryptoPayload), testMaxDepth, testMaxSize, true, nil)
	var leaf Event
	for {
		ev := tr.NextEvent()
		if ev.Kind == EventTerminalValue {
			leaf = ev
			break
		}
		if ev.Kind == EventDecodeError || ev.Kind == EventEnd {
			t.Fatalf("reached %v before finding a terminal value", ev.Kind)
		}
	}
	if len(leaf.Location.AncestorPath) != 3 {
		t.Fatalf("ancestor path depth = %d, want 3: %+v", len(leaf.Location.AncestorPath), leaf.Location.AncestorPath)
	}
	if leaf.Location.AncestorPath[0].Header.Kind != KindTuple {
		t.Fatalf("root ancestor kind = %v, want Tuple", leaf.Location.AncestorPath[0].Header.Kind)
	}
	if leaf.Location.AncestorPath[1].Header.Kind != KindArray {
		t.Fatalf("ancestor[1] kind = %v, want Array", leaf.Location.AncestorPath[1].Header.Kind)
	}
	if leaf.Location.AncestorPath[2].Header.Kind != KindTuple {
		t.Fatalf("ancestor[2] kind = %v, want Tuple", leaf.Location.AncestorPath[2].Header.Kind)
	}
}

func TestTraversalMaxDepthExceeded(t *testing.T) {
	v := deepTuple(10)
	payload, err := Encode(PrefixScryptoPayload, v, 32, testMaxSize)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	tr := NewTraverser(payload, PayloadPrefixMode(PrefixScryptoPayload), 3, testMaxSize, true, nil)
	var lastErr error
	for {
		ev := tr.NextEvent()
		if ev.Kind == EventDecodeError {
			lastErr = ev.Err
			break
		}
		if ev.Kind == EventEnd {
			t.Fatalf("expected MaxDepthExceeded, traversal completed instead")
		}
	}
	if lastErr != ErrMaxDepthExceeded {
		t.Fatalf("got %v, want ErrMaxDepthExceeded", lastErr)
	}
}

func TestWalkMatchesTraverser(t *testing.T) {
	v := TupleValue{Elements: []Value{
		U8Value(1),
		ArrayValue{ElementKind: KindU8, Elements: []Value{U8Value(9), U8Value(8)}},
	}}
	payload, err := Encode(PrefixScryptoPayload, v, testMaxDepth, testMaxSize)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var starts, ends, terminals, batches int
	visitor := VisitorFuncs{
		ContainerStart: func(ContainerHeader, Location) error { starts++; return nil },
		ContainerEnd:   func(ContainerHeader, Location) error { ends++; return nil },
		TerminalValue:  func(TerminalValueRef, Location) error { terminals++; return nil },
		TerminalBatch:  func([]byte, Location) error { batches++; return nil },
	}
	tr := NewTraverser(payload, PayloadPrefixMode(PrefixScryptoPayload), testMaxDepth, testMaxSize, true, nil)
	if err := Walk(tr, visitor); err != nil {
		t.Fatalf("walk: %v", err)
	}
	// root Tuple + nested Array = 2 ContainerStart/End pairs.
	if starts != 2 || ends != 2 {
		t.Fatalf("starts=%d ends=%d, want 2/2", starts, ends)
	}
	// U8Value(1) is terminal; the nested byte array collapses to one batch.
	if terminals != 1 || batches != 1 {
		t.Fatalf("terminals=%d batches=%d, want 1/1", terminals, batches)
	}
}
