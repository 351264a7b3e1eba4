package sbor

// Visitor receives the same located events a Traverser produces, but as
// callbacks instead of a pull loop. Walk drives a Visitor from a Traverser,
// so both shapes share one event order and the same
// MaxDepthExceeded/trailing-byte behavior.
type Visitor interface {
	OnContainerStart(header ContainerHeader, loc Location) error
	OnContainerEnd(header ContainerHeader, loc Location) error
	OnTerminalValue(v TerminalValueRef, loc Location) error
	OnTerminalValueBatch(batch []byte, loc Location) error
}

// Walk drives v over every event produced by t until End or an error. A
// DecodeError event, or a non-nil error from any callback, stops the walk and
// is returned; a callback error always takes precedence so a visitor can
// reject input the underlying decode considers well-formed.
func Walk(t *Traverser, v Visitor) error {
	for {
		ev := t.NextEvent()
		switch ev.Kind {
		case EventContainerStart:
			if err := v.OnContainerStart(ev.Header, ev.Location); err != nil {
				return err
			}
		case EventContainerEnd:
			if err := v.OnContainerEnd(ev.Header, ev.Location); err != nil {
				return err
			}
		case EventTerminalValue:
			if err := v.OnTerminalValue(ev.Value, ev.Location); err != nil {
				return err
			}
		case EventTerminalValueBatch:
			if err := v.OnTerminalValueBatch(ev.Batch, ev.Location); err != nil {
				return err
			}
		case EventEnd:
			return nil
		case EventDecodeError:
			return ev.Err
		}
	}
}

// VisitorFuncs adapts four plain functions into a Visitor; a nil field is a
// no-op for that event kind. Most visitors only care about one or two events.
type VisitorFuncs struct {
	ContainerStart func(ContainerHeader, Location) error
	ContainerEnd   func(ContainerHeader, Location) error
	TerminalValue  func(TerminalValueRef, Location) error
	TerminalBatch  func([]byte, Location) error
}

func (f VisitorFuncs) OnContainerStart(h ContainerHeader, loc Location) error {
	if f.ContainerStart == nil {
		return nil
	}
	return f.ContainerStart(h, loc)
}

func (f VisitorFuncs) OnContainerEnd(h ContainerHeader, loc Location) error {
	if f.ContainerEnd == nil {
		return nil
	}
	return f.ContainerEnd(h, loc)
}

func (f VisitorFuncs) OnTerminalValue(v TerminalValueRef, loc Location) error {
	if f.TerminalValue == nil {
		return nil
	}
	return f.TerminalValue(v, loc)
}

func (f VisitorFuncs) OnTerminalValueBatch(b []byte, loc Location) error {
	if f.TerminalBatch == nil {
		return nil
	}
	return f.TerminalBatch(b, loc)
}
