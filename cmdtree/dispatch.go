package cmdtree

import (
	"fmt"

	"go.uber.org/zap"
)

// FallbackMessage replaces the report whenever dispatch has nothing to show
// or the resolved action fails.
const FallbackMessage = "Missing parameter or unsupported command.\n"

// TerminatorLen is the room reserved in every report for the terminating
// character a caller appends. Capacities passed to Dispatch include it.
const TerminatorLen = 1

// Action runs a command. args holds the tokens that followed the command's
// path. The action writes its report to out and returns how many bytes it
// wrote; a non-positive count or a non-nil error marks the command as failed.
type Action func(args []string, out *Output) (int, error)

// Report is the outcome of a dispatch.
type Report struct {
	Text string
	// Written is len(Text) plus TerminatorLen.
	Written int
	// Err is set when Text is FallbackMessage. A failing action's own error
	// is preserved as an *ActionError.
	Err error
}

// Exec tokenizes line and dispatches the tokens.
func (r *Registry) Exec(line string, capacity int) Report {
	return r.Dispatch(r.tok.Tokenize(line), capacity)
}

// Dispatch resolves args against the tree and produces a report of at most
// capacity bytes including the terminator.
//
// With no args the root commands are listed. Otherwise args are consumed as a
// command path: a resolved command with an action runs with the remaining
// args; one without an action lists its subcommands; a path that stops on an
// unknown name lists the commands available at that level.
func (r *Registry) Dispatch(args []string, capacity int) Report {
	out := NewOutput(capacity - TerminatorLen)

	var n int
	var err error
	if len(args) == 0 {
		n = r.list(out, r.roots)
	} else {
		slot, consumed, missed := r.walk(args)
		switch {
		case missed:
			n = r.list(out, r.setOf(slot))
		case r.nodes[slot].action != nil:
			n, err = r.run(slot, args[consumed:], out)
		default:
			n = r.list(out, r.nodes[slot].children)
		}
	}

	if n <= 0 || err != nil {
		if err == nil {
			err = ErrUnsupported
		}
		out.Reset()
		out.WriteString(FallbackMessage)
	}

	return Report{
		Text:    out.String(),
		Written: out.Len() + TerminatorLen,
		Err:     err,
	}
}

func (r *Registry) run(slot int, args []string, out *Output) (int, error) {
	path := r.path(slot)
	n, err := r.nodes[slot].action(args, out)
	if err == nil && n <= 0 {
		err = ErrNoOutput
	}
	if err != nil {
		r.logger.Debug("command failed", zap.String("path", path), zap.Error(err))
		return n, &ActionError{Path: path, Err: err}
	}
	return n, nil
}

// list writes one "<name> <sep> <comment>" line per command in set and
// returns the bytes written. Lines that would not fit whole are dropped.
func (r *Registry) list(out *Output, set *siblingSet) int {
	start := out.Len()
	for _, slot := range set.orderOrNil() {
		n := &r.nodes[slot]
		line := fmt.Sprintf("%s %s %s\n", n.name, r.separator, n.comment)
		if !out.Fits(len(line)) {
			break
		}
		out.WriteString(line)
	}
	return out.Len() - start
}
