package cmdtree

import (
	"strings"

	"github.com/clems4ever/cmdtree/tokenizer"
)

// Candidate is a possible next word for a partial command line.
type Candidate struct {
	Name    string
	Comment string
}

// Candidates returns the subcommands reachable after words whose names start
// with partial, in registration order. Every word must name a command with
// subcommands; otherwise there is nothing to complete.
func (r *Registry) Candidates(words []string, partial string) []Candidate {
	set := r.roots
	for _, w := range words {
		slot, ok := set.lookup(w)
		if !ok {
			return nil
		}
		set = r.nodes[slot].children
	}

	var out []Candidate
	for _, slot := range set.orderOrNil() {
		n := &r.nodes[slot]
		if strings.HasPrefix(n.name, partial) {
			out = append(out, Candidate{Name: n.name, Comment: n.comment})
		}
	}
	return out
}

// Complete returns full-line completions for line: the line with its last,
// partial word replaced by every matching command name. A line ending in a
// delimiter completes a fresh word.
func (r *Registry) Complete(line string) []string {
	words := r.tok.Tokenize(line)
	partial := ""
	if len(words) > 0 && !strings.ContainsAny(line[len(line)-1:], tokenizer.Delimiters) {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	prefix := strings.Join(words, " ")
	if prefix != "" {
		prefix += " "
	}

	var lines []string
	for _, c := range r.Candidates(words, partial) {
		lines = append(lines, prefix+c.Name)
	}
	return lines
}
