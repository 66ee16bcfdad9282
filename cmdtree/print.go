package cmdtree

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the whole forest to w, one command per line, indented two
// spaces per level. Commands without an action are marked with a trailing
// "/" after their name.
func (r *Registry) Fprint(w io.Writer) error {
	return r.fprintSet(w, r.roots, 0)
}

func (r *Registry) fprintSet(w io.Writer, set *siblingSet, depth int) error {
	indent := strings.Repeat("  ", depth)
	for _, slot := range set.orderOrNil() {
		n := &r.nodes[slot]
		name := n.name
		if n.action == nil {
			name += "/"
		}
		if _, err := fmt.Fprintf(w, "%s%s %s %s\n", indent, name, r.separator, n.comment); err != nil {
			return err
		}
		if err := r.fprintSet(w, n.children, depth+1); err != nil {
			return err
		}
	}
	return nil
}
