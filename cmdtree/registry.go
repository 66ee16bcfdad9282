package cmdtree

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/clems4ever/cmdtree/tokenizer"
)

const (
	// MaxNameLength is the default bound on a command name, in bytes.
	MaxNameLength = 32
	// MaxCommentLength is the default bound on a command comment, in bytes.
	MaxCommentLength = 80
	// DefaultSeparator sits between name and comment in usage listings.
	DefaultSeparator = "-"
)

const noParent = -1

// Handle identifies a registered command. The zero Handle never refers to a
// command, and a Handle to a destroyed command stays invalid even if its
// storage is reused.
type Handle struct {
	slot int
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Info describes a registered command.
type Info struct {
	Name     string
	Comment  string
	Path     string // space separated names from the root down to this command
	Runnable bool   // the command has an action
	Parent   Handle // zero for root-level commands
	Children int
}

type node struct {
	name     string
	comment  string
	action   Action
	parent   int
	children *siblingSet
	gen      uint32
	live     bool
}

// Registry is a forest of named commands. The zero value is not usable;
// create one with New. A Registry is not safe for concurrent use.
type Registry struct {
	nodes []node
	free  []int
	roots *siblingSet

	tok        *tokenizer.Tokenizer
	logger     *zap.Logger
	separator  string
	maxName    int
	maxComment int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger routes registry diagnostics to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxTokens bounds how many tokens Exec and path resolution consider.
func WithMaxTokens(n int) Option {
	return func(r *Registry) {
		r.tok = tokenizer.NewTokenizer(n)
	}
}

// WithSeparator changes the text between name and comment in listings.
func WithSeparator(sep string) Option {
	return func(r *Registry) {
		r.separator = sep
	}
}

// WithLimits overrides the name and comment length bounds. Non-positive
// values keep the defaults.
func WithLimits(maxName, maxComment int) Option {
	return func(r *Registry) {
		if maxName > 0 {
			r.maxName = maxName
		}
		if maxComment > 0 {
			r.maxComment = maxComment
		}
	}
}

// New returns an empty registry configured by opts.
func New(opts ...Option) *Registry {
	r := &Registry{
		tok:        tokenizer.NewTokenizer(tokenizer.DefaultMaxTokens),
		logger:     zap.NewNop(),
		separator:  DefaultSeparator,
		maxName:    MaxNameLength,
		maxComment: MaxCommentLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a command named name below the command at parentPath, or at
// the root level when parentPath is empty. The parent path must resolve
// completely; otherwise nothing is created and ErrNoSuchParent is returned.
// Names are unique among siblings.
func (r *Registry) Register(name, comment string, action Action, parentPath string) (Handle, error) {
	if err := r.validate(name, comment); err != nil {
		return Handle{}, fmt.Errorf("failed to register %q: %w", name, err)
	}

	parent := noParent
	if parentPath != "" {
		h, err := r.Lookup(parentPath)
		if err != nil {
			r.logger.Warn("unable to detect parent command",
				zap.String("name", name),
				zap.String("parent", parentPath))
			return Handle{}, fmt.Errorf("failed to register %q: %w: %q", name, ErrNoSuchParent, parentPath)
		}
		parent = h.slot
	}

	if _, exists := r.setOf(parent).lookup(name); exists {
		return Handle{}, fmt.Errorf("failed to register %q: %w", name, ErrDuplicateName)
	}

	slot := r.alloc(node{
		name:    name,
		comment: comment,
		action:  action,
		parent:  parent,
	})
	r.ensureSet(parent).add(name, slot)

	r.logger.Debug("command registered",
		zap.String("name", name),
		zap.String("parent", parentPath),
		zap.Bool("runnable", action != nil))

	return r.handle(slot), nil
}

// Destroy removes a command. A command that still has subcommands is left in
// place and ErrHasChildren is returned; destroy children first.
func (r *Registry) Destroy(h Handle) error {
	n, err := r.get(h)
	if err != nil {
		return err
	}
	if n.children.len() > 0 {
		r.logger.Warn("refusing to destroy command with subcommands",
			zap.String("path", r.path(h.slot)),
			zap.Int("children", n.children.len()))
		return fmt.Errorf("failed to destroy %q: %w", n.name, ErrHasChildren)
	}

	set := r.setOf(n.parent)
	set.remove(n.name)
	if set.len() == 0 {
		r.clearSet(n.parent)
	}

	r.logger.Debug("command destroyed", zap.String("name", n.name))
	r.release(h.slot)
	return nil
}

// Resolve walks path segment by segment from the root level. It returns the
// deepest command reached and the segments that were not consumed. ok is
// false when not even the first segment names a root command. Segments past
// the token bound are not considered.
//
// The walk stops early at a command without subcommands, so "info x" resolves
// to "info" with rest ["x"].
func (r *Registry) Resolve(path string) (h Handle, rest []string, ok bool) {
	h, rest, ok, _ = r.resolve(path)
	return h, rest, ok
}

// Lookup returns the command at path, which must resolve in full. A path
// longer than the token bound never resolves.
func (r *Registry) Lookup(path string) (Handle, error) {
	h, rest, ok, truncated := r.resolve(path)
	if truncated {
		return Handle{}, fmt.Errorf("%w: %q exceeds %d segments", ErrNotFound, path, r.tok.MaxTokens())
	}
	if !ok || len(rest) > 0 {
		return Handle{}, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return h, nil
}

func (r *Registry) resolve(path string) (h Handle, rest []string, ok, truncated bool) {
	segs, truncated := r.tok.Split(path)
	slot, consumed, _ := r.walk(segs)
	if slot == noParent {
		return Handle{}, segs, false, truncated
	}
	return r.handle(slot), segs[consumed:], true, truncated
}

// Root returns the first root-level command still registered.
func (r *Registry) Root() (Handle, bool) {
	if r.roots.len() == 0 {
		return Handle{}, false
	}
	return r.handle(r.roots.order[0]), true
}

// Roots returns the root-level commands in registration order.
func (r *Registry) Roots() []Handle {
	return r.handles(r.roots)
}

// Children returns the direct subcommands of h in registration order.
func (r *Registry) Children(h Handle) ([]Handle, error) {
	n, err := r.get(h)
	if err != nil {
		return nil, err
	}
	return r.handles(n.children), nil
}

func (r *Registry) Info(h Handle) (Info, error) {
	n, err := r.get(h)
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Name:     n.name,
		Comment:  n.comment,
		Path:     r.path(h.slot),
		Runnable: n.action != nil,
		Children: n.children.len(),
	}
	if n.parent != noParent {
		info.Parent = r.handle(n.parent)
	}
	return info, nil
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.nodes) - len(r.free)
}

// Reset drops every command. Handles issued before Reset become invalid.
func (r *Registry) Reset() {
	for i := range r.nodes {
		if r.nodes[i].live {
			r.release(i)
		}
	}
	r.roots = nil
}

func (r *Registry) validate(name, comment string) error {
	if name == "" || strings.ContainsAny(name, tokenizer.Delimiters) {
		return ErrInvalidName
	}
	if len(name) > r.maxName {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(name), r.maxName)
	}
	if len(comment) > r.maxComment {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrCommentTooLong, len(comment), r.maxComment)
	}
	return nil
}

// walk descends from the root level one segment at a time. It returns the
// deepest slot reached (noParent if none), how many segments were consumed,
// and whether the walk ended on a failed lookup. A command without
// subcommands ends the walk even if segments remain.
func (r *Registry) walk(segs []string) (slot, consumed int, missed bool) {
	slot = noParent
	set := r.roots
	for consumed < len(segs) {
		next, ok := set.lookup(segs[consumed])
		if !ok {
			return slot, consumed, true
		}
		slot = next
		consumed++

		set = r.nodes[slot].children
		if set.len() == 0 {
			break
		}
	}
	return slot, consumed, false
}

func (r *Registry) get(h Handle) (*node, error) {
	if h.gen == 0 || h.slot < 0 || h.slot >= len(r.nodes) {
		return nil, ErrStaleHandle
	}
	n := &r.nodes[h.slot]
	if !n.live || n.gen != h.gen {
		return nil, ErrStaleHandle
	}
	return n, nil
}

func (r *Registry) handle(slot int) Handle {
	return Handle{slot: slot, gen: r.nodes[slot].gen}
}

func (r *Registry) handles(set *siblingSet) []Handle {
	if set.len() == 0 {
		return nil
	}
	out := make([]Handle, 0, set.len())
	for _, slot := range set.order {
		out = append(out, r.handle(slot))
	}
	return out
}

func (r *Registry) path(slot int) string {
	var names []string
	for s := slot; s != noParent; s = r.nodes[s].parent {
		names = append(names, r.nodes[s].name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}

// setOf returns the sibling set below parent, or nil if it is empty.
func (r *Registry) setOf(parent int) *siblingSet {
	if parent == noParent {
		return r.roots
	}
	return r.nodes[parent].children
}

func (r *Registry) ensureSet(parent int) *siblingSet {
	if parent == noParent {
		if r.roots == nil {
			r.roots = newSiblingSet()
		}
		return r.roots
	}
	if r.nodes[parent].children == nil {
		r.nodes[parent].children = newSiblingSet()
	}
	return r.nodes[parent].children
}

func (r *Registry) clearSet(parent int) {
	if parent == noParent {
		r.roots = nil
		return
	}
	r.nodes[parent].children = nil
}

func (r *Registry) alloc(n node) int {
	n.live = true
	if k := len(r.free); k > 0 {
		slot := r.free[k-1]
		r.free = r.free[:k-1]
		n.gen = r.nodes[slot].gen + 1
		if n.gen == 0 {
			n.gen = 1
		}
		r.nodes[slot] = n
		return slot
	}
	n.gen = 1
	r.nodes = append(r.nodes, n)
	return len(r.nodes) - 1
}

func (r *Registry) release(slot int) {
	r.nodes[slot] = node{gen: r.nodes[slot].gen}
	r.free = append(r.free, slot)
}
