// Package cmdtree implements a registry of named commands arranged as a
// forest, and a dispatcher that resolves a tokenized command line against it.
//
// Commands are registered under an optional parent path ("net route" names
// the "route" command below "net"). Every sibling set is indexed by name and
// remembers insertion order, which is the order usage listings are printed in.
//
// Dispatch never fails hard: an unknown or partial command path produces a
// listing of the commands available at the point where resolution stopped, so
// the tree documents itself from any prefix.
//
// A Registry is not safe for concurrent use. Callers that share one between
// goroutines must serialize every call.
package cmdtree
