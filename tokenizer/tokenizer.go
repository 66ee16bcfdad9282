package tokenizer

import "strings"

// DefaultMaxTokens bounds the number of tokens produced when no explicit
// bound is given. It is also the deepest command path the tree can resolve.
const DefaultMaxTokens = 32

// Delimiters separate tokens. Runs of delimiters collapse into one.
const Delimiters = " \t\r\n"

type Tokenizer struct {
	maxTokens int
}

// NewTokenizer returns a Tokenizer that stops after maxTokens tokens.
// A non-positive bound selects DefaultMaxTokens.
func NewTokenizer(maxTokens int) *Tokenizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Tokenizer{maxTokens: maxTokens}
}

// MaxTokens reports the bound applied by Tokenize and Split.
func (t *Tokenizer) MaxTokens() int {
	return t.maxTokens
}

// Tokenize splits line into at most MaxTokens non-empty tokens.
// Anything past the bound is dropped without error.
func (t *Tokenizer) Tokenize(line string) []string {
	tokens, _ := t.Split(line)
	return tokens
}

// Split is Tokenize that also reports whether input past the bound was dropped.
func (t *Tokenizer) Split(line string) ([]string, bool) {
	var tokens []string
	rest := line
	for {
		rest = strings.TrimLeft(rest, Delimiters)
		if rest == "" {
			return tokens, false
		}
		if len(tokens) == t.maxTokens {
			return tokens, true
		}

		end := strings.IndexAny(rest, Delimiters)
		if end < 0 {
			end = len(rest)
		}
		// Clone so callers never pin or share the caller's line buffer.
		tokens = append(tokens, strings.Clone(rest[:end]))
		rest = rest[end:]
	}
}

// Tokenize splits line with a one-off Tokenizer bounded by maxTokens.
func Tokenize(line string, maxTokens int) []string {
	return NewTokenizer(maxTokens).Tokenize(line)
}
