package cmdtree

import (
	"fmt"
	"io"
)

// Output is a report buffer that never grows past its capacity. Writes that
// do not fit are cut short and return io.ErrShortWrite.
type Output struct {
	buf      []byte
	capacity int
}

func NewOutput(capacity int) *Output {
	if capacity < 0 {
		capacity = 0
	}
	return &Output{capacity: capacity}
}

func (o *Output) Write(p []byte) (int, error) {
	n := len(p)
	if room := o.Available(); n > room {
		n = room
	}
	o.buf = append(o.buf, p[:n]...)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (o *Output) WriteString(s string) (int, error) {
	return o.Write([]byte(s))
}

// Printf formats into the buffer and returns the number of bytes that fit.
func (o *Output) Printf(format string, args ...any) int {
	n, _ := fmt.Fprintf(o, format, args...)
	return n
}

// Fits reports whether n more bytes can be written without truncation.
func (o *Output) Fits(n int) bool {
	return n <= o.Available()
}

func (o *Output) Available() int {
	return o.capacity - len(o.buf)
}

func (o *Output) Cap() int {
	return o.capacity
}

func (o *Output) Len() int {
	return len(o.buf)
}

func (o *Output) String() string {
	return string(o.buf)
}

func (o *Output) Reset() {
	o.buf = o.buf[:0]
}
