package csvlog

import (
	"bufio"
	"bytes"
	"io"
)

// completeLines passes through only newline-terminated lines. Bytes after the
// last newline are an unfinished row the engine is still appending and are
// held back in tail. A file without any newline is released whole so a lone
// header is still read.
type completeLines struct {
	br       *bufio.Reader
	ready    []byte
	tail     []byte
	released bool
	err      error
}

func newCompleteLines(r io.Reader) *completeLines {
	return &completeLines{br: bufio.NewReader(r)}
}

func (c *completeLines) Read(p []byte) (int, error) {
	for len(c.ready) == 0 {
		if c.err != nil {
			return 0, c.err
		}

		line, err := c.br.ReadBytes('\n')
		switch {
		case err == nil:
			c.ready = line
		case err == io.EOF && !c.released:
			c.ready, c.err = line, io.EOF
		case err == io.EOF:
			c.tail, c.err = line, io.EOF
		default:
			c.tail, c.err = line, err
		}
		if len(c.ready) > 0 {
			c.released = true
		}
	}

	n := copy(p, c.ready)
	c.ready = c.ready[n:]
	return n, nil
}

// partial reports whether an unterminated row was held back.
func (c *completeLines) partial() bool {
	return len(bytes.TrimSpace(c.tail)) > 0
}
