package core

// streaming.go cleans up the raw bytes of the backing CSV before parsing:
//
//   - a leading UTF-8 BOM (0xEF 0xBB 0xBF, added by Excel and other Windows tools) is dropped
//   - invalid UTF-8 bytes are replaced with '?' so encoding/csv never sees them
//
// The reader works rune by rune on top of bufio, so arbitrarily small
// destination buffers are handled through a pending slice.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceReader strips a UTF-8 BOM and sanitizes invalid UTF-8 on the fly.
type SourceReader struct {
	br         *bufio.Reader
	bomChecked bool
	pending    []byte
	err        error
	replaced   int
}

// NewSourceReader wraps r for CSV decoding.
func NewSourceReader(r io.Reader) *SourceReader {
	return &SourceReader{br: bufio.NewReader(r)}
}

// Replaced returns how many invalid bytes have been replaced so far.
func (r *SourceReader) Replaced() int {
	return r.replaced
}

// Read implements io.Reader.
func (r *SourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if !r.bomChecked {
		r.bomChecked = true
		b, err := r.br.Peek(len(utf8BOM))
		switch {
		case err == nil && bytes.Equal(b, utf8BOM):
			_, _ = r.br.Discard(len(utf8BOM))
		case err != nil && err != io.EOF:
			r.err = err
		}
	}

	n := 0
	for n < len(p) {
		if len(r.pending) > 0 {
			c := copy(p[n:], r.pending)
			r.pending = r.pending[c:]
			n += c
			continue
		}
		if r.err != nil && r.br.Buffered() == 0 {
			break
		}

		ru, size, err := r.br.ReadRune()
		if err != nil {
			// bufio clears its error once returned, so keep it here.
			r.err = err
			break
		}

		var enc [utf8.UTFMax]byte
		w := 0
		if ru == utf8.RuneError && size == 1 {
			enc[0] = '?'
			w = 1
			r.replaced++
		} else {
			w = utf8.EncodeRune(enc[:], ru)
		}

		c := copy(p[n:], enc[:w])
		n += c
		if c < w {
			r.pending = append(r.pending[:0], enc[c:w]...)
		}
	}

	if n > 0 {
		return n, nil
	}
	return 0, r.err
}
