package dispatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by NewTranscoder for an unrecognized
// console encoding name.
var ErrUnknownEncoding = errors.New("unknown console encoding")

// Transcoder re-encodes converter output (always UTF-8) for the console.
// A nil Transcoder passes bytes through unchanged.
type Transcoder struct {
	name string
	enc  encoding.Encoding
}

// NewTranscoder resolves an IANA or WHATWG encoding name such as "UTF-8",
// "GBK" or "Shift_JIS". UTF-8 and "" yield a pass-through transcoder.
func NewTranscoder(name string) (*Transcoder, error) {
	name = strings.TrimSpace(name)
	if name == "" || isUTF8(name) {
		return &Transcoder{name: "UTF-8"}, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		enc, err = htmlindex.Get(name)
	}
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	if enc == unicode.UTF8 {
		return &Transcoder{name: "UTF-8"}, nil
	}
	return &Transcoder{name: name, enc: enc}, nil
}

func isUTF8(name string) bool {
	n := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	return n == "utf8"
}

// Name returns the console encoding name.
func (t *Transcoder) Name() string {
	if t == nil {
		return "UTF-8"
	}
	return t.name
}

// Line converts one line. Runes the console encoding cannot represent are
// replaced rather than failing the line.
func (t *Transcoder) Line(b []byte) []byte {
	if t == nil || t.enc == nil {
		return b
	}
	chain := transform.Chain(unicode.UTF8.NewDecoder(), encoding.ReplaceUnsupported(t.enc.NewEncoder()))
	out, _, err := transform.Bytes(chain, b)
	if err != nil {
		return b
	}
	return out
}

// Drain copies r to w line by line until EOF. Each line, newline included,
// is transcoded and written with a single Write so lines from concurrent
// drains never interleave. Write errors do not stop the drain: the source
// is always read to EOF so the producing process cannot block. The first
// read or write error is returned.
func Drain(r io.Reader, w io.Writer, tc *Transcoder) error {
	br := bufio.NewReader(r)
	var firstErr error
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if _, werr := w.Write(tc.Line(line)); werr != nil && firstErr == nil {
				firstErr = werr
			}
		}
		if errors.Is(err, io.EOF) {
			return firstErr
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return firstErr
		}
	}
}

// Console serializes writes to stdout and stderr under one lock.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

// NewConsole wraps out and errw.
func NewConsole(out, errw io.Writer) *Console {
	return &Console{out: out, err: errw}
}

// Stdout returns a writer whose every Write is atomic with respect to the
// console.
func (c *Console) Stdout() io.Writer { return lockedWriter{c: c, w: c.out} }

// Stderr is Stdout for the error stream.
func (c *Console) Stderr() io.Writer { return lockedWriter{c: c, w: c.err} }

type lockedWriter struct {
	c *Console
	w io.Writer
}

func (l lockedWriter) Write(p []byte) (int, error) {
	l.c.mu.Lock()
	defer l.c.mu.Unlock()
	return l.w.Write(p)
}
