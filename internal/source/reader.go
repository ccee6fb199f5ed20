package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/face"
)

// Stdin is the source name that selects standard input.
const Stdin = "-"

// MaxLineSize bounds a single encoded frame.
const MaxLineSize = 4 << 20

// ErrMalformedFrame marks a line that is not a valid frame. Reading can continue.
var ErrMalformedFrame = errors.New("malformed frame")

// line is the wire layout of a frame.
type line struct {
	Timestamp time.Time    `json:"timestamp"`
	Points    []face.Point `json:"points"`
}

// Reader decodes frames one line at a time. It is not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader decodes frames from r.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), MaxLineSize)

	return &Reader{scanner: scanner}
}

// Next returns the next frame. It returns io.EOF at the end of the stream and
// an error wrapping ErrMalformedFrame for a line that cannot be decoded.
func (r *Reader) Next(ctx context.Context) (*face.Frame, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("read frame: %w", err)
			}

			return nil, io.EOF
		}

		r.line++

		raw := r.scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}

		var l line
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("%w at line %d: %w", ErrMalformedFrame, r.line, err)
		}

		return &face.Frame{Timestamp: l.Timestamp, Points: l.Points}, nil
	}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Open opens the named source. Stdin selects standard input, which is not
// closed by the returned closer.
func Open(name string) (io.ReadCloser, error) {
	if name == "" || name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(filepath.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("open frame source: %w", err)
	}

	return f, nil
}

// Encode writes frame as one line to w.
func Encode(w io.Writer, frame *face.Frame) error {
	data, err := json.Marshal(line{Timestamp: frame.Timestamp, Points: frame.Points})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	data = append(data, '\n')

	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}
