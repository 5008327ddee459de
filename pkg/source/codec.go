package source

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
)

var (
	frameEncMode cbor.EncMode
	frameDecMode cbor.DecMode
)

func init() {
	var err error
	frameEncMode, err = cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		IndefLength: cbor.IndefLengthForbidden,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("source: frame encoder mode: %v", err))
	}
	frameDecMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("source: frame decoder mode: %v", err))
	}
}

// Encoder writes frames as a CBOR stream.
type Encoder struct {
	mu    sync.Mutex
	enc   *cbor.Encoder
	start time.Time
	now   func() time.Time
	count int
}

// NewEncoder returns an Encoder writing to w. Frames without an Offset are
// stamped with the time elapsed since the first Encode.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: frameEncMode.NewEncoder(w), now: time.Now}
}

// Encode writes one frame.
func (e *Encoder) Encode(f Frame) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if e.count == 0 {
		e.start = now
	}
	if f.Offset == 0 {
		f.Offset = now.Sub(e.start)
	}
	if err := e.enc.Encode(f); err != nil {
		return fmt.Errorf("encode frame %d: %w", e.count, err)
	}
	e.count++
	return nil
}

// Count returns the number of frames written.
func (e *Encoder) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// Decoder reads frames from a CBOR stream.
type Decoder struct {
	dec *cbor.Decoder
	n   int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: frameDecMode.NewDecoder(r)}
}

// Decode reads the next frame. It returns io.EOF at a clean end of stream.
func (d *Decoder) Decode() (Frame, error) {
	var f Frame
	if err := d.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("decode frame %d: %w", d.n, err)
	}
	d.n++
	return f, nil
}
