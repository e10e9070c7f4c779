package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
)

const (
	flagRaw    byte = 0
	flagBrotli byte = 1
)

// DefaultCompressThreshold is the encoded size from which Compressed starts
// compressing. Smaller payloads rarely shrink enough to pay for the header.
const DefaultCompressThreshold = 512

// DefaultLevel selects brotli.DefaultCompression.
const DefaultLevel = -1

// Compressed wraps another codec and brotli-compresses payloads of at least
// Threshold bytes. Every payload carries a one-byte header saying which
// form follows, so the stored size stays deterministic for a given value.
type Compressed struct {
	Inner     Codec
	Level     int // brotli quality, 0..11; negative means brotli.DefaultCompression
	Threshold int // 0 means DefaultCompressThreshold
}

// NewCompressed wraps inner with the default level and threshold.
func NewCompressed(inner Codec) Compressed {
	return Compressed{Inner: inner, Level: DefaultLevel}
}

func (c Compressed) Marshal(v any) ([]byte, error) {
	raw, err := c.Inner.Marshal(v)
	if err != nil {
		return nil, err
	}

	threshold := c.Threshold
	if threshold <= 0 {
		threshold = DefaultCompressThreshold
	}
	if len(raw) < threshold {
		return append([]byte{flagRaw}, raw...), nil
	}

	level := c.Level
	if level < 0 {
		level = brotli.DefaultCompression
	}

	var buf bytes.Buffer
	buf.WriteByte(flagBrotli)
	w := brotli.NewWriterLevel(&buf, level)
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("codec: brotli write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: brotli close: %w", err)
	}
	return buf.Bytes(), nil
}

func (c Compressed) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrCorrupt)
	}

	switch data[0] {
	case flagRaw:
		return c.Inner.Unmarshal(data[1:], v)
	case flagBrotli:
		raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(data[1:])))
		if err != nil {
			return fmt.Errorf("%w: brotli: %v", ErrCorrupt, err)
		}
		return c.Inner.Unmarshal(raw, v)
	default:
		return fmt.Errorf("%w: unknown header %#x", ErrCorrupt, data[0])
	}
}
