// Package codec turns arbitrary values into the byte payloads the cache
// stores. The encoded length is what the cache accounts for.
package codec

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// ErrCorrupt is returned when a payload cannot have come from the codec
// decoding it.
var ErrCorrupt = errors.New("codec: corrupt payload")

// Codec encodes values to bytes and back.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON encodes values as JSON.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("codec: json marshal: %w", err)
	}
	return b, nil
}

func (JSON) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec: json unmarshal: %w", err)
	}
	return nil
}
