package proto

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the wire encoding of frames
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat maps a query value to a Format; empty means JSON
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack:
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unknown frame format %q", s)
}

// Binary reports whether frames must go out as binary websocket messages
func (f Format) Binary() bool {
	return f == FormatMsgpack
}

// Encode serialises v in the chosen format
func (f Format) Encode(v any) ([]byte, error) {
	switch f {
	case FormatMsgpack:
		data, err := msgpack.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("msgpack encode: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		return data, nil
	}
}

// Decode parses data produced by Encode in the same format
func (f Format) Decode(data []byte, v any) error {
	switch f {
	case FormatMsgpack:
		if err := msgpack.Unmarshal(data, v); err != nil {
			return fmt.Errorf("msgpack decode: %w", err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("json decode: %w", err)
		}
	}
	return nil
}

// EncodeFrame is Encode for frames
func EncodeFrame(f Format, frame Frame) ([]byte, error) {
	return f.Encode(&frame)
}
