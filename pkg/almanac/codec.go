package almanac

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is a year file encoding.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// ParseFormat accepts "json", "msgpack", or "" for JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", JSON:
		return JSON, nil
	case MsgPack:
		return MsgPack, nil
	default:
		return "", fmt.Errorf("unknown data format %q", s)
	}
}

// Ext is the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

// FileName is the year file name, such as "1993.json".
func (f Format) FileName(year int) string {
	return fmt.Sprintf("%d.%s", year, f.Ext())
}

// ContentType is the HTTP media type of the format.
func (f Format) ContentType() string {
	if f == MsgPack {
		return "application/x-msgpack"
	}
	return "application/json"
}

// Encode writes y to w. MessagePack uses the JSON field names.
func Encode(w io.Writer, y YearData, f Format) error {
	switch f {
	case MsgPack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		enc.SetSortMapKeys(true)
		return enc.Encode(y)
	default:
		return json.NewEncoder(w).Encode(y)
	}
}

// Decode reads a year file from r.
func Decode(r io.Reader, f Format) (YearData, error) {
	var y YearData
	switch f {
	case MsgPack:
		dec := msgpack.NewDecoder(r)
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&y); err != nil {
			return nil, fmt.Errorf("decode msgpack year data: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&y); err != nil {
			return nil, fmt.Errorf("decode json year data: %w", err)
		}
	}
	return y, nil
}

// EncodeFacts writes the trivia list as a JSON array.
func EncodeFacts(w io.Writer, facts []string) error {
	if facts == nil {
		facts = []string{}
	}
	return json.NewEncoder(w).Encode(facts)
}

// DecodeFacts reads a JSON array of strings.
func DecodeFacts(r io.Reader) ([]string, error) {
	var facts []string
	if err := json.NewDecoder(r).Decode(&facts); err != nil {
		return nil, fmt.Errorf("decode facts: %w", err)
	}
	return facts, nil
}
