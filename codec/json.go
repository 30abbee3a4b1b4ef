package codec

import (
	"bytes"
	"encoding/json"
)

// JSON encodes records with encoding/json. Its output matches GoJSON's
// except for HTML escaping.
type JSON struct{}

func (JSON) Append(dst []byte, v any) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return dst, err
	}
	// Encode terminates the document with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }
