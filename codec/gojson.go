package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes records with github.com/goccy/go-json. HTML characters are
// left unescaped since records are data files, not markup.
type GoJSON struct{}

func (GoJSON) Append(dst []byte, v any) ([]byte, error) {
	b, err := gojson.MarshalNoEscape(v)
	if err != nil {
		return dst, err
	}
	return append(dst, b...), nil
}

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }
