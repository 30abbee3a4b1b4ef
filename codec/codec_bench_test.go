package codec

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type benchTable struct {
	MarkerA int       `json:"marker_a"`
	MarkerB int       `json:"marker_b"`
	Cells   [3][3]int `json:"cells"`
}

type benchPair struct {
	MarkerA   string     `json:"marker_a"`
	MarkerB   string     `json:"marker_b"`
	Statistic float64    `json:"statistic"`
	PValue    float64    `json:"p_value"`
	Case      benchTable `json:"case"`
	Control   benchTable `json:"control"`
}

var pair = benchPair{
	MarkerA:   "rs12345",
	MarkerB:   "rs67890",
	Statistic: 31.4159,
	PValue:    1.7e-6,
	Case:      benchTable{MarkerA: 1, MarkerB: 2, Cells: [3][3]int{{30, 12, 4}, {15, 20, 6}, {3, 7, 9}}},
	Control:   benchTable{MarkerA: 1, MarkerB: 2, Cells: [3][3]int{{60, 24, 8}, {30, 40, 12}, {6, 14, 18}}},
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, c.Name())
	}

	c, err := ByName("")
	require.NoError(t, err)
	assert.Equal(t, Default, c)

	c, err = ByName(" GoJSON ")
	require.NoError(t, err)
	assert.Equal(t, GoJSON{}, c)

	_, err = ByName("gob")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestCodecs_Agree(t *testing.T) {
	v := map[string]string{"marker": "rs1<chr1>&x"}

	std, err := JSON{}.Append(nil, v)
	require.NoError(t, err)
	fast, err := GoJSON{}.Append(nil, v)
	require.NoError(t, err)

	// Neither escapes HTML and neither adds a trailing newline.
	assert.Equal(t, string(std), string(fast))
	assert.Equal(t, `{"marker":"rs1<chr1>&x"}`, string(fast))
}

func TestAppend_KeepsPrefix(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		out, err := c.Append([]byte("x"), map[string]int{"a": 1})
		require.NoError(t, err)
		assert.Equal(t, `x{"a":1}`, string(out), c.Name())

		out, err = c.Append([]byte("x"), make(chan int))
		assert.Error(t, err)
		assert.Equal(t, "x", string(out), c.Name())
	}
}

func TestEncoderDecoder(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, c)
			second := pair
			second.MarkerB = "rs2"
			require.NoError(t, enc.Encode(pair))
			require.NoError(t, enc.Encode(second))
			assert.Zero(t, buf.Len(), "buffered until Flush")
			require.NoError(t, enc.Flush())
			assert.Equal(t, 2, strings.Count(buf.String(), "\n"))

			dec := NewDecoder(strings.NewReader("\n"+buf.String()+"\n\n"), c)
			var got []benchPair
			for {
				var p benchPair
				err := dec.Decode(&p)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				got = append(got, p)
			}
			assert.Equal(t, []benchPair{pair, second}, got)
		})
	}
}

func TestDecoder_Error(t *testing.T) {
	dec := NewDecoder(strings.NewReader("{\"a\":1}\n{oops\n"), nil)
	var v map[string]int
	require.NoError(t, dec.Decode(&v))
	err := dec.Decode(&v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

type multiline struct{}

func (multiline) Append(dst []byte, _ any) ([]byte, error) { return append(dst, "a\nb"...), nil }
func (multiline) Unmarshal([]byte, any) error { return nil }
func (multiline) Name() string { return "multiline" }

func TestEncoder_RejectsMultiline(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf, multiline{})
	assert.ErrorIs(t, enc.Encode(1), ErrMultiline)
	require.NoError(t, enc.Flush())
	assert.Zero(t, buf.Len())
}

func BenchmarkEncoder_Pair(b *testing.B) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			enc := NewEncoder(io.Discard, c)
			for b.Loop() {
				if err := enc.Encode(pair); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
