package codec

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// maxRecordBytes bounds a single decoded line.
const maxRecordBytes = 16 << 20

// Encoder writes one record per line.
type Encoder struct {
	w       *bufio.Writer
	c       Codec
	buf     []byte
	records int
}

// NewEncoder returns an Encoder writing to w. A nil codec selects Default.
func NewEncoder(w io.Writer, c Codec) *Encoder {
	if c == nil {
		c = Default
	}
	return &Encoder{w: bufio.NewWriter(w), c: c}
}

// Encode writes v followed by a newline. Output is buffered until Flush.
func (e *Encoder) Encode(v any) error {
	var err error
	e.buf, err = e.c.Append(e.buf[:0], v)
	if err != nil {
		return fmt.Errorf("%s: record %d: %w", e.c.Name(), e.records+1, err)
	}
	if bytes.IndexByte(e.buf, '\n') >= 0 {
		return fmt.Errorf("%s: record %d: %w", e.c.Name(), e.records+1, ErrMultiline)
	}
	e.buf = append(e.buf, '\n')
	if _, err := e.w.Write(e.buf); err != nil {
		return err
	}
	e.records++
	return nil
}

// Flush writes buffered records to the underlying writer.
func (e *Encoder) Flush() error { return e.w.Flush() }

// Decoder reads one record per line. Blank lines are skipped.
type Decoder struct {
	sc   *bufio.Scanner
	c    Codec
	line int
}

// NewDecoder returns a Decoder reading from r. A nil codec selects Default.
func NewDecoder(r io.Reader, c Codec) *Decoder {
	if c == nil {
		c = Default
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxRecordBytes)
	return &Decoder{sc: sc, c: c}
}

// Decode reads the next record into v. It returns io.EOF after the last
// record.
func (d *Decoder) Decode(v any) error {
	for d.sc.Scan() {
		d.line++
		data := bytes.TrimSpace(d.sc.Bytes())
		if len(data) == 0 {
			continue
		}
		if err := d.c.Unmarshal(data, v); err != nil {
			return fmt.Errorf("line %d: %w", d.line, err)
		}
		return nil
	}
	if err := d.sc.Err(); err != nil {
		return fmt.Errorf("line %d: %w", d.line+1, err)
	}
	return io.EOF
}
