package report

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"

	"github.com/hupe1980/episcan"
	"github.com/hupe1980/episcan/codec"
)

// TSVHeader lists the TSV columns.
var TSVHeader = []string{"marker_a", "marker_b", "statistic", "p_value"}

// TSVSink writes tab-separated rows.
type TSVSink struct {
	w      *csv.Writer
	header bool
}

// NewTSV returns a sink writing to w. Close flushes but does not close w.
func NewTSV(w io.Writer) *TSVSink {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &TSVSink{w: cw}
}

func (s *TSVSink) Write(r episcan.PairResult) error {
	if !s.header {
		s.header = true
		if err := s.w.Write(TSVHeader); err != nil {
			return err
		}
	}
	return s.w.Write([]string{
		r.MarkerA,
		r.MarkerB,
		strconv.FormatFloat(r.Statistic, 'g', -1, 64),
		strconv.FormatFloat(r.PValue, 'g', -1, 64),
	})
}

// Close writes the header if no row was written and flushes.
func (s *TSVSink) Close() error {
	if !s.header {
		s.header = true
		_ = s.w.Write(TSVHeader)
	}
	s.w.Flush()
	return s.w.Error()
}

// WriteTSV writes results as a complete TSV document.
func WriteTSV(w io.Writer, results []episcan.PairResult) error {
	s := NewTSV(w)
	for _, r := range results {
		if err := s.Write(r); err != nil {
			return err
		}
	}
	return s.Close()
}

// JSONLSink writes one record per result, contingency tables included.
type JSONLSink struct {
	enc *codec.Encoder
}

// NewJSONL returns a sink writing to w with c. A nil codec selects
// codec.Default.
func NewJSONL(w io.Writer, c codec.Codec) *JSONLSink {
	return &JSONLSink{enc: codec.NewEncoder(w, c)}
}

func (s *JSONLSink) Write(r episcan.PairResult) error { return s.enc.Encode(r) }

// Close flushes buffered output.
func (s *JSONLSink) Close() error { return s.enc.Flush() }

// ReadJSONL decodes the results written by a JSONLSink and passes them to fn
// in file order.
func ReadJSONL(r io.Reader, c codec.Codec, fn func(episcan.PairResult) error) error {
	dec := codec.NewDecoder(r, c)
	for {
		var res episcan.PairResult
		if err := dec.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := fn(res); err != nil {
			return err
		}
	}
}
