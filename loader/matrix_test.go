package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/episcan"
)

const demoMatrix = `# demo study
marker i1 i2 i3 i4
rs1 AA AG GG 00

rs2 CC CT TT CC
rs3 AA XY AG GG
rs4 AA AG
`

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader(context.Background(), strings.NewReader(demoMatrix), "demo.txt")
	require.NoError(t, err)
	assert.Equal(t, "marker", h.Label)
	assert.Equal(t, []string{"i1", "i2", "i3", "i4"}, h.Individuals)
	assert.Equal(t, []string{"rs1", "rs2", "rs3", "rs4"}, h.Markers)
}

func TestReadHeader_Missing(t *testing.T) {
	for _, in := range []string{"", "# only comments\n", "marker\n"} {
		_, err := ReadHeader(context.Background(), strings.NewReader(in), "x")
		assert.ErrorIs(t, err, ErrNoHeader, "input %q", in)
	}
}

func TestReadMatrix_Study(t *testing.T) {
	ctx := context.Background()
	h, err := ReadHeader(ctx, strings.NewReader(demoMatrix), "demo.txt")
	require.NoError(t, err)

	study, err := episcan.New(h.Markers, h.Individuals)
	require.NoError(t, err)
	defer study.Close()

	rep, err := ReadMatrix(ctx, strings.NewReader(demoMatrix), "demo.txt", study)
	require.NoError(t, err)
	assert.Equal(t, 4, rep.Rows)
	assert.Equal(t, 2, rep.Loaded)
	require.Len(t, rep.Rejected, 2)

	var le *LineError
	require.True(t, errors.As(rep.Rejected[0], &le))
	assert.Equal(t, 6, le.Line)
	assert.Equal(t, "rs3", le.Marker)
	assert.ErrorIs(t, le, episcan.ErrMalformedCall)

	require.True(t, errors.As(rep.Rejected[1], &le))
	assert.Equal(t, 7, le.Line)
	assert.ErrorIs(t, le, ErrColumnCount)

	// Reloading rejects every row; rejections stay in line order.
	rep, err = ReadMatrix(ctx, strings.NewReader(demoMatrix), "demo.txt", study, WithWorkers(4))
	require.NoError(t, err)
	assert.Equal(t, 0, rep.Loaded)
	require.Len(t, rep.Rejected, 4)
	assert.ErrorIs(t, rep.Rejected[0], episcan.ErrAlreadyLoaded)
	assert.ErrorIs(t, rep.Rejected[1], episcan.ErrAlreadyLoaded)
	assert.ErrorIs(t, rep.Rejected[2], episcan.ErrMalformedCall)

	d, err := study.Distribution("rs1")
	require.NoError(t, err)
	assert.Equal(t, 1, d.HomMajor)
	assert.Equal(t, 1, d.Het)
	assert.Equal(t, 1, d.HomMinor)
	assert.Equal(t, 1, d.Missing)

	d, err = study.Distribution("rs2")
	require.NoError(t, err)
	assert.Equal(t, 2, d.HomMajor)
	assert.False(t, study.Loaded("rs3"))
}

// recordingSink accepts every row.
type recordingSink struct {
	ids  []string
	mu   sync.Mutex
	rows map[string][]string
	fail map[string]error
}

func (s *recordingSink) Individuals() []string { return s.ids }

func (s *recordingSink) AddRow(marker string, calls []string) error {
	if err := s.fail[marker]; err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows == nil {
		s.rows = make(map[string][]string)
	}
	s.rows[marker] = calls
	return nil
}

func TestReadMatrix_HeaderMismatch(t *testing.T) {
	sink := &recordingSink{ids: []string{"i1", "i2", "i4", "i3"}}
	_, err := ReadMatrix(context.Background(), strings.NewReader(demoMatrix), "demo.txt", sink)
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.Empty(t, sink.rows)
}

func TestReadMatrix_ErrorBudget(t *testing.T) {
	boom := errors.New("boom")
	var b strings.Builder
	b.WriteString("marker a b\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "m%d AA AG\n", i)
	}
	fail := map[string]error{}
	for i := 0; i < 20; i += 2 {
		fail[fmt.Sprintf("m%d", i)] = boom
	}

	t.Run("within budget", func(t *testing.T) {
		sink := &recordingSink{ids: []string{"a", "b"}, fail: fail}
		rep, err := ReadMatrix(context.Background(), strings.NewReader(b.String()), "m.txt", sink, WithMaxErrors(10))
		require.NoError(t, err)
		assert.Equal(t, 10, rep.Loaded)
		assert.Len(t, rep.Rejected, 10)
		assert.ErrorIs(t, rep.Rejected[9], boom)
	})

	t.Run("exhausted", func(t *testing.T) {
		sink := &recordingSink{ids: []string{"a", "b"}, fail: fail}
		_, err := ReadMatrix(context.Background(), strings.NewReader(b.String()), "m.txt", sink, WithMaxErrors(3), WithWorkers(2))
		assert.ErrorIs(t, err, ErrTooManyErrors)
	})

	t.Run("unlimited", func(t *testing.T) {
		sink := &recordingSink{ids: []string{"a", "b"}, fail: fail}
		rep, err := ReadMatrix(context.Background(), strings.NewReader(b.String()), "m.txt", sink, WithMaxErrors(-1))
		require.NoError(t, err)
		assert.Len(t, rep.Rejected, 10)
	})
}

func TestReadMatrix_ProgressAndCancel(t *testing.T) {
	var b strings.Builder
	b.WriteString("marker a\n")
	for i := 0; i < 3000; i++ {
		fmt.Fprintf(&b, "m%d AA\n", i)
	}

	var seen []int
	sink := &recordingSink{ids: []string{"a"}}
	rep, err := ReadMatrix(context.Background(), strings.NewReader(b.String()), "m.txt", sink,
		WithProgress(func(rows int) { seen = append(seen, rows) }))
	require.NoError(t, err)
	assert.Equal(t, 3000, rep.Loaded)
	assert.Equal(t, []int{1024, 2048, 3000}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadMatrix(ctx, strings.NewReader(b.String()), "m.txt", &recordingSink{ids: []string{"a"}})
	assert.ErrorIs(t, err, context.Canceled)
}
