package loader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		err  bool
	}{
		{"2", StatusCase, false},
		{"1", StatusControl, false},
		{"0", StatusMissing, false},
		{"-9", StatusMissing, false},
		{"NA", StatusMissing, false},
		{"3", StatusMissing, true},
		{"case", StatusMissing, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.err {
				assert.ErrorIs(t, err, ErrStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "case", StatusCase.String())
}

func TestReadPhenotypes(t *testing.T) {
	in := "# id status\ni1 2\ni2 1\n\ni3 -9\ni4 2\ni5 0\n"
	p, err := ReadPhenotypes(context.Background(), strings.NewReader(in), "pheno.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"i1", "i4"}, p.Cases)
	assert.Equal(t, []string{"i2"}, p.Controls)
	assert.Equal(t, []string{"i3", "i5"}, p.Missing)
}

func TestReadPhenotypes_Errors(t *testing.T) {
	_, err := ReadPhenotypes(context.Background(), strings.NewReader("i1 2\ni2 7\n"), "p")
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
	assert.ErrorIs(t, err, ErrStatus)

	_, err = ReadPhenotypes(context.Background(), strings.NewReader("fam i1 2\n"), "p")
	assert.ErrorIs(t, err, ErrColumnCount)
	assert.Contains(t, err.Error(), "p:1:")
}
