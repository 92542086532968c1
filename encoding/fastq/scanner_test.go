package fastq_test

import (
	"strings"
	"testing"

	"github.com/amptools/amplicon/encoding/fastq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	read1 = "@r1\nACGT\n+\nIIII\n"
	read2 = "@r2\nGGCC\n+r2\nJJJJ\n"
)

func TestScanner(t *testing.T) {
	sc := fastq.NewScanner(strings.NewReader(read1 + read2))
	var r fastq.Read
	require.True(t, sc.Scan(&r))
	assert.Equal(t, fastq.Read{ID: "@r1", Seq: "ACGT", Unk: "+", Qual: "IIII"}, r)
	require.True(t, sc.Scan(&r))
	assert.Equal(t, fastq.Read{ID: "@r2", Seq: "GGCC", Unk: "+r2", Qual: "JJJJ"}, r)
	require.False(t, sc.Scan(&r))
	assert.NoError(t, sc.Err())
}

func TestScannerInvalid(t *testing.T) {
	var r fastq.Read

	sc := fastq.NewScanner(strings.NewReader("r1\nACGT\n+\nIIII\n"))
	assert.False(t, sc.Scan(&r))
	assert.Equal(t, fastq.ErrInvalid, sc.Err())

	sc = fastq.NewScanner(strings.NewReader("@r1\nACGT\nIIII\nIIII\n"))
	assert.False(t, sc.Scan(&r))
	assert.Equal(t, fastq.ErrInvalid, sc.Err())

	sc = fastq.NewScanner(strings.NewReader("@r1\nACGT\n+\n"))
	assert.False(t, sc.Scan(&r))
	assert.Equal(t, fastq.ErrShort, sc.Err())
}

func TestPairScanner(t *testing.T) {
	var r1, r2 fastq.Read

	sc := fastq.NewPairScanner(strings.NewReader(read1+read2), strings.NewReader(read2+read1))
	n := 0
	for sc.Scan(&r1, &r2) {
		n++
	}
	assert.NoError(t, sc.Err())
	assert.Equal(t, 2, n)

	// R2 ends one record early.
	sc = fastq.NewPairScanner(strings.NewReader(read1+read2), strings.NewReader(read1))
	for sc.Scan(&r1, &r2) {
	}
	assert.Equal(t, fastq.ErrDiscordant, sc.Err())
}

func TestCountRecords(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{read1, 1, false},
		{read1 + read2, 2, false},
		{"@r1\nACGT\n+\nIIII", 1, false}, // no trailing newline
		{"@r1\nACGT\n+\n", 0, true},
	}
	for _, tt := range tests {
		got, err := fastq.CountRecords(strings.NewReader(tt.in))
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
