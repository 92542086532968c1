package sample

import (
	"context"
	"io"

	"github.com/amptools/amplicon/encoding/fastq"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
)

// CountReads returns the number of reads in a FASTQ file.  Compressed files
// are transparently decompressed based on the path extension.
func CountReads(ctx context.Context, path string) (int64, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	var r io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(r, in.Name()); u != nil {
		r = u
	}
	n, err := fastq.CountRecords(r)
	e := errors.Once{}
	e.Set(err)
	e.Set(in.Close(ctx))
	if e.Err() != nil {
		return 0, errors.E(e.Err(), "count reads:", path)
	}
	return n, nil
}
