package fastq

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const countChunkSize = 1024 * 1024

// CountRecords returns the number of FASTQ records in r by counting newlines
// in large chunks and dividing by four (a FASTQ record is exactly 4 lines).
// A final line without a trailing newline is counted.  It is much cheaper
// than scanning records and is the preferred way to size a file.
func CountRecords(r io.Reader) (int64, error) {
	var (
		buf   = make([]byte, countChunkSize)
		lines int64
		last  byte = '\n'
	)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			lines += int64(bytes.Count(buf[:n], []byte{'\n'}))
			last = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, errors.Wrap(err, "couldn't read FASTQ data")
		}
	}
	if last != '\n' {
		lines++
	}
	if lines%4 != 0 {
		return 0, errors.Errorf("truncated FASTQ data: %d lines is not a multiple of 4", lines)
	}
	return lines / 4, nil
}
