// Package fasta contains code for reading and filtering FASTA files.
// Briefly, FASTA files consist of a number of named sequences that may be
// interrupted by newlines.  For example:
//
// >otu1;size=12
// ACGTAC
// GAGGAC
// >otu2;size=3
// ACGT
//
// Note: Sequence identifiers are defined to be the stretch of characters
// immediately after '>', excluding spaces and any ';'-delimited annotation
// (dereplication tools append suffixes such as ";size=12").  For example,
// '>otu1;size=12' becomes 'otu1'.
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	bufferInitSize = 1024 * 1024 // sequence lines may be unwrapped
)

// ParseID extracts the sequence identifier from a FASTA header line.  The
// leading '>' is stripped, and the identifier ends at the first ';' or
// whitespace character, whichever comes first.
func ParseID(header string) string {
	id := strings.TrimPrefix(header, ">")
	if i := strings.IndexAny(id, "; \t"); i >= 0 {
		id = id[:i]
	}
	return id
}

// ReadIDs returns the identifiers of all records in r, in order of
// appearance in the FASTA file.
func ReadIDs(r io.Reader) ([]string, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, bufferInitSize)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) > 0 && line[0] == '>' {
			ids = append(ids, ParseID(line))
		}
	}
	if scanner.Err() != nil {
		return nil, errors.Wrap(scanner.Err(), "couldn't read FASTA data")
	}
	return ids, nil
}

// filterState tracks the line-level state of FilterRecords.  A record's body
// lines are copied iff the preceding header put the filter in
// insideKeptRecord.
type filterState int

const (
	outsideRecord filterState = iota
	insideKeptRecord
)

// FilterRecords copies from r to w every record whose identifier satisfies
// keep.  Kept records are echoed verbatim, byte for byte: line order,
// wrapping, and newline encoding are preserved.  It returns the number of
// records kept and the total number of records seen.
func FilterRecords(w io.Writer, r io.Reader, keep func(id string) bool) (kept, total int, err error) {
	var (
		br    = bufio.NewReaderSize(r, bufferInitSize)
		state = outsideRecord
	)
	for {
		line, e := br.ReadBytes('\n')
		if len(line) > 0 {
			if line[0] == '>' {
				total++
				header := string(bytes.TrimRight(line, "\r\n"))
				if keep(ParseID(header)) {
					state = insideKeptRecord
					kept++
				} else {
					state = outsideRecord
				}
			}
			if state == insideKeptRecord {
				if _, werr := w.Write(line); werr != nil {
					return kept, total, errors.Wrap(werr, "couldn't write FASTA record")
				}
			}
		}
		if e == io.EOF {
			return kept, total, nil
		}
		if e != nil {
			return kept, total, errors.Wrap(e, "couldn't read FASTA data")
		}
	}
}
