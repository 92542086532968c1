// Package cluster filters sequence sets by cluster membership.
//
// A clustering tool emits a tab-separated membership table relating each
// sequence to its cluster representative.  Given such a table, a superset
// FASTA, and an already-filtered FASTA of accepted representatives, the
// filter retains every superset record whose identifier is accepted either
// directly or through its representative.
package cluster

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Membership table records have 10+ tab-separated fields.  Only the query
// and target labels (9th and 10th fields) are consumed; "*" in either
// position marks a record with no usable relation in that column.
const (
	queryField    = 8
	targetField   = 9
	minFields     = 10
	noEntryMarker = "*"
)

const maxLineSize = 1024 * 1024

type edge struct {
	child, parent string
}

// Membership holds the child-to-representative edges of one membership
// table, in file order.
type Membership struct {
	edges []edge
}

// Len returns the number of usable edges.
func (m *Membership) Len() int { return len(m.edges) }

// ReadMembership parses a membership table.  Lines with fewer than 10
// fields, or with the "*" placeholder in the query or target column, carry
// no relation and are skipped.  Identifiers are stripped of their
// ";"-delimited annotation suffix.
func ReadMembership(r io.Reader) (*Membership, error) {
	m := &Membership{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < minFields {
			continue
		}
		child, parent := fields[queryField], fields[targetField]
		if child == noEntryMarker || parent == noEntryMarker {
			continue
		}
		m.edges = append(m.edges, edge{trimAnnotation(child), trimAnnotation(parent)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "couldn't read membership table")
	}
	return m, nil
}

// OpenMembership reads the membership table at path.  A missing file is not
// an error: there is simply nothing to propagate, and the empty table is
// returned.
func OpenMembership(ctx context.Context, path string) (*Membership, error) {
	if path == "" {
		return &Membership{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("membership table %s absent; nothing to propagate", path)
		return &Membership{}, nil
	}
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	m, err := ReadMembership(in.Reader(ctx))
	e := errors.Once{}
	e.Set(err)
	e.Set(in.Close(ctx))
	if e.Err() != nil {
		return nil, errors.E(e.Err(), "read membership table:", path)
	}
	return m, nil
}

// Extend grows accepted by one propagation level: every child whose
// representative is already accepted becomes accepted itself.  Edges are
// applied once, in table order, not to a fixed point: membership tables
// produced by the clustering step are exactly one level deep, and deeper
// chains must not be propagated further.  Extend only ever adds members, so
// it is safe against cyclic tables.  It returns the number of ids added.
func (m *Membership) Extend(accepted map[string]bool) int {
	added := 0
	for _, e := range m.edges {
		if accepted[e.parent] && !accepted[e.child] {
			accepted[e.child] = true
			added++
		}
	}
	return added
}

func trimAnnotation(id string) string {
	if i := strings.IndexByte(id, ';'); i >= 0 {
		return id[:i]
	}
	return id
}
