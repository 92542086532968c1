package cluster

import (
	"context"
	"io"
	"os"

	"github.com/amptools/amplicon/encoding/fasta"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
)

// Filter streams the superset FASTA from r to w, keeping exactly the records
// whose identifiers are in accepted.  Kept records are copied byte for byte.
func Filter(w io.Writer, r io.Reader, accepted map[string]bool) (kept, total int, err error) {
	return fasta.FilterRecords(w, r, func(id string) bool { return accepted[id] })
}

// FilterFile filters the FASTA at supersetPath into outPath.  The accepted
// set is seeded from the record ids of acceptedPath and extended one level
// through the membership table at membershipPath (absent table: no
// extension).  Output is written to a temporary sibling and renamed into
// place on success, so consumers never observe partial output.
func FilterFile(ctx context.Context, supersetPath, membershipPath, acceptedPath, outPath string) (kept, total int, err error) {
	accepted, err := readAcceptedIDs(ctx, acceptedPath)
	if err != nil {
		return 0, 0, err
	}
	membership, err := OpenMembership(ctx, membershipPath)
	if err != nil {
		return 0, 0, err
	}
	added := membership.Extend(accepted)
	log.Printf("%d accepted ids (%d added via %d membership edges)", len(accepted), added, membership.Len())

	in, err := file.Open(ctx, supersetPath)
	if err != nil {
		return 0, 0, err
	}
	tmpPath := outPath + ".tmp"
	out, err := file.Create(ctx, tmpPath)
	if err != nil {
		_ = in.Close(ctx)
		return 0, 0, err
	}
	kept, total, err = Filter(out.Writer(ctx), in.Reader(ctx), accepted)
	e := errors.Once{}
	e.Set(err)
	e.Set(out.Close(ctx))
	e.Set(in.Close(ctx))
	if e.Err() != nil {
		_ = os.Remove(tmpPath)
		return 0, 0, errors.E(e.Err(), "filter:", supersetPath)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, 0, err
	}
	return kept, total, nil
}

func readAcceptedIDs(ctx context.Context, path string) (map[string]bool, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	ids, err := fasta.ReadIDs(in.Reader(ctx))
	e := errors.Once{}
	e.Set(err)
	e.Set(in.Close(ctx))
	if e.Err() != nil {
		return nil, errors.E(e.Err(), "read accepted ids:", path)
	}
	accepted := make(map[string]bool, len(ids))
	for _, id := range ids {
		accepted[id] = true
	}
	return accepted, nil
}
