package sample

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/amptools/amplicon/encoding/fastq"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// Opts configures registry building.
type Opts struct {
	// MinBytes is the smallest file size admitted to the analysis.  A pair in
	// which either file is below it is recorded in Omitted instead of
	// Samples.
	MinBytes int64
}

// DefaultOpts is the default option values.
var DefaultOpts = Opts{MinBytes: 100000}

// Entry records the resolved read files of one accepted sample.
type Entry struct {
	// Forward is the path of the R1 read file.
	Forward string
	// Reverse is the path of the R2 read file.
	Reverse string
}

// Omission records a sample excluded for undersized read files, along with
// its exact read count for reporting.
type Omission struct {
	Reads int64
}

// Registry maps canonical sample ids to resolved read pairs.  It is built
// once at protocol start and must not be mutated afterward.  Samples and
// Omitted are disjoint: every discovered sample lands in exactly one of the
// two.
type Registry struct {
	Samples map[string]Entry
	Omitted map[string]Omission
}

// BuildRegistry discovers all paired FASTQ files under the locations listed
// in config (see ExpandPaths) and returns the resulting registry.
//
// Both members of a pair typically appear in the expanded path list; the
// second occurrence is recognized by its already-claimed path and skipped
// silently.  A sample id that reappears with an unclaimed path is a
// duplicate collision (e.g., two spellings collapsing to the same id): it is
// logged and dropped, and the first-seen pair wins.
func BuildRegistry(ctx context.Context, config string, opts Opts) (*Registry, error) {
	if opts.MinBytes == 0 {
		opts.MinBytes = DefaultOpts.MinBytes
	}
	paths, err := ExpandPaths(config)
	if err != nil {
		return nil, err
	}

	registry := &Registry{
		Samples: map[string]Entry{},
		Omitted: map[string]Omission{},
	}
	type pending struct {
		id, fwd string
	}
	var (
		seenIDs     = map[string]bool{}
		seenForward = map[string]bool{}
		seenReverse = map[string]bool{}
		omitted     []pending // ids in Omitted, pending read counts
	)
	for _, path := range paths {
		base := filepath.Base(path)
		id, ok := NormalizeID(base)
		if !ok {
			continue
		}
		if seenIDs[id] {
			if !seenForward[path] && !seenReverse[path] {
				log.Error.Printf("duplicate sample %s: ignoring %s (first pair wins)", id, path)
			}
			continue
		}
		fwd, rev, err := ResolvePair(filepath.Dir(path), base)
		if err != nil {
			return nil, err
		}
		seenIDs[id] = true
		seenForward[fwd] = true
		seenReverse[rev] = true

		small, err := belowThreshold(fwd, rev, opts.MinBytes)
		if err != nil {
			return nil, err
		}
		if small {
			registry.Omitted[id] = Omission{}
			omitted = append(omitted, pending{id: id, fwd: fwd})
			continue
		}
		registry.Samples[id] = Entry{Forward: fwd, Reverse: rev}
	}

	// Exact read counts are needed only for the omission report; count the
	// forward files in parallel.
	if len(omitted) > 0 {
		var mu sync.Mutex
		err := traverse.Each(len(omitted), func(i int) error {
			n, err := CountReads(ctx, omitted[i].fwd)
			if err != nil {
				return err
			}
			mu.Lock()
			registry.Omitted[omitted[i].id] = Omission{Reads: n}
			mu.Unlock()
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	for id, o := range registry.Omitted {
		log.Printf("omitted sample %s (%d reads): files below %d bytes", id, o.Reads, opts.MinBytes)
	}
	return registry, nil
}

func belowThreshold(fwd, rev string, minBytes int64) (bool, error) {
	fi, err := os.Stat(fwd)
	if err != nil {
		return false, errors.E(err, "stat:", fwd)
	}
	ri, err := os.Stat(rev)
	if err != nil {
		return false, errors.E(err, "stat:", rev)
	}
	return fi.Size() < minBytes || ri.Size() < minBytes, nil
}

// Validate checks that the entry's forward and reverse files hold the same
// number of well-formed records.
func (e Entry) Validate(ctx context.Context) error {
	in1, err := file.Open(ctx, e.Forward)
	if err != nil {
		return err
	}
	in2, err := file.Open(ctx, e.Reverse)
	if err != nil {
		_ = in1.Close(ctx)
		return err
	}
	var (
		r1 io.Reader = in1.Reader(ctx)
		r2 io.Reader = in2.Reader(ctx)
	)
	if u := compress.NewReaderPath(r1, in1.Name()); u != nil {
		r1 = u
	}
	if u := compress.NewReaderPath(r2, in2.Name()); u != nil {
		r2 = u
	}
	var (
		sc       = fastq.NewPairScanner(r1, r2)
		fr1, fr2 fastq.Read
	)
	for sc.Scan(&fr1, &fr2) {
	}
	e2 := errors.Once{}
	e2.Set(sc.Err())
	e2.Set(in1.Close(ctx))
	e2.Set(in2.Close(ctx))
	if e2.Err() != nil {
		return errors.E(e2.Err(), "validate pair:", e.Forward, e.Reverse)
	}
	return nil
}
