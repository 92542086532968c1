package main

/*
amplicon-prep discovers the paired FASTQ files of a sequencing run and writes
the sample manifest consumed by the downstream steps of the amplicon
protocol.

Each FASTQ basename is reduced to a canonical sample id, its R1/R2 mate is
located next to it, and pairs whose files are below -min-size bytes are
diverted to an omission report with their exact read counts.

Sample usage:

	amplicon-prep \
	    -fastq-dirs '/seq/run42,/seq/reruns/run42_*' \
	    -manifest samples.tsv \
	    -omitted omitted.tsv
*/

import (
	"context"
	"flag"
	"sort"

	"github.com/amptools/amplicon/sample"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
)

var (
	fastqDirs    = flag.String("fastq-dirs", "", "Comma-separated list of directories and/or glob patterns holding paired FASTQ files; required")
	minSize      = flag.Int64("min-size", sample.DefaultOpts.MinBytes, "Pairs in which either file is smaller than this many bytes are omitted from the manifest")
	manifestPath = flag.String("manifest", "manifest.tsv", "Output TSV mapping each sample id to its forward and reverse read paths")
	omittedPath  = flag.String("omitted", "omitted.tsv", "Output TSV listing omitted samples and their read counts")
	validate     = flag.Bool("validate", false, "Verify that each accepted pair has concordant forward/reverse record counts")
)

func sampleIDs(registry *sample.Registry) []string {
	ids := make([]string, 0, len(registry.Samples))
	for id := range registry.Samples {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeManifest(ctx context.Context, path string, registry *sample.Registry) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	w := tsv.NewWriter(out.Writer(ctx))
	for _, id := range sampleIDs(registry) {
		entry := registry.Samples[id]
		w.WriteString(id)
		w.WriteString(entry.Forward)
		w.WriteString(entry.Reverse)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	e := errors.Once{}
	e.Set(w.Flush())
	e.Set(out.Close(ctx))
	return e.Err()
}

func writeOmitted(ctx context.Context, path string, registry *sample.Registry) error {
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(registry.Omitted))
	for id := range registry.Omitted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	w := tsv.NewWriter(out.Writer(ctx))
	for _, id := range ids {
		w.WriteString(id)
		w.WriteInt64(registry.Omitted[id].Reads)
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	e := errors.Once{}
	e.Set(w.Flush())
	e.Set(out.Close(ctx))
	return e.Err()
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if *fastqDirs == "" {
		log.Fatalf("-fastq-dirs is required")
	}
	registry, err := sample.BuildRegistry(ctx, *fastqDirs, sample.Opts{MinBytes: *minSize})
	if err != nil {
		log.Fatalf("build sample registry: %v", err)
	}
	if *validate {
		for _, id := range sampleIDs(registry) {
			if err := registry.Samples[id].Validate(ctx); err != nil {
				log.Fatalf("validate sample %s: %v", id, err)
			}
		}
	}
	if err := writeManifest(ctx, *manifestPath, registry); err != nil {
		log.Fatalf("write manifest %s: %v", *manifestPath, err)
	}
	if err := writeOmitted(ctx, *omittedPath, registry); err != nil {
		log.Fatalf("write omission report %s: %v", *omittedPath, err)
	}
	log.Printf("registered %d samples (%d omitted) in %s", len(registry.Samples), len(registry.Omitted), *manifestPath)
}
