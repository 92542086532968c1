package main

/*
amplicon-filter streams a filtered copy of a FASTA file, keeping the records
whose identifiers appear in an accepted-subset FASTA, either directly or
through their cluster representative as recorded in a membership table.

It is run twice in the amplicon protocol: once per sample after
dereplication filtering, and once on the combined run after chimera and
singleton removal.

Sample usage:

	amplicon-filter \
	    -fasta derep.fasta \
	    -membership clusters.uc \
	    -accepted nonchimeric.fasta \
	    -out filtered.fasta
*/

import (
	"flag"

	"github.com/amptools/amplicon/cluster"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

var (
	fastaPath      = flag.String("fasta", "", "Superset FASTA to filter; required")
	membershipPath = flag.String("membership", "", "Clustering membership table; an absent file means there is nothing to propagate")
	acceptedPath   = flag.String("accepted", "", "FASTA whose record ids seed the accepted set; required")
	outPath        = flag.String("out", "", "Filtered FASTA output path; required")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()
	ctx := vcontext.Background()

	if *fastaPath == "" || *acceptedPath == "" || *outPath == "" {
		log.Fatalf("-fasta, -accepted, and -out are required")
	}
	kept, total, err := cluster.FilterFile(ctx, *fastaPath, *membershipPath, *acceptedPath, *outPath)
	if err != nil {
		log.Fatalf("filter %s: %v", *fastaPath, err)
	}
	log.Printf("kept %d of %d records in %s", kept, total, *outPath)
}
