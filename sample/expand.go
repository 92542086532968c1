// Package sample discovers paired FASTQ read files and builds the sample
// registry consumed by the per-sample steps of the amplicon protocol.
//
// The entry point is BuildRegistry, which expands a comma-separated list of
// directories and/or glob patterns, derives a canonical sample id from each
// FASTQ basename, resolves the forward/reverse mate of each file, and
// triages undersized pairs into an omission report.
package sample

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// ExpandPaths expands a comma-separated list of directories and glob
// patterns into candidate file paths, in segment order.  A segment
// containing a shell wildcard is expanded with filepath.Glob; any other
// segment must be a directory, whose direct children are listed without
// recursion.  An empty config or a plain-file segment is a configuration
// error.
func ExpandPaths(config string) ([]string, error) {
	if strings.TrimSpace(config) == "" {
		return nil, errors.E("no fastq directories configured")
	}
	var paths []string
	for _, segment := range strings.Split(config, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		log.Printf("expanding fastq location %s", segment)
		if strings.ContainsAny(segment, "*?[") {
			matches, err := filepath.Glob(segment)
			if err != nil {
				return nil, errors.E(err, "bad glob pattern:", segment)
			}
			paths = append(paths, matches...)
			continue
		}
		info, err := os.Stat(segment)
		if err != nil {
			return nil, errors.E(err, "stat:", segment)
		}
		if !info.IsDir() {
			return nil, errors.E("fastq location", segment, "is a file; list directories or glob patterns")
		}
		children, err := ioutil.ReadDir(segment)
		if err != nil {
			return nil, errors.E(err, "read dir:", segment)
		}
		for _, child := range children {
			paths = append(paths, filepath.Join(segment, child.Name()))
		}
	}
	return paths, nil
}
