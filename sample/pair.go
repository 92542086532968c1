package sample

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/errors"
)

// ResolvePair locates the mate of the read file dir/base and returns the
// pair oriented as (forward, reverse) regardless of which side base is.
//
// The read index of base is decided by its read-index markers.  When more
// than one marker appears (e.g., both "_R1" and "_r1" in an ambiguous name),
// the occurrence starting at the latest character offset wins, which makes
// resolution deterministic.  The mate's basename is constructed by replacing
// that rightmost winning occurrence with the opposite-index marker of the
// same case, and the mate must exist on disk.
func ResolvePair(dir, base string) (fwd, rev string, err error) {
	winner, offset := "", -1
	for _, marker := range readMarkers {
		if i := strings.LastIndex(base, marker); i > offset {
			winner, offset = marker, i
		}
	}
	if offset < 0 {
		return "", "", errors.E("no _R1/_R2 read-index marker in", base)
	}
	mateBase := base[:offset] + mate[winner] + base[offset+len(winner):]
	if mateBase == base {
		return "", "", errors.E("cannot derive a mate name for", base)
	}
	matePath := filepath.Join(dir, mateBase)
	if _, err := os.Stat(matePath); err != nil {
		return "", "", errors.E(err, "missing mate file for", filepath.Join(dir, base))
	}
	self := filepath.Join(dir, base)
	if winner == "_R1" || winner == "_r1" {
		return self, matePath, nil
	}
	return matePath, self, nil
}
