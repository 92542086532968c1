package sample

import "strings"

// Read-index markers recognized in FASTQ basenames.  Case variants are
// independent markers; there is no case-insensitive matching.
var readMarkers = []string{"_R1", "_r1", "_R2", "_r2"}

// mate maps each read-index marker to its opposite-index counterpart of the
// same case.
var mate = map[string]string{
	"_R1": "_R2",
	"_r1": "_r2",
	"_R2": "_R1",
	"_r2": "_r1",
}

var separatorReplacer = strings.NewReplacer(".", "_", " ", "_", "-", "_")

// NormalizeID derives the canonical sample id from a FASTQ basename.  Only
// names containing ".fastq" or ".fq" qualify; ok is false otherwise.  The id
// is the name prefix before the first ".fastq" (or ".fq" when ".fastq" is
// absent) with the read-index markers removed and every '.', ' ', and '-'
// collapsed to '_'.
func NormalizeID(base string) (id string, ok bool) {
	var stem string
	if i := strings.Index(base, ".fastq"); i >= 0 {
		stem = base[:i]
	} else if i := strings.Index(base, ".fq"); i >= 0 {
		stem = base[:i]
	} else {
		return "", false
	}
	for _, marker := range readMarkers {
		stem = strings.Replace(stem, marker, "", -1)
	}
	return separatorReplacer.Replace(stem), true
}
