package sample_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/amptools/amplicon/sample"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
)

func writeFile(t testing.TB, path, data string) {
	assert.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
}

func TestResolvePair(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	writeFile(t, filepath.Join(tmpdir, "a_R1.fastq"), "@r\nA\n+\nI\n")
	writeFile(t, filepath.Join(tmpdir, "a_R2.fastq"), "@r\nT\n+\nI\n")

	wantFwd := filepath.Join(tmpdir, "a_R1.fastq")
	wantRev := filepath.Join(tmpdir, "a_R2.fastq")

	// Resolution is orientation-symmetric: starting from either side yields
	// the identical pair.
	for _, base := range []string{"a_R1.fastq", "a_R2.fastq"} {
		fwd, rev, err := sample.ResolvePair(tmpdir, base)
		assert.NoError(t, err)
		assert.EQ(t, fwd, wantFwd)
		assert.EQ(t, rev, wantRev)
	}
}

func TestResolvePairLowerCase(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	writeFile(t, filepath.Join(tmpdir, "b_r1.fq"), "")
	writeFile(t, filepath.Join(tmpdir, "b_r2.fq"), "")

	fwd, rev, err := sample.ResolvePair(tmpdir, "b_r2.fq")
	assert.NoError(t, err)
	assert.EQ(t, fwd, filepath.Join(tmpdir, "b_r1.fq"))
	assert.EQ(t, rev, filepath.Join(tmpdir, "b_r2.fq"))
}

// A name carrying two case variants resolves by the marker at the later
// offset, and only its rightmost occurrence is substituted.
func TestResolvePairAmbiguousMarkers(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	writeFile(t, filepath.Join(tmpdir, "x_r1_lib_R2.fastq"), "")
	writeFile(t, filepath.Join(tmpdir, "x_r1_lib_R1.fastq"), "")

	fwd, rev, err := sample.ResolvePair(tmpdir, "x_r1_lib_R2.fastq")
	assert.NoError(t, err)
	assert.EQ(t, fwd, filepath.Join(tmpdir, "x_r1_lib_R1.fastq"))
	assert.EQ(t, rev, filepath.Join(tmpdir, "x_r1_lib_R2.fastq"))
}

func TestResolvePairErrors(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)

	writeFile(t, filepath.Join(tmpdir, "nomarker.fastq"), "")
	_, _, err := sample.ResolvePair(tmpdir, "nomarker.fastq")
	assert.Regexp(t, err, "read-index marker")

	writeFile(t, filepath.Join(tmpdir, "lonely_R1.fastq"), "")
	_, _, err = sample.ResolvePair(tmpdir, "lonely_R1.fastq")
	assert.Regexp(t, err, "missing mate file")
}
