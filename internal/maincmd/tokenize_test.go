package maincmd_test

import (
	"bytes"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/aucc/internal/filetest"
	"github.com/mna/aucc/internal/maincmd"
)

var testUpdateTokenizeTests = flag.Bool("test.update-tokenize-tests", false, "If set, replace expected tokenize test results with actual results.")

// TestTokenizeFile runs the tokenize subcommand's full lexer-only pipeline
// over each testdata/in/*.c file and compares its token dump against the
// matching testdata/out/*.c.want golden file, using internal/filetest's
// file-pair convention.
func TestTokenizeFile(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".c") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			// error is ignored here, it is the golden errors file's job to
			// capture anything written to ebuf.
			_ = maincmd.TokenizeFile(stdio, filepath.Join(srcDir, fi.Name()))

			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateTokenizeTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateTokenizeTests)
		})
	}
}
