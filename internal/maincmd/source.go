package maincmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"
)

// readSource reads an entire translation unit into memory, appending a
// trailing newline if the file doesn't already end with one (so the
// line-oriented diagnostic format and the scanner's line comment handling
// never have to special-case the last line), then a NUL sentinel byte.
// "-" reads from stdio.Stdin. The scanner stops at the NUL byte, and since
// it is part of the file, the line after the final newline exists for
// go/token, so the EOF token is positioned at the start of that line.
func readSource(stdio mainer.Stdio, path string) ([]byte, error) {
	var (
		src []byte
		err error
	)
	if path == "-" {
		src, err = io.ReadAll(stdio.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(src) == 0 || src[len(src)-1] != '\n' {
		src = append(src, '\n')
	}
	src = append(src, 0)
	return src, nil
}
