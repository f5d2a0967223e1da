// Package fileinput reads puzzle input, either from a named file or
// from standard input when the name is "-" or empty.
package fileinput

import (
	"fmt"
	"io"
	"os"
)

// Source names an input along with where its content came from, to make
// error messages and logs attributable.
type Source struct {
	Name string
	Text string
}

// Read slurps the named file, or stdin for "-" or "". The returned
// Source.Name is the file name, or "<stdin>".
func Read(name string) (Source, error) {
	if name == "" || name == "-" {
		text, err := readAll(os.Stdin)
		return Source{"<stdin>", text}, err
	}

	f, err := os.Open(name)
	if err != nil {
		return Source{Name: name}, err
	}
	defer f.Close()

	text, err := readAll(f)
	if err != nil {
		err = fmt.Errorf("read %v: %w", name, err)
	}
	return Source{name, text}, err
}

func readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	return string(b), err
}
