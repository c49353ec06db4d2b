// Package fileinput reads runes through a queue of named script sources,
// tracking the current file and line for diagnostics.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a line in an Input source.
type Location struct {
	Name string
	Line int
}

func (loc Location) String() string { return fmt.Sprintf("%v:%v", loc.Name, loc.Line) }

// Input implements sequential rune reading through a Queue of one or more
// input streams. Location always names the line of the next rune to be read.
type Input struct {
	Queue []io.Reader
	Location

	rr io.RuneReader
}

// Named attaches a name to r for use in Input locations.
func Named(name string, r io.Reader) io.Reader { return namedReader{r, name} }

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

func (nr namedReader) Close() error {
	if cl, ok := nr.Reader.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// ReadRune reads one rune from the current input stream, advancing to the
// next queued stream at end of file. NUL runes are skipped. Returns io.EOF
// once every queued stream is exhausted.
func (in *Input) ReadRune() (rune, int, error) {
	for {
		if in.rr == nil && !in.nextIn() {
			return 0, 0, io.EOF
		}
		r, n, err := in.rr.ReadRune()
		if err == io.EOF {
			in.closeIn()
			continue
		} else if err != nil {
			return 0, 0, err
		}
		if r == 0 {
			continue
		}
		if r == '\n' {
			in.Line++
		}
		return r, n, nil
	}
}

func (in *Input) closeIn() {
	if cl, ok := in.rr.(io.Closer); ok {
		cl.Close()
	}
	in.rr = nil
}

func (in *Input) nextIn() bool {
	if len(in.Queue) == 0 {
		return false
	}
	r := in.Queue[0]
	in.Queue = in.Queue[1:]
	if rr, ok := r.(io.RuneReader); ok {
		in.rr = runeCloser{rr, r}
	} else {
		in.rr = runeCloser{bufio.NewReader(r), r}
	}
	in.Name = nameOf(r)
	in.Line = 1
	return true
}

type runeCloser struct {
	io.RuneReader
	src io.Reader
}

func (rc runeCloser) Close() error {
	if cl, ok := rc.src.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return fmt.Sprintf("<unnamed %T>", obj)
}
