package main

import (
	"fmt"
	"io"
)

// stdoutProgress is a plain line-rewriting progress reporter: no
// third-party progress-bar library, matching the teacher's plain-fmt
// console feedback rather than introducing dependencies it never
// reaches for.
type stdoutProgress struct {
	w       io.Writer
	aborted func() bool
}

func newStdoutProgress(w io.Writer) *stdoutProgress {
	return &stdoutProgress{w: w}
}

func (p *stdoutProgress) Step(done, total int, message string) {
	pct := 0
	if total > 0 {
		pct = done * 100 / total
	}
	fmt.Fprintf(p.w, "\r%3d%% %-40s", pct, message)
}

func (p *stdoutProgress) Aborted() bool {
	return p.aborted != nil && p.aborted()
}

func (p *stdoutProgress) done() {
	fmt.Fprintln(p.w)
}
