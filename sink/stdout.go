package sink

import (
	"io"
	"os"
)

// Stdout writes every batch verbatim to standard output (spec.md §4.5). It
// is the registry builder's default sink when none is configured.
type Stdout struct {
	w io.Writer
}

// NewStdout returns a Stdout sink writing to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{w: os.Stdout}
}

func (s *Stdout) Flush(batch []byte) error {
	_, err := s.w.Write(batch)
	return err
}

// Close is a no-op; Stdout does not own the process's standard output
// handle and must not close it.
func (s *Stdout) Close() error {
	return nil
}
