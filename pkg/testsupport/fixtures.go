package testsupport

import (
	"bytes"
	"io"
	"testing"
)

// CaptureOutput runs render against a buffer and returns both the returned
// string and what was written, so callers can assert they agree.
func CaptureOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out, buf.String()
}
