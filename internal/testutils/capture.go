package testutils

import (
	"bytes"
	"io"
	"os"
)

// CaptureStdout runs fn with os.Stdout redirected and returns what it printed.
func CaptureStdout(fn func()) (string, error) {
	return capture(&os.Stdout, fn)
}

// CaptureStderr runs fn with os.Stderr redirected and returns what it printed.
func CaptureStderr(fn func()) (string, error) {
	return capture(&os.Stderr, fn)
}

func capture(target **os.File, fn func()) (string, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}

	orig := *target
	*target = w
	defer func() { *target = orig }()

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	_ = w.Close()
	<-done
	_ = r.Close()
	return buf.String(), copyErr
}
