package lsp

import "io"

// stdioReadWriteCloser adapts a child process's separate stdin/stdout
// pipes into the single io.ReadWriteCloser jsonrpc2 wants.
type stdioReadWriteCloser struct {
	stdin  io.WriteCloser
	stdout io.ReadCloser
}

func (rwc *stdioReadWriteCloser) Read(p []byte) (int, error) {
	return rwc.stdout.Read(p)
}

func (rwc *stdioReadWriteCloser) Write(p []byte) (int, error) {
	return rwc.stdin.Write(p)
}

func (rwc *stdioReadWriteCloser) Close() error {
	err1 := rwc.stdin.Close()
	err2 := rwc.stdout.Close()
	if err1 != nil {
		return err1
	}
	return err2
}
