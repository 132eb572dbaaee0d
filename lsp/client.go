// Package lsp implements the bidirectional JSON-RPC client against an
// external language-server process: process lifecycle, request/response
// correlation, server-request dispatch, the open-file registry, and the
// diagnostics cache.
package lsp

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"rockerboo/mcp-lsp-bridge/logger"
	"rockerboo/mcp-lsp-bridge/lsptypes"

	"github.com/sourcegraph/jsonrpc2"
)

var log = logger.Component("lsp")

// rpcConn abstracts the jsonrpc2.Conn methods Client depends on, so tests
// can substitute a mock connection instead of spawning a real process.
type rpcConn interface {
	Call(ctx context.Context, method string, params, result any, opts ...jsonrpc2.CallOption) error
	Notify(ctx context.Context, method string, params any, opts ...jsonrpc2.CallOption) error
	Close() error
	DisconnectNotify() <-chan struct{}
}

// Client wraps a spawned language-server process and the JSON-RPC
// connection to it. It is the single rendezvous point for all mutable
// shared state: the pending-request table (delegated to jsonrpc2.Conn),
// the open-file registry, the diagnostics store, and the dynamic watcher
// registrations.
type Client struct {
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	cmd    *exec.Cmd
	conn   rpcConn

	command string
	args    []string

	status          ClientStatus
	lastError       error
	lastErrorTime   time.Time
	lastInitialized time.Time

	totalRequests      int64
	successfulRequests int64
	failedRequests     int64

	serverCapabilities lsptypes.ServerCapabilities

	openFiles   *openFileRegistry
	diagnostics *diagnosticsStore
	watchers    *watcherRegistry

	onRegisterCapability RegisterCapabilityHook

	readyTimeout time.Duration
	readyOnce    sync.Once
	readyCh      chan struct{}
}

// Options configures Client construction.
type Options struct {
	// ReadyTimeout bounds WaitForReady's wait when it is given no timeout. Defaults to 1 second;
	// slow servers (jdtls-class) should pass a larger value explicitly.
	ReadyTimeout time.Duration
	// OnRegisterCapability, if set, is invoked whenever the server
	// registers interest in workspace/didChangeWatchedFiles.
	OnRegisterCapability RegisterCapabilityHook
}

// New spawns command (with args) as a child process and wires a JSON-RPC
// connection to its stdin/stdout. Stderr is drained and logged, never
// parsed.
func New(command string, args []string, opts Options) (*Client, error) {
	log.Info(fmt.Sprintf("connecting to LSP server: %s %v", command, args))

	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, command, args...)
	setProcAttributes(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		cancel()
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		cancel()
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", command, err)
	}

	c := &Client{
		ctx:                  ctx,
		cancel:               cancel,
		cmd:                  cmd,
		command:              command,
		args:                 args,
		status:               StatusConnecting,
		openFiles:            newOpenFileRegistry(),
		diagnostics:          newDiagnosticsStore(),
		watchers:             newWatcherRegistry(),
		onRegisterCapability: opts.OnRegisterCapability,
		readyTimeout:         opts.ReadyTimeout,
		readyCh:              make(chan struct{}),
	}

	rwc := &stdioReadWriteCloser{stdin: stdin, stdout: stdout}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	handler := &clientHandler{client: c}

	c.conn = jsonrpc2.NewConn(ctx, stream, handler)
	c.status = StatusConnected
	c.lastInitialized = time.Now()

	go drainStderr(command, stderr)

	go func() {
		<-c.conn.DisconnectNotify()
		c.mu.Lock()
		if c.status != StatusDisconnected {
			c.status = StatusDisconnected
		}
		c.mu.Unlock()
	}()

	log.Info(fmt.Sprintf("connected to LSP server: %s %v (pid %d)", command, args, cmd.Process.Pid))

	return c, nil
}

// newTestClient builds a Client around an already-constructed connection,
// bypassing process spawning entirely. Used by tests to exercise Call,
// Notify, metrics, and the registries without a real language server.
func newTestClient(conn rpcConn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ctx:         ctx,
		cancel:      cancel,
		conn:        conn,
		command:     "test",
		status:      StatusConnected,
		openFiles:   newOpenFileRegistry(),
		diagnostics: newDiagnosticsStore(),
		watchers:    newWatcherRegistry(),
		readyCh:     make(chan struct{}),
	}
}

func drainStderr(command string, stderr io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			log.Debug(fmt.Sprintf("[%s stderr] %s", command, buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

// IsConnected reports whether the connection is currently usable.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status == StatusConnected
}

// Status returns the current connection status.
func (c *Client) Status() ClientStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// SetServerCapabilities records the server's advertised capabilities from
// the initialize response.
func (c *Client) SetServerCapabilities(caps lsptypes.ServerCapabilities) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverCapabilities = caps
}

// ServerCapabilities returns the server's advertised capabilities.
func (c *Client) ServerCapabilities() lsptypes.ServerCapabilities {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverCapabilities
}

// ProcessID returns the child process's PID.
func (c *Client) ProcessID() int32 {
	if c.cmd == nil || c.cmd.Process == nil {
		return 0
	}
	return int32(c.cmd.Process.Pid)
}

// Metrics returns a snapshot of request counters and connection state.
func (c *Client) Metrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m := Metrics{
		Command:            c.command,
		Status:             c.status,
		TotalRequests:      atomic.LoadInt64(&c.totalRequests),
		SuccessfulRequests: atomic.LoadInt64(&c.successfulRequests),
		FailedRequests:     atomic.LoadInt64(&c.failedRequests),
		LastInitialized:    c.lastInitialized,
		LastErrorTime:      c.lastErrorTime,
		ProcessID:          c.ProcessID(),
	}
	if c.lastError != nil {
		m.LastError = c.lastError.Error()
		if rpcErr, ok := c.lastError.(*jsonrpc2.Error); ok {
			m.LastError = rpcErr.Message
		}
	}
	return m
}

// RequestError wraps an LSP JSON-RPC error response.
type RequestError struct {
	Code    int64
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("lsp request error %d: %s", e.Code, e.Message)
}

// Call sends a request and waits for its response, bounded by timeout.
func (c *Client) Call(ctx context.Context, method string, params, result any, timeout time.Duration) error {
	atomic.AddInt64(&c.totalRequests, 1)

	if c.ctx.Err() != nil || c.conn == nil {
		atomic.AddInt64(&c.failedRequests, 1)
		return fmt.Errorf("lsp connection is closed")
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := c.conn.Call(reqCtx, method, params, result)
	if err != nil {
		atomic.AddInt64(&c.failedRequests, 1)

		c.mu.Lock()
		c.lastError = err
		c.lastErrorTime = time.Now()
		c.mu.Unlock()

		if rpcErr, ok := err.(*jsonrpc2.Error); ok {
			log.Error(fmt.Sprintf("request error: method=%s code=%d message=%s", method, rpcErr.Code, rpcErr.Message))
			return &RequestError{Code: rpcErr.Code, Message: rpcErr.Message}
		}

		log.Error(fmt.Sprintf("request error: method=%s error=%v", method, err))
		return err
	}

	atomic.AddInt64(&c.successfulRequests, 1)
	return nil
}

// Notify sends a notification; there is no acknowledgement.
func (c *Client) Notify(ctx context.Context, method string, params any) error {
	if method == "" {
		return fmt.Errorf("empty notification method")
	}
	return c.conn.Notify(ctx, method, params)
}

// Context returns the client's lifetime context, cancelled on Close.
func (c *Client) Context() context.Context {
	return c.ctx
}

// markReady unblocks WaitForReady. Safe to call more than once.
func (c *Client) markReady() {
	c.readyOnce.Do(func() { close(c.readyCh) })
}

// WaitForReady blocks until the server has sent either
// client/registerCapability or workspace/configuration, or timeout
// elapses, whichever comes first. Real servers vary widely in how long
// they take to become ready after initialize; callers needing jdtls-class
// patience should pass a larger timeout.
func (c *Client) WaitForReady(timeout time.Duration) {
	if timeout <= 0 {
		timeout = c.readyTimeout
	}
	if timeout <= 0 {
		timeout = time.Second
	}
	select {
	case <-c.readyCh:
	case <-time.After(timeout):
	}
}

// Shutdown sends the shutdown request: the server flushes state but must
// not exit yet.
func (c *Client) Shutdown(ctx context.Context) error {
	var result any
	return c.Call(ctx, "shutdown", nil, &result, 5*time.Second)
}

// Exit sends the exit notification: the server is now expected to exit.
func (c *Client) Exit(ctx context.Context) error {
	return c.Notify(ctx, "exit", nil)
}

// Close ends the shutdown sequence: closes the connection and stdin, waits
// for the process to exit with a grace window, then force-kills it.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
	}

	c.cancel()

	if c.cmd != nil && c.cmd.Process != nil {
		done := make(chan error, 1)
		go func() { done <- c.cmd.Wait() }()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = c.cmd.Process.Kill()
			<-done
		}
	}

	c.status = StatusDisconnected
	return nil
}
