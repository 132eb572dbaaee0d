package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"rockerboo/mcp-lsp-bridge/bridge"
	"rockerboo/mcp-lsp-bridge/directories"
	"rockerboo/mcp-lsp-bridge/logger"
	"rockerboo/mcp-lsp-bridge/lsp"
	"rockerboo/mcp-lsp-bridge/mcpserver"
	"rockerboo/mcp-lsp-bridge/watcher"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// ConfigError describes a problem with the CLI's own arguments, as
// distinct from a failure further into startup; it always causes exit 1.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return e.Reason }

var (
	workspaceDir string
	lspCommand   string
)

// splitLSPArgs finds the "--" sentinel in argv and returns the bridge's
// own flag arguments (everything before it) and the language server
// child's forwarded argv (everything after it).
func splitLSPArgs(argv []string) (bridgeArgs, lspArgs []string) {
	for i, a := range argv {
		if a == "--" {
			return argv[:i], argv[i+1:]
		}
	}
	return argv, nil
}

func newRootCmd(lspArgs []string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-lsp-bridge",
		Short: "Bridge a Language Server Protocol server into MCP tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), lspArgs)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&workspaceDir, "workspace", "w", "", "workspace directory to bridge (required)")
	cmd.Flags().StringVarP(&lspCommand, "lsp", "l", "", "language server command to spawn (required)")
	cmd.MarkFlagRequired("workspace")
	cmd.MarkFlagRequired("lsp")

	return cmd
}

func validateWorkspace(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &ConfigError{Reason: fmt.Sprintf("invalid workspace path: %v", err)}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ConfigError{Reason: fmt.Sprintf("workspace directory does not exist: %s", abs)}
	}
	if !info.IsDir() {
		return "", &ConfigError{Reason: fmt.Sprintf("workspace path is not a directory: %s", abs)}
	}
	return abs, nil
}

func initLogging() {
	cfg := logger.ConfigFromEnv()

	if cfg.FilePath == "" {
		resolver := directories.NewResolver("mcp-lsp-bridge", directories.DefaultUserProvider{}, directories.DefaultEnvProvider{}, true)
		if dir, err := resolver.LogDirectory(); err == nil {
			cfg.FilePath = filepath.Join(dir, "mcp-lsp-bridge.log")
		}
	}

	if err := logger.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize file logging: %v\n", err)
	}
}

func run(ctx context.Context, lspArgs []string) error {
	abs, err := validateWorkspace(workspaceDir)
	if err != nil {
		return err
	}

	initLogging()
	defer logger.Close()

	logger.Info(fmt.Sprintf("starting bridge: workspace=%s lsp=%s %v", abs, lspCommand, lspArgs))

	w, err := watcher.New(abs, watcher.DefaultOptions())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	client, err := lsp.New(lspCommand, lspArgs, lsp.Options{
		OnRegisterCapability: w.HandleRegisterCapability,
		ReadyTimeout:         lspReadyTimeout,
	})
	if err != nil {
		return fmt.Errorf("start language server: %w", err)
	}
	w.Attach(client)

	b := bridge.New(client, w, abs)

	if _, err := client.Initialize(ctx, abs); err != nil {
		client.Close()
		return fmt.Errorf("initialize language server: %w", err)
	}
	if err := client.Initialized(ctx); err != nil {
		client.Close()
		return fmt.Errorf("send initialized notification: %w", err)
	}

	client.WaitForReady(lspReadyTimeout)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return w.Start(groupCtx)
	})

	mcpServer := mcpserver.SetupMCPServer(b)

	group.Go(func() error {
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	})

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		logger.Info("shutting down on signal")
	case <-groupCtx.Done():
		logger.Warn("a bridge component exited unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	b.Shutdown(shutdownCtx)

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn(fmt.Sprintf("component error during shutdown: %v", err))
	}

	return nil
}

const (
	shutdownTimeout = 5 * time.Second
	// lspReadyTimeout bounds how long run() waits for the language server
	// to register capabilities or push workspace/configuration before
	// proceeding to serve tool calls. Slow servers (jdtls-class) still
	// start on time; callers of those tools just see a cold bridge.
	lspReadyTimeout = 10 * time.Second
)

func main() {
	bridgeArgs, lspArgs := splitLSPArgs(os.Args[1:])

	root := newRootCmd(lspArgs)
	root.SetArgs(bridgeArgs)

	if err := root.ExecuteContext(context.Background()); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}
