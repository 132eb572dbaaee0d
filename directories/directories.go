// Package directories resolves the default log directory for the bridge
// process based on user context and system conventions.
package directories

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// EnvProvider provides access to environment variables.
type EnvProvider interface {
	Getenv(key string) string
}

// DefaultEnvProvider is a concrete EnvProvider backed by os.Getenv.
type DefaultEnvProvider struct{}

func (DefaultEnvProvider) Getenv(key string) string { return os.Getenv(key) }

// UserProvider provides access to the current user's information.
type UserProvider interface {
	Current() (*user.User, error)
}

// DefaultUserProvider is a concrete UserProvider backed by user.Current.
type DefaultUserProvider struct{}

func (DefaultUserProvider) Current() (*user.User, error) { return user.Current() }

// Resolver resolves directory locations for an application.
type Resolver struct {
	appName         string
	userProvider    UserProvider
	envProvider     EnvProvider
	shouldEnsureDir bool
}

// NewResolver creates a directory resolver with the given providers.
func NewResolver(appName string, userProvider UserProvider, envProvider EnvProvider, shouldEnsureDir bool) *Resolver {
	return &Resolver{
		appName:         appName,
		userProvider:    userProvider,
		envProvider:     envProvider,
		shouldEnsureDir: shouldEnsureDir,
	}
}

func (r *Resolver) isRoot() (bool, error) {
	u, err := r.userProvider.Current()
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.Uid == "0", nil
}

func (r *Resolver) maybeEnsureDir(dir string) (string, error) {
	if !r.shouldEnsureDir {
		return dir, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// LogDirectory returns the default directory for log files.
//
// Root: /var/log/{appName}
// Regular users on Unix: ~/.local/state/{appName}
// Windows: %LOCALAPPDATA%\{appName}\logs
func (r *Resolver) LogDirectory() (string, error) {
	if runtime.GOOS == "windows" {
		base := r.envProvider.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to resolve home directory: %w", err)
			}
			base = filepath.Join(home, "AppData", "Local")
		}
		return r.maybeEnsureDir(filepath.Join(base, r.appName, "logs"))
	}

	isR, err := r.isRoot()
	if err != nil {
		return "", err
	}
	if isR {
		return r.maybeEnsureDir(filepath.Join("/", "var", "log", r.appName))
	}

	if xdg := r.envProvider.Getenv("XDG_STATE_HOME"); xdg != "" {
		return r.maybeEnsureDir(filepath.Join(xdg, r.appName))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return r.maybeEnsureDir(filepath.Join(home, ".local", "state", r.appName))
}
