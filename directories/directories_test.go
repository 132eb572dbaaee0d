package directories

import (
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserProvider struct {
	u   *user.User
	err error
}

func (f fakeUserProvider) Current() (*user.User, error) { return f.u, f.err }

type fakeEnvProvider struct {
	values map[string]string
}

func (f fakeEnvProvider) Getenv(key string) string { return f.values[key] }

func TestLogDirectoryRoot(t *testing.T) {
	if testing.Short() {
		t.Skip("short mode")
	}

	r := NewResolver("mcp-lsp-bridge", fakeUserProvider{u: &user.User{Uid: "0"}}, fakeEnvProvider{}, false)
	dir, err := r.LogDirectory()
	require.NoError(t, err)
	assert.Contains(t, dir, "mcp-lsp-bridge")
}

func TestLogDirectoryXDGOverride(t *testing.T) {
	r := NewResolver(
		"mcp-lsp-bridge",
		fakeUserProvider{u: &user.User{Uid: "1000"}},
		fakeEnvProvider{values: map[string]string{"XDG_STATE_HOME": "/home/user/.state"}},
		false,
	)
	dir, err := r.LogDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.state/mcp-lsp-bridge", dir)
}
