package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWithinAllowedDirectory(t *testing.T) {
	assert.True(t, IsWithinAllowedDirectory("/ws/src/main.go", "/ws"))
	assert.True(t, IsWithinAllowedDirectory("/ws", "/ws"))
	assert.False(t, IsWithinAllowedDirectory("/other/main.go", "/ws"))
	assert.False(t, IsWithinAllowedDirectory("/ws-extra/main.go", "/ws"))
	assert.False(t, IsWithinAllowedDirectory("/", "/ws"))
}

func TestValidateWorkspacePath(t *testing.T) {
	got, err := ValidateWorkspacePath("/ws/main.go", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "/ws/main.go", got)

	_, err = ValidateWorkspacePath("/etc/passwd", "/ws")
	require.Error(t, err)
}
