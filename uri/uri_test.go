package uri

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPathUnix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-specific")
	}

	assert.Equal(t, "file:///home/rockerboo/main.go", FromPath("/home/rockerboo/main.go"))
}

func TestRoundTripUnix(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix-specific")
	}

	path := "/home/rockerboo/code/main.go"
	assert.Equal(t, path, ToPath(FromPath(path)))
}

func TestIsFileURI(t *testing.T) {
	assert.True(t, IsFileURI("file:///a/b"))
	assert.False(t, IsFileURI("/a/b"))
	assert.False(t, IsFileURI("https://example.com"))
}
