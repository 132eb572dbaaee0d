// Package security validates that file paths the bridge is asked to touch
// stay within the workspace directory the process was started against.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// GetCleanAbsPath validates and returns a clean absolute path.
func GetCleanAbsPath(path string) (string, error) {
	if path == "" || path == "." {
		return "", errors.New("path cannot be empty or current directory")
	}

	cleanPath := filepath.Clean(path)
	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	return absPath, nil
}

// IsWithinAllowedDirectory checks if a path is within an allowed base
// directory. Parent directories of baseDir are never considered within it.
func IsWithinAllowedDirectory(path, baseDir string) bool {
	absBase, _ := filepath.Abs(baseDir)
	absPath, _ := filepath.Abs(path)

	cleanBase := filepath.Clean(absBase)
	cleanPath := filepath.Clean(absPath)

	if cleanPath == cleanBase {
		return true
	}

	return strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator))
}

// ValidateWorkspacePath validates that path, once resolved, falls within
// workspaceDir. It is the boundary every MCP tool's filePath argument crosses
// before the bridge opens or writes it.
func ValidateWorkspacePath(path, workspaceDir string) (string, error) {
	cleanPath, err := GetCleanAbsPath(path)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}

	if !IsWithinAllowedDirectory(cleanPath, workspaceDir) {
		return "", fmt.Errorf("file path is outside the workspace: %s", cleanPath)
	}

	return cleanPath, nil
}
