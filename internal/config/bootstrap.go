package config

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
)

// EnsureUserConfig returns the path of the config file inside dataDir,
// seeding it from the packaged defaults on first run. An existing user
// copy is never touched, so hand edits survive upgrades.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	log.Printf("[config] seeded %s from defaults", userPath)
	return userPath, nil
}
