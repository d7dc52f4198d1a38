package client

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// tokenFile persists the session token between runs. The file is readable
// only by its owner.
type tokenFile struct {
	path string
}

func (f tokenFile) load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// save writes token, or removes the file when token is empty.
func (f tokenFile) save(token string) error {
	if token == "" {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove token file: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(f.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
