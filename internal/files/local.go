package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MKhiriev/go-profile-keeper/internal/logger"
)

type localSink struct {
	root   string
	logger *logger.Logger
}

// NewLocalSink returns a [Sink] rooted at dir on the local filesystem.
func NewLocalSink(root string, logger *logger.Logger) (Sink, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		logger.Err(err).Str("func", "NewLocalSink").Msg("error creating files root")
		return nil, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return &localSink{root: root, logger: logger}, nil
}

func (s *localSink) EnsureDir(ctx context.Context, dir string) error {
	full, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(full, 0o750); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localSink.EnsureDir").Msg("error creating directory")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

func (s *localSink) Write(ctx context.Context, name string, r io.Reader) error {
	log := logger.FromContext(ctx)

	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		log.Err(err).Str("func", "*localSink.Write").Msg("error creating parent directory")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	// write next to the target and rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*localSink.Write").Msg("error creating temp file")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, r); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*localSink.Write").Msg("error writing file")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	if err = os.Rename(tmp.Name(), full); err != nil {
		log.Err(err).Str("func", "*localSink.Write").Msg("error moving file into place")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	return nil
}

func (s *localSink) Remove(ctx context.Context, name string) error {
	full, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err = os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*localSink.Remove").Msg("error removing file")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

func (s *localSink) RemoveAll(ctx context.Context, dir string) error {
	full, err := s.resolve(dir)
	if err != nil {
		return err
	}
	if full == filepath.Clean(s.root) {
		return ErrInvalidPath
	}
	if err = os.RemoveAll(full); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localSink.RemoveAll").Msg("error removing directory")
		return fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return nil
}

func (s *localSink) List(ctx context.Context, dir string) ([]string, error) {
	full, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(full)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localSink.List").Msg("error reading directory")
		return nil, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".upload-") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	return names, nil
}

// resolve maps a sink path onto the filesystem, refusing anything that would
// land outside root.
func (s *localSink) resolve(name string) (string, error) {
	cleaned, err := cleanPath(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// cleanPath normalizes a relative slash path and rejects traversal.
func cleanPath(name string) (string, error) {
	if name == "" || path.IsAbs(name) || strings.Contains(name, "\\") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return cleaned, nil
}
