// Package files stores avatars and user uploads on the local filesystem or
// in an S3-compatible bucket.
package files

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-profile-keeper/internal/config"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
)

// NewSink builds the sink selected by cfg.Backend.
func NewSink(ctx context.Context, cfg config.Files, log *logger.Logger) (Sink, error) {
	switch cfg.Backend {
	case config.FilesBackendLocal:
		return NewLocalSink(cfg.RootDir, log)
	case config.FilesBackendS3:
		return NewS3Sink(ctx, cfg.S3, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
