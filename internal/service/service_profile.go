package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/MKhiriev/go-profile-keeper/internal/files"
	"github.com/MKhiriev/go-profile-keeper/internal/logger"
	"github.com/MKhiriev/go-profile-keeper/internal/store"
	"github.com/MKhiriev/go-profile-keeper/internal/validators"
	"github.com/MKhiriev/go-profile-keeper/models"
)

const avatarsRoot = "avatars"

var allowedAvatarExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

type profileService struct {
	auth      AuthService
	profiles  store.ProfileStore
	sink      files.Sink
	validator validators.Validator

	logger *logger.Logger
}

func NewProfileService(auth AuthService, profiles store.ProfileStore, sink files.Sink, logger *logger.Logger) ProfileService {
	return &profileService{
		auth:      auth,
		profiles:  profiles,
		sink:      sink,
		validator: validators.NewAccountValidator(),
		logger:    logger,
	}
}

// View shows the owner their live session snapshot; everybody else gets the
// stored profile.
func (p *profileService) View(ctx context.Context, token, username string) (models.ProfileView, error) {
	log := logger.FromContext(ctx)

	owner, err := p.auth.IsOwner(ctx, token, username)
	if err != nil {
		return models.ProfileView{}, err
	}

	var profile models.Profile
	cached, ok := p.auth.Resolve(ctx, token)
	if owner && ok {
		profile = cached
	} else {
		profile, err = p.profiles.Get(ctx, username)
		if err != nil {
			log.Err(err).Str("func", "*profileService.View").Str("username", username).Msg("profile fetch failed")
			return models.ProfileView{}, mapStoreError(err)
		}
	}

	names, err := p.sink.List(ctx, profile.FilesDir)
	if err != nil {
		log.Err(err).Str("func", "*profileService.View").Msg("files listing failed")
		return models.ProfileView{}, mapStoreError(err)
	}

	return models.ProfileView{Profile: profile, Files: names, ShowOptions: owner}, nil
}

// SetAvatar writes avatars/<username><ext> and points the profile at it.
func (p *profileService) SetAvatar(ctx context.Context, username, filename string, r io.Reader) (string, error) {
	log := logger.FromContext(ctx)

	ext := strings.ToLower(path.Ext(filename))
	if !slices.Contains(allowedAvatarExtensions, ext) {
		return "", fmt.Errorf("%w: unsupported avatar type %q", ErrInvalidRequest, ext)
	}

	previous, err := p.profiles.Get(ctx, username)
	if err != nil {
		return "", mapStoreError(err)
	}

	avatar := path.Join(avatarsRoot, username+ext)
	if err = p.sink.Write(ctx, avatar, r); err != nil {
		log.Err(err).Str("func", "*profileService.SetAvatar").Msg("avatar write failed")
		return "", mapStoreError(err)
	}

	if err = p.auth.UpdateProfile(ctx, username, models.ProfileUpdate{Avatar: &avatar}); err != nil {
		return "", err
	}

	// a different extension leaves the old file behind
	if previous.HasCustomAvatar() && previous.Avatar != avatar {
		if err = p.sink.Remove(ctx, previous.Avatar); err != nil {
			log.Err(err).Str("func", "*profileService.SetAvatar").Msg("old avatar removal failed")
		}
	}

	return avatar, nil
}

func (p *profileService) UploadFile(ctx context.Context, username, filename string, r io.Reader) error {
	log := logger.FromContext(ctx)

	name := baseName(filename)
	if err := p.validator.Validate(ctx, name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	profile, err := p.profiles.Get(ctx, username)
	if err != nil {
		return mapStoreError(err)
	}

	if err = p.sink.Write(ctx, path.Join(profile.FilesDir, name), r); err != nil {
		log.Err(err).Str("func", "*profileService.UploadFile").Msg("file write failed")
		return mapStoreError(err)
	}

	log.Info().Str("func", "*profileService.UploadFile").Str("username", username).Str("file", name).Msg("file uploaded")
	return nil
}

func (p *profileService) ListFiles(ctx context.Context, username string) ([]string, error) {
	profile, err := p.profiles.Get(ctx, username)
	if err != nil {
		return nil, mapStoreError(err)
	}

	names, err := p.sink.List(ctx, profile.FilesDir)
	if err != nil {
		if errors.Is(err, files.ErrInvalidPath) {
			return []string{}, nil
		}
		return nil, mapStoreError(err)
	}
	return names, nil
}

// baseName strips any client-supplied directory part, including Windows
// separators.
func baseName(filename string) string {
	filename = strings.ReplaceAll(filename, `\`, "/")
	return path.Base(filename)
}
