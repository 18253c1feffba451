package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"animal-adoption/internal/ports/images"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var (
	ErrNotConfigured = errors.New("cloudinary not configured")
	ErrUpstream      = errors.New("cloudinary upstream error")
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// uploadAPI es el subconjunto de uploader.API que usamos (permite fakes en tests).
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Store struct {
	api    uploadAPI
	folder string
}

var _ images.Store = (*Store)(nil)

func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.CloudName) == "" || strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Store{api: &cld.Upload, folder: strings.TrimSpace(cfg.Folder)}, nil
}

func (s *Store) Upload(ctx context.Context, u images.Upload) (images.Stored, error) {
	if u.Body == nil {
		return images.Stored{}, errors.New("empty upload")
	}

	res, err := s.api.Upload(ctx, u.Body, uploader.UploadParams{Folder: s.folder})
	if err != nil {
		return images.Stored{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if res == nil || res.Error.Message != "" {
		msg := "empty response"
		if res != nil {
			msg = res.Error.Message
		}
		return images.Stored{}, fmt.Errorf("%w: %s", ErrUpstream, msg)
	}

	return images.Stored{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

func (s *Store) Delete(ctx context.Context, publicID string) error {
	publicID = strings.TrimSpace(publicID)
	if publicID == "" {
		return errors.New("public id required")
	}

	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if res != nil && res.Error.Message != "" {
		return fmt.Errorf("%w: %s", ErrUpstream, res.Error.Message)
	}
	return nil
}
