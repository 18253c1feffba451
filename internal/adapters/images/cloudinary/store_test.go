package cloudinary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"animal-adoption/internal/ports/images"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type fakeAPI struct {
	uploadErr  error
	uploaded   []uploader.UploadParams
	destroyed  []string
	uploadResp *uploader.UploadResult
}

func (f *fakeAPI) Upload(_ context.Context, _ interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploaded = append(f.uploaded, p)
	return f.uploadResp, f.uploadErr
}

func (f *fakeAPI) Destroy(_ context.Context, p uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyed = append(f.destroyed, p.PublicID)
	return &uploader.DestroyResult{Result: "ok"}, nil
}

func TestNew_RequiresCredentials(t *testing.T) {
	if _, err := New(Config{CloudName: "demo"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestUpload_UsesFolderAndSecureURL(t *testing.T) {
	api := &fakeAPI{uploadResp: &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/animals/x.jpg",
		PublicID:  "animals/x",
	}}
	s := &Store{api: api, folder: "animals"}

	st, err := s.Upload(context.Background(), images.Upload{Filename: "x.jpg", Body: strings.NewReader("b")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if st.PublicID != "animals/x" || !strings.HasPrefix(st.URL, "https://") {
		t.Fatalf("unexpected stored: %#v", st)
	}
	if len(api.uploaded) != 1 || api.uploaded[0].Folder != "animals" {
		t.Fatalf("expected folder param, got %#v", api.uploaded)
	}
}

func TestUpload_WrapsUpstreamError(t *testing.T) {
	s := &Store{api: &fakeAPI{uploadErr: errors.New("timeout")}}
	_, err := s.Upload(context.Background(), images.Upload{Body: strings.NewReader("b")})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	api := &fakeAPI{}
	s := &Store{api: api}
	if err := s.Delete(context.Background(), "animals/x"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.destroyed) != 1 || api.destroyed[0] != "animals/x" {
		t.Fatalf("unexpected destroy calls: %#v", api.destroyed)
	}
}
