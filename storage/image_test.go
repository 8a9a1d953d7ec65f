package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"yatube/domain"
	"yatube/errs"
)

// uploadFile stages content as a real file, which satisfies the
// multipart.File interface the service consumes.
func uploadFile(t *testing.T, name string, content []byte) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write upload file: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open upload file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

var pngSignature = []byte("\x89PNG\r\n\x1a\nxxxxxxxx")

func TestImageServiceCreate(t *testing.T) {
	baseDir := t.TempDir()
	is := NewImageService(baseDir)

	img := &domain.Image{
		File:     uploadFile(t, "pic.png", pngSignature),
		Filename: "pic.png",
	}
	if err := is.Create(img); err != nil {
		t.Fatalf("Create() = %v", err)
	}
	if !strings.HasPrefix(img.StoredPath, "posts/") || !strings.HasSuffix(img.StoredPath, ".png") {
		t.Fatalf("stored path = %q, want posts/<name>.png", img.StoredPath)
	}
	if _, err := os.Stat(filepath.Join(baseDir, filepath.FromSlash(img.StoredPath))); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestImageServiceCreateValidation(t *testing.T) {
	is := NewImageService(t.TempDir())

	tests := []struct {
		name     string
		filename string
		content  []byte
	}{
		{"empty file", "pic.png", nil},
		{"wrong extension", "pic.gif", pngSignature},
		{"content type mismatch", "pic.jpeg", pngSignature},
		{"not an image", "pic.png", []byte("just some text, long enough to sniff")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &domain.Image{
				File:     uploadFile(t, tt.filename, tt.content),
				Filename: tt.filename,
			}
			if code := errs.ErrorCode(is.Create(img)); code != errs.EINVALID {
				t.Errorf("Create() code = %q, want %q", code, errs.EINVALID)
			}
		})
	}
}

func TestImageServiceDeleteRejectsEscape(t *testing.T) {
	is := NewImageService(t.TempDir())
	err := is.Delete("../../etc/passwd")
	if errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("Delete() code = %q, want %q", errs.ErrorCode(err), errs.EINVALID)
	}
}
