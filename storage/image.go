package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	_ "image/jpeg"
	_ "image/png"

	"yatube/domain"
	"yatube/errs"
)

var _ domain.ImageService = &ImageService{}

// ImageService validates uploaded post illustrations and stores them as
// files below the media base directory, under the posts prefix. The
// generated relative path ("posts/<uuid>.<ext>") is what gets persisted on
// the post record.
type ImageService struct {
	imageValidator
}

type imageValidator struct {
	imageFiles
}

type imageFiles struct {
	baseDir string
}

// NewImageService returns an instance of ImageService storing files below baseDir.
func NewImageService(baseDir string) *ImageService {
	return &ImageService{
		imageValidator{
			imageFiles{
				baseDir: baseDir,
			},
		},
	}
}

// Create runs validations on the uploaded file, gives it a unique name and
// writes it to disk.
func (iv *imageValidator) Create(img *domain.Image) error {
	err := runImageValFns(img,
		iv.extensionValid,
		iv.contentTypeValid,
		iv.contentTypeExtensionMatch,
		iv.belowMaxSize,
		iv.fileNameUnique,
	)
	if err != nil {
		return err
	}
	return iv.imageFiles.Create(img)
}

type imageValFn func(img *domain.Image) error

func runImageValFns(img *domain.Image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

func (iv *imageValidator) belowMaxSize(img *domain.Image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if err = resetReaderPosition(img); err != nil {
		return err
	}
	if size > domain.MaxUploadSize {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s exceeds the upload size limit of %sMB.",
			img.Filename, strconv.FormatInt(domain.MaxUploadSize/1000000, 10),
		)
	}
	return nil
}

func (iv *imageValidator) contentTypeValid(img *domain.Image) error {
	buffer := make([]byte, 512)
	n, err := img.File.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}
	if n == 0 {
		return errs.Errorf(errs.EINVALID, "Image %s is empty or unreadable.", img.Filename)
	}
	if err := resetReaderPosition(img); err != nil {
		return err
	}
	contentType := http.DetectContentType(buffer[:n])
	if contentType != "image/jpeg" && contentType != "image/png" {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s has an invalid content-type, must be image/jpeg or image/png.",
			img.Filename,
		)
	}
	img.ContentType = contentType
	return nil
}

func (iv *imageValidator) contentTypeExtensionMatch(img *domain.Image) error {
	contentType := strings.TrimPrefix(img.ContentType, "image/")
	ext := strings.TrimPrefix(img.Extension, ".")
	if contentType != ext {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s content-type %s does not match extension %s.",
			img.Filename, img.ContentType, img.Extension,
		)
	}
	return nil
}

func (iv *imageValidator) extensionValid(img *domain.Image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return errs.Errorf(
			errs.EINVALID,
			"Image %s has an invalid extension, must be .jpeg or .png.",
			img.Filename,
		)
	}
	if ext == ".jpg" {
		ext = ".jpeg"
	}
	img.Extension = ext
	return nil
}

// fileNameUnique replaces the client-chosen file name with a generated one,
// so uploads can never collide or escape the posts directory.
func (iv *imageValidator) fileNameUnique(img *domain.Image) error {
	img.StoredPath = fmt.Sprintf("%s/%s%s", domain.PostsImageDir, uuid.NewString(), img.Extension)
	return nil
}

// resetReaderPosition seeks back to the beginning of the file, so that
// subsequent reads will work.
func resetReaderPosition(img *domain.Image) error {
	_, err := img.File.Seek(0, io.SeekStart)
	return err
}

// Create writes the validated image file to disk at its StoredPath.
func (ifs *imageFiles) Create(img *domain.Image) error {
	path := filepath.Join(ifs.baseDir, filepath.FromSlash(img.StoredPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, img.File); err != nil {
		return err
	}
	return nil
}

// Delete removes a stored image file. It refuses paths that point outside
// the media base directory.
func (ifs *imageFiles) Delete(relativePath string) error {
	path := filepath.Join(ifs.baseDir, filepath.FromSlash(relativePath))
	if !strings.HasPrefix(path, filepath.Clean(ifs.baseDir)+string(os.PathSeparator)) {
		return errs.Errorf(errs.EINVALID, "Invalid image path.")
	}
	return os.Remove(path)
}
