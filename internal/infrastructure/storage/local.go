// Package storage persists uploaded post images on local disk. Files are
// written under a single directory and served statically by the router.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/galleryblog/blog-api/internal/core/domain"
	"github.com/galleryblog/blog-api/internal/core/ports"
)

// MaxImageSize is the upload cap enforced before anything is written.
const MaxImageSize = 5 << 20 // 5 MB

// sniffLen is how many leading bytes mimetype needs for detection.
const sniffLen = 3072

var allowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/avif",
}

// LocalStore writes images to a directory on local disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the uploads directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir is the directory images are stored in, for the static file route.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save validates the upload's size and sniffed content type, then writes it
// under a collision-free name: image-<unixms>-<random><ext>. Validation
// failures happen before any byte reaches disk.
func (s *LocalStore) Save(upload ports.ImageUpload) (string, error) {
	if upload.Size > MaxImageSize {
		return "", domain.ErrImageTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !allowedType(mt) {
		return "", domain.ErrImageType
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), shortID(), mt.Extension())
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}

	// Size comes from the multipart header; re-check while copying in case
	// the body disagrees.
	src := io.MultiReader(bytes.NewReader(head), upload.Reader)
	written, err := io.Copy(f, io.LimitReader(src, MaxImageSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if written > MaxImageSize {
		_ = os.Remove(path)
		return "", domain.ErrImageTooLarge
	}

	return name, nil
}

// Remove deletes a stored image. Removing a file that is already gone is
// not an error.
func (s *LocalStore) Remove(filename string) error {
	// filename comes from our own documents, but never follow a path out
	// of the uploads dir
	if filepath.Base(filename) != filename {
		return domain.ErrInvalidID
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

func allowedType(mt *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mt.Is(t) {
			return true
		}
	}
	return false
}

func shortID() string {
	return uuid.NewString()[:8]
}
