package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/utils"
)

// MaxUploadSize caps proof and avatar uploads at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// FileStore persists uploads under a base directory, one subdirectory
// per owning record.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Save validates size and extension then writes the upload under
// <base>/<ownerID>/<random>.<ext>, returning the stored file name.
func (fs *FileStore) Save(ownerID uuid.UUID, header *multipart.FileHeader) (string, error) {
	if header.Size > MaxUploadSize {
		return "", &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "file exceeds the 5MB upload limit",
		}
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return "", &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    "unsupported file type",
		}
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(fs.baseDir, ownerID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := utils.RandomString(16) + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize)); err != nil {
		return "", err
	}
	return name, nil
}

// Open returns the stored file for streaming back to a client. The
// name components are validated so a crafted path cannot escape the
// owner's directory.
func (fs *FileStore) Open(ownerID uuid.UUID, name string) (*os.File, error) {
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil, utils.ErrNotFound
	}
	f, err := os.Open(filepath.Join(fs.baseDir, ownerID.String(), name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Remove deletes a stored file, ignoring files already gone.
func (fs *FileStore) Remove(ownerID uuid.UUID, name string) error {
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(fs.baseDir, ownerID.String(), name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
