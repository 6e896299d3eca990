package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFile is returned by Save when no upload was provided.
var ErrNoFile = errors.New("no file provided")

// ImageStore owns the lifecycle of uploaded food images. Catalog code
// talks to this interface only and never touches the filesystem.
type ImageStore interface {
	// Save persists the upload and returns the public URL it will be
	// served under.
	Save(file *multipart.FileHeader) (string, error)
	// Remove deletes the blob behind a previously returned URL.
	// Unknown or empty URLs are ignored.
	Remove(url string) error
}

// DiskStore writes images under Dir and serves them under Prefix
// (e.g. Dir=/var/www/delivery/uploads, Prefix=/uploads).
type DiskStore struct {
	Dir    string
	Prefix string
}

func NewDiskStore(dir, prefix string) *DiskStore {
	return &DiskStore{Dir: dir, Prefix: prefix}
}

func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", ErrNoFile
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	filename := strings.ReplaceAll(file.Filename, " ", "_")
	dest := filepath.Join(s.Dir, filename)

	in, err := file.Open()
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return "", err
	}
	if err := out.Sync(); err != nil {
		return "", err
	}

	return s.Prefix + "/" + filename, nil
}

func (s *DiskStore) Remove(url string) error {
	if url == "" || !strings.HasPrefix(url, s.Prefix+"/") {
		return nil
	}
	path := filepath.Join(s.Dir, strings.TrimPrefix(url, s.Prefix+"/"))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
