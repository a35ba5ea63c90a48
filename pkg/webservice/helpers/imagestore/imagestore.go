// Package imagestore keeps message images on the local filesystem under
// <root>/bottles/<bottle>/<message>.png.
package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	dirMode  os.FileMode = 0o774
	fileMode os.FileMode = 0o664
	ext                  = ".png"
)

var ErrNotFound = errors.New("image not found")

// UndoFunc reverts a Write.
type UndoFunc func() error

// ImageFile is one stored image as seen by the sweep.
type ImageFile struct {
	MessageID int64
	ModTime   time.Time
}

type FileStore struct {
	Root string
}

func New(root string) *FileStore {
	return &FileStore{Root: root}
}

func (s *FileStore) bottleDir(bottleID int64) string {
	return filepath.Join(s.Root, "bottles", strconv.FormatInt(bottleID, 10))
}

func (s *FileStore) Path(bottleID, messageID int64) string {
	return filepath.Join(s.bottleDir(bottleID), strconv.FormatInt(messageID, 10)+ext)
}

// Write stores data for (bottleID, messageID). The returned UndoFunc puts
// back the previous file content, or removes the file if there was none.
// Concurrent writes for the same pair are not serialised.
func (s *FileStore) Write(bottleID, messageID int64, data []byte) (UndoFunc, error) {
	path := s.Path(bottleID, messageID)
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}

	prev, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read previous image: %w", err)
	}

	if err := os.WriteFile(path, data, fileMode); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	undo := func() error {
		if existed {
			return os.WriteFile(path, prev, fileMode)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return undo, nil
}

func (s *FileStore) Read(bottleID, messageID int64) ([]byte, error) {
	data, err := os.ReadFile(s.Path(bottleID, messageID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *FileStore) Remove(bottleID, messageID int64) error {
	err := os.Remove(s.Path(bottleID, messageID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Bottles lists the bottle directories that hold images.
func (s *FileStore) Bottles() ([]int64, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, "bottles"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []int64
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		id, err := strconv.ParseInt(e.Name(), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Messages lists the images stored for one bottle.
func (s *FileStore) Messages(bottleID int64) ([]ImageFile, error) {
	entries, err := os.ReadDir(s.bottleDir(bottleID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var files []ImageFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(name, ext), 10, 64)
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ImageFile{MessageID: id, ModTime: info.ModTime()})
	}
	return files, nil
}

// ReencodePNG decodes data as PNG and encodes it again, so only well formed
// images are served.
func ReencodePNG(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
