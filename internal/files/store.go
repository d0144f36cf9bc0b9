// Package files реализует локальное файловое хранилище загруженных видео.
// Хранилище владеет базовым каталогом и не позволяет выйти за его пределы.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store — файловое хранилище с фиксированным базовым каталогом.
type Store struct {
	baseDir string
}

// NewStore создаёт хранилище и базовый каталог, если его ещё нет.
func NewStore(baseDir string) (*Store, error) {
	const op = "files.NewStore"
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save записывает содержимое src в новый файл. Имя файла строится из uuid
// и исходного расширения, чтобы исключить коллизии и подстановку путей.
// Возвращает имя сохранённого файла.
func (s *Store) Save(src io.Reader, originalName string) (string, error) {
	const op = "files.Save"

	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	filename := uuid.New().String() + ext

	dst, err := os.Create(filepath.Join(s.baseDir, filename))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return filename, nil
}

// Open открывает сохранённый файл по имени. Имена с элементами пути отклоняются.
func (s *Store) Open(filename string) (io.ReadCloser, error) {
	const op = "files.Open"
	if filename == "" || filename != filepath.Base(filename) {
		return nil, fmt.Errorf("%s: invalid filename %q", op, filename)
	}
	f, err := os.Open(filepath.Join(s.baseDir, filename))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// Exists сообщает, есть ли файл с таким именем в хранилище.
func (s *Store) Exists(filename string) bool {
	if filename == "" || filename != filepath.Base(filename) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.baseDir, filename))
	return err == nil
}
