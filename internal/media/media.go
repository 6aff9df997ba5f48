// Package media принимает загруженные изображения и хранит их под сгенерированными именами.
package media

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound    = errors.New("media not found")
	ErrInvalidName = errors.New("invalid media name")
)

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Store хранилище файлов: локальная папка или бакет MinIO
type Store interface {
	Save(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
}

type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

type Ingestor struct {
	store  Store
	logger *slog.Logger
}

func NewIngestor(store Store) *Ingestor {
	return &Ingestor{store: store, logger: slog.Default().With("component", "media")}
}

// AllowedExtension возвращает расширение в нижнем регистре, если оно разрешено
func AllowedExtension(filename string) (string, bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "", false
	}
	ext := strings.ToLower(filename[idx+1:])
	return ext, allowedExtensions[ext]
}

// Ingest возвращает пустую ссылку без ошибки, если файла нет или расширение не разрешено
func (i *Ingestor) Ingest(ctx context.Context, upload *Upload) (string, error) {
	return i.ingest(ctx, upload, "")
}

func (i *Ingestor) IngestAvatar(ctx context.Context, accountID uuid.UUID, upload *Upload) (string, error) {
	return i.ingest(ctx, upload, fmt.Sprintf("profile_%s_", accountID))
}

func (i *Ingestor) ingest(ctx context.Context, upload *Upload, prefix string) (string, error) {
	if upload == nil || upload.Filename == "" || upload.Body == nil {
		return "", nil
	}
	ext, ok := AllowedExtension(upload.Filename)
	if !ok {
		i.logger.Info("upload rejected", "filename", upload.Filename)
		return "", nil
	}

	name := prefix + randomHex() + "." + ext
	if err := i.store.Save(ctx, name, upload.Body, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return name, nil
}

func (i *Ingestor) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if err := validateName(name); err != nil {
		return nil, 0, err
	}
	return i.store.Open(ctx, name)
}

// FromFileHeader открывает multipart-файл; вызывающий закрывает возвращённый Closer
func FromFileHeader(fh *multipart.FileHeader) (*Upload, io.Closer, error) {
	if fh == nil {
		return nil, nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &Upload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}, f, nil
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func validateName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	return nil
}
