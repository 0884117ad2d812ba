// Package filestore stores uploaded files on the local filesystem.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/technova/careers-api/internal/domain/model"
	apperrors "github.com/technova/careers-api/internal/errors"
)

// sniffLen is how many leading bytes are inspected to detect the content type.
const sniffLen = 3072

// DefaultMaxBytes caps a single upload when no limit is configured.
const DefaultMaxBytes int64 = 5 << 20

// DefaultAllowedTypes are the resume formats accepted when none are configured.
//
//nolint:gochecknoglobals // read-only defaults
var DefaultAllowedTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/rtf",
	"text/plain",
}

var reSafeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Options configures a LocalStore.
type Options struct {
	Dir          string
	MaxBytes     int64
	AllowedTypes []string
	Logger       *slog.Logger
}

// LocalStore writes uploads into a single directory under random names.
type LocalStore struct {
	dir      string
	maxBytes int64
	allowed  []string
	logger   *slog.Logger
}

// NewLocalStore creates the upload directory if needed and returns a store rooted there.
func NewLocalStore(opts Options) (*LocalStore, error) {
	dir := filepath.Clean(strings.TrimSpace(opts.Dir))
	if dir == "" || dir == "." {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	allowed := opts.AllowedTypes
	if len(allowed) == 0 {
		allowed = DefaultAllowedTypes
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalStore{
		dir:      dir,
		maxBytes: maxBytes,
		allowed:  allowed,
		logger:   logger.With("component", "filestore"),
	}, nil
}

// Dir returns the directory files are stored in.
func (s *LocalStore) Dir() string { return s.dir }

// Store validates and writes the upload. The file only appears under its final name once fully written.
func (s *LocalStore) Store(ctx context.Context, upload *model.Upload) (*model.StoredFile, error) {
	if upload == nil || upload.Content == nil {
		return nil, apperrors.MissingFile("Resume file is required")
	}
	if upload.Size > s.maxBytes {
		return nil, s.tooLarge()
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return nil, apperrors.ValidationField("resume", "Resume file is empty")
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	if !s.isAllowed(detected) {
		return nil, apperrors.ValidationField("resume",
			fmt.Sprintf("Resume file type %s is not allowed", detected.String()))
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	written, err := s.copyLimited(tmp, head, upload.Content)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close temp file: %w", closeErr)
	}
	if err != nil {
		return nil, err
	}

	name := uuid.NewString() + extensionFor(upload.Filename, detected)
	finalPath := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, finalPath); err != nil {
		return nil, fmt.Errorf("move upload into place: %w", err)
	}
	committed = true

	return &model.StoredFile{
		Path:         filepath.ToSlash(finalPath),
		OriginalName: originalName(upload.Filename, name),
		ContentType:  detected.String(),
		Size:         written,
	}, nil
}

func (s *LocalStore) copyLimited(dst io.Writer, head []byte, rest io.Reader) (int64, error) {
	if _, err := dst.Write(head); err != nil {
		return 0, fmt.Errorf("write upload: %w", err)
	}
	// Read one byte past the limit so an oversized body is detected rather than silently truncated.
	remaining := s.maxBytes - int64(len(head)) + 1
	copied, err := io.Copy(dst, io.LimitReader(rest, remaining))
	if err != nil {
		return 0, fmt.Errorf("write upload: %w", err)
	}
	total := int64(len(head)) + copied
	if total > s.maxBytes {
		return 0, s.tooLarge()
	}
	return total, nil
}

func (s *LocalStore) tooLarge() error {
	return apperrors.ValidationField("resume",
		fmt.Sprintf("Resume file exceeds the %d byte limit", s.maxBytes))
}

func (s *LocalStore) isAllowed(detected *mimetype.MIME) bool {
	for _, allowed := range s.allowed {
		if detected.Is(allowed) {
			return true
		}
	}
	return false
}

// extensionFor keeps the client's extension when it is short and plain, otherwise uses the detected one.
// originalName keeps the client's base name, or the stored name when the client sent none.
func originalName(filename, stored string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	switch base {
	case ".", "/", string(filepath.Separator), "..":
		return stored
	}
	return base
}

func extensionFor(filename string, detected *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if reSafeExt.MatchString(ext) {
		return ext
	}
	return detected.Extension()
}

// Remove deletes a stored file. Paths outside the upload directory are refused.
func (s *LocalStore) Remove(ctx context.Context, path string) {
	if strings.TrimSpace(path) == "" {
		return
	}

	target, ok := s.within(path)
	if !ok {
		s.logger.WarnContext(ctx, "refusing to remove file outside upload directory", "path", path)
		return
	}

	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.WarnContext(ctx, "failed to remove stored file", "path", path, "error", err)
		return
	}
	s.logger.DebugContext(ctx, "removed stored file", "path", path)
}

func (s *LocalStore) within(path string) (string, bool) {
	absDir, err := filepath.Abs(s.dir)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	if strings.ContainsRune(rel, filepath.Separator) {
		return "", false
	}
	return absPath, true
}
