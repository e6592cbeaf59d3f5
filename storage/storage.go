// Package storage keeps invoice attachments on local disk under per-tenant prefixes and
// enforces each tenant's storage quota.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/satheeshds/buildledger/internal/logger"
	"github.com/satheeshds/buildledger/models"
)

// AttachmentFolder is the per-tenant folder that invoice attachments are written to.
const AttachmentFolder = "invoice-attachments"

// QuotaStore tracks the bytes each tenant has stored. ReserveStorage must be a single
// conditional update that fails with models.ErrQuotaExceeded instead of passing limit.
type QuotaStore interface {
	ReserveStorage(ctx context.Context, tenantID string, bytes, limit int64) error
	ReleaseStorage(ctx context.Context, tenantID string, bytes int64) error
	StorageUsed(ctx context.Context, tenantID string) (int64, error)
}

// FileMeta describes an incoming upload.
type FileMeta struct {
	FileName string
	Size     int64
}

// UploadResult is returned by Upload.
type UploadResult struct {
	FilePath string       `json:"filePath"`
	Quota    models.Quota `json:"quota"`
}

// Service stores files below root.
type Service struct {
	root   string
	limit  int64
	quotas QuotaStore
}

// New creates root if needed. limit is the per-tenant quota in bytes.
func New(root string, limit int64, quotas QuotaStore) (*Service, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &Service{root: root, limit: limit, quotas: quotas}, nil
}

// Upload writes r as a new attachment for the tenant. Nothing is written or reserved when
// the declared size exceeds the remaining quota.
func (s *Service) Upload(ctx context.Context, tenantID string, r io.Reader, meta FileMeta) (UploadResult, error) {
	if err := checkTenant(tenantID); err != nil {
		return UploadResult{}, err
	}
	name := cleanFileName(meta.FileName)
	if name == "" {
		return UploadResult{}, models.NewValidationError("file", "file name is required")
	}
	if meta.Size <= 0 {
		return UploadResult{}, models.NewValidationError("file", "file is empty")
	}
	used, err := s.quotas.StorageUsed(ctx, tenantID)
	if err != nil {
		return UploadResult{}, fmt.Errorf("reading storage usage: %w", err)
	}
	if meta.Size > s.limit-used {
		return UploadResult{}, quotaError(meta.Size, s.limit-used)
	}
	if err := s.quotas.ReserveStorage(ctx, tenantID, meta.Size, s.limit); err != nil {
		if errors.Is(err, models.ErrQuotaExceeded) {
			return UploadResult{}, quotaError(meta.Size, s.limit-used)
		}
		return UploadResult{}, fmt.Errorf("reserving storage: %w", err)
	}

	rel := path.Join(tenantID, AttachmentFolder, uuid.NewString()+"-"+name)
	if err := s.write(rel, r, meta.Size); err != nil {
		if rerr := s.quotas.ReleaseStorage(ctx, tenantID, meta.Size); rerr != nil {
			log := logger.WithComponent("storage")
			log.Error().Err(rerr).Str("tenant_id", tenantID).Msg("releasing reservation after failed write")
		}
		return UploadResult{}, err
	}

	q, err := s.Quota(ctx, tenantID)
	if err != nil {
		return UploadResult{}, err
	}
	log := logger.WithComponent("storage")
	log.Info().Str("tenant_id", tenantID).Str("path", rel).Int64("bytes", meta.Size).Msg("file uploaded")
	return UploadResult{FilePath: rel, Quota: q}, nil
}

func quotaError(size, remaining int64) error {
	return fmt.Errorf("%w: file needs %d bytes, %d remaining", models.ErrQuotaExceeded, size, max(remaining, 0))
}

// write copies exactly size bytes of r to rel through a temp file.
func (s *Service) write(rel string, r io.Reader, size int64) error {
	full := s.full(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return fmt.Errorf("creating tenant dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, size+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing upload: %w", err)
	}
	if n != size {
		return models.NewValidationError("file", fmt.Sprintf("file size %d does not match the declared %d bytes", n, size))
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("storing upload: %w", err)
	}
	return nil
}

// Describe returns metadata for a stored file owned by the tenant.
func (s *Service) Describe(ctx context.Context, tenantID, p string) (models.StoredFile, error) {
	rel, err := s.resolve(tenantID, p)
	if err != nil {
		return models.StoredFile{}, err
	}
	info, err := os.Stat(s.full(rel))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.StoredFile{}, models.NotFound("file")
		}
		return models.StoredFile{}, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return models.StoredFile{}, models.NotFound("file")
	}
	return models.StoredFile{
		Path:        rel,
		FileName:    displayName(rel),
		Size:        info.Size(),
		ContentType: contentType(rel),
		ModTime:     info.ModTime().UTC(),
	}, nil
}

// Open returns the file for reading. The caller closes it.
func (s *Service) Open(ctx context.Context, tenantID, p string) (*os.File, models.StoredFile, error) {
	meta, err := s.Describe(ctx, tenantID, p)
	if err != nil {
		return nil, models.StoredFile{}, err
	}
	f, err := os.Open(s.full(meta.Path))
	if err != nil {
		return nil, models.StoredFile{}, fmt.Errorf("opening %s: %w", meta.Path, err)
	}
	return f, meta, nil
}

// Remove deletes a stored file and releases its bytes from the tenant's quota.
func (s *Service) Remove(ctx context.Context, tenantID, p string) error {
	meta, err := s.Describe(ctx, tenantID, p)
	if err != nil {
		return err
	}
	if err := os.Remove(s.full(meta.Path)); err != nil {
		return fmt.Errorf("removing %s: %w", meta.Path, err)
	}
	return s.quotas.ReleaseStorage(ctx, tenantID, meta.Size)
}

// Quota reports the tenant's usage against the configured limit.
func (s *Service) Quota(ctx context.Context, tenantID string) (models.Quota, error) {
	used, err := s.quotas.StorageUsed(ctx, tenantID)
	if err != nil {
		return models.Quota{}, fmt.Errorf("reading storage usage: %w", err)
	}
	return models.NewQuota(used, s.limit), nil
}

// resolve cleans p and checks that it lies inside the tenant's prefix.
func (s *Service) resolve(tenantID, p string) (string, error) {
	if err := checkTenant(tenantID); err != nil {
		return "", err
	}
	p = strings.TrimPrefix(p, models.FilesURLPrefix)
	rel := path.Clean("/" + p)[1:]
	if rel == "" || rel != strings.TrimPrefix(p, "/") || !strings.HasPrefix(rel, tenantID+"/") {
		return "", models.NewValidationError("path", "path is outside the tenant's storage")
	}
	return rel, nil
}

func (s *Service) full(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func checkTenant(tenantID string) error {
	if tenantID == "" || strings.ContainsAny(tenantID, `/\`) || tenantID == "." || tenantID == ".." {
		return models.NewValidationError("tenantId", "invalid tenant")
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func cleanFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if len(name) > 120 {
		name = name[len(name)-120:]
	}
	return name
}

// displayName strips the uuid prefix added at upload.
func displayName(rel string) string {
	base := path.Base(rel)
	if len(base) > 37 && base[36] == '-' {
		if _, err := uuid.Parse(base[:36]); err == nil {
			return base[37:]
		}
	}
	return base
}

func contentType(rel string) string {
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(rel))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
