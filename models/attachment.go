package models

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FilesURLPrefix is where stored files are served from.
const FilesURLPrefix = "/api/storage/files/"

// InvoiceAttachment binds a stored file to an invoice.
type InvoiceAttachment struct {
	ID                string    `json:"id"`
	InvoiceID         string    `json:"invoiceId"`
	Path              string    `json:"path"`
	FileName          string    `json:"fileName"`
	FileSize          int64     `json:"fileSize"`
	FileSizeFormatted string    `json:"fileSizeFormatted"`
	MimeType          string    `json:"mimeType"`
	UploadedBy        string    `json:"uploadedBy"`
	UploadedAt        time.Time `json:"uploadedAt"`
	URL               string    `json:"url"`
}

// Present fills the display-only fields.
func (a *InvoiceAttachment) Present() {
	a.FileSizeFormatted = humanize.Bytes(uint64(max(a.FileSize, 0)))
	a.URL = FilesURLPrefix + a.Path
}

// StoredFile describes a file held by the attachment store.
type StoredFile struct {
	Path        string    `json:"filePath"`
	FileName    string    `json:"fileName"`
	Size        int64     `json:"fileSize"`
	ContentType string    `json:"mimeType"`
	ModTime     time.Time `json:"modifiedAt"`
}

// Quota is a tenant's attachment storage allowance.
type Quota struct {
	UsedBytes      int64 `json:"usedBytes"`
	LimitBytes     int64 `json:"limitBytes"`
	RemainingBytes int64 `json:"remainingBytes"`
}

// NewQuota computes the remaining allowance.
func NewQuota(used, limit int64) Quota {
	return Quota{UsedBytes: used, LimitBytes: limit, RemainingBytes: max(limit-used, 0)}
}
