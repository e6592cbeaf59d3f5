package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/satheeshds/buildledger/storage"
)

// multipartOverhead allows for the form boundaries and headers around the file part.
const multipartOverhead = 1 << 20

// UploadInvoiceAttachment stores a file for later attachment to an invoice
// @Summary      Upload invoice attachment
// @Description  Store a file under the tenant's attachment folder. The returned filePath is passed in an invoice's attachmentPaths.
// @Tags         storage
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Attachment"
// @Success      201   {object}  Response{data=storage.UploadResult}
// @Failure      400   {object}  Response{error=string}
// @Failure      413   {object}  Response{error=string}
// @Router       /storage/upload-invoice-attachment [post]
// @Security     BearerAuth
func (h *Handler) UploadInvoiceAttachment(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, h.uploadLimitMessage())
		case errors.Is(err, http.ErrMissingFile):
			writeError(w, http.StatusBadRequest, "file is required")
		default:
			writeError(w, http.StatusBadRequest, "invalid multipart form")
		}
		return
	}
	defer file.Close()

	if header.Size > h.MaxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, h.uploadLimitMessage())
		return
	}

	res, err := h.Files.Upload(r.Context(), actor(r).TenantID, file, storage.FileMeta{
		FileName: header.Filename,
		Size:     header.Size,
	})
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) uploadLimitMessage() string {
	return fmt.Sprintf("file exceeds the %s upload limit", humanize.Bytes(uint64(h.MaxUploadBytes)))
}

// GetStorageQuota reports the tenant's attachment storage usage
// @Summary      Get storage quota
// @Tags         storage
// @Produce      json
// @Success      200  {object}  Response{data=models.Quota}
// @Router       /storage/quota [get]
// @Security     BearerAuth
func (h *Handler) GetStorageQuota(w http.ResponseWriter, r *http.Request) {
	q, err := h.Files.Quota(r.Context(), actor(r).TenantID)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// ServeFile streams a stored file owned by the caller's tenant
// @Summary      Download stored file
// @Tags         storage
// @Produce      octet-stream
// @Param        path  path  string  true  "File path as returned by the upload"
// @Success      200
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Router       /storage/files/{path} [get]
// @Security     BearerAuth
func (h *Handler) ServeFile(w http.ResponseWriter, r *http.Request) {
	f, meta, err := h.Files.Open(r.Context(), actor(r).TenantID, chi.URLParam(r, "*"))
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", meta.FileName))
	http.ServeContent(w, r, meta.FileName, meta.ModTime, f)
}

// DeleteFile discards an uploaded file that no invoice holds
// @Summary      Delete stored file
// @Description  Delete an upload that was never attached and release its quota. Attached files are removed by deleting their invoice.
// @Tags         storage
// @Param        path  path  string  true  "File path as returned by the upload"
// @Success      204
// @Failure      400  {object}  Response{error=string}
// @Failure      404  {object}  Response{error=string}
// @Failure      409  {object}  Response{error=string}
// @Router       /storage/files/{path} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Invoices.DiscardUpload(r.Context(), actor(r), chi.URLParam(r, "*")); err != nil {
		writeLedgerError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
