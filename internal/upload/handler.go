package upload

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/platform/httputil"
)

// maxDocumentBytes caps a single document upload. Photos from the form
// are a few MB; 15MB leaves headroom without letting a client exhaust
// memory.
const maxDocumentBytes = 15 << 20

// Handler exposes the upload gateway over HTTP.
type Handler struct {
	gateway *Gateway
}

func NewHandler(gateway *Gateway) *Handler {
	return &Handler{gateway: gateway}
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

// Upload handles POST /driver-documents/{folder}. The body is the raw
// document; the original filename rides in X-File-Name. Multipart
// uploads with a "file" field are accepted too.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")

	doc, err := h.readDocument(r, folder)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	url, err := h.gateway.Upload(r.Context(), doc)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, uploadResponse{Success: true, URL: url})
}

// Fetch handles GET /driver-documents/{folder}/{name} and serves the
// stored blob.
func (h *Handler) Fetch(w http.ResponseWriter, r *http.Request) {
	folder := chi.URLParam(r, "folder")
	name := chi.URLParam(r, "name")

	data, contentType, err := h.gateway.Fetch(r.Context(), folder, name)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(data)
}

func (h *Handler) readDocument(r *http.Request, folder string) (Document, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxDocumentBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			return Document{}, dErrors.New(dErrors.CodeBadRequest, "missing multipart file field")
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return Document{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read upload")
		}
		return Document{
			Folder:   folder,
			FileName: header.Filename,
			Data:     data,
			MimeHint: header.Header.Get("Content-Type"),
		}, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return Document{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read upload")
	}
	return Document{
		Folder:   folder,
		FileName: r.Header.Get("X-File-Name"),
		Data:     data,
		MimeHint: r.Header.Get("Content-Type"),
	}, nil
}
