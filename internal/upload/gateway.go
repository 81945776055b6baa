package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/platform/sentinel"
	"drivergate/pkg/requestcontext"
)

// unsafeChars mirrors the client-side sanitizer: anything outside
// [a-zA-Z0-9.-] becomes an underscore before the name is used as a
// storage key.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Document is one upload request in a batch.
type Document struct {
	Folder   string
	FileName string
	Data     []byte
	MimeHint string
}

// Gateway turns binary documents into stable public URLs. It performs
// no retries; retry policy belongs to the caller.
type Gateway struct {
	store         BlobStore
	publicBaseURL string
	log           *slog.Logger
}

func NewGateway(store BlobStore, publicBaseURL string, log *slog.Logger) *Gateway {
	return &Gateway{
		store:         store,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           log,
	}
}

// Upload stores one document and returns its public URL. The key is
// <folder>/<timestamp>-<sanitized-filename>; the timestamp prefix keeps
// concurrent uploads of identically named files from colliding.
func (g *Gateway) Upload(ctx context.Context, doc Document) (string, error) {
	if !ValidFolder(doc.Folder) {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown document folder %q", doc.Folder)
	}
	if len(doc.Data) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "empty document body")
	}

	name := unsafeChars.ReplaceAllString(doc.FileName, "_")
	if name == "" || strings.Trim(name, "._-") == "" {
		name = "document"
	}
	key := fmt.Sprintf("%s/%d-%s", doc.Folder, requestcontext.Now(ctx).UnixMilli(), name)

	if err := g.store.Put(ctx, key, doc.Data, doc.MimeHint); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUpload, fmt.Sprintf("Failed to upload %s", doc.Folder))
	}

	url := g.publicBaseURL + "/driver-documents/" + key
	g.log.Info("document uploaded", "key", key, "bytes", len(doc.Data))
	return url, nil
}

// UploadBatch uploads documents concurrently and returns their URLs in
// input order. Any single failure cancels the remaining uploads and
// fails the batch; already stored blobs stay behind as accepted
// orphans.
func (g *Gateway) UploadBatch(ctx context.Context, docs []Document) ([]string, error) {
	urls := make([]string, len(docs))
	eg, ctx := errgroup.WithContext(ctx)
	for i, doc := range docs {
		eg.Go(func() error {
			url, err := g.Upload(ctx, doc)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Fetch returns a stored document for serving.
func (g *Gateway) Fetch(ctx context.Context, folder, name string) ([]byte, string, error) {
	if !ValidFolder(folder) {
		return nil, "", dErrors.Newf(dErrors.CodeBadRequest, "unknown document folder %q", folder)
	}
	data, contentType, err := g.store.Get(ctx, folder+"/"+name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, "", dErrors.New(dErrors.CodeNotFound, "Document not found")
		}
		return nil, "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read document")
	}
	return data, contentType, nil
}
