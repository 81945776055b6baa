package upload_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivergate/internal/upload"
	dErrors "drivergate/pkg/domain-errors"
	"drivergate/pkg/requestcontext"
)

func newGateway() (*upload.Gateway, *upload.InMemoryStore) {
	store := upload.NewInMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return upload.NewGateway(store, "http://localhost:8080/", log), store
}

func pinnedCtx() context.Context {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return requestcontext.WithTime(context.Background(), at)
}

func TestUploadKeyAndURL(t *testing.T) {
	gateway, store := newGateway()
	ctx := pinnedCtx()
	millis := requestcontext.Now(ctx).UnixMilli()

	url, err := gateway.Upload(ctx, upload.Document{
		Folder:   upload.FolderIDPhotos,
		FileName: "cin-devan.jpg",
		Data:     []byte("jpeg bytes"),
		MimeHint: "image/jpeg",
	})
	require.NoError(t, err)

	expectedKey := "id-photos/" + itoa(millis) + "-cin-devan.jpg"
	assert.Equal(t, "http://localhost:8080/driver-documents/"+expectedKey, url)

	data, contentType, err := store.Get(ctx, expectedKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestUploadSanitizesFilename(t *testing.T) {
	gateway, _ := newGateway()
	ctx := pinnedCtx()
	millis := requestcontext.Now(ctx).UnixMilli()

	url, err := gateway.Upload(ctx, upload.Document{
		Folder:   upload.FolderPlatePhotos,
		FileName: "plak machin (foto) #1.jpg",
		Data:     []byte("x"),
	})
	require.NoError(t, err)
	assert.Equal(t,
		"http://localhost:8080/driver-documents/plate-photos/"+itoa(millis)+"-plak_machin__foto___1.jpg",
		url)
}

func TestUploadFallbackName(t *testing.T) {
	gateway, _ := newGateway()
	ctx := pinnedCtx()
	millis := requestcontext.Now(ctx).UnixMilli()

	url, err := gateway.Upload(ctx, upload.Document{
		Folder: upload.FolderSelfiePhotos,
		Data:   []byte("x"),
	})
	require.NoError(t, err)
	assert.Equal(t,
		"http://localhost:8080/driver-documents/selfie-photos/"+itoa(millis)+"-document",
		url)
}

func TestUploadRejectsUnknownFolder(t *testing.T) {
	gateway, _ := newGateway()

	_, err := gateway.Upload(context.Background(), upload.Document{
		Folder: "passport-photos",
		Data:   []byte("x"),
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestUploadRejectsEmptyBody(t *testing.T) {
	gateway, _ := newGateway()

	_, err := gateway.Upload(context.Background(), upload.Document{
		Folder: upload.FolderIDPhotos,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestUploadBatchPreservesOrder(t *testing.T) {
	gateway, _ := newGateway()
	ctx := pinnedCtx()

	urls, err := gateway.UploadBatch(ctx, []upload.Document{
		{Folder: upload.FolderIDPhotos, FileName: "cin.jpg", Data: []byte("a")},
		{Folder: upload.FolderPlatePhotos, FileName: "plak.jpg", Data: []byte("b")},
		{Folder: upload.FolderSelfiePhotos, FileName: "selfie.jpg", Data: []byte("c")},
	})
	require.NoError(t, err)
	require.Len(t, urls, 3)
	assert.Contains(t, urls[0], "/id-photos/")
	assert.Contains(t, urls[1], "/plate-photos/")
	assert.Contains(t, urls[2], "/selfie-photos/")
}

func TestUploadBatchFailsOnAnyBadDocument(t *testing.T) {
	gateway, _ := newGateway()

	_, err := gateway.UploadBatch(context.Background(), []upload.Document{
		{Folder: upload.FolderIDPhotos, FileName: "cin.jpg", Data: []byte("a")},
		{Folder: "nope", FileName: "x.jpg", Data: []byte("b")},
	})
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	gateway, store := newGateway()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "id-photos/1-cin.jpg", []byte("jpeg"), "image/jpeg"))

	data, contentType, err := gateway.Fetch(ctx, "id-photos", "1-cin.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetchMissingDocument(t *testing.T) {
	gateway, _ := newGateway()

	_, _, err := gateway.Fetch(context.Background(), "id-photos", "ghost.jpg")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
