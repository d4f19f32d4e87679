package service_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/service"
	"github.com/reproute/crm-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func authedContext(userID uuid.UUID) context.Context {
	return auth.WithUserContext(context.Background(), &auth.UserContext{UserID: userID})
}

func newLocalFileService(t *testing.T) (*service.FileService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return service.NewFileService(store, zap.NewNop()), dir
}

func writeAttachment(t *testing.T, baseDir string, ownerID uuid.UUID, name, content string) {
	t.Helper()
	ownerDir := filepath.Join(baseDir, ownerID.String())
	require.NoError(t, os.MkdirAll(ownerDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ownerDir, name), []byte(content), 0644))
}

func TestFileService_UploadThenDownload(t *testing.T) {
	svc, _ := newLocalFileService(t)
	userID := uuid.New()
	ctx := authedContext(userID)

	resp, err := svc.Upload(ctx, "order.pdf", "application/pdf", strings.NewReader("signed order"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Path, userID.String()+"/"))

	reader, err := svc.Download(ctx, resp.Path)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "signed order", string(data))
}

func TestFileService_DownloadForeignPrefixIsNotFound(t *testing.T) {
	svc, dir := newLocalFileService(t)
	owner := uuid.New()
	other := uuid.New()
	writeAttachment(t, dir, owner, "secret.txt", "owner data")

	_, err := svc.Download(authedContext(other), owner.String()+"/secret.txt")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestFileService_DownloadRejectsTraversalPaths(t *testing.T) {
	svc, dir := newLocalFileService(t)
	owner := uuid.New()
	other := uuid.New()
	writeAttachment(t, dir, owner, "secret.txt", "owner data")

	tests := []struct {
		name string
		path string
	}{
		{"dot dot into another prefix", other.String() + "/../" + owner.String() + "/secret.txt"},
		{"dot dot out of the storage root", other.String() + "/../../etc/passwd"},
		{"doubled slash", other.String() + "//secret.txt"},
		{"absolute path", "/" + owner.String() + "/secret.txt"},
		{"trailing dot dot", other.String() + "/secret.txt/.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Download(authedContext(other), tt.path)
			assert.ErrorIs(t, err, service.ErrNotFound)
		})
	}
}

func TestFileService_DownloadRequiresAuth(t *testing.T) {
	svc, _ := newLocalFileService(t)

	_, err := svc.Download(context.Background(), uuid.New().String()+"/file.txt")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
