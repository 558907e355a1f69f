package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func listMeta(t *testing.T, db *sql.DB) map[string]string {
	t.Helper()
	rows, err := db.Query(`SELECT key, value FROM metadata`)
	require.NoError(t, err)
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		require.NoError(t, rows.Scan(&k, &v))
		out[k] = v
	}
	require.NoError(t, rows.Err())
	return out
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests. Each call is
// counted; a non-nil gate makes the call block until the gate is closed.
type fakeClient struct {
	mu    sync.Mutex
	calls map[string]int

	gate    chan struct{}
	started chan string

	RegisterErr    error
	GenerateOTPErr error

	ValidateToken  string
	ValidateUserID string
	ValidateErr    error

	SearchDocs []models.DocumentRecord
	SearchErr  error

	UploadErr error

	DownloadBody map[string]string
	DownloadErrs map[string]error

	LastMobile string
	LastOTP    string
	LastToken  string
	LastQuery  models.SearchQuery
	LastMeta   models.UploadMetadata
	LastFile   *models.File
}

func (f *fakeClient) enter(name string) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
	gate, started := f.gate, f.started
	f.mu.Unlock()

	if started != nil {
		started <- name
	}
	if gate != nil {
		<-gate
	}
}

func (f *fakeClient) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) Register(ctx context.Context, username, mobile string) error {
	f.enter("register")
	f.LastMobile = mobile
	return f.RegisterErr
}

func (f *fakeClient) GenerateOTP(ctx context.Context, mobile string) error {
	f.enter("generate")
	f.LastMobile = mobile
	return f.GenerateOTPErr
}

func (f *fakeClient) ValidateOTP(ctx context.Context, mobile, otp string) (string, string, error) {
	f.enter("validate")
	f.LastMobile, f.LastOTP = mobile, otp
	if f.ValidateErr != nil {
		return "", "", f.ValidateErr
	}
	return f.ValidateToken, f.ValidateUserID, nil
}

func (f *fakeClient) SearchDocuments(ctx context.Context, token string, q models.SearchQuery) ([]models.DocumentRecord, error) {
	f.enter("search")
	f.LastToken, f.LastQuery = token, q
	return f.SearchDocs, f.SearchErr
}

func (f *fakeClient) UploadDocument(ctx context.Context, token string, file *models.File, meta models.UploadMetadata) error {
	f.enter("upload")
	f.LastToken, f.LastFile, f.LastMeta = token, file, meta
	return f.UploadErr
}

func (f *fakeClient) Download(ctx context.Context, fileURL string, w io.Writer) (int64, error) {
	f.enter("download")
	if err := f.DownloadErrs[fileURL]; err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, f.DownloadBody[fileURL])
	return int64(n), err
}
