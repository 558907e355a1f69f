package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, content, 0o600))
	return p
}

func pdfPath(t *testing.T) string {
	return writeFile(t, "report.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n"))
}

func uploadInput(path string) string {
	return strings.Join([]string{path, "15-03-2024", "1", "2", "tax", "bank", "", "yearly"}, "\n") + "\n"
}

func TestUpload_RequiresLogin(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.Upload(context.Background())

	require.ErrorIs(t, err, services.ErrAuthRequired)
	assert.Empty(t, ta.uploads.submitted)
}

func TestUpload_SubmitsFilledForm(t *testing.T) {
	ta := newTestApp(t, uploadInput(pdfPath(t)))
	ta.login()

	require.NoError(t, ta.Upload(context.Background()))

	require.Len(t, ta.uploads.submitted, 1)
	c := ta.uploads.submitted[0]
	assert.Equal(t, "report.pdf", c.File.Name)
	assert.Equal(t, "application/pdf", c.File.MIMEType)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), c.Date)
	assert.Equal(t, models.CategoryPersonal, c.Heads.Major())
	assert.Equal(t, "Tom", c.Heads.Minor())
	assert.Equal(t, []string{"tax", "bank"}, c.Tags.Items())
	assert.Equal(t, "yearly", c.Remarks)

	assert.Nil(t, ta.candidate)
	assert.Contains(t, ta.out.String(), "Document uploaded successfully")
}

func TestUpload_RejectsDisallowedFileImmediately(t *testing.T) {
	exe := writeFile(t, "tool.exe", []byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff"))
	ta := newTestApp(t, exe+"\n15-03-2024\n")
	ta.login()

	err := ta.Upload(context.Background())

	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, ta.uploads.submitted)
	assert.Nil(t, ta.candidate)
}

func TestUpload_BadDate(t *testing.T) {
	ta := newTestApp(t, pdfPath(t)+"\n2024/03/15\n")
	ta.login()

	err := ta.Upload(context.Background())

	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, ta.uploads.submitted)
}

func TestUpload_InvalidSubCategoryChoice(t *testing.T) {
	ta := newTestApp(t, pdfPath(t)+"\n15-03-2024\n2\nJohn\n")
	ta.login()

	err := ta.Upload(context.Background())

	require.ErrorIs(t, err, ErrInvalidChoice)
	assert.Empty(t, ta.uploads.submitted)
}

func TestUpload_FailureKeepsFormForRetry(t *testing.T) {
	path := pdfPath(t)
	ta := newTestApp(t, uploadInput(path)+"y\n")
	ta.login()
	ta.uploads.errs = []error{&client.RemoteError{Status: 500, Message: "Failed to upload document"}}

	err := ta.Upload(context.Background())
	require.Error(t, err)
	require.NotNil(t, ta.candidate)
	assert.Contains(t, ta.out.String(), "Error: Failed to upload document")
	assert.Contains(t, ta.out.String(), "Type 'upload' to retry")

	require.NoError(t, ta.Upload(context.Background()))

	require.Len(t, ta.uploads.pointers, 2)
	assert.Same(t, ta.uploads.pointers[0], ta.uploads.pointers[1])
	assert.Equal(t, ta.uploads.submitted[0], ta.uploads.submitted[1])
	assert.Nil(t, ta.candidate)
}

func TestUpload_DecliningRetryStartsNewForm(t *testing.T) {
	first := pdfPath(t)
	second := writeFile(t, "scan.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	ta := newTestApp(t, "n\n"+uploadInput(second))
	ta.login()

	kept := &models.UploadCandidate{}
	f, err := models.LoadFile(first)
	require.NoError(t, err)
	require.NoError(t, kept.SelectFile(f))
	ta.candidate = kept

	require.NoError(t, ta.Upload(context.Background()))

	require.Len(t, ta.uploads.submitted, 1)
	assert.Equal(t, "scan.png", ta.uploads.submitted[0].File.Name)
	assert.Equal(t, "image/png", ta.uploads.submitted[0].File.MIMEType)
}

func TestUpload_ValidationFailureDropsForm(t *testing.T) {
	ta := newTestApp(t, uploadInput(pdfPath(t)))
	ta.login()
	ta.uploads.errs = []error{&models.ValidationError{Field: "minor_head", Reason: "please fill in all required fields"}}

	require.Error(t, ta.Upload(context.Background()))

	assert.Nil(t, ta.candidate)
	assert.Contains(t, ta.out.String(), "Error: please fill in all required fields")
}
