package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/dmitrijs2005/docvault/internal/logging"
	"github.com/fatih/color"
)

type fakeSessions struct {
	state   models.AuthState
	session models.Session
	pending string

	regUser, regMobile string
	regErr             error

	challenged   []string
	challengeErr error

	submittedOTP string
	submitErr    error

	resetCalled  bool
	logoutCalled bool
	logoutErr    error
}

func (f *fakeSessions) Register(_ context.Context, username, mobile string) error {
	f.regUser, f.regMobile = username, mobile
	return f.regErr
}

func (f *fakeSessions) RequestChallenge(_ context.Context, mobile string) error {
	f.challenged = append(f.challenged, mobile)
	if f.challengeErr != nil {
		return f.challengeErr
	}
	f.state = models.StateChallengeSent
	f.pending = mobile
	return nil
}

func (f *fakeSessions) SubmitResponse(_ context.Context, otp string) (models.Session, error) {
	f.submittedOTP = otp
	if f.submitErr != nil {
		return models.Session{}, f.submitErr
	}
	f.state = models.StateAuthenticated
	f.session = models.NewSession("tok", f.pending)
	f.pending = ""
	return f.session, nil
}

func (f *fakeSessions) Reset() {
	f.resetCalled = true
	f.state = models.StateAnonymous
	f.pending = ""
}

func (f *fakeSessions) Logout(context.Context) error {
	f.logoutCalled = true
	f.state = models.StateAnonymous
	f.session = models.Session{}
	return f.logoutErr
}

func (f *fakeSessions) Restore(context.Context) (models.Session, error) { return f.session, nil }
func (f *fakeSessions) State() models.AuthState {
	if f.state == "" {
		return models.StateAnonymous
	}
	return f.state
}
func (f *fakeSessions) Session() models.Session { return f.session }
func (f *fakeSessions) PendingMobile() string { return f.pending }
func (f *fakeSessions) InProgress(services.Operation) bool { return false }

type fakeDocuments struct {
	filters   models.SearchFilters
	searchRes *services.SearchResult
	searchErr error

	downloaded  []string
	downloadDir string
	paths       map[string]string
	downloadErr error

	allPaths []string
	allErr   error
}

func (f *fakeDocuments) Search(_ context.Context, _ models.Session, filters models.SearchFilters) (*services.SearchResult, error) {
	f.filters = filters
	return f.searchRes, f.searchErr
}

func (f *fakeDocuments) Execute(context.Context, models.Session, models.SearchQuery) (*services.SearchResult, error) {
	return f.searchRes, f.searchErr
}

func (f *fakeDocuments) Download(_ context.Context, doc models.DocumentRecord, dir string) (string, error) {
	f.downloaded = append(f.downloaded, doc.DocumentID.String())
	f.downloadDir = dir
	return f.paths[doc.DocumentID.String()], f.downloadErr
}

func (f *fakeDocuments) DownloadAll(_ context.Context, docs []models.DocumentRecord, dir string) ([]string, error) {
	for _, d := range docs {
		f.downloaded = append(f.downloaded, d.DocumentID.String())
	}
	f.downloadDir = dir
	return f.allPaths, f.allErr
}

func (f *fakeDocuments) InProgress() bool { return false }

// fakeUploads records a copy of each submitted form, since the app resets
// the form after a successful upload.
type fakeUploads struct {
	submitted []models.UploadCandidate
	pointers  []*models.UploadCandidate
	errs      []error
}

func (f *fakeUploads) Validate(c *models.UploadCandidate) error { return c.Validate() }

func (f *fakeUploads) Submit(_ context.Context, _ models.Session, c *models.UploadCandidate) error {
	f.submitted = append(f.submitted, *c)
	f.pointers = append(f.pointers, c)
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeUploads) InProgress() bool { return false }

type testApp struct {
	*App
	sessions  *fakeSessions
	documents *fakeDocuments
	uploads   *fakeUploads
	out       *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()

	ta := &testApp{
		sessions:  &fakeSessions{},
		documents: &fakeDocuments{},
		uploads:   &fakeUploads{},
		out:       &bytes.Buffer{},
	}
	ta.App = newApp(cfg, logging.NewNop(), ta.sessions, ta.documents, ta.uploads, strings.NewReader(input), ta.out)
	return ta
}

func (ta *testApp) login() {
	ta.sessions.state = models.StateAuthenticated
	ta.sessions.session = models.NewSession("tok", "5551234567")
}

// stubSecret makes getSecret read from the app's reader like plain input.
func stubSecret(t *testing.T) {
	t.Helper()
	orig := getSecret
	getSecret = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return GetSimpleText(r, prompt, w)
	}
	t.Cleanup(func() { getSecret = orig })
}

func docs(ids ...string) []models.DocumentRecord {
	out := make([]models.DocumentRecord, len(ids))
	for i, id := range ids {
		out[i] = models.DocumentRecord{
			DocumentID:   models.FlexString(id),
			DocumentName: "doc-" + id + ".pdf",
			MajorHead:    "Personal",
			MinorHead:    "John",
			DocumentDate: "12-01-2024",
			Tags:         models.TagList{"tax"},
			FilePath:     "https://files.example/" + id,
		}
	}
	return out
}
