package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/results"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// Prompt seams, replaced in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
	getLines      = GetLines
	getChoice     = GetChoice
)

type App struct {
	config    *config.Config
	sessions  services.SessionManager
	documents services.DocumentService
	uploads   services.UploadService
	results   results.Repository
	log       logging.Logger
	db        *sql.DB
	closeOnce sync.Once

	// candidate is the upload form kept after a failed submission.
	candidate *models.UploadCandidate

	reader *bufio.Reader
	out    io.Writer
	notify *notifier
}

// NewApp opens the local database, builds the API client and services and
// restores a session saved by an earlier run.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if log == nil {
		log = logging.NewNop()
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)

	a := newApp(c, log,
		services.NewSessionManager(api, db, log),
		services.NewDocumentService(api, log),
		services.NewUploadService(api, log),
		os.Stdin, os.Stdout,
	)
	a.db = db

	if _, err := a.sessions.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore saved session", "error", err)
	}
	return a, nil
}

func newApp(
	c *config.Config,
	log logging.Logger,
	sessions services.SessionManager,
	documents services.DocumentService,
	uploads services.UploadService,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		config:    c,
		sessions:  sessions,
		documents: documents,
		uploads:   uploads,
		results:   results.NewMemoryRepository(),
		log:       log,
		reader:    bufio.NewReader(in),
		out:       out,
		notify:    newNotifier(out),
	}
}

// Run prints the banner and blocks in the REPL until the user exits, stdin
// ends or ctx is canceled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "DocVault client (type 'help' for commands)")
	if a.isLoggedIn() {
		a.notify.Info("Restored session for %s", a.sessions.Session().UserID)
	}
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the local database. It is safe to call more than once and
// from another goroutine.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		if a.db == nil {
			return
		}
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "close database", "error", err)
		}
	})
}

func (a *App) isLoggedIn() bool {
	return a.sessions.State() == models.StateAuthenticated
}

func (a *App) status() string {
	switch a.sessions.State() {
	case models.StateAuthenticated:
		return a.sessions.Session().UserID
	case models.StateChallengeSent:
		return "otp sent to " + a.sessions.PendingMobile()
	}
	return "anonymous"
}
