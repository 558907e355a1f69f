package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/filex"
	"github.com/dmitrijs2005/docvault/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Outcome tells a successful search with results apart from one without.
type Outcome int

const (
	OutcomeFound Outcome = iota + 1
	OutcomeNoMatches
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNoMatches:
		return "no matches"
	}
	return "unknown"
}

// SearchResult is shared between joined duplicate calls and must be treated
// as read-only.
type SearchResult struct {
	Documents []models.DocumentRecord
	Outcome   Outcome
}

// DownloadConcurrency bounds the parallel transfers of DownloadAll.
const DownloadConcurrency = 4

type DocumentService interface {
	// Search builds a query from filters and executes it.
	Search(ctx context.Context, session models.Session, filters models.SearchFilters) (*SearchResult, error)
	Execute(ctx context.Context, session models.Session, q models.SearchQuery) (*SearchResult, error)
	// Download saves the document's file into dir and returns the written path.
	Download(ctx context.Context, doc models.DocumentRecord, dir string) (string, error)
	// DownloadAll saves every document into dir. It returns the paths written,
	// in the order of docs, and the joined errors of the failed transfers.
	DownloadAll(ctx context.Context, docs []models.DocumentRecord, dir string) ([]string, error)
	InProgress() bool
}

type documentService struct {
	client client.Client
	log    logging.Logger
	guard  *inflight
}

func NewDocumentService(c client.Client, log logging.Logger) DocumentService {
	if log == nil {
		log = logging.NewNop()
	}
	return &documentService{
		client: c,
		log:    log.With("component", "documents"),
		guard:  newInflight(),
	}
}

func (s *documentService) Search(ctx context.Context, session models.Session, filters models.SearchFilters) (*SearchResult, error) {
	if !session.IsAuthenticated() {
		return nil, ErrAuthRequired
	}
	q, err := models.BuildQuery(filters, session.UserID)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, session, q)
}

func (s *documentService) Execute(ctx context.Context, session models.Session, q models.SearchQuery) (*SearchResult, error) {
	if !session.IsAuthenticated() {
		return nil, ErrAuthRequired
	}

	key, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	v, err := s.guard.do(OpSearch, session.Token+"\x00"+string(key), func() (any, error) {
		docs, err := s.client.SearchDocuments(ctx, session.Token, q)
		if errors.Is(err, client.ErrMalformedResponse) {
			s.log.Warn(ctx, "search returned an unusable body", "error", err)
			return noMatches(), nil
		}
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			return noMatches(), nil
		}
		return &SearchResult{Documents: docs, Outcome: OutcomeFound}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	res := v.(*SearchResult)
	s.log.Info(ctx, "search completed", "outcome", res.Outcome.String(), "documents", len(res.Documents))
	return res, nil
}

func noMatches() *SearchResult {
	return &SearchResult{Documents: []models.DocumentRecord{}, Outcome: OutcomeNoMatches}
}

func (s *documentService) Download(ctx context.Context, doc models.DocumentRecord, dir string) (string, error) {
	if doc.FilePath == "" {
		return "", &models.ValidationError{Field: "file_path", Reason: "document has no file"}
	}

	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return "", err
	}

	name := filex.SafeFileName(doc.DocumentName, "document-"+filex.SafeFileName(doc.DocumentID.String(), "unnamed"))
	f, err := filex.CreateUnique(dir, name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	path := f.Name()

	n, err := s.client.Download(ctx, doc.FilePath, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}

	s.log.Info(ctx, "document downloaded", "document_id", doc.DocumentID.String(), "bytes", n, "path", filepath.Base(path))
	return path, nil
}

func (s *documentService) DownloadAll(ctx context.Context, docs []models.DocumentRecord, dir string) ([]string, error) {
	paths := make([]string, len(docs))

	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	g.SetLimit(DownloadConcurrency)

	for i, doc := range docs {
		g.Go(func() error {
			p, err := s.Download(ctx, doc, dir)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", doc.DocumentName, err))
				mu.Unlock()
				return nil
			}
			paths[i] = p
			return nil
		})
	}
	_ = g.Wait()

	written := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, errors.Join(errs...)
}

func (s *documentService) InProgress() bool {
	return s.guard.running(OpSearch)
}
