package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// UploadService submits upload candidates. It never modifies the candidate:
// after a failure the same candidate can be submitted again, after a success
// the caller resets it.
type UploadService interface {
	Validate(c *models.UploadCandidate) error
	Submit(ctx context.Context, session models.Session, c *models.UploadCandidate) error
	InProgress() bool
}

type uploadService struct {
	client client.Client
	log    logging.Logger
	guard  *inflight
}

func NewUploadService(c client.Client, log logging.Logger) UploadService {
	if log == nil {
		log = logging.NewNop()
	}
	return &uploadService{
		client: c,
		log:    log.With("component", "upload"),
		guard:  newInflight(),
	}
}

func (s *uploadService) Validate(c *models.UploadCandidate) error {
	if c == nil {
		return &models.ValidationError{Field: "file", Reason: "please select a file"}
	}
	return c.Validate()
}

func (s *uploadService) Submit(ctx context.Context, session models.Session, c *models.UploadCandidate) error {
	if !session.IsAuthenticated() {
		return ErrAuthRequired
	}
	if err := s.Validate(c); err != nil {
		return err
	}

	file := c.File
	meta := c.Metadata(session.UserID)

	_, err := s.guard.do(OpUpload, fmt.Sprintf("%p", c), func() (any, error) {
		return nil, s.client.UploadDocument(ctx, session.Token, file, meta)
	})
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}

	s.log.Info(ctx, "document uploaded", "mime_type", file.MIMEType, "bytes", len(file.Content))
	return nil
}

func (s *uploadService) InProgress() bool {
	return s.guard.running(OpUpload)
}
