package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/docvault/internal/client/models"
)

// Client is the contract of the remote document-management API.
type Client interface {
	Register(ctx context.Context, username, mobile string) error
	GenerateOTP(ctx context.Context, mobile string) error
	// ValidateOTP returns the session token and the user id. The user id is
	// empty when the server did not send one.
	ValidateOTP(ctx context.Context, mobile, otp string) (token string, userID string, err error)
	SearchDocuments(ctx context.Context, token string, q models.SearchQuery) ([]models.DocumentRecord, error)
	UploadDocument(ctx context.Context, token string, file *models.File, meta models.UploadMetadata) error
	// Download streams the document at fileURL into w.
	Download(ctx context.Context, fileURL string, w io.Writer) (int64, error)
}
