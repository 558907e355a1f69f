package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docvault/internal/client/client"
	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/fatih/color"
)

// notifier prints one-line user notifications. Colors are disabled by the
// color package itself when w is not a terminal or NO_COLOR is set.
type notifier struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
	warning *color.Color
	info    *color.Color
}

func newNotifier(w io.Writer) *notifier {
	return &notifier{
		w:       w,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
	}
}

func (n *notifier) Success(format string, args ...any) {
	n.success.Fprintln(n.w, fmt.Sprintf(format, args...))
}

func (n *notifier) Warn(format string, args ...any) {
	n.warning.Fprintln(n.w, fmt.Sprintf(format, args...))
}

func (n *notifier) Info(format string, args ...any) {
	n.info.Fprintln(n.w, fmt.Sprintf(format, args...))
}

func (n *notifier) Error(err error) {
	n.failure.Fprintln(n.w, "Error: "+userMessage(err))
}

// userMessage picks the text a user should see for err: the field reason of
// a validation error, the server's message, or a fixed text for the service
// sentinels.
func userMessage(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		return verr.Reason
	}

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		return "please log in first"
	case errors.Is(err, services.ErrInProgress):
		return "another request of this kind is still running"
	case errors.Is(err, services.ErrAlreadyAuthenticated):
		return "already logged in, use 'logout' first"
	case errors.Is(err, ErrInvalidChoice):
		return err.Error()
	}

	var rerr *client.RemoteError
	if errors.As(err, &rerr) {
		if errors.Is(err, client.ErrUnavailable) {
			return rerr.Message + " (server unreachable)"
		}
		return rerr.Message
	}
	return err.Error()
}
