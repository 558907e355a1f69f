package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
)

// Upload fills an upload form and submits it. A form whose submission
// failed on the server side is kept and offered again on the next call.
func (a *App) Upload(ctx context.Context) error {
	session := a.sessions.Session()
	if !session.IsAuthenticated() {
		a.notify.Error(services.ErrAuthRequired)
		return services.ErrAuthRequired
	}

	if a.candidate != nil {
		retry, err := confirm(a.reader, "Retry the previous upload of "+a.candidate.File.Name+"?", a.out)
		if err != nil {
			return err
		}
		if retry {
			return a.submitCandidate(ctx, session)
		}
		a.candidate = nil
	}

	c := &models.UploadCandidate{}
	if err := a.fillCandidate(c); err != nil {
		a.notify.Error(err)
		return err
	}
	a.candidate = c
	return a.submitCandidate(ctx, session)
}

func (a *App) submitCandidate(ctx context.Context, session models.Session) error {
	err := a.uploads.Submit(ctx, session, a.candidate)
	switch {
	case err == nil:
		a.candidate.Reset()
		a.candidate = nil
		a.notify.Success("Document uploaded successfully.")
		return nil
	case errors.Is(err, models.ErrValidation):
		a.candidate = nil
		a.notify.Error(err)
	default:
		a.notify.Error(err)
		a.notify.Info("The form was kept. Type 'upload' to retry.")
	}
	return err
}

// fillCandidate prompts for every form field in order and stops at the
// first invalid answer.
func (a *App) fillCandidate(c *models.UploadCandidate) error {
	path, err := getSimpleText(a.reader, "Path of the file to upload (PDF, PNG or JPEG)", a.out)
	if err != nil {
		return err
	}
	if path == "" {
		return &models.ValidationError{Field: "file", Reason: "please select a file"}
	}
	f, err := models.LoadFile(path)
	if err != nil {
		return err
	}
	if err := c.SelectFile(f); err != nil {
		return err
	}

	raw, err := getSimpleText(a.reader, "Document date (dd-mm-yyyy or yyyy-mm-dd)", a.out)
	if err != nil {
		return err
	}
	if c.Date, err = models.ParseDate("document_date", raw); err != nil {
		return err
	}

	if err := a.chooseHeads(&c.Heads, false); err != nil {
		return err
	}

	tags, err := getLines(a.reader, "Tags, one per line", a.out)
	if err != nil {
		return err
	}
	for _, t := range tags {
		c.Tags.Add(t)
	}

	if c.Remarks, err = getSimpleText(a.reader, "Remarks (optional)", a.out); err != nil {
		return err
	}
	return nil
}

// chooseHeads asks for a category and then for one of its sub-categories.
// With optional set, skipping the category skips both.
func (a *App) chooseHeads(h *models.Heads, optional bool) error {
	cats := models.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}

	major, err := getChoice(a.reader, "Category", names, optional, a.out)
	if err != nil {
		return err
	}
	if err := h.SetMajor(models.Category(major)); err != nil {
		return err
	}
	if major == "" {
		return nil
	}

	subs, err := models.SubCategoriesFor(h.Major())
	if err != nil {
		return err
	}
	label := "Name"
	if h.Major() == models.CategoryProfessional {
		label = "Department"
	}
	minor, err := getChoice(a.reader, label, subs, optional, a.out)
	if err != nil {
		return err
	}
	return h.SetMinor(minor)
}
