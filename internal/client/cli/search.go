package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docvault/internal/client/models"
	"github.com/dmitrijs2005/docvault/internal/client/services"
)

// Search prompts for the optional filters, runs the search and shows the
// results. The result set replaces the previous one even when it is empty.
func (a *App) Search(ctx context.Context) error {
	session := a.sessions.Session()
	if !session.IsAuthenticated() {
		a.notify.Error(services.ErrAuthRequired)
		return services.ErrAuthRequired
	}

	filters, err := a.readFilters()
	if err != nil {
		a.notify.Error(err)
		return err
	}

	res, err := a.documents.Search(ctx, session, filters)
	if err != nil {
		a.notify.Error(err)
		return err
	}

	a.results.Replace(res.Documents)
	if res.Outcome == services.OutcomeNoMatches {
		a.notify.Info("No documents found matching your criteria.")
		return nil
	}
	a.notify.Success("Found %d document(s).", len(res.Documents))
	renderDocuments(a.out, a.results.List())
	return nil
}

func (a *App) readFilters() (models.SearchFilters, error) {
	var f models.SearchFilters

	if err := a.chooseHeads(&f.Heads, true); err != nil {
		return f, err
	}

	var err error
	if f.From, err = a.optionalDate("From date", "from_date"); err != nil {
		return f, err
	}
	if f.To, err = a.optionalDate("To date", "to_date"); err != nil {
		return f, err
	}

	tags, err := getLines(a.reader, "Tags to match, one per line (optional)", a.out)
	if err != nil {
		return f, err
	}
	for _, t := range tags {
		f.Tags.Add(t)
	}
	return f, nil
}

func (a *App) optionalDate(prompt, field string) (*time.Time, error) {
	raw, err := getSimpleText(a.reader, prompt+" (dd-mm-yyyy or yyyy-mm-dd, optional)", a.out)
	if err != nil || raw == "" {
		return nil, err
	}
	t, err := models.ParseDate(field, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Show prints the details of a document from the last result set.
func (a *App) Show(ctx context.Context, id string) error {
	doc, ok := a.lookup(id)
	if !ok {
		return nil
	}
	renderDocument(a.out, doc)
	return nil
}

// Download saves one document from the last result set into the download
// directory.
func (a *App) Download(ctx context.Context, id string) error {
	doc, ok := a.lookup(id)
	if !ok {
		return nil
	}
	path, err := a.documents.Download(ctx, doc, a.config.DownloadDir)
	if err != nil {
		a.notify.Error(fmt.Errorf("download %s: %w", doc.DocumentName, err))
		return err
	}
	a.notify.Success("Saved to %s", path)
	return nil
}

// DownloadAll saves every document of the last result set.
func (a *App) DownloadAll(ctx context.Context) error {
	docs := a.results.List()
	if len(docs) == 0 {
		a.notify.Warn("Nothing to download. Run 'search' first.")
		return nil
	}

	paths, err := a.documents.DownloadAll(ctx, docs, a.config.DownloadDir)
	for _, p := range paths {
		fmt.Fprintln(a.out, "  "+p)
	}
	if err != nil {
		a.notify.Error(err)
		a.notify.Warn("Downloaded %d of %d document(s).", len(paths), len(docs))
		return err
	}
	a.notify.Success("Downloaded %d document(s) to %s", len(paths), a.config.DownloadDir)
	return nil
}

func (a *App) lookup(id string) (models.DocumentRecord, bool) {
	if id == "" {
		a.notify.Warn("Usage: show <id> | download <id>")
		return models.DocumentRecord{}, false
	}
	doc, ok := a.results.Get(id)
	if !ok {
		a.notify.Warn("No document %s in the last search results.", id)
	}
	return doc, ok
}
