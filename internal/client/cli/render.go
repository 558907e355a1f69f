package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/docvault/internal/client/models"
)

const noValue = "-"

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return noValue
	}
	return s
}

func joinTags(tags models.TagList) string {
	if len(tags) == 0 {
		return noValue
	}
	return strings.Join(tags, ", ")
}

// renderDocuments prints docs as an aligned table.
func renderDocuments(w io.Writer, docs []models.DocumentRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDATE\tTAGS")
	for _, d := range docs {
		category := orNone(d.MajorHead)
		if d.MinorHead != "" {
			category += " / " + d.MinorHead
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			orNone(d.DocumentID.String()),
			orNone(d.DocumentName),
			category,
			orNone(d.DocumentDate),
			joinTags(d.Tags),
		)
	}
	_ = tw.Flush()
}

func renderDocument(w io.Writer, d models.DocumentRecord) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", orNone(d.DocumentID.String()))
	fmt.Fprintf(tw, "Name:\t%s\n", orNone(d.DocumentName))
	fmt.Fprintf(tw, "Category:\t%s\n", orNone(d.MajorHead))
	fmt.Fprintf(tw, "Sub-category:\t%s\n", orNone(d.MinorHead))
	fmt.Fprintf(tw, "Date:\t%s\n", orNone(d.DocumentDate))
	fmt.Fprintf(tw, "Tags:\t%s\n", joinTags(d.Tags))
	fmt.Fprintf(tw, "Remarks:\t%s\n", orNone(d.DocumentRemarks))
	fmt.Fprintf(tw, "File:\t%s\n", orNone(d.FilePath))
	_ = tw.Flush()
}
