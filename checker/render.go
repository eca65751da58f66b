package checker

import (
	"fmt"
	"io"
)

// TitleIndent prefixes each title line.
const TitleIndent = "    "

// RenderTitles writes the author header, one indented line per title, and a
// blank separator line. The header is written even when titles is empty.
func RenderTitles(w io.Writer, author string, titles []string) error {
	if _, err := fmt.Fprintln(w, author); err != nil {
		return err
	}
	for _, title := range titles {
		if _, err := fmt.Fprintf(w, "%s%s\n", TitleIndent, title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// RenderManualSearch writes the single diagnostic line for an author whose
// results page was not understood, followed by a blank separator line.
func RenderManualSearch(w io.Writer, author string) error {
	_, err := fmt.Fprintf(w, "Manual search required for %s: author not found, "+
		"or a list of authors was returned instead of titles, "+
		"or the page layout is unexpected.\n\n", author)
	return err
}
