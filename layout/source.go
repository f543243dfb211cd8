package layout

import "github.com/poiesic/docsift/core"

// Source yields a document's pages as ordered lines of styled text runs.
//
// StyledPages carries full font metadata for the primary extraction tier;
// PlainPages carries positioned text only and backs the basic fallback
// tier. Implementations must wrap open/parse failures in
// ErrDocumentUnreadable so callers can distinguish an unreadable document
// from a transient error.
type Source interface {
	// StyledPages returns the document's pages with font metadata on each run.
	StyledPages(path string) ([]core.Page, error)

	// PlainPages returns the document's pages with positioned text blocks only.
	PlainPages(path string) ([]core.Page, error)
}
