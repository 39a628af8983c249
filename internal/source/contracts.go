// Package source defines the document-source contracts the batch
// controller depends on. The portal-specific implementation lives in
// source/pje.
package source

import (
	"context"
	"errors"

	"github.com/mvcoutinho/pje-decision-tracker/internal/record"
)

// ErrNoResults signals that the portal returned nothing for a case number
// (absent or search timeout). The controller records a placeholder row.
var ErrNoResults = errors.New("no results for case number")

// DocumentSource yields the document listing of one case at a time. A
// source holds a single stateful browsing session: acquire it once, use it
// strictly sequentially, release it at run end.
type DocumentSource interface {
	// FetchCase opens the case identified by the canonical CNJ number.
	// Returns ErrNoResults when the portal yields nothing.
	FetchCase(ctx context.Context, numeroProcesso string) (CaseView, error)
	Close() error
}

// CaseView is an open case: its header metadata and paged document list.
// Pages are 1-based. Close releases the case window; the view is invalid
// afterwards.
type CaseView interface {
	Archived() bool
	Metadata(ctx context.Context) record.CaseMetadata
	PageCount() int
	Documents(ctx context.Context, page int) ([]DocumentEntry, error)

	// OpenDocument renders the entry's document and returns its plain
	// text. An empty string means the view yielded no content and the
	// entry should be skipped.
	OpenDocument(ctx context.Context, entry DocumentEntry) (string, error)

	Close() error
}

// DocumentEntry is one row of the document grid.
type DocumentEntry struct {
	// Ref identifies the entry within its page for OpenDocument (the
	// anchor element id on the portal, an index in fakes).
	Ref string

	// AnchorText is the raw anchor label ("02/03/2023 14:22:10 - Decisão"
	// plus surrounding lines); header parsing lives in record.ParseAnchor.
	AnchorText string
}
