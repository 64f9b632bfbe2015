package promotrack

import (
	"github.com/sekaitools/promotrack/pkg/reconcile"
)

// Result reports the outcome of one sync cycle.
type Result struct {
	// Merge details which records the cycle added, patched, or linked.
	Merge *reconcile.Result

	// DryRun reports whether persistence was suppressed.
	DryRun bool

	// CatalogsWritten lists the catalog files whose content changed.
	CatalogsWritten []string

	// FeedErrors collects the per-feed failures that caused feeds to be
	// skipped this cycle. A non-empty list does not fail the cycle.
	FeedErrors []error
}

// HasChanges reports whether the merge touched any catalog.
func (r *Result) HasChanges() bool {
	return r.Merge != nil && r.Merge.HasChanges()
}
