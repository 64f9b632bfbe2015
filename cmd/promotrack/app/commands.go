package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/sekaitools/promotrack"
	"github.com/sekaitools/promotrack/internal/storage"
	"github.com/sekaitools/promotrack/pkg/catalog"
	"github.com/sekaitools/promotrack/pkg/errors"
	"github.com/sekaitools/promotrack/pkg/feed"
)

// NewSyncCommand creates the sync command.
func (a *App) NewSyncCommand() *cobra.Command {
	var dryRun bool
	var locales []string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch feeds and merge new records into the catalogs",
		Long: `Sync runs one full cycle: fetch the upstream feeds, diff them against
the last processed snapshots, merge the new records into the catalogs, and
persist the result. A feed that cannot be fetched is skipped for the cycle
and retried on the next run.`,
		Example: `  promotrack sync                 # full cycle, both locales
  promotrack sync --dry-run       # merge in memory, write nothing
  promotrack sync --locale jp     # fetch only the JP feeds`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := syncOptions(dryRun, locales)
			if err != nil {
				return err
			}
			return a.runSync(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "merge in memory and report without writing")
	cmd.Flags().StringSliceVar(&locales, "locale", nil, "restrict the cycle to the given locales (jp, en)")

	return cmd
}

// NewDiffCommand creates the diff command, a reporting-only cycle.
func (a *App) NewDiffCommand() *cobra.Command {
	var locales []string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Report what a sync would change without writing anything",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := syncOptions(true, locales)
			if err != nil {
				return err
			}
			return a.runSync(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&locales, "locale", nil, "restrict the cycle to the given locales (jp, en)")

	return cmd
}

// runSync executes one cycle and prints a summary.
func (a *App) runSync(cmd *cobra.Command, opts []promotrack.SyncOption) error {
	tracker, err := a.Tracker(cmd.Context())
	if err != nil {
		return err
	}

	res, err := tracker.Sync(cmd.Context(), opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !res.HasChanges() {
		fmt.Fprintln(out, "No changes detected")
	} else {
		fmt.Fprintf(out, "Added %d, updated %d, linked %d banners and %d events\n",
			res.Merge.Added(), res.Merge.Updated(),
			len(res.Merge.BannersLinked), len(res.Merge.EventsLinked))
	}
	if res.DryRun {
		fmt.Fprintln(out, "Dry run, nothing written")
	}
	for _, path := range res.CatalogsWritten {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	if len(res.FeedErrors) > 0 {
		fmt.Fprintf(out, "Skipped %d feeds, see log for details\n", len(res.FeedErrors))
	}

	return nil
}

// NewFormatCommand creates the format command, which rewrites the catalog
// files in the canonical rendering. Useful after hand edits.
func (a *App) NewFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Rewrite catalog files in the canonical rendering",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := storage.New(a.config.DataDir)

			if err := reformat[catalog.Card](cmd, store, storage.CatalogCards); err != nil {
				return err
			}
			for _, name := range []string{storage.CatalogJPBanners, storage.CatalogENBanners} {
				if err := reformat[catalog.Banner](cmd, store, name); err != nil {
					return err
				}
			}
			for _, name := range []string{storage.CatalogJPEvents, storage.CatalogENEvents} {
				if err := reformat[catalog.Event](cmd, store, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "promotrack version %s\n", a.version)
			fmt.Fprintf(out, "commit: %s\n", a.commit)
			fmt.Fprintf(out, "built: %s\n", a.date)
			fmt.Fprintf(out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// syncOptions converts command flags into sync options.
func syncOptions(dryRun bool, locales []string) ([]promotrack.SyncOption, error) {
	opts := []promotrack.SyncOption{promotrack.WithDryRun(dryRun)}

	if len(locales) > 0 {
		parsed := make([]feed.Locale, 0, len(locales))
		for _, l := range locales {
			switch feed.Locale(l) {
			case feed.LocaleJP, feed.LocaleEN:
				parsed = append(parsed, feed.Locale(l))
			default:
				return nil, errors.NewValidationError("locale", l, "must be jp or en")
			}
		}
		opts = append(opts, promotrack.WithLocales(parsed...))
	}

	return opts, nil
}

// reformat loads one catalog and saves it back, normalizing its rendering.
func reformat[T any](cmd *cobra.Command, store *storage.Store, name string) error {
	path := store.CatalogPath(name)
	records, err := storage.Load[T](path)
	if err != nil {
		return err
	}
	if records == nil {
		return nil
	}

	written, err := storage.Save(path, records)
	if err != nil {
		return err
	}
	if written {
		fmt.Fprintf(cmd.OutOrStdout(), "Reformatted %s\n", path)
	}
	return nil
}
