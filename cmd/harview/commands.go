package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/export"
	"github.com/cnharrison/harview/internal/filter"
	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/output"
	"github.com/cnharrison/harview/internal/preview"
)

const exportWorkers = 4

func addFilterFlags(cmd *cobra.Command, c *filter.Criteria) {
	cmd.Flags().StringVarP(&c.Query, "query", "q", "", "free-text search over method, URL, status and MIME type")
	cmd.Flags().StringVar(&c.Status, "status", "", "exact response status, e.g. 404")
	cmd.Flags().StringVar(&c.Mime, "mime", "", "response MIME type substring")
	cmd.Flags().BoolVar(&c.ErrorsOnly, "errors", false, "only 4xx/5xx and failed requests")
	cmd.Flags().StringVar(&c.Type, "type", "", "request type: "+fmt.Sprint(filter.TypeFilters()))
}

func validateType(c filter.Criteria) error {
	if c.Type == "" {
		return nil
	}
	for _, t := range filter.TypeFilters() {
		if c.Type == t {
			return nil
		}
	}
	return fmt.Errorf("unknown request type %q", c.Type)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var criteria filter.Criteria
	cmd := &cobra.Command{
		Use:   "list <file.har>",
		Short: "List entries matching the filters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateType(criteria); err != nil {
				return err
			}
			s, err := opts.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.loadStore(args[0])
			if err != nil {
				return err
			}
			st.SetFilter(criteria)

			out := cmd.OutOrStdout()
			output.PrintEntries(out, st.Filtered())
			output.PrintSummary(out, st.VisibleLen(), st.Len(), criteria.Describe())
			return nil
		},
	}
	addFilterFlags(cmd, &criteria)
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var targetName, jq string
	cmd := &cobra.Command{
		Use:   "show <file.har> <entry-id>",
		Short: "Print the decoded body of an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := body.ParseTarget(targetName)
			if err != nil {
				return err
			}
			s, err := opts.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.loadStore(args[0])
			if err != nil {
				return err
			}
			entry, err := st.Entry(args[1])
			if err != nil {
				return err
			}
			d, err := body.Resolve(body.Record(entry, target))
			if err != nil {
				return fmt.Errorf("%s body of %s: %w", target, entry.ID, err)
			}

			out := cmd.OutOrStdout()
			if jq != "" {
				if d == nil {
					return fmt.Errorf("%s has no %s body", entry.ID, target)
				}
				results, err := preview.Query(d, jq)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintln(out, r)
				}
				return nil
			}

			output.PrintEntryHeader(out, entry)
			renderer := preview.NewRenderer(s.cfg.Preview.MaxBytes)
			mime := ""
			if d != nil {
				mime = d.MimeType
			}
			output.PrintPreview(out, renderer.Render(mime, d))
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetName, "target", "t", "response", "body to show: request or response")
	cmd.Flags().StringVar(&jq, "jq", "", "jq expression applied to a JSON body")
	return cmd
}

func newCurlCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "curl <file.har> <entry-id>",
		Short: "Print an entry as a curl command",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.loadStore(args[0])
			if err != nil {
				return err
			}
			entry, err := st.Entry(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), export.CurlCommand(entry))
			return nil
		},
	}
}

type exportResult struct {
	id      string
	path    string
	skipped bool
	err     error
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var targetName, outDir string
	cmd := &cobra.Command{
		Use:   "export <file.har> <entry-id>...",
		Short: "Write entry bodies to files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := body.ParseTarget(targetName)
			if err != nil {
				return err
			}
			s, err := opts.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.loadStore(args[0])
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = s.cfg.Export.Dir
			}

			ids := args[1:]
			entries := make([]har.Entry, len(ids))
			for i, id := range ids {
				if entries[i], err = st.Entry(id); err != nil {
					return err
				}
			}

			results := make([]exportResult, len(entries))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(exportWorkers)
			for i, entry := range entries {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					results[i] = exportEntry(entry, target, outDir)
					if results[i].err == nil && !results[i].skipped {
						s.logger.Info("body exported", "session", st.Session(), "entry", entry.ID,
							"target", target.String(), "path", results[i].path)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed int
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					output.PrintError(out, fmt.Sprintf("%s: %v", r.id, r.err))
				case r.skipped:
					fmt.Fprintf(out, "%s: no %s body\n", r.id, target)
				default:
					output.PrintSuccess(out, fmt.Sprintf("%s -> %s", r.id, r.path))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d exports failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&targetName, "target", "t", "response", "body to export: request or response")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config)")
	return cmd
}

func exportEntry(entry har.Entry, target body.Target, dir string) exportResult {
	result := exportResult{id: entry.ID}
	artifact, err := export.Build(entry, target)
	if err != nil {
		result.err = err
		return result
	}
	if artifact == nil {
		result.skipped = true
		return result
	}
	result.path, result.err = export.WriteFile(dir, artifact.Filename, artifact.Bytes)
	return result
}

func newSaveCmd(opts *rootOptions) *cobra.Command {
	var criteria filter.Criteria
	var outPath string
	var ids []string
	cmd := &cobra.Command{
		Use:   "save <file.har>",
		Short: "Write the filtered entries to a new HAR file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateType(criteria); err != nil {
				return err
			}
			s, err := opts.setup(os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			st, err := s.loadStore(args[0])
			if err != nil {
				return err
			}
			st.SetFilter(criteria)

			entries := st.Filtered()
			name := export.SubsetFilename(args[0], criteria, time.Now())
			if len(ids) > 0 {
				// explicit IDs are a selection, independent of the filters
				for _, id := range ids {
					if !st.IsSelected(id) {
						st.ToggleSelect(id)
					}
				}
				entries = st.Selected()
				if len(entries) == 0 {
					return errors.New("none of the given entry IDs exist")
				}
				name = export.SelectionFilename(args[0], len(entries), time.Now())
			}

			data, err := export.HARSubset(st.Document(), entries)
			if err != nil {
				return err
			}

			dir := s.cfg.Export.Dir
			if outPath != "" {
				dir, name = filepath.Dir(outPath), filepath.Base(outPath)
			}
			path, err := export.WriteFile(dir, name, data)
			if err != nil {
				return err
			}
			s.logger.Info("har subset saved", "session", st.Session(), "entries", len(entries), "path", path)
			output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Saved %d/%d entries to %s", len(entries), st.Len(), path))
			return nil
		},
	}
	addFilterFlags(cmd, &criteria)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: descriptive name in the export directory)")
	cmd.Flags().StringSliceVar(&ids, "id", nil, "save these entry IDs instead of the filtered view")
	return cmd
}
