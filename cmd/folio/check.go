package main

import (
	"fmt"
	"path/filepath"

	"folio/internal/domain/behavior"
	"folio/internal/infra/surface/htmldoc"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Report behavior hooks missing from a page",
		Long:  `check parses a page (default: the site index) and lists the elements the page behaviors need but cannot find. It exits non-zero when a required hook is missing.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.cfg.Site.Dir, a.cfg.Site.Index)
			if len(args) == 1 {
				path = args[0]
			}

			doc, err := htmldoc.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			missing := behavior.Verify(doc)
			if len(missing) == 0 {
				fmt.Fprintf(out, "%s: all behavior hooks present\n", path)
				return nil
			}
			for _, h := range missing {
				fmt.Fprintf(out, "missing %s (%s)\n", h.Name, h.Selector)
			}
			return fmt.Errorf("%s: %d required hooks missing", path, len(missing))
		},
	}
}
