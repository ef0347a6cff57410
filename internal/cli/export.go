package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

type exportOptions struct {
	dir    string
	format string
}

func (a *App) newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the level catalog to disk",
		Long: `Write every catalog level as one file under <dir>/<difficulty>/<id>.<format>.

Examples:
  powerline export --dir ./levels
  powerline export --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.dir != "" {
				a.exportDir = opts.dir
			}
			if opts.format != "" {
				a.exportFormat = opts.format
			}
			rt, err := a.setup()
			if err != nil {
				return err
			}
			n, err := rt.service.Export(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "exported %d levels to %s (%s)\n", n, rt.cfg.Export.Dir, rt.cfg.Export.Format)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Output directory (overrides export.dir)")
	cmd.Flags().StringVar(&opts.format, "format", "", "json or yaml (overrides export.format)")

	return cmd
}
