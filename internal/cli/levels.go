package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"svw.info/powerline/internal/domain"
)

func (a *App) newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the level catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.setup()
			if err != nil {
				return err
			}
			levels, err := rt.service.Levels(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "ID\tNAME\tDIFFICULTY\tMAX CORES\tCONDUITS")
			for _, l := range levels {
				_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", l.ID, l.Name, l.Difficulty, l.MaxCores, l.Conduits)
			}
			return tw.Flush()
		},
	}
}

func (a *App) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Draw a level's starting layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level id %q", args[0])
			}
			rt, err := a.setup()
			if err != nil {
				return err
			}
			lvl, err := rt.service.Level(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "Level %d: %s (%s, %d cores per conduit)\n\n", lvl.ID, lvl.Name, lvl.Difficulty, lvl.MaxCores)
			_, _ = fmt.Fprint(a.stdout, Render(lvl.Conduits, lvl.MaxCores))

			solved, mixed, err := rt.service.Validate(cmd.Context(), lvl.Conduits)
			if err != nil {
				return err
			}
			if solved {
				_, _ = fmt.Fprintln(a.stdout, "\nsolved")
			} else {
				_, _ = fmt.Fprintf(a.stdout, "\nmixed conduits: %v\n", mixed)
			}
			return nil
		},
	}
}

// Render draws conduits as columns with the bottom core on the lowest row.
// Cores are abbreviated to three letters; free slots print as dots.
func Render(conduits []domain.Conduit, maxCores int) string {
	var b strings.Builder
	for row := maxCores - 1; row >= 0; row-- {
		for i, c := range conduits {
			if i > 0 {
				b.WriteByte(' ')
			}
			cell := " . "
			if row < len(c) {
				cell = abbrev(c[row])
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	for i := range conduits {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%-3s", "["+strconv.Itoa(i)+"]")
	}
	b.WriteByte('\n')
	return b.String()
}

func abbrev(c domain.Color) string {
	s := string(c)
	if len(s) > 3 {
		s = s[:3]
	}
	return fmt.Sprintf("%-3s", s)
}
