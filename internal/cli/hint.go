package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"svw.info/powerline/internal/engine"
	"svw.info/powerline/internal/hint"
)

type hintOptions struct {
	depth int
}

func (a *App) newHintCmd() *cobra.Command {
	opts := &hintOptions{depth: -1}

	cmd := &cobra.Command{
		Use:   "hint <id>",
		Short: "Suggest the best opening move for a level",
		Long: `Search the starting layout of a level and print the suggested move.

Examples:
  powerline hint 6
  powerline hint 42 --depth 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid level id %q", args[0])
			}
			return a.hint(cmd.Context(), id, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.depth, "depth", "d", -1, "Search depth (defaults to hint.default_depth)")

	return cmd
}

func (a *App) hint(ctx context.Context, id int, opts *hintOptions) error {
	rt, err := a.setup()
	if err != nil {
		return err
	}
	depth := opts.depth
	if depth < 0 {
		depth = rt.cfg.Hint.DefaultDepth
	}

	eng := engine.New(rt.catalog, engine.WithHinter(hint.NewSearch()), engine.WithLogger(rt.logger))
	if !eng.Init(id) {
		return fmt.Errorf("unknown level %d", id)
	}
	if rt.cfg.Hint.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rt.cfg.Hint.Timeout)
		defer cancel()
	}
	mv, found, st, err := eng.FindBestHintMoveContext(ctx, depth)
	if err != nil {
		return fmt.Errorf("hint search: %w", err)
	}
	if !found {
		_, _ = fmt.Fprintf(a.stdout, "level %d: no legal move\n", id)
		return nil
	}
	_, _ = fmt.Fprintf(a.stdout, "level %d, depth %d: move %d -> %d (score %g, %d nodes, %s)\n",
		id, depth, mv.From, mv.To, mv.Score, st.Nodes, st.Duration.Round(time.Microsecond))
	return nil
}
