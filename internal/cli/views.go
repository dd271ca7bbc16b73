package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reviewdash/internal/analysis"
	"github.com/mesh-intelligence/reviewdash/internal/render"
)

func newViewsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the dashboard views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return render.JSON(cmd.OutOrStdout(), analysis.Views)
			}
			return render.Views(cmd.OutOrStdout(), render.DefaultStyles(), analysis.Views)
		},
	}
}

func newViewCmd(a *app) *cobra.Command {
	var sentiment string
	var top int

	cmd := &cobra.Command{
		Use:   "view <number|slug>",
		Short: "Compute and print one dashboard view",
		Long: "Compute one dashboard view over the input CSV. The view is named by\n" +
			"its menu number (1-10) or slug, as listed by \"reviewdash views\".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := analysis.Lookup(args[0])
			if err != nil {
				return userError(err)
			}
			if top < 0 {
				return userError(fmt.Errorf("--top must not be negative"))
			}

			s, err := a.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			opts := a.viewOptions()
			opts.Sentiment = sentiment
			if cmd.Flags().Changed("top") {
				opts.TopKeywords = top
			}
			res, err := analysis.Run(s, v, opts)
			if err != nil {
				return classify(err)
			}

			if a.flags.jsonMode {
				return render.JSON(cmd.OutOrStdout(), res)
			}
			return render.Result(cmd.OutOrStdout(), render.DefaultStyles(), res)
		},
	}

	cmd.Flags().StringVar(&sentiment, "sentiment", "", "sentiment for the keywords view (default: first present)")
	cmd.Flags().IntVar(&top, "top", 0, "number of keywords to list (default: top_keywords config)")
	return cmd
}
