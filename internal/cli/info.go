package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/reviewdash/internal/model"
	"github.com/mesh-intelligence/reviewdash/internal/render"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

type infoOutput struct {
	SessionID       string          `json:"session_id"`
	Source          string          `json:"source"`
	LoadedAt        time.Time       `json:"loaded_at"`
	Rows            int             `json:"rows"`
	Columns         []string        `json:"columns"`
	SentimentCounts map[string]int  `json:"sentiment_counts"`
	Model           *model.Artifact `json:"model"`
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the loaded reviews and model artifact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			artifact, err := a.locateModel()
			if err != nil {
				return err
			}
			s, err := a.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			out := infoOutput{
				SessionID:       s.ID(),
				Source:          s.Source(),
				LoadedAt:        s.LoadedAt(),
				Rows:            s.Len(),
				Columns:         s.Columns(),
				SentimentCounts: types.CountsByLabel(s.SentimentCounts()),
				Model:           artifact,
			}
			if a.flags.jsonMode {
				return render.JSON(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "session: %s\nsource:  %s\nrows:    %d\ncolumns: %s\n",
				out.SessionID, out.Source, out.Rows, strings.Join(out.Columns, ", "))
			if artifact != nil {
				fmt.Fprintf(w, "model:   %s (%d bytes, modified %s)\n",
					artifact.Path, artifact.Size, artifact.ModTime.Format(time.RFC3339))
			} else {
				fmt.Fprintln(w, "model:   none")
			}
			fmt.Fprintln(w)
			return render.Counts(w, render.DefaultStyles(), s.SentimentCounts())
		},
	}
}

// locateModel stats the configured model artifact, if any.
func (a *app) locateModel() (*model.Artifact, error) {
	artifact, err := model.Locate(a.cfg.ModelPath)
	if errors.Is(err, model.ErrArtifactNotFound) {
		return nil, userError(err)
	}
	if err != nil {
		return nil, sysError(err)
	}
	return artifact, nil
}
