package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reviewdash/internal/export"
)

// Export formats.
const (
	formatJSONL  = "jsonl"
	formatSQLite = "sqlite"
)

var defaultExportNames = map[string]string{
	formatJSONL:  "reviews.jsonl",
	formatSQLite: "reviews.db",
}

func newExportCmd(a *app) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the labelled reviews to JSONL or SQLite",
		Long: "Write every review with its derived sentiment to a JSONL file or a\n" +
			"fresh SQLite database. Without --out the file is placed in the data directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := defaultExportNames[format]
			if !ok {
				return userError(fmt.Errorf("unknown export format %q (want %s or %s)", format, formatJSONL, formatSQLite))
			}

			s, err := a.loadSession(cmd.Context())
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				dataDir, err := a.dataDir()
				if err != nil {
					return sysError(fmt.Errorf("resolve data dir: %w", err))
				}
				if err := os.MkdirAll(dataDir, 0o755); err != nil {
					return sysError(fmt.Errorf("create data directory: %w", err))
				}
				path = filepath.Join(dataDir, name)
			}

			var n int
			switch format {
			case formatJSONL:
				n, err = export.WriteJSONL(path, s)
			case formatSQLite:
				n, err = export.WriteSQLite(cmd.Context(), path, s)
			}
			if err != nil {
				return sysError(fmt.Errorf("export %s: %w", format, err))
			}

			a.logger.Info("reviews exported",
				zap.String("session_id", s.ID()),
				zap.String("format", format),
				zap.String("path", path),
				zap.Int("rows", n),
			)
			if a.flags.jsonMode {
				return writeJSONResult(cmd, map[string]any{"format": format, "path": path, "rows": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d reviews to %s\n", n, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatJSONL, "export format: jsonl or sqlite")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: <data-dir>/reviews.jsonl or reviews.db)")
	return cmd
}
