package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/reviewdash/internal/analysis"
	"github.com/mesh-intelligence/reviewdash/internal/dataset"
)

var errNoInput = errors.New("no input CSV: pass --input or set the input config key")

// loadSession loads the configured review CSV. A load failure halts the
// command.
func (a *app) loadSession(ctx context.Context) (*dataset.Session, error) {
	if a.cfg.Input == "" {
		return nil, userError(errNoInput)
	}
	s, err := dataset.Load(ctx, a.cfg.Input, dataset.Options{LengthSource: a.cfg.ReviewLengthSource})
	if err != nil {
		return nil, classify(err)
	}
	a.logger.Info("reviews loaded",
		zap.String("session_id", s.ID()),
		zap.String("source", s.Source()),
		zap.Int("rows", s.Len()),
	)
	return s, nil
}

// viewOptions returns the configured view defaults.
func (a *app) viewOptions() analysis.Options {
	return analysis.Options{FoldCase: a.cfg.FoldCase, TopKeywords: a.cfg.TopKeywords}
}
