package installpolicy

import (
	"context"

	"github.com/vk/busboot/internal/ctxlog"
)

// Evaluate applies rule to lc. A nil rule never installs.
func Evaluate(ctx context.Context, lc LaunchContext, rule Rule) (Decision, error) {
	logger := ctxlog.FromContext(ctx)
	if rule == nil {
		logger.Debug("No installation rule configured, installers disabled.")
		return Decision{Reason: ReasonDefault}, nil
	}

	d, err := rule.evaluate(ctx, lc)
	if err != nil {
		logger.Error("Installation policy evaluation failed.", "error", err)
		return Decision{}, err
	}
	logger.Debug("Installation policy evaluated.", "should_install", d.ShouldInstall, "reason", d.Reason.String())
	return d, nil
}
