package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runList(ctx context.Context) error {
	matches, err := c.matches.ListMatches(ctx)
	if err != nil {
		return authError(fmt.Errorf("failed to list matches: %w", err))
	}

	views := make([]matchView, 0, len(matches))
	for i := range matches {
		views = append(views, newMatchView(&matches[i]))
	}

	return render(c.io, listTmpl, views)
}

func (c *Cli) runSummary(ctx context.Context) error {
	sum, err := c.matches.Summary(ctx)
	if err != nil {
		return authError(fmt.Errorf("failed to get summary: %w", err))
	}
	return render(c.io, summaryTmpl, sum)
}
