package cli

import (
	"context"
	"errors"
	"fmt"

	clientapi "github.com/iudanet/futbol/internal/client/api"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing match ID. Usage: futbol get <id>")
	}
	id := args[0]

	match, err := c.matches.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, clientapi.ErrNotFound) {
			return fmt.Errorf("match not found with ID: %s", id)
		}
		return authError(fmt.Errorf("failed to get match: %w", err))
	}

	return render(c.io, matchTmpl, newMatchView(match))
}
