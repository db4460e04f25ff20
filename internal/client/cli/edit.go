package cli

import (
	"context"
	"errors"
	"fmt"

	clientapi "github.com/iudanet/futbol/internal/client/api"
	"github.com/iudanet/futbol/internal/validation"
)

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing match ID. Usage: futbol edit <id> [flags]")
	}
	id := args[0]

	flags := newMatchFlags("edit", c.io)
	if err := flags.parse(args[1:]); err != nil {
		return err
	}
	if flags.fs.NFlag() == 0 {
		return fmt.Errorf("nothing to change. Usage: futbol edit <id> [flags]")
	}

	current, err := c.matches.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, clientapi.ErrNotFound) {
			return fmt.Errorf("match not found with ID: %s", id)
		}
		return authError(fmt.Errorf("failed to get match: %w", err))
	}

	req := requestFromResponse(current)
	if err := flags.apply(&req); err != nil {
		return err
	}
	if errs := validation.Struct(req); len(errs) > 0 {
		return errs
	}

	updated, err := c.matches.UpdateMatch(ctx, id, req)
	if err != nil {
		return authError(fmt.Errorf("failed to update match: %w", err))
	}

	c.io.Println("✓ Match updated!")
	return render(c.io, matchTmpl, newMatchView(updated))
}
