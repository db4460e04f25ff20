package cli

import (
	"context"
	"errors"
	"fmt"

	clientapi "github.com/iudanet/futbol/internal/client/api"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing match ID. Usage: futbol delete <id>")
	}
	id := args[0]

	c.io.Println("=== Delete Match ===")

	if err := c.matches.DeleteMatch(ctx, id); err != nil {
		if errors.Is(err, clientapi.ErrNotFound) {
			return fmt.Errorf("match not found with ID: %s", id)
		}
		return authError(fmt.Errorf("failed to delete match: %w", err))
	}

	c.io.Printf("✓ Match %s deleted.\n", id)
	return nil
}
