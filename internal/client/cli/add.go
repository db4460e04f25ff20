package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/futbol/internal/validation"
	"github.com/iudanet/futbol/pkg/api"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	flags := newMatchFlags("add", c.io)
	if err := flags.parse(args); err != nil {
		return err
	}

	y, m, d := c.now().UTC().Date()
	req := api.MatchRequest{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
	if err := flags.apply(&req); err != nil {
		return err
	}

	// Проверяем локально теми же правилами, что и сервер
	if errs := validation.Struct(req); len(errs) > 0 {
		return errs
	}

	created, err := c.matches.CreateMatch(ctx, req)
	if err != nil {
		return authError(fmt.Errorf("failed to add match: %w", err))
	}

	c.io.Println("✓ Match saved!")
	return render(c.io, matchTmpl, newMatchView(created))
}
