package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	clientapi "github.com/iudanet/futbol/internal/client/api"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	// cookie jar живет только в процессе, без локального токена сессии нет
	ok, err := c.authStore.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to read local session: %w", err)
	}
	if !ok {
		c.printNotAuthenticated()
		return nil
	}

	me, err := c.session.Status(ctx)
	if err != nil {
		if errors.Is(err, clientapi.ErrUnauthorized) {
			c.printNotAuthenticated()
			return nil
		}
		return fmt.Errorf("failed to check session: %w", err)
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Email:   %s\n", me.Email)
	c.io.Printf("User ID: %s\n", me.ID)

	// Срок жизни берем из локально сохраненного токена, если он есть
	auth, err := c.authStore.GetAuth(ctx)
	if err != nil || auth.ExpiresAt == 0 {
		return nil
	}

	expiresAt := time.Unix(auth.ExpiresAt, 0)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
	if remaining := expiresAt.Sub(c.now()); remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("⚠️  Token has expired. Please login again.")
	}

	return nil
}

func (c *Cli) printNotAuthenticated() {
	c.io.Println("Status: Not authenticated")
	c.io.Println()
	c.io.Println("Run 'futbol login' to authenticate.")
}
