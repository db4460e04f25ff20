package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/futbol/internal/client/session"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	me, err := c.session.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, session.ErrSessionUnconfirmed) {
			return fmt.Errorf("login accepted but the session could not be confirmed, please try again: %w", err)
		}
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email:   %s\n", me.Email)
	c.io.Printf("User ID: %s\n", me.ID)

	return nil
}
