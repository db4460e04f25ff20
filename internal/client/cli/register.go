package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/futbol/internal/validation"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = validation.NormalizeEmail(email)
	if errs := validation.ValidateEmail(email); len(errs) > 0 {
		return errs
	}

	password, err := c.getPassword(fmt.Sprintf("Password (min %d chars): ", validation.MinPasswordLen))
	if err != nil {
		return err
	}

	if c.interactivePassword() {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if confirm != password {
			return fmt.Errorf("passwords do not match")
		}
	}

	if errs := validation.ValidatePassword(password); len(errs) > 0 {
		return errs
	}

	c.io.Println()
	c.io.Println("Registering user...")

	if err := c.session.Register(ctx, email, password); err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Email: %s\n", email)
	c.io.Println()
	c.io.Println("Please run 'futbol login' to start logging matches.")

	return nil
}
