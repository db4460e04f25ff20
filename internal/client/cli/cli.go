package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	clientapi "github.com/iudanet/futbol/internal/client/api"
	"github.com/iudanet/futbol/internal/client/iocli"
	"github.com/iudanet/futbol/internal/client/storage"
	"github.com/iudanet/futbol/pkg/api"
)

// PasswordEnv holds the account password for non-interactive use.
const PasswordEnv = "FUTBOL_PASSWORD"

// SessionService is the login protocol used by auth commands.
type SessionService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (*api.MeResponse, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*api.MeResponse, error)
}

// MatchService is the match API used by match commands.
type MatchService interface {
	ListMatches(ctx context.Context) ([]api.MatchResponse, error)
	GetMatch(ctx context.Context, id string) (*api.MatchResponse, error)
	CreateMatch(ctx context.Context, req api.MatchRequest) (*api.MatchResponse, error)
	UpdateMatch(ctx context.Context, id string, req api.MatchRequest) (*api.MatchResponse, error)
	DeleteMatch(ctx context.Context, id string) error
	Summary(ctx context.Context) (*api.SummaryResponse, error)
}

type Passwords struct {
	FromFile string
}

type Cli struct {
	io        iocli.IO
	session   SessionService
	matches   MatchService
	authStore storage.AuthStorage
	now       func() time.Time
	passwords Passwords
}

func New(io iocli.IO, session SessionService, matches MatchService, authStore storage.AuthStorage, passwords Passwords) *Cli {
	return &Cli{
		io:        io,
		session:   session,
		matches:   matches,
		authStore: authStore,
		passwords: passwords,
		now:       time.Now,
	}
}

// Run выполняет команду и возвращает ошибку вместо выхода из процесса
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx)
	case "get":
		return c.runGet(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "summary":
		return c.runSummary(ctx)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// getPassword retrieves the password with priority:
// 1. Environment variable FUTBOL_PASSWORD
// 2. File specified with --password-file
// 3. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// interactivePassword сообщает, будет ли пароль запрошен в терминале
func (c *Cli) interactivePassword() bool {
	return os.Getenv(PasswordEnv) == "" && c.passwords.FromFile == ""
}

// authError переводит ошибки сервера в подсказки для пользователя
func authError(err error) error {
	if errors.Is(err, clientapi.ErrUnauthorized) {
		return fmt.Errorf("not authenticated. Please run 'futbol login' first")
	}
	return err
}

func PrintUsage(out iocli.IO) {
	out.Printf("%s", usageText)
}
