package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"GophAuth/internal/cli/bootstrap"
	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"

	"go.uber.org/zap"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <user> <password> [--remember]".
	Usage() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

var logger = zap.NewNop().Sugar()

// SetLogger задаёт логгер для клиента аутентификации и команд.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	logger = l
}

// newAuthClient собирает AuthService из конфига. В тестах может подменяться.
var newAuthClient = func(cfg *config.Config) (service.AuthService, func() error, error) {
	return bootstrap.NewAuthClient(cfg, logger)
}

// withAuthClient открывает клиент, выполняет fn и закрывает хранилище.
func withAuthClient(cfg *config.Config, fn func(service.AuthService) error) error {
	c, cleanup, err := newAuthClient(cfg)
	if err != nil {
		return fmt.Errorf("init auth client: %w", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			logger.Warnw("failed to close token store", "error", cerr)
		}
	}()
	return fn(c)
}

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"GophAuth CLI",
		"",
		"Usage:",
		"  gkauth [--base-url <host:port>] [--token-store fs|sqlite|bolt|keyring|memory] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-40s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
