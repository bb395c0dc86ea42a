package commands

import (
	"context"
	"fmt"

	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check whether the saved session is still valid" }
func (statusCmd) Usage() string       { return "status" }

// Run печатает статус сессии. Невалидный токен при этом удаляется.
func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthClient(cfg, func(c service.AuthService) error {
		if c.IsLoggedIn(ctx) {
			fmt.Fprintln(Out, "Status: logged in")
		} else {
			fmt.Fprintln(Out, "Status: logged out")
		}
		return nil
	})
}

func init() { RegisterCmd(statusCmd{}) }
