package commands

import (
	"context"
	"fmt"

	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "End the session and forget the token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthClient(cfg, func(c service.AuthService) error {
		if err := c.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Logged out")
		return nil
	})
}

func init() { RegisterCmd(logoutCmd{}) }
