package commands

import (
	"context"
	"errors"
	"fmt"

	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login; --remember keeps the session token" }
func (loginCmd) Usage() string       { return "login <user> <password> [--remember]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	remember := false
	pos := make([]string, 0, 2)
	for _, a := range args {
		switch a {
		case "--remember", "-remember", "-r":
			remember = true
		default:
			pos = append(pos, a)
		}
	}
	if len(pos) != 2 {
		return ErrUsage
	}
	return withAuthClient(cfg, func(c service.AuthService) error {
		info, err := c.Login(ctx, pos[0], pos[1], remember)
		if err != nil {
			if errors.Is(err, service.ErrLoginRejected) {
				return errors.New("invalid login or password")
			}
			return err
		}
		fmt.Fprintln(Out, "Logged in successfully")
		if !remember {
			fmt.Fprintln(Out, "Session token not saved (use --remember to keep it)")
		}
		return printUserInfo(info)
	})
}

func init() { RegisterCmd(loginCmd{}) }
