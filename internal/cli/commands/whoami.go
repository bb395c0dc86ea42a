package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"GophAuth/internal/cli/model"
	"GophAuth/internal/cli/service"
	"GophAuth/internal/config"
)

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show profile and roles of the logged in user" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return withAuthClient(cfg, func(c service.AuthService) error {
		info, err := c.GetProfileForLoggedInUser(ctx)
		if err != nil {
			return err
		}
		return printUserInfo(info)
	})
}

func printUserInfo(info *model.UserInfo) error {
	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user info: %w", err)
	}
	fmt.Fprintln(Out, string(b))
	return nil
}

func init() { RegisterCmd(whoamiCmd{}) }
