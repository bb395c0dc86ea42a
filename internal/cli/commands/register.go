package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"GophAuth/internal/cli/api"
	"GophAuth/internal/config"
)

// PathRegister — регистрация на эталонном сервере (не часть протокола клиента).
const PathRegister = "/register"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account on the reference server" }
func (registerCmd) Usage() string       { return "register <user> <password> [name]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	req := RegisterRequest{Username: args[0], Password: args[1]}
	if len(args) == 3 {
		req.Name = args[2]
	}
	resp, body, err := api.NewRequester(cfg.ServerURL).PostJSON(ctx, PathRegister, req)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusConflict {
		return errors.New("login already in use")
	}
	if err := api.CheckStatus(resp, body); err != nil {
		return err
	}
	logger.Infow("user registered", "username", req.Username)
	fmt.Fprintln(Out, "Registered successfully; run login to start a session")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
