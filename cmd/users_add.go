package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/VadimTolstov/rococo-sub000/internal/config"
	"github.com/VadimTolstov/rococo-sub000/internal/users"
)

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a new user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		store, err := users.Open(cfg.Users.Database)
		if err != nil {
			return fmt.Errorf("opening user database: %w", err)
		}
		defer store.Close()

		if err := store.Register(cmd.Context(), username, password); err != nil {
			if errors.Is(err, users.ErrUsernameTaken) {
				return fmt.Errorf("username %q is already taken", username)
			}
			return fmt.Errorf("creating user: %w", err)
		}

		log.Info().Str("username", username).Msg("User created")
		return nil
	},
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func init() {
	usersCmd.AddCommand(usersAddCmd)

	usersAddCmd.Flags().String("password", "", "Password for the new user (prompted when omitted)")
}
