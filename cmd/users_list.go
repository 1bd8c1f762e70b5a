package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/VadimTolstov/rococo-sub000/internal/config"
	"github.com/VadimTolstov/rococo-sub000/internal/users"
)

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		store, err := users.Open(cfg.Users.Database)
		if err != nil {
			return fmt.Errorf("opening user database: %w", err)
		}
		defer store.Close()

		list, err := store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing users: %w", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Username", "Created"})

		for _, user := range list {
			t.AppendRow(table.Row{
				user.Username,
				user.CreatedAt.Format(time.RFC3339),
			})
		}

		t.Render()
		fmt.Println(color.HiBlackString("%d user(s)", len(list)))
		return nil
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
}
