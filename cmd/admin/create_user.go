package main

import (
	"fmt"

	"github.com/spf13/cobra"

	authdomain "github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/repository"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/service"
)

func newCreateUserCmd(open dbOpener) *cobra.Command {
	var req authdomain.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a login account",
		Long: `Create a user that can log in to the API.

Examples:
  admin create-user --name "Ada Lovelace" --email ada@example.com --password 'correct horse battery'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			// CreateUser needs neither tokens nor revocations.
			svc := service.NewAuthService(repository.NewUserRepository(db), nil, nil)
			user, err := svc.CreateUser(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
