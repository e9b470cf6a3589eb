package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/akademus/akademus-api/internal/client"
)

func passwordFrom(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("AKADEMUS_PASSWORD"); env != "" {
		return env, nil
	}
	return "", errors.New("password required: pass --password or set AKADEMUS_PASSWORD")
}

func (a *app) registerCommand() *cobra.Command {
	var in client.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(in.Password)
			if err != nil {
				return err
			}
			in.Password = pw
			if err := a.client.Register(cmd.Context(), in); err != nil {
				return err
			}
			a.printf("Registered and signed in as %s\n", in.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (env AKADEMUS_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	return cmd
}

func (a *app) loginCommand() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(password)
			if err != nil {
				return err
			}
			if err := a.client.Login(cmd.Context(), email, pw); err != nil {
				return err
			}
			a.printf("Signed in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (env AKADEMUS_PASSWORD)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			a.printf("Signed out\n")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.client.Profile(cmd.Context())
			if err != nil {
				if client.IsUnauthorized(err) {
					return errors.New("not signed in: run `akademus login`")
				}
				return err
			}
			return a.printTable(me,
				[]string{"ID", "EMAIL", "NAME", "STATUS"},
				[][]string{{me.ID.String(), me.Email, me.FirstName + " " + me.LastName, me.Status}},
			)
		},
	}
}
