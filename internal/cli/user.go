package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"laptop-ledger/internal/auth"
	"laptop-ledger/internal/repository"
	"laptop-ledger/internal/services"

	"github.com/spf13/cobra"
)

// PasswordEnv is read when --password is not given, so the password stays
// out of shell history.
const PasswordEnv = "SHOPCTL_PASSWORD"

// ─── user ───────────────────────────────────────────────────────────────────

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage login accounts",
	}

	add := &cobra.Command{
		Use:   "add USERNAME",
		Short: "Create a login account with a bcrypt password",
		Args:  cobra.ExactArgs(1),
		RunE:  runUserAdd,
	}
	add.Flags().String("name", "", "Display name")
	add.Flags().String("password", "", "Password (defaults to $"+PasswordEnv+")")

	list := &cobra.Command{
		Use:   "list",
		Short: "List login accounts",
		Args:  cobra.NoArgs,
		RunE:  runUserList,
	}

	cmd.AddCommand(add, list)
	return cmd
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if password == "" {
		return errors.New("password required: use --password or " + PasswordEnv)
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	svc := services.New(repository.NewRepositories(s))
	user, err := svc.Users.Register(cmd.Context(), args[0], name, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func runUserList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	users, err := repository.NewRepositories(s).Users.GetAll(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USERNAME\tNAME\tID\tPASSWORD")
	for _, u := range users {
		kind := "bcrypt"
		if u.PasswordHash == "" {
			kind = "plaintext (upgraded on next login)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Username, u.Name, u.ID, kind)
	}
	return w.Flush()
}

// ─── hash-password ──────────────────────────────────────────────────────────

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash of a password",
		Long:  `Print the bcrypt hash of a password, for editing users.json by hand.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
