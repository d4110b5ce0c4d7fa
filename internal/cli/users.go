package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/forms"
)

func (sh *shell) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage staff and their roles",
	}
	cmd.AddCommand(sh.usersListCmd(), sh.usersRoleCmd())
	return cmd
}

func (sh *shell) usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff and clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			users, err := sh.client.Gateway.GetUsers(cmd.Context())
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), users)
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		},
	}
}

func (sh *shell) usersRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "role <platform-id> <role>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			users, err := sh.client.Gateway.GetUsers(cmd.Context())
			if err != nil {
				return err
			}

			var target *domain.User
			for i := range users {
				if users[i].PlatformID == args[0] {
					target = &users[i]
					break
				}
			}
			if target == nil {
				return domain.NewValidationError(fmt.Sprintf("no user with platform id %q.", args[0]))
			}

			role := domain.Role(args[1])
			if err := forms.RoleChange(*target, role); err != nil {
				return err
			}
			updated, err := sh.client.Gateway.ChangeUserRole(cmd.Context(), *target, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.DisplayName(), updated.Role)
			return nil
		},
	}
}

func printUsers(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLATFORM ID\tNAME\tUSERNAME\tPHONE\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.PlatformID, u.DisplayName(), u.Username, u.Phone, u.Role)
	}
	_ = tw.Flush()
}
