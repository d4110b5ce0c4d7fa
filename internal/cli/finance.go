package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/forms"
)

// Finance and broadcast results are synthesized by the gateway until the
// backend ships those endpoints; the commands say so.
const simulatedNote = "(simulated, not stored on the server)"

func (sh *shell) financeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Cash desks and ledger",
	}

	accounts := &cobra.Command{
		Use:   "accounts",
		Short: "List cash desks and bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := sh.client.Gateway.GetFinanceAccounts(cmd.Context())
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res.Value)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tBALANCE")
			for _, a := range res.Value {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", a.ID, a.Name, a.Type, a.Balance)
			}
			return tw.Flush()
		},
	}

	var (
		accountID                      int64
		txType, amount, category, note string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record income or an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := forms.Transaction(accountID, domain.TransactionType(txType), amount, category, note)
			if err != nil {
				return err
			}
			res := sh.client.Gateway.AddFinanceTransaction(cmd.Context(), in)
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res.Value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %s %.2f as %s %s\n", res.Value.Type, res.Value.Amount, res.Value.ID, simulatedNote)
			return nil
		},
	}
	add.Flags().Int64Var(&accountID, "account", 1, "account id")
	add.Flags().StringVar(&txType, "type", string(domain.TransactionIncome), "income or expense")
	add.Flags().StringVar(&amount, "amount", "", "amount")
	add.Flags().StringVar(&category, "category", "", "category")
	add.Flags().StringVar(&note, "comment", "", "free text")

	var historyAccount int64
	history := &cobra.Command{
		Use:   "history",
		Short: "List ledger entries of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := sh.client.Gateway.GetFinanceTransactions(cmd.Context(), historyAccount)
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res.Value)
			}
			if len(res.Value) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no transactions yet")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTYPE\tAMOUNT\tCATEGORY\tCOMMENT")
			for _, t := range res.Value {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", t.CreatedAt.Format("2006-01-02"), t.Type, t.Amount, t.Category, t.Comment)
			}
			return tw.Flush()
		},
	}
	history.Flags().Int64Var(&historyAccount, "account", 1, "account id")

	cmd.AddCommand(accounts, add, history)
	return cmd
}

func (sh *shell) broadcastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "broadcast",
		Short: "Message staff by role",
	}

	var target string
	send := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a message to everyone holding a role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(target)
			if err := forms.Broadcast(args[0], role); err != nil {
				return err
			}
			res := sh.client.Gateway.SendBroadcast(cmd.Context(), args[0], role)
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res.Value)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s %s\n", res.Value.ID, simulatedNote)
			return nil
		},
	}
	send.Flags().StringVar(&target, "to", "", "user, manager, admin or owner (empty for everyone)")

	history := &cobra.Command{
		Use:   "history",
		Short: "Show sent broadcasts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := sh.client.Gateway.GetBroadcastHistory(cmd.Context())
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), res.Value)
			}
			if len(res.Value) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no broadcasts yet")
				return nil
			}
			for _, b := range res.Value {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", b.SentAt.Format("2006-01-02 15:04"), b.TargetRole, b.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(send, history)
	return cmd
}
