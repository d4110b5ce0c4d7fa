package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
	"github.com/proelectric/proadmin/internal/forms"
)

func (sh *shell) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Browse and edit orders",
	}
	cmd.AddCommand(
		sh.ordersListCmd(),
		sh.ordersGetCmd(),
		sh.ordersCreateCmd(),
		sh.ordersStatusCmd(),
		sh.ordersPriceCmd(),
		sh.ordersExpenseCmd(),
	)
	return cmd
}

func (sh *shell) ordersListCmd() *cobra.Command {
	var filter ports.ListOrdersFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			orders, err := sh.client.Gateway.GetOrders(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), orders)
			}
			printOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Status, "status", domain.StatusAll, "new, processing, work, done, cancel or all")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "page size")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "page offset")
	return cmd
}

func (sh *shell) ordersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order with its materials and money",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			o, err := sh.client.Gateway.GetOrderDetails(cmd.Context(), id)
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			printOrder(cmd.OutOrStdout(), o)
			return nil
		},
	}
}

func (sh *shell) ordersCreateCmd() *cobra.Command {
	var (
		form domain.OrderForm
		wall string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a manual order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.WallType = domain.WallType(wall)
			if err := forms.Order(form); err != nil {
				return err
			}
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			o, err := sh.client.Gateway.CreateManualOrder(cmd.Context(), form)
			if err != nil {
				return err
			}
			if sh.jsonOut {
				return writeJSON(cmd.OutOrStdout(), o)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created order #%d for %s\n", o.ID, o.ClientName)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.ClientName, "client", "", "client name")
	f.StringVar(&form.ClientPhone, "phone", "", "client phone")
	f.StringVar(&form.Address, "address", "", "object address")
	f.StringVar(&form.Area, "area", "", "area in square meters")
	f.StringVar(&form.Rooms, "rooms", "", "number of rooms")
	f.StringVar(&wall, "wall", "", "concrete, brick or gasblock")
	return cmd
}

func (sh *shell) ordersStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move an order to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			if _, err := sh.requireSession(); err != nil {
				return err
			}
			o, err := sh.client.Gateway.UpdateOrderStatus(cmd.Context(), id, domain.OrderStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "order #%d is now %s\n", o.ID, o.Status)
			return nil
		},
	}
}

func (sh *shell) ordersPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "price <id> <amount>",
		Short: "Set the final price of an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			price, err := forms.Price(args[1])
			if err != nil {
				return err
			}
			o, err := sh.orderForEdit(cmd, id)
			if err != nil {
				return err
			}
			res := sh.client.Gateway.UpdateOrderFinalPrice(cmd.Context(), id, o.Details.Financials, price)
			printFinancials(cmd.OutOrStdout(), res.Value)
			if res.Simulated {
				fmt.Fprintln(cmd.OutOrStdout(), simulatedNote)
			}
			return nil
		},
	}
}

func (sh *shell) ordersExpenseCmd() *cobra.Command {
	var amount, category, comment string
	cmd := &cobra.Command{
		Use:   "expense <id>",
		Short: "Book an expense against an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			expense, err := forms.Expense(amount, category, comment)
			if err != nil {
				return err
			}
			o, err := sh.orderForEdit(cmd, id)
			if err != nil {
				return err
			}
			res := sh.client.Gateway.AddOrderExpense(cmd.Context(), id, o.Details.Financials, expense)
			printFinancials(cmd.OutOrStdout(), res.Value)
			if res.Simulated {
				fmt.Fprintln(cmd.OutOrStdout(), simulatedNote)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount spent")
	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().StringVar(&comment, "comment", "", "free text")
	return cmd
}

func (sh *shell) orderForEdit(cmd *cobra.Command, id int64) (*domain.Order, error) {
	if _, err := sh.requireSession(); err != nil {
		return nil, err
	}
	return sh.client.Gateway.GetOrderDetails(cmd.Context(), id)
}

func parseOrderID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(fmt.Sprintf("invalid order id %q.", s))
	}
	return id, nil
}

func printOrders(w io.Writer, orders []domain.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tCLIENT\tPHONE\tAREA\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%g\t%s\n",
			o.ID, o.Status, o.ClientName, o.ClientPhone, o.Area, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func printOrder(w io.Writer, o *domain.Order) {
	fmt.Fprintf(w, "Order #%d  [%s]\n", o.ID, o.Status)
	fmt.Fprintf(w, "  Client:  %s %s\n", o.ClientName, o.ClientPhone)
	fmt.Fprintf(w, "  Address: %s\n", o.Address)
	fmt.Fprintf(w, "  Object:  %g m2, %d rooms, %s walls\n", o.Area, o.Rooms, o.WallType)

	if len(o.Details.BOM) > 0 {
		fmt.Fprintln(w, "  Materials:")
		for _, it := range o.Details.BOM {
			fmt.Fprintf(w, "    %-30s %g %s\n", it.Name, it.Quantity, it.Unit)
		}
	}
	printFinancials(w, o.Details.Financials)
}

func printFinancials(w io.Writer, f domain.Financials) {
	fmt.Fprintf(w, "  Price: %.2f  Expenses: %.2f  Profit: %.2f\n", f.FinalPrice, f.TotalExpenses, f.NetProfit)
}
