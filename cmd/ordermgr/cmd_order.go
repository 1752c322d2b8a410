package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"

	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place, execute and inspect orders",
}

var (
	orderClientID int64
	orderLines    []string
	orderFilterID int64
)

// ordermgr order place --client 1 --line 1:3 --line 2:1
var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Place an order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lines := make([]model.OrderLine, 0, len(orderLines))
		for _, s := range orderLines {
			l, err := parseLine(s)
			if err != nil {
				return err
			}
			lines = append(lines, l)
		}

		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Orders.PlaceOrder(cmd.Context(), usecase.PlaceOrderInput{
			ClientID: orderClientID,
			Lines:    lines,
		})
		if err != nil {
			return err
		}
		if out.Advisory != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s.\n", out.Advisory)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %d created, total %s.\n",
			out.OrderID, strconv.FormatFloat(out.TotalPrice, 'f', -1, 64))
		return nil
	},
}

// ordermgr order execute 1
var orderExecuteCmd = &cobra.Command{
	Use:   "execute <order-id>",
	Short: "Archive an order and remove it from the active table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := a.Orders.ExecuteOrder(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %d executed and saved to %s.\n", out.OrderID, out.Location)
		return nil
	},
}

var orderShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show an active order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid order id %q", args[0])
		}

		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		o, err := a.Orders.GetOrder(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "order_id=%d client_id=%d total_price=%s\n",
			o.ID, o.ClientID, strconv.FormatFloat(o.TotalPrice, 'f', -1, 64))
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List active orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		var clientID *int64
		if cmd.Flags().Changed("client") {
			clientID = &orderFilterID
		}
		items, err := a.Orders.ListOrders(cmd.Context(), clientID)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCLIENT\tTOTAL")
		for _, o := range items {
			fmt.Fprintf(w, "%d\t%d\t%s\n", o.ID, o.ClientID, strconv.FormatFloat(o.TotalPrice, 'f', -1, 64))
		}
		return w.Flush()
	},
}

// "PRODUCT_ID:QUANTITY"
func parseLine(s string) (model.OrderLine, error) {
	pid, qty, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return model.OrderLine{}, fmt.Errorf("invalid line %q (want PRODUCT_ID:QUANTITY)", s)
	}
	productID, err := strconv.ParseInt(strings.TrimSpace(pid), 10, 64)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid product id in line %q", s)
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(qty), 10, 64)
	if err != nil {
		return model.OrderLine{}, fmt.Errorf("invalid quantity in line %q", s)
	}
	return model.OrderLine{ProductID: productID, Quantity: quantity}, nil
}

func init() {
	orderPlaceCmd.Flags().Int64Var(&orderClientID, "client", 0, "client id")
	orderPlaceCmd.Flags().StringArrayVar(&orderLines, "line", nil, "order line PRODUCT_ID:QUANTITY (repeatable)")
	_ = orderPlaceCmd.MarkFlagRequired("client")
	_ = orderPlaceCmd.MarkFlagRequired("line")

	orderListCmd.Flags().Int64Var(&orderFilterID, "client", 0, "only orders of this client")

	orderCmd.AddCommand(orderPlaceCmd)
	orderCmd.AddCommand(orderExecuteCmd)
	orderCmd.AddCommand(orderShowCmd)
	orderCmd.AddCommand(orderListCmd)
}
