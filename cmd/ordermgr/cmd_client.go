package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"ordermgr/internal/usecase"

	"github.com/spf13/cobra"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Register, list and delete clients",
}

var (
	clientName        string
	clientOrderNumber string
)

// ordermgr client add --name Alice --order-number A1
var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.Clients.RegisterClient(cmd.Context(), usecase.RegisterClientInput{
			Name:        clientName,
			OrderNumber: clientOrderNumber,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client %s added (id %d).\n", c.Name, c.ID)
		return nil
	},
}

// ordermgr client delete 1
var clientDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client and all of its orders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid client id %q", args[0])
		}

		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Clients.DeleteClient(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Client %d deleted.\n", id)
		return nil
	},
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Clients.ListClients(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tORDER NUMBER\tDATE")
		for _, c := range items {
			num := ""
			if c.OrderNumber != nil {
				num = *c.OrderNumber
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, num, c.OrderDate.Format("2006-01-02"))
		}
		return w.Flush()
	},
}

func init() {
	clientAddCmd.Flags().StringVar(&clientName, "name", "", "client name")
	clientAddCmd.Flags().StringVar(&clientOrderNumber, "order-number", "", "unique order number (optional)")
	_ = clientAddCmd.MarkFlagRequired("name")

	clientCmd.AddCommand(clientAddCmd)
	clientCmd.AddCommand(clientDeleteCmd)
	clientCmd.AddCommand(clientListCmd)
}
