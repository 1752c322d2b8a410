package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"ordermgr/internal/usecase"

	"github.com/spf13/cobra"
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Stock and list products",
}

var (
	productName     string
	productQuantity int64
	productPrice    float64
)

// ordermgr product add --name Widget --quantity 5 --price 100
var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Stock a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Products.StockProduct(cmd.Context(), usecase.StockProductInput{
			Name:     productName,
			Quantity: productQuantity,
			Price:    productPrice,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Product '%s' added (id %d).\n", p.Name, p.ID)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Products.ListProducts(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tPRICE")
		for _, p := range items {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Quantity, strconv.FormatFloat(p.Price, 'f', -1, 64))
		}
		return w.Flush()
	},
}

func init() {
	productAddCmd.Flags().StringVar(&productName, "name", "", "product name")
	productAddCmd.Flags().Int64Var(&productQuantity, "quantity", 0, "units in stock")
	productAddCmd.Flags().Float64Var(&productPrice, "price", 0, "unit price (> 0)")
	_ = productAddCmd.MarkFlagRequired("name")
	_ = productAddCmd.MarkFlagRequired("price")

	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productListCmd)
}
