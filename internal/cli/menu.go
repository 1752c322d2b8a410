// Package cli は対話メニュー。入力を集めてusecaseを呼ぶだけ
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ordermgr/internal/domain/model"
	"ordermgr/internal/usecase"
)

type ClientRegistrar interface {
	RegisterClient(ctx context.Context, in usecase.RegisterClientInput) (model.Client, error)
}

type ProductStocker interface {
	StockProduct(ctx context.Context, in usecase.StockProductInput) (model.Product, error)
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (usecase.PlaceOrderOutput, error)
	ExecuteOrder(ctx context.Context, orderID int64) (usecase.ExecuteOrderOutput, error)
}

type Menu struct {
	clients  ClientRegistrar
	products ProductStocker
	orders   OrderPlacer

	in  *bufio.Scanner
	out io.Writer
}

func NewMenu(clients ClientRegistrar, products ProductStocker, orders OrderPlacer, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		clients:  clients,
		products: products,
		orders:   orders,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

const menuText = `
Menu:
1. Add client
2. Add product
3. Place order
4. Execute order
5. Exit
`

// Run は "5" かEOFまで回す
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, menuText)
		choice, err := m.readLine("Choose an action: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = m.addClient(ctx)
		case "2":
			err = m.addProduct(ctx)
		case "3":
			err = m.placeOrder(ctx)
		case "4":
			err = m.executeOrder(ctx)
		case "5":
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Try again.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) addClient(ctx context.Context) error {
	name, err := m.readLine("Client name: ")
	if err != nil {
		return err
	}
	orderNumber, err := m.readLine("Order number: ")
	if err != nil {
		return err
	}

	c, err := m.clients.RegisterClient(ctx, usecase.RegisterClientInput{Name: name, OrderNumber: orderNumber})
	if err != nil {
		m.printError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Client %s added (id %d).\n", c.Name, c.ID)
	return nil
}

func (m *Menu) addProduct(ctx context.Context) error {
	name, err := m.readLine("Product name: ")
	if err != nil {
		return err
	}
	qty, err := m.readInt("Quantity: ")
	if err != nil {
		return err
	}
	price, err := m.readFloat("Price: ")
	if err != nil {
		return err
	}

	p, err := m.products.StockProduct(ctx, usecase.StockProductInput{Name: name, Quantity: qty, Price: price})
	if err != nil {
		m.printError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Product '%s' added (id %d).\n", p.Name, p.ID)
	return nil
}

func (m *Menu) placeOrder(ctx context.Context) error {
	clientID, err := m.readInt("Client ID: ")
	if err != nil {
		return err
	}
	n, err := m.readInt("How many products in the order? ")
	if err != nil {
		return err
	}

	var lines []model.OrderLine
	for i := int64(0); i < n; i++ {
		productID, err := m.readInt("Product ID: ")
		if err != nil {
			return err
		}
		qty, err := m.readInt("Quantity: ")
		if err != nil {
			return err
		}
		lines = append(lines, model.OrderLine{ProductID: productID, Quantity: qty})
	}

	out, err := m.orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ClientID: clientID, Lines: lines})
	if err != nil {
		m.printError(err)
		return nil
	}
	if out.Advisory != "" {
		fmt.Fprintf(m.out, "Warning: %s.\n", out.Advisory)
	}
	fmt.Fprintf(m.out, "Order %d created, total %s.\n", out.OrderID, formatPrice(out.TotalPrice))
	return nil
}

func (m *Menu) executeOrder(ctx context.Context) error {
	orderID, err := m.readInt("Order ID: ")
	if err != nil {
		return err
	}

	out, err := m.orders.ExecuteOrder(ctx, orderID)
	if err != nil {
		m.printError(err)
		return nil
	}
	fmt.Fprintf(m.out, "Order %d executed and saved to %s.\n", out.OrderID, out.Location)
	return nil
}

func (m *Menu) printError(err error) {
	fmt.Fprintf(m.out, "Error: %s\n", err.Error())
}

func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// 数字になるまで聞き直す
func (m *Menu) readInt(prompt string) (int64, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(m.out, "Please enter a whole number.")
	}
}

func (m *Menu) readFloat(prompt string) (float64, error) {
	for {
		s, err := m.readLine(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(m.out, "Please enter a number.")
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
