package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/pshvarts/stockfolio/internal/client"
	"github.com/pshvarts/stockfolio/internal/models"
)

// showCmd prints the logged-in user's holdings.
type showCmd struct{}

func (*showCmd) Name() string             { return "show" }
func (*showCmd) Synopsis() string         { return "display the portfolio of the logged-in user" }
func (*showCmd) Usage() string            { return "stockfolio show\n" }
func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, user, err := requireUser()
	if err != nil {
		return fail(err)
	}

	view := client.NewPortfolioView(newAPI(), user.Name, newLogger())
	holdings, err := view.Holdings(ctx)
	if err != nil {
		return fail(err)
	}

	if len(holdings) == 0 {
		fmt.Printf("Portfolio of %s is empty\n", user.Name)
		return subcommands.ExitSuccess
	}

	fmt.Printf("Portfolio of %s:\n", user.Name)
	fmt.Printf("  %-8s %-40s %s\n", "SYMBOL", "NAME", "QUANTITY")
	for _, h := range holdings {
		fmt.Printf("  %-8s %-40s %g\n", h.Stock.Symbol, h.Stock.Name, h.Quantity)
	}
	return subcommands.ExitSuccess
}

// addCmd appends a holding and persists the whole list.
type addCmd struct {
	quantity float64
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a stock to the portfolio" }
func (*addCmd) Usage() string {
	return `stockfolio add [-qty <n>] <symbol> [name...]

  Appends a holding to the portfolio and persists the updated list. When no
  name is given the symbol doubles as the display name.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.quantity, "qty", 1, "Quantity of shares")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockfolio add [-qty <n>] <symbol> [name...]")
		return subcommands.ExitUsageError
	}

	_, user, err := requireUser()
	if err != nil {
		return fail(err)
	}

	symbol := f.Arg(0)
	name := strings.Join(f.Args()[1:], " ")
	if name == "" {
		name = symbol
	}

	view := client.NewPortfolioView(newAPI(), user.Name, newLogger())
	if err := view.AddStock(ctx, models.Stock{Name: name, Symbol: symbol}, c.quantity); err != nil {
		return fail(err)
	}

	fmt.Printf("Added %g x %s to %s's portfolio\n", c.quantity, symbol, user.Name)
	return subcommands.ExitSuccess
}

// removeCmd drops a holding and persists the whole list.
type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a stock from the portfolio" }
func (*removeCmd) Usage() string {
	return `stockfolio remove <symbol-or-name>
`
}
func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockfolio remove <symbol-or-name>")
		return subcommands.ExitUsageError
	}

	_, user, err := requireUser()
	if err != nil {
		return fail(err)
	}

	view := client.NewPortfolioView(newAPI(), user.Name, newLogger())
	if err := view.RemoveStock(ctx, f.Arg(0)); err != nil {
		return fail(err)
	}

	fmt.Printf("Removed %s from %s's portfolio\n", f.Arg(0), user.Name)
	return subcommands.ExitSuccess
}
