package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/pshvarts/stockfolio/internal/client"
	"github.com/pshvarts/stockfolio/internal/clients/fmp"
	"github.com/pshvarts/stockfolio/internal/models"
)

// searchCmd queries the market data API for symbols.
type searchCmd struct {
	detail bool
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the market data API for stocks" }
func (*searchCmd) Usage() string {
	return `stockfolio search [-detail] <query...>

  Searches NASDAQ listings by name or symbol. Requires FMP_API_KEY in the
  environment. With -detail, also fetches a quote for the first result.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.detail, "detail", false, "Fetch a quote for the first result")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockfolio search [-detail] <query...>")
		return subcommands.ExitUsageError
	}

	apiKey := os.Getenv("FMP_API_KEY")
	if apiKey == "" {
		return fail(fmt.Errorf("FMP_API_KEY is not set"))
	}

	market := fmp.NewClient(apiKey, fmp.WithLogger(newLogger()))

	type outcome struct {
		results []models.StockSearchResult
		err     error
	}
	done := make(chan outcome, 1)

	ctrl := client.NewSearchController(market, func(_ string, results []models.StockSearchResult, err error) {
		done <- outcome{results: results, err: err}
	})
	defer ctrl.Close()

	ctrl.SetQuery(strings.Join(f.Args(), " "))

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		return fail(ctx.Err())
	}
	if out.err != nil {
		return fail(out.err)
	}

	if len(out.results) == 0 {
		fmt.Println("No results")
		return subcommands.ExitSuccess
	}

	fmt.Printf("  %-8s %-40s %s\n", "SYMBOL", "NAME", "EXCHANGE")
	for _, r := range out.results {
		fmt.Printf("  %-8s %-40s %s\n", r.Symbol, r.Name, r.Exchange)
	}

	if c.detail {
		detail, err := ctrl.Select(ctx, out.results[0])
		if err != nil {
			return fail(err)
		}
		fmt.Printf("\n%s (%s): price %.2f, change %.2f, volume %d, market cap %.0f, P/E %.2f\n",
			detail.Symbol, detail.Name, detail.Price, detail.Change, detail.Volume, detail.MarketCap, detail.PE)
	}

	return subcommands.ExitSuccess
}
