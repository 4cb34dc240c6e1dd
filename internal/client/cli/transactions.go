package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/txledger/internal/client/models"
)

var errUsage = errors.New("usage")

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

func printTransactions(w io.Writer, items []*models.Transaction) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tFROM\tTO\tAMOUNT\tSTATUS")
	for _, tx := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.2f\t%s\n",
			tx.ID, tx.Date.UTC().Format(time.DateTime), tx.FromAccount, tx.ToAccount, tx.Amount, tx.Status)
	}
	_ = tw.Flush()
}

// Add prompts for the fields of a new transaction and records it.
func (a *App) Add(ctx context.Context) error {
	from, err := getSimpleText(a.reader, "From account", a.out)
	if err != nil {
		return err
	}
	to, err := getSimpleText(a.reader, "To account (contractor)", a.out)
	if err != nil {
		return err
	}
	rawAmount, err := getSimpleText(a.reader, "Amount", a.out)
	if err != nil {
		return err
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", rawAmount)
	}
	status, err := getSimpleText(a.reader, "Status (red, yellow, green; empty for red)", a.out)
	if err != nil {
		return err
	}

	tx, err := a.api.CreateTransaction(ctx, models.NewTransaction{
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		Status:      status,
	})
	if err != nil {
		return err
	}

	printTransactions(a.out, []*models.Transaction{tx})
	return nil
}

// parseListArgs turns "key=value" tokens into list parameters.
func parseListArgs(args []string) (models.ListParams, error) {
	var p models.ListParams
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return p, usage("list [skip=N] [limit=N] [sort=date|amount|contractor] [order=asc|desc] [contractor=TEXT] [date=YYYY-MM-DD]")
		}
		var err error
		switch key {
		case "skip":
			p.Skip, err = strconv.Atoi(value)
		case "limit":
			p.Limit, err = strconv.Atoi(value)
		case "sort", "sort_by":
			p.SortBy = value
		case "order":
			p.Order = value
		case "contractor":
			p.Contractor = value
		case "date":
			p.Date = value
		default:
			return p, fmt.Errorf("unknown list option %q", key)
		}
		if err != nil {
			return p, fmt.Errorf("%s must be an integer", key)
		}
	}
	return p, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	p, err := parseListArgs(args)
	if err != nil {
		return err
	}

	items, err := a.api.ListTransactions(ctx, p)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No transactions")
		return nil
	}
	printTransactions(a.out, items)
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q", raw)
	}
	return id, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tx, err := a.api.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	printTransactions(a.out, []*models.Transaction{tx})
	return nil
}

func (a *App) SetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("status <id> <red|yellow|green>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	tx, err := a.api.UpdateStatus(ctx, id, args[1])
	if err != nil {
		return err
	}

	printTransactions(a.out, []*models.Transaction{tx})
	return nil
}

const (
	defaultSeedCount = 10
	maxSeedCount     = 100
)

var seedAccounts = []string{"checking", "savings", "cash", "credit card", "brokerage"}

// Seed records n randomly generated transactions for the current user.
func (a *App) Seed(ctx context.Context, args []string) error {
	n := defaultSeedCount
	if len(args) > 1 {
		return usage("seed [count]")
	}
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 || v > maxSeedCount {
			return fmt.Errorf("count must be between 1 and %d", maxSeedCount)
		}
		n = v
	}

	for i := 0; i < n; i++ {
		_, err := a.api.CreateTransaction(ctx, models.NewTransaction{
			FromAccount: a.faker.RandomString(seedAccounts),
			ToAccount:   a.faker.Company(),
			Amount:      a.faker.Price(1, 1000),
			Status:      a.faker.RandomString(models.Statuses),
		})
		if err != nil {
			return fmt.Errorf("seeded %d of %d: %w", i, n, err)
		}
	}

	fmt.Fprintf(a.out, "Seeded %d transactions\n", n)
	return nil
}
