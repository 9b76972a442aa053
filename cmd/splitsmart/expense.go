package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/jewelmj/splitsmart/internal/service"
	"github.com/jewelmj/splitsmart/internal/split"
)

type expenseAddCmd struct {
	group       string
	description string
	amount      float64
	payer       string
	splitType   string
	percentages string
}

func (*expenseAddCmd) Name() string     { return "expense-add" }
func (*expenseAddCmd) Synopsis() string { return "record a shared expense" }
func (*expenseAddCmd) Usage() string {
	return `splitsmart expense-add -group <name> -desc <text> -amount <n> -payer <email> [-split equal|percentage] [-pct <email=pct,...>]

  Records an expense paid by one member and split among the group.
  The default split is equal; for a percentage split, -pct assigns a
  percentage per member email and the percentages must sum to 100.
`
}

func (c *expenseAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Name of the group.")
	f.StringVar(&c.description, "desc", "", "Description of the expense.")
	f.Float64Var(&c.amount, "amount", 0, "Expense amount.")
	f.StringVar(&c.payer, "payer", "", "Email of the member who paid.")
	f.StringVar(&c.splitType, "split", "equal", "Split strategy: equal or percentage.")
	f.StringVar(&c.percentages, "pct", "", "Percentages as email=pct pairs, comma-separated.")
}

func (c *expenseAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	group, err := findGroupByName(ctx, groups, c.group)
	if err != nil {
		return fail(err)
	}
	payer, err := users.GetUserByEmail(ctx, c.payer)
	if err != nil {
		return fail(fmt.Errorf("unknown payer %q: %w", c.payer, err))
	}

	var spec split.Spec
	switch strings.ToLower(c.splitType) {
	case "equal":
		spec = split.Equal()
	case "percentage":
		percentages, err := parsePercentages(ctx, users, c.percentages)
		if err != nil {
			return fail(err)
		}
		spec = split.Percentage(percentages)
	default:
		return fail(fmt.Errorf("unknown split %q, want equal or percentage", c.splitType))
	}

	expense, err := groups.AddExpense(ctx, group.ID, c.description, c.amount, payer.ID, spec)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added expense %q of $%.2f to group %q.\n", expense.Description, expense.Amount, group.Name)
	return subcommands.ExitSuccess
}

// parsePercentages parses "email=pct,email=pct" into a user-ID keyed map.
func parsePercentages(ctx context.Context, users *service.UserService, raw string) (map[string]float64, error) {
	percentages := make(map[string]float64)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, pctStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed percentage %q, want email=pct", pair)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed percentage %q: %w", pair, err)
		}
		user, err := users.GetUserByEmail(ctx, strings.TrimSpace(email))
		if err != nil {
			return nil, fmt.Errorf("unknown user %q: %w", email, err)
		}
		percentages[user.ID] = pct
	}
	return percentages, nil
}
