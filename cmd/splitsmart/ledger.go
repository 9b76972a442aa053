package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type debtsCmd struct {
	group string
}

func (*debtsCmd) Name() string     { return "debts" }
func (*debtsCmd) Synopsis() string { return "show simplified debts for a group" }
func (*debtsCmd) Usage() string {
	return `splitsmart debts -group <name>

  Shows who owes whom after simplification.
`
}

func (c *debtsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Name of the group.")
}

func (c *debtsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	group, err := findGroupByName(ctx, groups, c.group)
	if err != nil {
		return fail(err)
	}
	summary, err := groups.Summarize(ctx, group.ID)
	if err != nil {
		return fail(err)
	}
	if len(summary.Debts) == 0 {
		fmt.Println("All settled up!")
		return subcommands.ExitSuccess
	}
	for _, d := range summary.Debts {
		fmt.Printf("%s owes %s $%.2f\n", d.BorrowerName, d.LenderName, d.Amount)
	}
	return subcommands.ExitSuccess
}

type settleCmd struct {
	group     string
	payer     string
	recipient string
	amount    float64
	note      string
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "record a cash payment between members" }
func (*settleCmd) Usage() string {
	return `splitsmart settle -group <name> -from <email> -to <email> -amount <n> [-note <text>]

  Records a cash payment from one member to another and refreshes the
  group's simplified debts.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Name of the group.")
	f.StringVar(&c.payer, "from", "", "Email of the member who paid.")
	f.StringVar(&c.recipient, "to", "", "Email of the member who received the payment.")
	f.Float64Var(&c.amount, "amount", 0, "Payment amount.")
	f.StringVar(&c.note, "note", "", "Optional note.")
}

func (c *settleCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	recipient, err := users.GetUserByEmail(ctx, c.recipient)
	if err != nil {
		return fail(fmt.Errorf("unknown recipient %q: %w", c.recipient, err))
	}

	if _, err := groups.SettleUp(ctx, group.ID, payer.ID, recipient.ID, c.amount, c.note); err != nil {
		return fail(err)
	}
	fmt.Printf("Settlement recorded: %s paid $%.2f to %s in group %q.\n",
		payer.Name, c.amount, recipient.Name, group.Name)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	group string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show a group overview" }
func (*summaryCmd) Usage() string {
	return `splitsmart summary -group <name>

  Shows member count, total recorded expenses and outstanding debts.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Name of the group.")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	group, err := findGroupByName(ctx, groups, c.group)
	if err != nil {
		return fail(err)
	}
	summary, err := groups.Summarize(ctx, group.ID)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("--- Summary for Group: %s ---\n", summary.GroupName)
	fmt.Printf("Total members: %d\n", summary.MemberCount)
	fmt.Printf("Total expenses recorded: $%.2f (%d expenses)\n", summary.TotalExpenses, summary.ExpenseCount)
	fmt.Println("Outstanding debts (simplified):")
	if len(summary.Debts) == 0 {
		fmt.Println("  - All settled up!")
		return subcommands.ExitSuccess
	}
	for _, d := range summary.Debts {
		fmt.Printf("  - %s owes %s $%.2f\n", d.BorrowerName, d.LenderName, d.Amount)
	}
	return subcommands.ExitSuccess
}
