package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type userAddCmd struct {
	name  string
	email string
}

func (*userAddCmd) Name() string     { return "user-add" }
func (*userAddCmd) Synopsis() string { return "register a new user" }
func (*userAddCmd) Usage() string {
	return `splitsmart user-add -name <name> -email <email>

  Registers a user. Emails must be unique; other commands refer to users
  by email.
`
}

func (c *userAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name of the user.")
	f.StringVar(&c.email, "email", "", "Email address, unique across users.")
}

func (c *userAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, _, err := openServices()
	if err != nil {
		return fail(err)
	}

	user, err := users.CreateUser(ctx, c.name, c.email)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added user: %s (%s)\n", user.Name, user.Email)
	return subcommands.ExitSuccess
}

type userListCmd struct{}

func (*userListCmd) Name() string     { return "user-list" }
func (*userListCmd) Synopsis() string { return "list registered users" }
func (*userListCmd) Usage() string {
	return `splitsmart user-list

  Lists all registered users.
`
}

func (*userListCmd) SetFlags(*flag.FlagSet) {}

func (*userListCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, _, err := openServices()
	if err != nil {
		return fail(err)
	}

	all, err := users.ListUsers(ctx)
	if err != nil {
		return fail(err)
	}
	if len(all) == 0 {
		fmt.Println("No users found.")
		return subcommands.ExitSuccess
	}
	for _, u := range all {
		fmt.Printf("%s (%s)\n", u.Name, u.Email)
	}
	return subcommands.ExitSuccess
}
