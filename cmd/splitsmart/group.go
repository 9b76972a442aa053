package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/jewelmj/splitsmart/internal/service"
)

// resolveEmails maps comma-separated emails to user IDs.
func resolveEmails(ctx context.Context, users *service.UserService, emails string) ([]string, error) {
	var ids []string
	for _, email := range strings.Split(emails, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		user, err := users.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("unknown user %q: %w", email, err)
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}

type groupCreateCmd struct {
	name    string
	members string
}

func (*groupCreateCmd) Name() string     { return "group-create" }
func (*groupCreateCmd) Synopsis() string { return "create a new group" }
func (*groupCreateCmd) Usage() string {
	return `splitsmart group-create -name <name> [-members <email,email,...>]

  Creates a group with the given members.
`
}

func (c *groupCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name of the group.")
	f.StringVar(&c.members, "members", "", "Comma-separated member emails.")
}

func (c *groupCreateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	memberIDs, err := resolveEmails(ctx, users, c.members)
	if err != nil {
		return fail(err)
	}
	group, err := groups.CreateGroup(ctx, c.name, memberIDs)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Created group %q with %d members.\n", group.Name, len(group.MemberIDs))
	return subcommands.ExitSuccess
}

type groupListCmd struct{}

func (*groupListCmd) Name() string     { return "group-list" }
func (*groupListCmd) Synopsis() string { return "list groups" }
func (*groupListCmd) Usage() string {
	return `splitsmart group-list

  Lists all groups with their member counts.
`
}

func (*groupListCmd) SetFlags(*flag.FlagSet) {}

func (*groupListCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	all, err := groups.ListGroups(ctx)
	if err != nil {
		return fail(err)
	}
	if len(all) == 0 {
		fmt.Println("No groups found.")
		return subcommands.ExitSuccess
	}
	for _, g := range all {
		fmt.Printf("Group: %s (%d members)\n", g.Name, len(g.MemberIDs))
	}
	return subcommands.ExitSuccess
}

type memberAddCmd struct {
	group   string
	members string
}

func (*memberAddCmd) Name() string     { return "member-add" }
func (*memberAddCmd) Synopsis() string { return "add members to a group" }
func (*memberAddCmd) Usage() string {
	return `splitsmart member-add -group <name> -members <email,email,...>

  Adds registered users to an existing group.
`
}

func (c *memberAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.group, "group", "", "Name of the group.")
	f.StringVar(&c.members, "members", "", "Comma-separated member emails.")
}

func (c *memberAddCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, groups, err := openServices()
	if err != nil {
		return fail(err)
	}

	group, err := findGroupByName(ctx, groups, c.group)
	if err != nil {
		return fail(err)
	}
	memberIDs, err := resolveEmails(ctx, users, c.members)
	if err != nil {
		return fail(err)
	}
	if len(memberIDs) == 0 {
		return fail(fmt.Errorf("no members given"))
	}
	if _, err := groups.AddMembers(ctx, group.ID, memberIDs); err != nil {
		return fail(err)
	}
	fmt.Printf("Added %d members to group %q.\n", len(memberIDs), group.Name)
	return subcommands.ExitSuccess
}
