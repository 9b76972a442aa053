// Command splitsmart is the terminal client. It operates directly on a
// JSON data file, so a group can be managed without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/service"
	"github.com/jewelmj/splitsmart/internal/storage/jsonfile"
	"github.com/jewelmj/splitsmart/pkg/logging"
)

var dataFile = flag.String("data", "splitsmart.json", "Path to the SplitSmart data file (JSON format)")

func main() {
	// Service-level info logs would clutter command output.
	logging.SetupWithLevel(slog.LevelWarn)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&userAddCmd{}, "users")
	commander.Register(&userListCmd{}, "users")

	commander.Register(&groupCreateCmd{}, "groups")
	commander.Register(&groupListCmd{}, "groups")
	commander.Register(&memberAddCmd{}, "groups")

	commander.Register(&expenseAddCmd{}, "ledger")
	commander.Register(&debtsCmd{}, "ledger")
	commander.Register(&settleCmd{}, "ledger")
	commander.Register(&summaryCmd{}, "ledger")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// openServices opens the data file and builds the application services.
func openServices() (*service.UserService, *service.GroupService, error) {
	store, err := jsonfile.New(*dataFile)
	if err != nil {
		return nil, nil, err
	}
	return service.NewUserService(store), service.NewGroupService(store), nil
}

// findGroupByName resolves a group by display name.
func findGroupByName(ctx context.Context, groups *service.GroupService, name string) (*models.Group, error) {
	all, err := groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range all {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no group named %q", name)
}

// fail prints the error and returns the failure exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
