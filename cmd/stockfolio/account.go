package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// loginCmd authenticates by username and stores the session.
type loginCmd struct{}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in by username and store the session" }
func (*loginCmd) Usage() string {
	return `stockfolio login <username>

  Authenticates against the backend (username existence check) and stores
  the returned identity in the session file.
`
}
func (*loginCmd) SetFlags(f *flag.FlagSet) {}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockfolio login <username>")
		return subcommands.ExitUsageError
	}

	session, err := newSession()
	if err != nil {
		return fail(err)
	}

	user, err := newAPI().Login(ctx, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	if err := session.SetUser(user); err != nil {
		return fail(err)
	}

	fmt.Printf("Logged in as %s\n", user.Name)
	return subcommands.ExitSuccess
}

// logoutCmd clears the stored session.
type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "clear the stored session" }
func (*logoutCmd) Usage() string            { return "stockfolio logout\n" }
func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	session, err := newSession()
	if err != nil {
		return fail(err)
	}
	if err := session.Clear(); err != nil {
		return fail(err)
	}
	fmt.Println("Logged out")
	return subcommands.ExitSuccess
}

// registerCmd creates an account and logs in.
type registerCmd struct {
	email    string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create an account and log in" }
func (*registerCmd) Usage() string {
	return `stockfolio register [-email <email>] [-password <password>] <name>
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Email address for the account")
	f.StringVar(&c.password, "password", "", "Password for the account")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: stockfolio register [-email ...] [-password ...] <name>")
		return subcommands.ExitUsageError
	}

	session, err := newSession()
	if err != nil {
		return fail(err)
	}

	user, err := newAPI().Register(ctx, f.Arg(0), c.email, c.password)
	if err != nil {
		return fail(err)
	}
	if err := session.SetUser(user); err != nil {
		return fail(err)
	}

	fmt.Printf("Registered and logged in as %s\n", user.Name)
	return subcommands.ExitSuccess
}

// usersCmd prints the users collection summary.
type usersCmd struct{}

func (*usersCmd) Name() string             { return "users" }
func (*usersCmd) Synopsis() string         { return "list users known to the backend" }
func (*usersCmd) Usage() string            { return "stockfolio users\n" }
func (*usersCmd) SetFlags(f *flag.FlagSet) {}

func (c *usersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	summary, err := newAPI().CheckDatabase(ctx)
	if err != nil {
		return fail(err)
	}

	fmt.Printf("Total users: %d\n", summary.TotalUsers)
	for _, u := range summary.Users {
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02")
		}
		fmt.Printf("  %-20s %-30s %s\n", u.Name, u.Email, created)
	}
	return subcommands.ExitSuccess
}
