// Command stockfolio is the terminal client for the Stockfolio backend:
// login, portfolio display and mutation, and market symbol search.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/pshvarts/stockfolio/internal/client"
	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/models"
)

var (
	serverURL   = flag.String("server", defaultServerURL(), "Base URL of the stockfolio backend")
	sessionFile = flag.String("session", "", "Path to the session file (default: user config dir)")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

func defaultServerURL() string {
	if url := os.Getenv("STOCKFOLIO_SERVER"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

func newLogger() *common.Logger {
	if *verbose {
		return common.NewLogger("debug")
	}
	return common.NewSilentLogger()
}

func newAPI() *client.API {
	return client.NewAPI(*serverURL, client.WithLogger(newLogger()))
}

func newSession() (*client.Session, error) {
	path := *sessionFile
	if path == "" {
		var err error
		path, err = client.DefaultSessionPath()
		if err != nil {
			return nil, err
		}
	}
	return client.NewSession(path), nil
}

// requireUser resolves the acting user from the session.
func requireUser() (*client.Session, *models.User, error) {
	session, err := newSession()
	if err != nil {
		return nil, nil, err
	}
	user := session.User()
	if user == nil {
		return nil, nil, fmt.Errorf("not logged in (run: stockfolio login <username>)")
	}
	return session, user, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func main() {
	godotenv.Load()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&loginCmd{}, "account")
	subcommands.Register(&logoutCmd{}, "account")
	subcommands.Register(&registerCmd{}, "account")
	subcommands.Register(&usersCmd{}, "account")

	subcommands.Register(&showCmd{}, "portfolio")
	subcommands.Register(&addCmd{}, "portfolio")
	subcommands.Register(&removeCmd{}, "portfolio")

	subcommands.Register(&searchCmd{}, "market")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
