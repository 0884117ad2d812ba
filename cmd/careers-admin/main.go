// Command careers-admin is the staff console for reviewing career applications and contact messages.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/technova/careers-api/config"
	"github.com/technova/careers-api/internal/bootstrap"
)

type commandFn func(cmd *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	Out    io.Writer
	In     io.Reader
	// openStores connects the record stores. Tests swap in mocks.
	openStores func(cmd *commandContext) (*adminStores, error)
}

// errUsage marks invalid invocations; they exit with status 2.
var errUsage = errors.New("invalid usage")

func main() {
	logger := bootstrap.InitLogger()
	os.Exit(realMain(context.Background(), os.Args[1:], logger)) //nolint:forbidigo // CLI exit status
}

func realMain(ctx context.Context, args []string, logger *slog.Logger) int {
	if len(args) == 0 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		return 2
	}

	cmdName := args[0]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		return 2
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		return 1
	}

	cmdCtx := &commandContext{
		Ctx:        ctx,
		Logger:     logger,
		Config:     cfg,
		Out:        os.Stdout,
		In:         os.Stdin,
		openStores: connectStores,
	}
	if runErr := cmd.run(cmdCtx, args[1:]); runErr != nil {
		if errors.Is(runErr, errUsage) {
			if werr := writef(os.Stderr, "%v\nusage: careers-admin %s %s\n", runErr, cmd.name, cmd.usage); werr != nil {
				logger.Error("print usage failed", "error", werr)
			}
			return 2
		}
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		return 1
	}
	return 0
}

func commands() map[string]command {
	return map[string]command{
		"schema": {
			name:        "schema",
			usage:       "[-timeout 1m]",
			description: "Create the application and contact tables if missing",
			run:         runSchema,
		},
		"jobs": {
			name:        "jobs",
			description: "List the job catalog",
			run:         runJobs,
		},
		"list-applications": {
			name:        "list-applications",
			usage:       "[-status New] [-json]",
			description: "List career applications, newest first",
			run:         runListApplications,
		},
		"show-application": {
			name:        "show-application",
			usage:       "<id>",
			description: "Print one application as JSON",
			run:         runShowApplication,
		},
		"set-application-status": {
			name:        "set-application-status",
			usage:       "<id> <status>",
			description: "Change an application's review status",
			run:         runSetApplicationStatus,
		},
		"delete-application": {
			name:        "delete-application",
			usage:       "[-yes] <id>",
			description: "Delete an application and its resume",
			run:         runDeleteApplication,
		},
		"list-contacts": {
			name:        "list-contacts",
			usage:       "[-status New] [-json]",
			description: "List contact messages, newest first",
			run:         runListContacts,
		},
		"show-contact": {
			name:        "show-contact",
			usage:       "<id>",
			description: "Print one contact message as JSON",
			run:         runShowContact,
		},
		"set-contact-status": {
			name:        "set-contact-status",
			usage:       "<id> <status>",
			description: "Change a contact message's handling status",
			run:         runSetContactStatus,
		},
		"delete-contact": {
			name:        "delete-contact",
			usage:       "[-yes] <id>",
			description: "Delete a contact message",
			run:         runDeleteContact,
		},
	}
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: careers-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-24s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}
