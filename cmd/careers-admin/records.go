package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/technova/careers-api/internal/bootstrap"
	"github.com/technova/careers-api/internal/data"
	"github.com/technova/careers-api/internal/domain/model"
)

const listTimeFormat = "2006-01-02 15:04"

func newFlagSet(cmd *commandContext, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cmd.Out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func requireArgs(fs *flag.FlagSet, names ...string) ([]string, error) {
	if fs.NArg() != len(names) {
		return nil, fmt.Errorf("%w: expected %s", errUsage, strings.Join(names, " "))
	}
	return fs.Args(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runSchema(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "schema")
	timeout := fs.Duration("timeout", time.Minute, "maximum time to wait for the database")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Ctx, *timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cmd.Config.Postgres, Logger: cmd.Logger})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmd.Logger.Warn("close db failed", "error", closeErr)
		}
	}()

	if err := bootstrap.EnsureSchema(ctx, db, cmd.Logger); err != nil {
		return err
	}
	return writeln(cmd.Out, "schema is up to date")
}

func runJobs(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "jobs")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	jobs, err := data.NewJobListingRepo().List(cmd.Ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}
	if *asJSON {
		return writeJSON(cmd.Out, jobs)
	}

	tw := tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tTITLE\tDEPARTMENT\tLOCATION\tTYPE"); err != nil {
		return err
	}
	for _, j := range jobs {
		if err := writef(tw, "%d\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Department, j.Location, j.Type); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runListApplications(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "list-applications")
	status := fs.String("status", "", "only show applications in this status")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var filter model.ApplicationStatus
	if *status != "" {
		parsed, err := model.ParseApplicationStatus(*status)
		if err != nil {
			return fmt.Errorf("%w: %s", errUsage, model.ApplicationStatusChoices())
		}
		filter = parsed
	}

	return withStores(cmd, func(s *adminServices) error {
		apps, err := s.Applications.List(cmd.Ctx)
		if err != nil {
			return fmt.Errorf("list applications: %w", err)
		}
		if filter != "" {
			kept := apps[:0]
			for _, a := range apps {
				if a.Status == filter {
					kept = append(kept, a)
				}
			}
			apps = kept
		}
		if *asJSON {
			if apps == nil {
				apps = []*model.Application{}
			}
			return writeJSON(cmd.Out, apps)
		}

		tw := tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "ID\tNAME\tEMAIL\tPOSITION\tSTATUS\tCREATED"); err != nil {
			return err
		}
		for _, a := range apps {
			if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.FullName(), a.Email, a.Position(), a.Status, a.CreatedAt.UTC().Format(listTimeFormat)); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}

func runShowApplication(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "show-application")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>")
	if err != nil {
		return err
	}

	return withStores(cmd, func(s *adminServices) error {
		app, err := s.Applications.GetByID(cmd.Ctx, rest[0])
		if err != nil {
			return fmt.Errorf("get application: %w", err)
		}
		return writeJSON(cmd.Out, app)
	})
}

func runSetApplicationStatus(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "set-application-status")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>", "<status>")
	if err != nil {
		return err
	}
	status, err := model.ParseApplicationStatus(rest[1])
	if err != nil {
		return errors.New(model.ApplicationStatusChoices())
	}

	return withStores(cmd, func(s *adminServices) error {
		app, err := s.Applications.UpdateStatus(cmd.Ctx, rest[0], status)
		if err != nil {
			return fmt.Errorf("update application status: %w", err)
		}
		return writef(cmd.Out, "application %s (%s) is now %s\n", app.ID, app.FullName(), app.Status)
	})
}

func runDeleteApplication(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "delete-application")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>")
	if err != nil {
		return err
	}
	id := rest[0]

	return withStores(cmd, func(s *adminServices) error {
		if !*yes {
			app, err := s.Applications.GetByID(cmd.Ctx, id)
			if err != nil {
				return fmt.Errorf("get application: %w", err)
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete application from %s for %s?", app.FullName(), app.Position()))
			if err != nil {
				return err
			}
			if !ok {
				return writeln(cmd.Out, "aborted")
			}
		}

		app, err := s.Applications.Delete(cmd.Ctx, id)
		if err != nil {
			return fmt.Errorf("delete application: %w", err)
		}
		summary := app.Summary()
		return writef(cmd.Out, "deleted application %s (%s, %s)\n", summary.ID, summary.Name, summary.Position)
	})
}

func runListContacts(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "list-contacts")
	status := fs.String("status", "", "only show messages in this status")
	asJSON := fs.Bool("json", false, "print JSON instead of a table")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var filter model.ContactStatus
	if *status != "" {
		parsed, err := model.ParseContactStatus(*status)
		if err != nil {
			return fmt.Errorf("%w: %s", errUsage, model.ContactStatusChoices())
		}
		filter = parsed
	}

	return withStores(cmd, func(s *adminServices) error {
		msgs, err := s.Contacts.List(cmd.Ctx)
		if err != nil {
			return fmt.Errorf("list contacts: %w", err)
		}
		if filter != "" {
			kept := msgs[:0]
			for _, m := range msgs {
				if m.Status == filter {
					kept = append(kept, m)
				}
			}
			msgs = kept
		}
		if *asJSON {
			if msgs == nil {
				msgs = []*model.ContactMessage{}
			}
			return writeJSON(cmd.Out, msgs)
		}

		tw := tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
		if err := writeln(tw, "ID\tNAME\tEMAIL\tSUBJECT\tSTATUS\tCREATED"); err != nil {
			return err
		}
		for _, m := range msgs {
			if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.Name, m.Email, m.Subject, m.Status, m.CreatedAt.UTC().Format(listTimeFormat)); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}

func runShowContact(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "show-contact")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>")
	if err != nil {
		return err
	}

	return withStores(cmd, func(s *adminServices) error {
		msg, err := s.Contacts.GetByID(cmd.Ctx, rest[0])
		if err != nil {
			return fmt.Errorf("get contact: %w", err)
		}
		return writeJSON(cmd.Out, msg)
	})
}

func runSetContactStatus(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "set-contact-status")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>", "<status>")
	if err != nil {
		return err
	}
	status, err := model.ParseContactStatus(rest[1])
	if err != nil {
		return errors.New(model.ContactStatusChoices())
	}

	return withStores(cmd, func(s *adminServices) error {
		msg, err := s.Contacts.UpdateStatus(cmd.Ctx, rest[0], status)
		if err != nil {
			return fmt.Errorf("update contact status: %w", err)
		}
		return writef(cmd.Out, "contact %s (%s) is now %s\n", msg.ID, msg.Name, msg.Status)
	})
}

func runDeleteContact(cmd *commandContext, args []string) error {
	fs := newFlagSet(cmd, "delete-contact")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	rest, err := requireArgs(fs, "<id>")
	if err != nil {
		return err
	}
	id := rest[0]

	return withStores(cmd, func(s *adminServices) error {
		if !*yes {
			msg, err := s.Contacts.GetByID(cmd.Ctx, id)
			if err != nil {
				return fmt.Errorf("get contact: %w", err)
			}
			ok, err := confirm(cmd, fmt.Sprintf("Delete message from %s <%s>?", msg.Name, msg.Email))
			if err != nil {
				return err
			}
			if !ok {
				return writeln(cmd.Out, "aborted")
			}
		}

		msg, err := s.Contacts.Delete(cmd.Ctx, id)
		if err != nil {
			return fmt.Errorf("delete contact: %w", err)
		}
		summary := msg.Summary()
		return writef(cmd.Out, "deleted contact %s (%s <%s>)\n", summary.ID, summary.Name, summary.Email)
	})
}

// confirm asks a yes/no question on cmd.In. Only "y" or "yes" counts as yes.
func confirm(cmd *commandContext, question string) (bool, error) {
	if err := writef(cmd.Out, "%s [y/N]: ", question); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(cmd.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
