// Command dashboard is the local budget tracker. It keeps its own budget and
// expense list in a JSON file and never talks to the expense server; the two
// record sets are deliberately separate.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"expensetracker/dashboard"
)

const usage = `Usage: dashboard [-file <path>] <command> [args]

Commands:
  set-budget <amount>                 set the monthly budget
  add <amount> <category> [note]      record an expense
  edit <id> <amount> <category> [note]  overwrite an expense
  delete <id>                         remove an expense
  list                                show all expenses, newest first
  summary                             budget, total, remaining, per category
  reset                               clear budget and all expenses
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	file := fs.String("file", defaultStatePath(), "path to the dashboard state file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	tracker, err := dashboard.Open(*file, dashboard.NotifierFunc(func(message string) {
		fmt.Fprintf(stdout, "!! %s\n", message)
	}))
	if err != nil {
		return fmt.Errorf("open dashboard state: %w", err)
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "set-budget":
		if len(rest) != 1 {
			return fmt.Errorf("usage: set-budget <amount>")
		}
		amount, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", rest[0])
		}
		if err := tracker.SetBudget(amount); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Monthly budget set to %.2f\n", amount)
		return nil

	case "add":
		if len(rest) < 2 {
			return fmt.Errorf("usage: add <amount> <category> [note]")
		}
		amount, err := strconv.ParseFloat(rest[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", rest[0])
		}
		note := ""
		if len(rest) > 2 {
			note = rest[2]
		}
		entry, err := tracker.AddEntry(amount, rest[1], note)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Added %s: %.2f (%s)\n", entry.ID, entry.Amount, entry.Category)
		return nil

	case "edit":
		if len(rest) < 3 {
			return fmt.Errorf("usage: edit <id> <amount> <category> [note]")
		}
		amount, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", rest[1])
		}
		note := ""
		if len(rest) > 3 {
			note = rest[3]
		}
		entry, err := tracker.UpdateEntry(rest[0], amount, rest[2], note)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Updated %s: %.2f (%s)\n", entry.ID, entry.Amount, entry.Category)
		return nil

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		if err := tracker.DeleteEntry(rest[0]); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Expense deleted")
		return nil

	case "list":
		entries := tracker.Entries()
		if len(entries) == 0 {
			fmt.Fprintln(stdout, "No expenses recorded")
			return nil
		}
		w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tCATEGORY\tNOTE")
		for _, e := range entries {
			date := e.Date
			if t, err := time.Parse(time.RFC3339, e.Date); err == nil {
				date = t.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", e.ID, date, e.Amount, e.Category, e.Note)
		}
		return w.Flush()

	case "summary":
		fmt.Fprintf(stdout, "Budget:    %.2f\n", tracker.Budget())
		fmt.Fprintf(stdout, "Spent:     %.2f\n", tracker.Total())
		fmt.Fprintf(stdout, "Remaining: %.2f\n", tracker.Remaining())
		breakdown := tracker.CategoryBreakdown()
		if len(breakdown) > 0 {
			fmt.Fprintln(stdout, "By category:")
			for _, ct := range breakdown {
				fmt.Fprintf(stdout, "  %-20s %.2f\n", ct.Name, ct.Value)
			}
		}
		return nil

	case "reset":
		if err := tracker.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Dashboard reset, set a new monthly budget")
		return nil

	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dashboard.json"
	}
	return filepath.Join(home, ".expensetracker", "dashboard.json")
}
