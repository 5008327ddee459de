// Command observer-log is a tool for viewing and analyzing registry trace files.
//
// Trace files are created by observer-sim with the -trace flag, or by any
// registry configured with a log.FileLogger as its trace logger.
//
// Usage:
//
//	observer-log <command> [flags] <file.otrace>
//
// Commands:
//
//	view     View trace file in human-readable format
//	export   Export trace file to JSONL, CSV or YAML format
//	filter   Filter trace file and write to new file
//	stats    Show statistics about the trace file
//
// Examples:
//
//	# View all events
//	observer-log view registry.otrace
//
//	# View only gateway calls
//	observer-log view --category gateway registry.otrace
//
//	# View SIM state events on slot 1
//	observer-log view --event sim-state --slot 1 registry.otrace
//
//	# Export to JSONL
//	observer-log export --format jsonl registry.otrace
//
//	# Filter by registry and save to new file
//	observer-log filter --registry-id 3f2a9c1e-... -o filtered.otrace registry.otrace
//
//	# Show statistics
//	observer-log stats registry.otrace
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/telephony-observer/observer-go/cmd/observer-log/commands"
)

const usage = `observer-log - Telephony Observer Trace Analyzer

Usage:
  observer-log <command> [flags] <file.otrace>

Commands:
  view     View trace file in human-readable format
  export   Export trace file to JSONL, CSV or YAML format
  filter   Filter trace file and write to new file
  stats    Show statistics about the trace file

Use "observer-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// selectionFlags registers the flags shared by view and filter.
func selectionFlags(fs *flag.FlagSet) *commands.FilterOptions {
	opts := &commands.FilterOptions{}
	fs.StringVar(&opts.RegistryID, "registry-id", "", "Filter by registry ID")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (subscription, gateway, dispatch, error)")
	fs.StringVar(&opts.Event, "event", "", "Filter by notification category (e.g. sim-state, call-state)")
	fs.StringVar(&opts.Slot, "slot", "", "Filter by slot (number or all)")
	return opts
}

// pathArg returns the single trace file argument or exits.
func pathArg(fs *flag.FlagSet) string {
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `observer-log view - View trace file in human-readable format

Usage:
  observer-log view [flags] <file.otrace>

Flags:
`)
		fs.PrintDefaults()
	}

	opts := selectionFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	filter, err := commands.BuildFilter(*opts)
	if err != nil {
		fail(err)
	}
	if err := commands.RunView(path, filter, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `observer-log export - Export trace file to JSONL, CSV or YAML format

Usage:
  observer-log export [flags] <file.otrace>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", "jsonl", "Output format (jsonl, csv, yaml)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunExport(path, *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `observer-log filter - Filter trace file and write to new file

Usage:
  observer-log filter [flags] <file.otrace>

Flags:
`)
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "Output file (required)")
	opts := selectionFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}
	opts.Output = *output

	count, err := commands.RunFilter(path, *opts)
	if err != nil {
		fail(err)
	}
	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `observer-log stats - Show statistics about the trace file

Usage:
  observer-log stats <file.otrace>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := pathArg(fs)

	if err := commands.RunStats(path, os.Stdout); err != nil {
		fail(err)
	}
}
