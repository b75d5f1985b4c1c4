package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getmockd/httpmock/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitError     = 1
	ExitUnmatched = 2
)

// errUnmatched makes match exit with ExitUnmatched after printing the report.
var errUnmatched = errors.New("no rule matched")

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	json     bool
	logLevel string
}

// logger returns the engine logger for a command run.
func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	if g.logLevel != "" {
		return logging.New(logging.Config{
			Level:  logging.ParseLevel(g.logLevel),
			Format: logging.FormatText,
			Output: w,
		})
	}
	return logging.FromEnv(w)
}

// NewRootCommand builds the httpmock command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "httpmock",
		Short: "httpmock checks and exercises HTTP mock rule files",
		Long: `httpmock answers HTTP requests from declarative rules without a network.

Rule files are JSON or YAML, either a list of rules or a document with a
"rules" key. The commands here validate those files and show how a single
request would be matched.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	root.PersistentFlags().BoolVar(&g.json, "json", false, "Output command results in JSON format")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Engine log level (debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(g),
		newMatchCmd(g),
		newVersionCmd(g),
	)
	return root
}

// Execute runs the command tree with os.Args and returns the process exit code.
// This is called by main.main().
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUnmatched):
		return ExitUnmatched
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return ExitError
	}
}
