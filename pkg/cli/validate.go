package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getmockd/httpmock/pkg/cli/internal/output"
	"github.com/getmockd/httpmock/pkg/config"
	"github.com/getmockd/httpmock/pkg/engine"
	"github.com/getmockd/httpmock/pkg/rule"
	"github.com/spf13/cobra"
)

// ValidateOutput is the result of validating a set of rule files.
type ValidateOutput struct {
	Valid  bool         `json:"valid"`
	Rules  int          `json:"rules"`
	Files  []FileOutput `json:"files"`
	Errors []string     `json:"errors,omitempty"`
}

// FileOutput summarizes one rule file.
type FileOutput struct {
	Path  string `json:"path"`
	Rules int    `json:"rules"`
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|glob>...",
		Short: "Validate rule files without serving them",
		Long: `Validate rule files without serving them.

This command checks:
  - JSON and YAML syntax
  - The rule file schema (required fields, types, unknown keys)
  - That every rule installs: methods, paths, headers and JSONPath expressions

Globs may use ** to match directories recursively. Quote them so the
shell does not expand them first.`,
		Example: `  # Validate a single file
  httpmock validate rules.json

  # Validate every YAML rule file below ./mocks
  httpmock validate 'mocks/**/*.yaml'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := validateFiles(g.logger(cmd.ErrOrStderr()), args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if perr := printResult(g, w, out, func() { printValidation(cmd, out) }); perr != nil {
				return perr
			}
			if !out.Valid {
				return fmt.Errorf("validation failed with %d error(s)", len(out.Errors))
			}
			return nil
		},
	}
}

// validateFiles loads every file independently so that all broken files are
// reported, then installs the concatenated rules into a scratch engine.
func validateFiles(logger *slog.Logger, patterns []string) (ValidateOutput, error) {
	files, err := config.ExpandPatterns(patterns...)
	if err != nil {
		return ValidateOutput{}, err
	}
	if len(files) == 0 {
		return ValidateOutput{}, fmt.Errorf("%w: %s", config.ErrNoFiles, strings.Join(patterns, ", "))
	}

	out := ValidateOutput{Files: make([]FileOutput, 0, len(files))}
	var all []rule.Rule
	for _, f := range files {
		rules, err := config.LoadFromFile(f)
		if err != nil {
			out.Errors = append(out.Errors, loadErrors(f, err)...)
			continue
		}
		out.Files = append(out.Files, FileOutput{Path: f, Rules: len(rules)})
		all = append(all, rules...)
	}

	if len(out.Errors) == 0 {
		eng := engine.New(engine.WithLogger(logger))
		if err := eng.Install(all); err != nil {
			out.Errors = append(out.Errors, err.Error())
		}
	}

	out.Rules = len(all)
	out.Valid = len(out.Errors) == 0
	return out, nil
}

// loadErrors expands a schema error into one line per violation.
func loadErrors(file string, err error) []string {
	var schemaErr *config.SchemaError
	if !errors.As(err, &schemaErr) {
		return []string{err.Error()}
	}
	lines := make([]string, len(schemaErr.Errors))
	for i, fe := range schemaErr.Errors {
		lines[i] = file + ": " + fe.Error()
	}
	return lines
}

func printValidation(cmd *cobra.Command, out ValidateOutput) {
	w := cmd.OutOrStdout()
	if !out.Valid {
		fmt.Fprintln(w, "Validation failed:")
		for _, e := range out.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		return
	}

	tw := output.Table(w)
	for _, f := range out.Files {
		fmt.Fprintf(tw, "%s\t%d rule(s)\n", f.Path, f.Rules)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "OK: %d rule(s) in %d file(s)\n", out.Rules, len(out.Files))
}
