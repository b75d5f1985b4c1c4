package cli

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/getmockd/httpmock/internal/canonical"
	"github.com/getmockd/httpmock/pkg/cli/internal/output"
	"github.com/getmockd/httpmock/pkg/cli/internal/parse"
	"github.com/getmockd/httpmock/pkg/config"
	"github.com/getmockd/httpmock/pkg/engine"
	"github.com/spf13/cobra"
)

// MatchOutput is the result of matching one request.
type MatchOutput struct {
	Matched bool   `json:"matched"`
	Method  string `json:"method"`
	Path    string `json:"path"`

	RuleID   string            `json:"ruleId,omitempty"`
	RuleName string            `json:"ruleName,omitempty"`
	Status   int               `json:"status,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Data     any               `json:"data,omitempty"`

	NearMisses []engine.NearMiss `json:"nearMisses,omitempty"`
}

type matchFlags struct {
	rules      []string
	method     string
	url        string
	data       string
	params     []string
	headers    []string
	nearMisses int
}

func newMatchCmd(g *globalFlags) *cobra.Command {
	f := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Show which rule answers a request",
		Long: `Install rules and show which one answers a single request.

When a rule matches, its status, headers and data are printed. When none
does, the closest rules are listed with the reason each one failed and the
command exits with status 2.`,
		Example: `  httpmock match --rules rules.json --url /users/1
  httpmock match --rules 'mocks/**/*.yaml' -X POST --url /users --data '{"name":"ada"}'
  httpmock match --rules rules.json --url /search --param page=2 -H 'X-Token: abc'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, g, f)
		},
	}

	cmd.Flags().StringArrayVarP(&f.rules, "rules", "r", nil, "Rule file or glob (repeatable)")
	cmd.Flags().StringVarP(&f.method, "method", "X", http.MethodGet, "Request method")
	cmd.Flags().StringVarP(&f.url, "url", "u", "", "Request URL or path, query string included")
	cmd.Flags().StringVarP(&f.data, "data", "d", "", "Request body; JSON when valid, a string otherwise")
	cmd.Flags().StringArrayVarP(&f.params, "param", "p", nil, "Client-side parameter key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Request header 'Name: value' (repeatable)")
	cmd.Flags().IntVar(&f.nearMisses, "near-misses", engine.DefaultNearMisses, "Number of closest rules to report")
	_ = cmd.MarkFlagRequired("rules")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func runMatch(cmd *cobra.Command, g *globalFlags, f *matchFlags) error {
	raw, err := f.request(cmd.Flags().Changed("data"))
	if err != nil {
		return err
	}

	rules, err := config.LoadGlob(f.rules...)
	if err != nil {
		return err
	}
	eng := engine.New(
		engine.WithLogger(g.logger(cmd.ErrOrStderr())),
		engine.WithNearMisses(f.nearMisses),
	)
	if err := eng.Install(rules); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	res, err := eng.Intercept(cmd.Context(), raw)

	var unmatched *engine.UnmatchedRequestError
	switch {
	case errors.As(err, &unmatched):
		out := MatchOutput{
			Method:     unmatched.Method,
			Path:       unmatched.Path,
			NearMisses: unmatched.NearMisses,
		}
		if perr := printResult(g, w, out, func() { printUnmatched(cmd, out) }); perr != nil {
			return perr
		}
		return errUnmatched
	case err != nil:
		return err
	}

	req := canonical.NewRequest(raw.Method, raw.URL)
	out := MatchOutput{
		Matched:  true,
		Method:   req.Method,
		Path:     req.Path,
		RuleID:   res.RuleID,
		RuleName: res.RuleName,
		Status:   res.Status,
		Headers:  res.Headers,
		Data:     res.Data,
	}
	return printResult(g, w, out, func() { printMatched(cmd, out) })
}

// request builds the raw request from the flags. Parameter values and the
// body decode as JSON when they can, so --param page=2 yields a number.
func (f *matchFlags) request(hasData bool) (engine.RawRequest, error) {
	raw := engine.RawRequest{Method: f.method, URL: f.url}

	if len(f.params) > 0 {
		pairs, err := parse.Pairs(f.params)
		if err != nil {
			return raw, err
		}
		raw.Params = make(map[string]any, len(pairs))
		for k, v := range pairs {
			raw.Params[k] = decodeValue(v)
		}
	}

	if len(f.headers) > 0 {
		hs, err := parse.Headers(f.headers)
		if err != nil {
			return raw, err
		}
		raw.Headers = make(http.Header, len(hs))
		for k, v := range hs {
			raw.Headers.Set(k, v)
		}
	}

	if hasData {
		raw.Data = canonical.DecodeBody([]byte(f.data))
	}
	return raw, nil
}

func decodeValue(s string) any {
	if v := canonical.DecodeBody([]byte(s)); v != nil {
		return v
	}
	return s
}

func printMatched(cmd *cobra.Command, out MatchOutput) {
	w := cmd.OutOrStdout()
	label := out.RuleName
	if label == "" {
		label = out.RuleID
	}
	fmt.Fprintf(w, "%s %s matched %s\n", out.Method, out.Path, label)
	fmt.Fprintf(w, "status: %d\n", out.Status)

	if len(out.Headers) > 0 {
		names := make([]string, 0, len(out.Headers))
		for k := range out.Headers {
			names = append(names, k)
		}
		sort.Strings(names)
		fmt.Fprintln(w, "headers:")
		for _, k := range names {
			fmt.Fprintf(w, "  %s: %s\n", k, out.Headers[k])
		}
	}

	if out.Data != nil {
		fmt.Fprintln(w, "data:")
		_ = output.JSON(w, out.Data)
	}
}

func printUnmatched(cmd *cobra.Command, out MatchOutput) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s matched no rule\n", out.Method, out.Path)
	if len(out.NearMisses) == 0 {
		fmt.Fprintln(w, "no rule came close")
		return
	}

	fmt.Fprintln(w, "closest rules:")
	tw := output.Table(w)
	fmt.Fprintln(tw, "  RULE\tMATCHED\tREASON")
	for _, nm := range out.NearMisses {
		label := nm.RuleName
		if label == "" {
			label = fmt.Sprintf("#%d", nm.RuleIndex)
		}
		fmt.Fprintf(tw, "  %s\t%d/%d\t%s\n", label, nm.Matched, nm.Declared, nm.Reason)
	}
	_ = tw.Flush()
}
