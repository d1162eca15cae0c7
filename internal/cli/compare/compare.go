// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package compare

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	gojson "github.com/goccy/go-json"
	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/eric-lim-idexx/sorted-json-diff/internal/api"
	apimodel "github.com/eric-lim-idexx/sorted-json-diff/internal/api/model"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/cmd"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/config"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/display"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/cli/renderer"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/logging"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/rulestore"
	"github.com/eric-lim-idexx/sorted-json-diff/internal/util"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/canonical"
	"github.com/eric-lim-idexx/sorted-json-diff/pkg/diff"
	pkgmodel "github.com/eric-lim-idexx/sorted-json-diff/pkg/model"

	"github.com/platform-engineering-labs/jsonpatch"
)

var outputFormats = []string{"human", "summary", "json", "patch"}

type CompareOptions struct {
	LeftPath  string
	RightPath string
	RulesFile string
	Context   int
	Select    string
	Ignore    []string
	Output    string
	Colorize  bool
	ExpandAll bool
	Server    string
}

func validateCompareOptions(opts *CompareOptions) error {
	if opts.LeftPath == "" || opts.RightPath == "" {
		return cmd.FlagErrorf("two documents are required: <left file> <right file>")
	}
	if opts.LeftPath == "-" && opts.RightPath == "-" {
		return cmd.FlagErrorf("only one side can be read from stdin")
	}
	if !slices.Contains(outputFormats, opts.Output) {
		return cmd.FlagErrorf("output must be one of human | summary | json | patch")
	}
	if opts.Context < 0 {
		return cmd.FlagErrorf("context must be zero or positive")
	}
	return nil
}

func CompareCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "compare",
		Short: "Canonicalize two JSON documents and show their line diff",
		PreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &CompareOptions{}
			opts.LeftPath = command.Flags().Arg(0)
			opts.RightPath = command.Flags().Arg(1)
			opts.RulesFile, _ = command.Flags().GetString("rules")
			opts.Context, _ = command.Flags().GetInt("context")
			opts.Select, _ = command.Flags().GetString("select")
			opts.Ignore, _ = command.Flags().GetStringArray("ignore")
			opts.Output, _ = command.Flags().GetString("output")
			noColor, _ := command.Flags().GetBool("no-color")
			opts.Colorize = !noColor
			opts.ExpandAll, _ = command.Flags().GetBool("expand-all")
			opts.Server, _ = command.Flags().GetString("server")

			return runCompare(opts)
		},
		Annotations: map[string]string{
			"type":     "Compare",
			"examples": "{{.Name}} {{.Command}} left.json right.json  |  cat left.json | {{.Name}} {{.Command}} - right.json --output summary",
			"args":     "<left file> <right file>",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().String("rules", "", "Path to a sort rules file (defaults to the configured rule store)")
	command.Flags().Int("context", diff.DefaultContext, "Unchanged lines of context kept around each change")
	command.Flags().String("select", "", "Compare only the subtree at this path (gjson syntax)")
	command.Flags().StringArray("ignore", nil, "Path to remove from both documents before comparing (repeatable)")
	command.Flags().String("output", "human", "Output format (human | summary | json | patch)")
	command.Flags().Bool("no-color", false, "Disable colorized output")
	command.Flags().Bool("expand-all", false, "Render collapsed context chunks in full")
	command.Flags().String("server", "", "Delegate the comparison to a running sjd server")

	return command
}

func runCompare(opts *CompareOptions) error {
	if err := validateCompareOptions(opts); err != nil {
		return err
	}

	leftDoc, err := readDocument(opts.LeftPath)
	if err != nil {
		return err
	}
	rightDoc, err := readDocument(opts.RightPath)
	if err != nil {
		return err
	}

	leftDoc, rightDoc, err = preprocess(leftDoc, rightDoc, opts)
	if err != nil {
		return err
	}

	// Both sides are validated before anything runs; a parse failure on one
	// side never hides a failure on the other.
	left, leftErr := canonical.Decode(leftDoc)
	right, rightErr := canonical.Decode(rightDoc)
	if leftErr != nil {
		display.Error(fmt.Sprintf("left document (%s): %v", opts.LeftPath, leftErr))
	}
	if rightErr != nil {
		display.Error(fmt.Sprintf("right document (%s): %v", opts.RightPath, rightErr))
	}
	if leftErr != nil || rightErr != nil {
		return errors.New("cannot compare invalid documents")
	}

	if opts.Server != "" {
		return runCompareRemote(leftDoc, rightDoc, opts)
	}

	rules, err := loadRules(opts)
	if err != nil {
		return err
	}

	var wg conc.WaitGroup
	wg.Go(func() { left = canonical.Canonicalize(left, rules) })
	wg.Go(func() { right = canonical.Canonicalize(right, rules) })
	wg.Wait()

	if opts.Output == "patch" {
		return renderPatch(left, right)
	}

	ops := diff.Values(left, right)
	chunks := diff.Chunks(diff.Project(ops), opts.Context)

	return renderResult(&apimodel.CompareResponse{
		Identical: diff.Identical(ops),
		Stats:     diff.Summarize(ops),
		Chunks:    chunks,
	}, opts)
}

func runCompareRemote(leftDoc, rightDoc []byte, opts *CompareOptions) error {
	if opts.Output == "patch" {
		return cmd.FlagErrorf("patch output is not available with --server")
	}

	var rules []pkgmodel.SortRule
	if opts.RulesFile != "" {
		var err error
		rules, err = rulestore.NewStore(util.ExpandHomePath(opts.RulesFile)).Load()
		if err != nil {
			return err
		}
	}

	if err := config.Config.EnsureClientID(); err != nil {
		return err
	}
	clientID, _ := config.Config.ClientID()
	client := api.NewClient(opts.Server, clientID)

	result, err := client.Compare(apimodel.CompareRequest{
		Left:    leftDoc,
		Right:   rightDoc,
		Rules:   rules,
		Context: opts.Context,
	})
	if err != nil {
		return err
	}

	return renderResult(result, opts)
}

func renderResult(result *apimodel.CompareResponse, opts *CompareOptions) error {
	renderOpts := renderer.Options{Colorize: opts.Colorize, ExpandAll: opts.ExpandAll}

	switch opts.Output {
	case "human":
		if !result.Identical {
			fmt.Print(renderer.RenderChunks(result.Chunks, renderOpts))
		}
		fmt.Print(renderer.RenderStats(result.Stats, result.Identical, renderOpts))
	case "summary":
		summary, err := renderer.RenderSummary(result.Chunks, renderOpts)
		if err != nil {
			return err
		}
		fmt.Print(summary)
		fmt.Print(renderer.RenderStats(result.Stats, result.Identical, renderOpts))
	case "json":
		out, err := gojson.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	}

	if !result.Identical {
		return cmd.ErrDifferencesFound
	}
	return nil
}

// renderPatch emits the differences as an RFC 6902 patch document computed
// between the canonicalized serializations.
func renderPatch(left, right any) error {
	leftText := []byte(canonical.Encode(left))
	rightText := []byte(canonical.Encode(right))

	ops, err := jsonpatch.CreatePatch(leftText, rightText,
		jsonpatch.Collections{EntitySets: jsonpatch.EntitySets{}, Arrays: []jsonpatch.Path{}},
		[]jsonpatch.Path{}, jsonpatch.PatchStrategyExactMatch)
	if err != nil {
		return fmt.Errorf("failed to compute patch: %w", err)
	}

	out, err := gojson.MarshalIndent(ops, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if len(ops) > 0 {
		return cmd.ErrDifferencesFound
	}
	return nil
}

func preprocess(leftDoc, rightDoc []byte, opts *CompareOptions) ([]byte, []byte, error) {
	if opts.Select != "" {
		leftSel := gjson.GetBytes(leftDoc, opts.Select)
		if !leftSel.Exists() {
			return nil, nil, fmt.Errorf("path %q not found in left document", opts.Select)
		}
		rightSel := gjson.GetBytes(rightDoc, opts.Select)
		if !rightSel.Exists() {
			return nil, nil, fmt.Errorf("path %q not found in right document", opts.Select)
		}
		leftDoc = []byte(leftSel.Raw)
		rightDoc = []byte(rightSel.Raw)
	}

	for _, path := range opts.Ignore {
		var err error
		leftDoc, err = sjson.DeleteBytes(leftDoc, path)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot ignore path %q: %w", path, err)
		}
		rightDoc, err = sjson.DeleteBytes(rightDoc, path)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot ignore path %q: %w", path, err)
		}
	}

	return leftDoc, rightDoc, nil
}

func loadRules(opts *CompareOptions) ([]pkgmodel.SortRule, error) {
	path := opts.RulesFile
	if path == "" {
		path = config.Config.RulesFilePath()
	}
	return rulestore.NewStore(util.ExpandHomePath(path)).Load()
}

func readDocument(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(util.ExpandHomePath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
