package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/merge"
	"github.com/vvka-141/metakit/internal/tui"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge meta files of one dialect into one deduplicated file",
	Long: `Combine several files of the same dialect into one document.

Records describing the same vehicle are unioned, duplicates are removed by
content fingerprint and comments from every input are kept. For vehicles
files, handling ids that merely extend a shorter id (DURANGOSS next to
DURANGO) are rewritten to the shorter one unless --consolidate=false.

The merge is refused when any input has no recognizable dialect or when the
inputs mix dialects.

Examples:
  metakit merge a/handling.meta b/handling.meta -o handling.meta
  metakit merge */vehicles.meta --preview
  metakit merge */vehicles.meta --consolidate=false --json -o vehicles.meta`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMerge,
}

var (
	mergeOutput      string
	mergeConsolidate bool
	mergePreview     bool
	mergeYes         bool
	mergeJSON        bool
)

func init() {
	rootCmd.AddCommand(mergeCmd)
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the merged document to file instead of stdout")
	mergeCmd.Flags().BoolVar(&mergeConsolidate, "consolidate", true, "Consolidate similar handling ids (default from metakit.yaml)")
	mergeCmd.Flags().BoolVar(&mergePreview, "preview", false, "Only list the handling id consolidations the merge would make")
	mergeCmd.Flags().BoolVarP(&mergeYes, "yes", "y", false, "Accept consolidation without asking")
	mergeCmd.Flags().BoolVar(&mergeJSON, "json", false, "Output the merge summary as JSON")
}

type mergeOutputJSON struct {
	merge.Result
	Output  string `json:"output,omitempty"`
	Content string `json:"content,omitempty"`
}

func runMerge(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadProjectConfig(logger)
	if err != nil {
		return err
	}
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	inputs := make([]merge.Input, len(docs))
	for i, doc := range docs {
		inputs[i] = merge.Input{Path: doc.Path, Content: doc.Content}
	}

	opts := cfg.MergeOptions()
	if cmd.Flags().Changed("consolidate") {
		opts.ConsolidateSimilarIDs = mergeConsolidate
	}
	engine := merge.New(opts, logger)

	if mergePreview {
		pairs, err := engine.PreviewConsolidation(inputs)
		if err != nil {
			return err
		}
		if mergeJSON {
			return writeJSON(cmd.OutOrStdout(), pairs)
		}
		for _, p := range pairs {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		if len(pairs) == 0 {
			newPrinter(cmd).Success("No handling ids to consolidate")
		}
		return nil
	}

	if opts.ConsolidateSimilarIDs && !mergeYes && !mergeJSON && tui.IsInteractive() {
		accept, err := confirmConsolidation(engine, inputs)
		if err != nil {
			return err
		}
		if !accept {
			opts.ConsolidateSimilarIDs = false
			engine = merge.New(opts, logger)
		}
	}

	res, err := engine.Merge(inputs)
	if err != nil {
		return err
	}

	if mergeOutput != "" {
		if err := writeOutput(cmd, mergeOutput, res.Content); err != nil {
			return err
		}
	}

	if mergeJSON {
		out := mergeOutputJSON{Result: *res, Output: mergeOutput}
		if mergeOutput == "" {
			out.Content = res.Content
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	if mergeOutput == "" {
		if err := writeOutput(cmd, "", res.Content); err != nil {
			return err
		}
	}
	printer := newPrinter(cmd)
	if mergeOutput != "" {
		printer.Success("Wrote %s", mergeOutput)
	}
	printMergeSummary(printer, res)
	return nil
}

// confirmConsolidation asks whether to apply the pending consolidations.
// It returns true when there is nothing to ask about.
func confirmConsolidation(engine *merge.Engine, inputs []merge.Input) (bool, error) {
	pairs, err := engine.PreviewConsolidation(inputs)
	if err != nil {
		return false, err
	}
	if len(pairs) == 0 {
		return true, nil
	}
	return tui.Confirm(fmt.Sprintf("Consolidate %d similar handling id(s)?", len(pairs)), pairs, true)
}

func printMergeSummary(printer *tui.Printer, res *merge.Result) {
	s := res.Summary
	printer.Success("Merged %d %s file(s)", s.InputFiles, s.Dialect)
	printer.Line("  Parsed entries:     %d", s.ParsedEntries)
	printer.Line("  Unique entries:     %d", s.UniqueEntries)
	printer.Line("  Duplicates removed: %d", s.DuplicatesRemoved)
	printer.Line("  Comments preserved: %d", s.PreservedComments)
	if s.Dialect == metakit.DialectVehicles {
		printer.Line("  Ids consolidated:   %d", s.Consolidations)
	}
	for _, n := range res.Notes {
		printer.Line("  note: %s", n.Message)
	}
}
