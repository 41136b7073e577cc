package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/textedit"
	"github.com/vvka-141/metakit/internal/tui"
	"github.com/vvka-141/metakit/internal/validator"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check meta files for structural mistakes",
	Long: `Scan each file line by line for unclosed or mismatched tags, stray text,
unterminated comments, duplicate or unquoted attributes, control characters
and unescaped ampersands.

Errors make the command fail; warnings only do so when
validate.fail_on_warnings is set in metakit.yaml.

With --fix every available quick-fix is applied. The repaired document is
printed to stdout, or written back to the file with --write.

Examples:
  metakit validate carcols.meta
  metakit validate *.meta --json
  metakit validate vehicles.meta --fix --write`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

var (
	validateJSON  bool
	validateFix   bool
	validateWrite bool
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output validation results as JSON")
	validateCmd.Flags().BoolVar(&validateFix, "fix", false, "Apply every available quick-fix")
	validateCmd.Flags().BoolVar(&validateWrite, "write", false, "With --fix, write repaired files in place")
}

type fileReport struct {
	Path         string            `json:"path"`
	Valid        bool              `json:"valid"`
	Issues       []validator.Issue `json:"issues"`
	FixesApplied int               `json:"fixesApplied,omitempty"`
	FixesSkipped int               `json:"fixesSkipped,omitempty"`
	Remaining    []validator.Issue `json:"remaining,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	if validateWrite && !validateFix {
		return fmt.Errorf("invalid argument: --write requires --fix")
	}

	cfg, err := loadProjectConfig(logger)
	if err != nil {
		return err
	}

	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd)
	reports := make([]fileReport, 0, len(docs))
	failed := 0
	for _, doc := range docs {
		res := validator.Validate(doc.Content)
		report := fileReport{Path: doc.Path, Valid: res.Valid, Issues: res.Issues}
		final := res

		if validateFix {
			edits := res.Fixes()
			fixed, skipped, err := textedit.Apply(doc.Content, edits)
			if err != nil {
				return fmt.Errorf("failed to apply fixes to %s: %w", doc.Path, err)
			}
			report.FixesApplied = len(edits) - skipped
			report.FixesSkipped = skipped
			final = validator.Validate(fixed)
			report.Remaining = final.Issues
			logger.Verbose("%s: %d edit(s) applied, %d skipped", doc.Path, report.FixesApplied, skipped)

			if validateWrite {
				if err := writeOutput(cmd, doc.Path, fixed); err != nil {
					return err
				}
			} else if !validateJSON {
				if err := writeOutput(cmd, "", fixed); err != nil {
					return err
				}
			}
		}

		if !final.Valid || (cfg.Validate.FailOnWarnings && final.Warnings() > 0) {
			failed++
		}
		reports = append(reports, report)

		if !validateJSON {
			printReport(printer, report, res)
		}
	}

	if validateJSON {
		if err := writeJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s)", metakit.ErrValidationFailed, failed, len(docs))
	}
	return nil
}

func printReport(printer *tui.Printer, report fileReport, res validator.Result) {
	switch {
	case len(res.Issues) == 0:
		printer.Success("%s: no issues", report.Path)
	case res.Valid:
		printer.Success("%s: %d warning(s)", report.Path, res.Warnings())
	default:
		printer.Failure("%s: %d error(s), %d warning(s)", report.Path, res.Errors(), res.Warnings())
	}
	for _, is := range res.Issues {
		printer.Issue(report.Path, is)
	}
	if report.FixesApplied > 0 || report.FixesSkipped > 0 {
		printer.Success("%s: %d fix edit(s) applied, %d skipped, %d issue(s) remain",
			report.Path, report.FixesApplied, report.FixesSkipped, len(report.Remaining))
	}
}
