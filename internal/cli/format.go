package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/parser"
	"github.com/vvka-141/metakit/internal/serializer"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var formatCmd = &cobra.Command{
	Use:   "format <file>...",
	Short: "Re-emit meta files in canonical form",
	Long: `Parse the files into one record set and serialize one dialect of it with
fixed element order, two-space indentation and six-decimal floats.

The dialect defaults to that of the first file. Loading several per-vehicle
files and choosing another dialect converts between them.

Examples:
  metakit format handling.meta
  metakit format handling.meta vehicles.meta --dialect vehicles -o vehicles.meta`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFormat,
}

var (
	formatDialect string
	formatOutput  string
)

func init() {
	rootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVar(&formatDialect, "dialect", "", "Dialect to emit (default: dialect of the first file)")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Write to file instead of stdout")
}

func runFormat(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadProjectConfig(logger)
	if err != nil {
		return err
	}
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	target := detectDocument(docs[0])
	if formatDialect != "" {
		if target, err = metakit.ParseDialect(formatDialect); err != nil {
			return err
		}
	}
	if target == metakit.DialectNone {
		return fmt.Errorf("%w: %s", metakit.ErrNoDialect, docs[0].Path)
	}

	coll, _, err := loadCollection(parser.New(cfg.ParserOptions(), logger), docs)
	if err != nil {
		return err
	}
	content, err := serializer.Serialize(target, coll.Records())
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, formatOutput, content); err != nil {
		return err
	}
	if formatOutput != "" {
		newPrinter(cmd).Success("Wrote %s (%s)", formatOutput, target)
	}
	return nil
}
