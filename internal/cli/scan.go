package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/checksum"
	"github.com/vvka-141/metakit/internal/files/scanner"
	"github.com/vvka-141/metakit/internal/tui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [directory]",
	Short: "Find meta files in a directory tree and report duplicates",
	Long: `Walk a directory tree, detect the dialect of every meta file and group
files whose content is the same once comments and whitespace are ignored.

Which files are considered comes from the scan section of metakit.yaml
(default: **/*.meta and **/*.xml).

Examples:
  metakit scan
  metakit scan ./resources --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var scanJSON bool

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output the scan result as JSON")
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadProjectConfig(logger)
	if err != nil {
		return err
	}

	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	s := scanner.NewScannerWithFS(checksum.New(), fsProvider, cfg.ScanOptions())
	res, err := s.ScanDirectory(root)
	if err != nil {
		return err
	}
	logger.Verbose("Scanned %s: %d file(s), %d duplicate group(s)", root, len(res.Files), len(res.Duplicates))

	if scanJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	printer := tui.NewPrinter(cmd.OutOrStdout(), tui.IsInteractive())
	if len(res.Files) == 0 {
		printer.Line("No meta files found in %s", root)
		return nil
	}

	rows := make([][]string, 0, len(res.Files))
	for _, f := range res.Files {
		rows = append(rows, []string{f.Path, f.Dialect.String(), strconv.FormatInt(f.SizeBytes, 10), f.Checksum[:12]})
	}
	printer.Table([]string{"Path", "Dialect", "Size", "Checksum"}, rows)

	for _, g := range res.Duplicates {
		kind := "same content"
		if g.Exact {
			kind = "identical"
		}
		printer.Title("Duplicates (%s, %s)", kind, g.Checksum[:12])
		for _, p := range g.Paths {
			printer.Line("  %s", p)
		}
	}
	return nil
}
