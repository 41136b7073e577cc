package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/parser"
	"github.com/vvka-141/metakit/internal/tui"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>...",
	Short: "Load meta files into one record set and summarize it",
	Long: `Parse every file, in order, into one collection of vehicle records.

Records are matched by handling or model name across files; siren, kit and
layout data that carries no vehicle name is assigned by position and the
assignment is listed as a note.

Examples:
  metakit inspect handling.meta vehicles.meta carcols.meta carvariations.meta
  metakit inspect *.meta --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

var inspectJSON bool

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output records and parse reports as JSON")
}

type fileLoad struct {
	Path   string        `json:"path"`
	Report parser.Report `json:"report"`
}

type inspection struct {
	Files   []fileLoad               `json:"files"`
	Records []*metakit.VehicleRecord `json:"records"`
}

// loadCollection parses docs in order into one collection.
func loadCollection(p *parser.Parser, docs []document) (*metakit.Collection, []fileLoad, error) {
	coll := metakit.NewCollection()
	loads := make([]fileLoad, 0, len(docs))
	for _, doc := range docs {
		rep, err := p.ParseFile(doc.Content, doc.Path, coll)
		if err != nil {
			return nil, nil, err
		}
		loads = append(loads, fileLoad{Path: doc.Path, Report: rep})
	}
	return coll, loads, nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	cfg, err := loadProjectConfig(logger)
	if err != nil {
		return err
	}
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	coll, loads, err := loadCollection(parser.New(cfg.ParserOptions(), logger), docs)
	if err != nil {
		return err
	}

	if inspectJSON {
		return writeJSON(cmd.OutOrStdout(), inspection{Files: loads, Records: coll.Records()})
	}

	printer := tui.NewPrinter(cmd.OutOrStdout(), tui.IsInteractive())
	for _, l := range loads {
		printer.Success("%s: %s, %d item(s), %d created, %d updated, %d skipped",
			l.Path, l.Report.Dialect, l.Report.Items, l.Report.Created, l.Report.Updated, l.Report.Skipped)
		for _, n := range l.Report.Notes {
			printer.Line("    note: %s", n.Message)
		}
	}

	rows := make([][]string, 0, coll.Len())
	for _, r := range coll.Records() {
		rows = append(rows, []string{
			r.Name,
			r.Identity.ModelName,
			r.Handling.HandlingName,
			fmt.Sprintf("%.1f", r.Handling.Mass),
			strings.Join(dialectNames(r.Loaded), ","),
		})
	}
	printer.Title("%d record(s)", coll.Len())
	printer.Table([]string{"Name", "Model", "Handling", "Mass", "Loaded"}, rows)
	return nil
}

func dialectNames(s metakit.DialectSet) []string {
	ds := s.Dialects()
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.String()
	}
	return names
}
