package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/detect"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>...",
	Short: "Report the dialect of meta files",
	Long: `Classify each file as one of the supported dialects.

Document content is checked first; the file name is used when the content
carries no known root element. Siren/kit containers holding only a kit list
are reported as modkits.

Examples:
  metakit detect handling.meta carcols.meta
  metakit detect ./stream/*.meta --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

var detectJSON bool

func init() {
	rootCmd.AddCommand(detectCmd)
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output results as JSON")
}

type detection struct {
	Path    string          `json:"path"`
	Dialect metakit.Dialect `json:"dialect"`
}

func detectDocument(doc document) metakit.Dialect {
	d := detect.Detect(doc.Content, doc.Path)
	if d == metakit.DialectCarcols {
		d = detect.RefineContainer(doc.Content)
	}
	return d
}

func runDetect(cmd *cobra.Command, args []string) error {
	docs, err := readDocuments(args)
	if err != nil {
		return err
	}

	results := make([]detection, 0, len(docs))
	for _, doc := range docs {
		results = append(results, detection{Path: doc.Path, Dialect: detectDocument(doc)})
	}

	if detectJSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", r.Path, r.Dialect)
	}
	return nil
}
