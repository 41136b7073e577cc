package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/presets"
	"github.com/vvka-141/metakit/internal/serializer"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create the meta files for a new vehicle from a preset",
	Long: `Create handling, vehicles, carcols and carvariations documents for one
vehicle, filled in from a built-in preset.

Available presets: ` + strings.Join(presets.Names(), ", ") + `

Examples:
  metakit new mycar --preset sports -o ./mycar
  metakit new unit01 --preset police -o ./unit01 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

var (
	newPreset string
	newOutput string
	newForce  bool
)

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVarP(&newPreset, "preset", "p", "sedan", "Preset to start from")
	newCmd.Flags().StringVarP(&newOutput, "output", "o", ".", "Directory to write the meta files to")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite existing files")
}

func runNew(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)

	coll := metakit.NewCollection()
	record, err := presets.Build(coll, newPreset, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", metakit.ErrInvalidConfig, err)
	}
	logger.Verbose("Created %s (model %s, handling %s) from preset %s", record.Name, record.Identity.ModelName, record.Identity.HandlingID, newPreset)

	docs := serializer.Documents(coll.Records())
	if !newForce {
		for _, doc := range docs {
			path := filepath.Join(newOutput, doc.Dialect.FileName())
			if _, err := fsProvider.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	printer := newPrinter(cmd)
	for _, doc := range docs {
		path := filepath.Join(newOutput, doc.Dialect.FileName())
		if err := writeOutput(cmd, path, doc.Content); err != nil {
			return err
		}
		printer.Success("Wrote %s", path)
	}
	return nil
}
