package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/metakit/internal/config"
	"github.com/vvka-141/metakit/internal/files/filesystem"
	"github.com/vvka-141/metakit/internal/logging"
	"github.com/vvka-141/metakit/internal/tui"
	"github.com/vvka-141/metakit/pkg/metakit"
)

var rootCmd = &cobra.Command{
	Use:   "metakit",
	Short: "Validate, normalize and merge vehicle meta files",
	Long: `metakit reads the vehicle meta dialects (handling, vehicles, carcols,
carvariations, vehiclelayouts and kit-only carcols) leniently, reports
structural mistakes with mechanical quick-fixes, re-emits documents in a
canonical layout and merges several files of one dialect into one.

Machine-readable output (XML, JSON) goes to stdout; reports go to stderr.

Configuration is read from metakit.yaml in the working directory when present.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Validation found errors
  12 - Merge refused (no inputs, undetected or mixed dialects)
  13 - Unsupported or unreadable document`,
	SilenceUsage: true,
}

// fsProvider is the filesystem every command reads and writes through.
var fsProvider filesystem.Provider = filesystem.NewOSFileSystem()

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout, os.Stderr)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func newLogger(cmd *cobra.Command) metakit.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
}

func newPrinter(cmd *cobra.Command) *tui.Printer {
	return tui.NewPrinter(cmd.ErrOrStderr(), tui.IsInteractive())
}

// loadProjectConfig loads .env and metakit.yaml from the working directory.
func loadProjectConfig(logger metakit.Logger) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	cfg, err := config.Resolve(".", os.Getenv)
	if err != nil {
		return nil, err
	}
	logger.Verbose("Kit pairing: %s, consolidate similar ids: %v", cfg.KitPairing(), cfg.Merge.ConsolidateSimilarIDs)
	return cfg, nil
}

// document is one input file read from disk.
type document struct {
	Path    string
	Content string
}

func readDocuments(paths []string) ([]document, error) {
	docs := make([]document, 0, len(paths))
	for _, p := range paths {
		data, err := fsProvider.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		docs = append(docs, document{Path: p, Content: string(data)})
	}
	return docs, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), content)
		return err
	}
	if err := fsProvider.WriteFile(path, []byte(content+"\n")); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
