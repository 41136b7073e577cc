package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metakit/internal/files/filesystem"
	"github.com/vvka-141/metakit/internal/files/scanner"
	"github.com/vvka-141/metakit/internal/merge"
	"github.com/vvka-141/metakit/internal/tui"
	"github.com/vvka-141/metakit/pkg/metakit"
)

func handlingDoc(name, mass string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<CHandlingDataMgr>
  <HandlingData>
    <Item type="CHandlingData">
      <handlingName>` + name + `</handlingName>
      <fMass value="` + mass + `" />
    </Item>
  </HandlingData>
</CHandlingDataMgr>`
}

func vehiclesDoc(model, handlingID string) string {
	return `<CVehicleModelInfo__InitDataList>
  <InitDatas>
    <Item>
      <modelName>` + model + `</modelName>
      <handlingId>` + handlingID + `</handlingId>
    </Item>
  </InitDatas>
</CVehicleModelInfo__InitDataList>`
}

const kitDoc = `<CVehicleModelInfoVarGlobal>
  <Kits>
    <Item><kitName>5_adder_modkit</kitName><id value="5" /></Item>
  </Kits>
</CVehicleModelInfoVarGlobal>`

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes args against an in-memory filesystem rooted at /work from
// an empty working directory, and returns stdout and stderr.
func runCLI(t *testing.T, mfs *filesystem.MemoryFileSystem, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(tui.EnvNonInteractive, "1")
	t.Setenv("METAKIT_KIT_PAIRING", "")
	t.Setenv("METAKIT_CONSOLIDATE", "")

	orig := fsProvider
	fsProvider = mfs
	t.Cleanup(func() { fsProvider = orig })

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newWorkspace(t *testing.T) *filesystem.MemoryFileSystem {
	t.Helper()
	t.Chdir(t.TempDir())
	return filesystem.NewMemoryFileSystem("/work")
}

func readFile(t *testing.T, mfs *filesystem.MemoryFileSystem, path string) string {
	t.Helper()
	data, err := mfs.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCommands_ArgsValidation(t *testing.T) {
	tests := []struct {
		name string
		cmd  *cobra.Command
		args []string
	}{
		{"detect without files", detectCmd, nil},
		{"validate without files", validateCmd, nil},
		{"inspect without files", inspectCmd, nil},
		{"format without files", formatCmd, nil},
		{"merge without files", mergeCmd, nil},
		{"scan with two directories", scanCmd, []string{"a", "b"}},
		{"new without name", newCmd, nil},
		{"new with two names", newCmd, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Args(tt.cmd, tt.args)
			require.Error(t, err)
			assert.Equal(t, metakit.ExitUsageError, metakit.ExitCodeForError(err), err.Error())
		})
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := runCLI(t, newWorkspace(t), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "metakit "+version), stdout)
}

func TestDetectCmd(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1500"))
	mfs.AddFile("kits.xml", kitDoc)
	mfs.AddFile("notes.txt", "hello")

	stdout, _, err := runCLI(t, mfs, "detect", "handling.meta", "kits.xml", "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "handling.meta\thandling\nkits.xml\tmodkits\nnotes.txt\tnone\n", stdout)
}

func TestDetectCmd_JSON(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("vehicles.meta", vehiclesDoc("adder", "ADDER"))

	stdout, _, err := runCLI(t, mfs, "detect", "--json", "vehicles.meta")
	require.NoError(t, err)

	var got []detection
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []detection{{Path: "vehicles.meta", Dialect: metakit.DialectVehicles}}, got)
}

func TestDetectCmd_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, newWorkspace(t), "detect", "missing.meta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read missing.meta")
}

func TestValidateCmd(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("good.meta", handlingDoc("ADDER", "1500"))
	mfs.AddFile("bad.meta", "<a><b></a>")

	_, stderr, err := runCLI(t, mfs, "validate", "good.meta")
	require.NoError(t, err)
	assert.Contains(t, stderr, "good.meta: no issues")

	_, stderr, err = runCLI(t, mfs, "validate", "good.meta", "bad.meta")
	require.ErrorIs(t, err, metakit.ErrValidationFailed)
	assert.Equal(t, metakit.ExitValidationFailed, metakit.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "1 of 2 file(s)")
	assert.Contains(t, stderr, "bad.meta:1:7: error Mismatched closing tag")
}

func TestValidateCmd_JSON(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("amp.meta", "<n>Fast & Furious</n>")

	stdout, _, err := runCLI(t, mfs, "validate", "--json", "amp.meta")
	require.NoError(t, err)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Valid)
	require.Len(t, reports[0].Issues, 1)
	assert.Equal(t, "warning", string(reports[0].Issues[0].Severity))
}

func TestValidateCmd_FixWrite(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("amp.meta", "<n>Fast & Furious</n>")

	_, _, err := runCLI(t, mfs, "validate", "--write", "amp.meta")
	require.Error(t, err)
	assert.Equal(t, metakit.ExitUsageError, metakit.ExitCodeForError(err))

	_, stderr, err := runCLI(t, mfs, "validate", "--fix", "--write", "amp.meta")
	require.NoError(t, err)
	assert.Equal(t, "<n>Fast &amp; Furious</n>\n", readFile(t, mfs, "amp.meta"))
	assert.Contains(t, stderr, "1 fix edit(s) applied, 0 skipped, 0 issue(s) remain")
}

func TestValidateCmd_FixPrintsRepairedDocument(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("open.meta", "<a>\n  <b>")

	stdout, _, err := runCLI(t, mfs, "validate", "--fix", "open.meta")
	require.NoError(t, err, "fixed document validates")
	assert.Equal(t, "<a>\n  <b>\n</b>\n</a>\n", stdout)
	assert.Equal(t, "<a>\n  <b>", readFile(t, mfs, "open.meta"))
}

func TestValidateCmd_FailOnWarnings(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("amp.meta", "<n>Fast & Furious</n>")
	require.NoError(t, os.WriteFile("metakit.yaml", []byte("validate:\n  fail_on_warnings: true\n"), 0o644))

	_, _, err := runCLI(t, mfs, "validate", "amp.meta")
	assert.ErrorIs(t, err, metakit.ErrValidationFailed)
}

func TestInspectCmd_JSON(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1500"))
	mfs.AddFile("vehicles.meta", vehiclesDoc("adder", "ADDER"))

	stdout, _, err := runCLI(t, mfs, "inspect", "--json", "handling.meta", "vehicles.meta")
	require.NoError(t, err)

	var got struct {
		Files []struct {
			Path   string `json:"path"`
			Report struct {
				Dialect metakit.Dialect `json:"dialect"`
				Items   int             `json:"items"`
			} `json:"report"`
		} `json:"files"`
		Records []json.RawMessage `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got.Files, 2)
	assert.Equal(t, metakit.DialectHandling, got.Files[0].Report.Dialect)
	assert.Equal(t, metakit.DialectVehicles, got.Files[1].Report.Dialect)
	assert.Equal(t, 1, got.Files[1].Report.Items)
	assert.Len(t, got.Records, 1, "vehicles entry attaches to the handling record")
}

func TestInspectCmd_Table(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1500"))

	stdout, _, err := runCLI(t, mfs, "inspect", "handling.meta")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 record(s)")
	assert.Contains(t, stdout, "ADDER")
	assert.Contains(t, stdout, "1500.0")
}

func TestFormatCmd(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1500"))

	stdout, _, err := runCLI(t, mfs, "format", "handling.meta")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, metakit.XMLProlog), stdout)
	assert.Contains(t, stdout, "<handlingName>ADDER</handlingName>")
	assert.Contains(t, stdout, `<fMass value="1500.000000" />`)

	_, stderr, err := runCLI(t, mfs, "format", "-o", "out/handling.meta", "handling.meta")
	require.NoError(t, err)
	assert.Equal(t, stdout, readFile(t, mfs, "out/handling.meta"))
	assert.Contains(t, stderr, "Wrote out/handling.meta (handling)")
}

func TestFormatCmd_Errors(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1500"))
	mfs.AddFile("notes.txt", "hello")

	_, _, err := runCLI(t, mfs, "format", "notes.txt")
	assert.ErrorIs(t, err, metakit.ErrNoDialect)

	_, _, err = runCLI(t, mfs, "format", "--dialect", "bogus", "handling.meta")
	assert.ErrorIs(t, err, metakit.ErrUnknownDialect)
	assert.Equal(t, metakit.ExitUnsupportedInput, metakit.ExitCodeForError(err))
}

func TestMergeCmd(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("a/handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("b/handling.meta", handlingDoc("adder", "2000"))

	stdout, stderr, err := runCLI(t, mfs, "merge", "a/handling.meta", "b/handling.meta")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<fMass value="1000.000000" />`)
	assert.NotContains(t, stdout, "2000")
	assert.Contains(t, stderr, "Merged 2 handling file(s)")
	assert.Contains(t, stderr, "Duplicates removed: 1")
}

func TestMergeCmd_JSONWithOutput(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("a/handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("b/handling.meta", handlingDoc("T20", "1200"))

	stdout, _, err := runCLI(t, mfs, "merge", "--json", "-o", "merged.meta", "a/handling.meta", "b/handling.meta")
	require.NoError(t, err)

	var got struct {
		Summary merge.Summary `json:"summary"`
		Output  string        `json:"output"`
		Content string        `json:"content"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, 2, got.Summary.UniqueEntries)
	assert.Equal(t, "merged.meta", got.Output)
	assert.Empty(t, got.Content)
	assert.Contains(t, readFile(t, mfs, "merged.meta"), "<handlingName>T20</handlingName>")
}

func TestMergeCmd_Consolidation(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("a/vehicles.meta", vehiclesDoc("durangoss", "DURANGOSS"))
	mfs.AddFile("b/vehicles.meta", vehiclesDoc("durango", "DURANGO"))
	args := []string{"a/vehicles.meta", "b/vehicles.meta"}

	stdout, _, err := runCLI(t, mfs, append([]string{"merge", "--preview"}, args...)...)
	require.NoError(t, err)
	assert.Equal(t, "DURANGOSS -> DURANGO\n", stdout)

	stdout, _, err = runCLI(t, mfs, append([]string{"merge"}, args...)...)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "<handlingId>DURANGOSS</handlingId>")

	stdout, _, err = runCLI(t, mfs, append([]string{"merge", "--consolidate=false"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "<handlingId>DURANGOSS</handlingId>")
}

func TestMergeCmd_Refused(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("vehicles.meta", vehiclesDoc("adder", "ADDER"))
	mfs.AddFile("notes.txt", "hello")

	_, _, err := runCLI(t, mfs, "merge", "handling.meta", "vehicles.meta")
	assert.ErrorIs(t, err, metakit.ErrMixedDialects)
	assert.Equal(t, metakit.ExitMergeRefused, metakit.ExitCodeForError(err))

	_, _, err = runCLI(t, mfs, "merge", "handling.meta", "notes.txt")
	assert.ErrorIs(t, err, metakit.ErrNoDialect)
}

func TestScanCmd_JSON(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("/work/a/handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("/work/b/handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("/work/b/kits.xml", kitDoc)
	mfs.AddFile("/work/readme.txt", "not scanned")

	stdout, _, err := runCLI(t, mfs, "scan", "--json")
	require.NoError(t, err)

	var res scanner.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	require.Len(t, res.Files, 3)
	assert.Equal(t, "./a/handling.meta", res.Files[0].Path)
	assert.Equal(t, metakit.DialectHandling, res.Files[0].Dialect)
	require.Len(t, res.Duplicates, 1)
	assert.True(t, res.Duplicates[0].Exact)
	assert.Equal(t, []string{"./a/handling.meta", "./b/handling.meta"}, res.Duplicates[0].Paths)
}

func TestScanCmd_Table(t *testing.T) {
	mfs := newWorkspace(t)
	mfs.AddFile("/work/a/handling.meta", handlingDoc("ADDER", "1000"))
	mfs.AddFile("/work/b/handling.meta", handlingDoc("ADDER", "1000"))

	stdout, _, err := runCLI(t, mfs, "scan", ".")
	require.NoError(t, err)
	assert.Contains(t, stdout, "./a/handling.meta")
	assert.Contains(t, stdout, "Duplicates (identical")

	stdout, _, err = runCLI(t, filesystem.NewMemoryFileSystem("/empty"), "scan")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No meta files found")
}

func TestNewCmd(t *testing.T) {
	mfs := newWorkspace(t)

	_, stderr, err := runCLI(t, mfs, "new", "unit01", "--preset", "police", "-o", "unit01")
	require.NoError(t, err)
	for _, name := range []string{"handling.meta", "vehicles.meta", "carcols.meta", "carvariations.meta"} {
		assert.Contains(t, stderr, "Wrote unit01/"+name)
	}
	assert.Contains(t, readFile(t, mfs, "unit01/handling.meta"), "<handlingName>UNIT01</handlingName>")
	assert.Contains(t, readFile(t, mfs, "unit01/vehicles.meta"), "<modelName>unit01</modelName>")

	_, _, err = runCLI(t, mfs, "new", "unit01", "--preset", "police", "-o", "unit01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, mfs, "new", "unit01", "--preset", "sports", "-o", "unit01", "--force")
	require.NoError(t, err)
}

func TestNewCmd_UnknownPreset(t *testing.T) {
	_, _, err := runCLI(t, newWorkspace(t), "new", "car", "--preset", "tank")
	require.Error(t, err)
	assert.Equal(t, metakit.ExitConfigError, metakit.ExitCodeForError(err))
	assert.Contains(t, err.Error(), "unknown preset")
}
