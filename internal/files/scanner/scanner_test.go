package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metakit/internal/checksum"
	"github.com/vvka-141/metakit/internal/files/filesystem"
	"github.com/vvka-141/metakit/pkg/metakit"
)

const handlingXML = `<CHandlingDataMgr>
  <HandlingData />
</CHandlingDataMgr>`

func newTestScanner(opts Options) (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/project")
	return NewScannerWithFS(checksum.New(), fs, opts), fs
}

func TestNewScannerWithFS_NilArgs(t *testing.T) {
	calc := checksum.New()
	fs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil calculator", func() { NewScannerWithFS(nil, fs, DefaultOptions()) }},
		{"nil filesystem", func() { NewScannerWithFS(calc, nil, DefaultOptions()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestScanDirectory(t *testing.T) {
	s, fs := newTestScanner(DefaultOptions())
	fs.AddFile("handling.meta", handlingXML)
	fs.AddFile("police/carcols.meta", "<CVehicleModelInfoVarGlobal><Sirens /></CVehicleModelInfoVarGlobal>")
	fs.AddFile("police/vehicles.xml", "<CVehicleModelInfo__InitDataList />")
	fs.AddFile("police/readme.txt", "notes")
	fs.AddFile("misc/unknown.xml", "<root />")

	result, err := s.ScanDirectory("/project")
	require.NoError(t, err)

	assert.Equal(t, "/project", result.Root)
	require.Len(t, result.Files, 4)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
		assert.Len(t, f.Checksum, 64)
		assert.Len(t, f.ChecksumRaw, 64)
	}
	assert.Equal(t, []string{"./handling.meta", "./misc/unknown.xml", "./police/carcols.meta", "./police/vehicles.xml"}, paths)

	byPath := map[string]FileEntry{}
	for _, f := range result.Files {
		byPath[f.Path] = f
	}
	assert.Equal(t, metakit.DialectHandling, byPath["./handling.meta"].Dialect)
	assert.Equal(t, metakit.DialectCarcols, byPath["./police/carcols.meta"].Dialect)
	assert.Equal(t, metakit.DialectVehicles, byPath["./police/vehicles.xml"].Dialect)
	assert.Equal(t, metakit.DialectNone, byPath["./misc/unknown.xml"].Dialect)

	car := byPath["./police/carcols.meta"]
	assert.Equal(t, "./police/", car.Directory)
	assert.Equal(t, 1, car.Depth)
	assert.Equal(t, "carcols.meta", car.Name)
	assert.Equal(t, 0, byPath["./handling.meta"].Depth)

	assert.Len(t, result.ByDialect(metakit.DialectVehicles), 1)
	assert.Empty(t, result.Duplicates)
}

func TestScanDirectory_IncludeExclude(t *testing.T) {
	s, fs := newTestScanner(Options{
		Include: []string{"**/*.meta"},
		Exclude: []string{"backup/**"},
	})
	fs.AddFile("handling.meta", handlingXML)
	fs.AddFile("backup/handling.meta", handlingXML)
	fs.AddFile("vehicles.xml", "<CVehicleModelInfo__InitDataList />")

	result, err := s.ScanDirectory("/project")
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "./handling.meta", result.Files[0].Path)
}

func TestScanDirectory_BadPattern(t *testing.T) {
	s, _ := newTestScanner(Options{Include: []string{"[unclosed"}})
	_, err := s.ScanDirectory("/project")
	assert.ErrorIs(t, err, metakit.ErrInvalidConfig)
}

func TestScanDirectory_MissingDirectory(t *testing.T) {
	s, _ := newTestScanner(DefaultOptions())
	_, err := s.ScanDirectory("/elsewhere")
	assert.Error(t, err)
}

func TestScanDirectory_Duplicates(t *testing.T) {
	s, fs := newTestScanner(DefaultOptions())
	fs.AddFile("a/handling.meta", handlingXML)
	fs.AddFile("b/handling.meta", handlingXML)
	fs.AddFile("c/handling.meta", "<!-- copy -->\n<CHandlingDataMgr><HandlingData /></CHandlingDataMgr>")
	fs.AddFile("d/vehicles.meta", "<CVehicleModelInfo__InitDataList />")
	fs.AddFile("e/vehicles.meta", "<CVehicleModelInfo__InitDataList />")

	result, err := s.ScanDirectory("/project")
	require.NoError(t, err)
	require.Len(t, result.Duplicates, 2)

	assert.Equal(t, []string{"./a/handling.meta", "./b/handling.meta", "./c/handling.meta"}, result.Duplicates[0].Paths)
	assert.False(t, result.Duplicates[0].Exact)
	assert.Equal(t, []string{"./d/vehicles.meta", "./e/vehicles.meta"}, result.Duplicates[1].Paths)
	assert.True(t, result.Duplicates[1].Exact)
}
