package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/metakit/internal/checksum"
	"github.com/vvka-141/metakit/internal/detect"
	"github.com/vvka-141/metakit/internal/files/filesystem"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// FileEntry describes one meta document found in a workspace.
type FileEntry struct {
	Path        string          `json:"path"`
	Name        string          `json:"name"`
	Directory   string          `json:"directory"`
	Depth       int             `json:"depth"`
	Dialect     metakit.Dialect `json:"dialect"`
	SizeBytes   int64           `json:"sizeBytes"`
	Checksum    string          `json:"checksum"`
	ChecksumRaw string          `json:"checksumRaw"`
	ModifiedAt  time.Time       `json:"modifiedAt"`
}

// DuplicateGroup lists files with the same normalized content. Exact is set
// when the files are also byte-for-byte identical.
type DuplicateGroup struct {
	Checksum string   `json:"checksum"`
	Exact    bool     `json:"exact"`
	Paths    []string `json:"paths"`
}

// Result is the outcome of a workspace scan.
type Result struct {
	Root       string           `json:"root"`
	Files      []FileEntry      `json:"files"`
	Duplicates []DuplicateGroup `json:"duplicates"`
}

// ByDialect returns the files of one dialect in scan order.
func (r Result) ByDialect(d metakit.Dialect) []FileEntry {
	var out []FileEntry
	for _, f := range r.Files {
		if f.Dialect == d {
			out = append(out, f)
		}
	}
	return out
}

// Options selects the files a scan considers. Patterns are doublestar globs
// matched against slash-separated paths relative to the scanned root.
type Options struct {
	Include []string
	Exclude []string
}

// DefaultOptions includes every .meta and .xml file.
func DefaultOptions() Options {
	return Options{Include: []string{"**/*" + metakit.MetaFileExtension, "**/*" + metakit.XMLFileExtension}}
}

// Validate reports the first malformed pattern.
func (o Options) Validate() error {
	for _, p := range append(append([]string{}, o.Include...), o.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad glob pattern %q", metakit.ErrInvalidConfig, p)
		}
	}
	return nil
}

// Scanner discovers meta documents in a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.Provider
	opts       Options
}

// NewScanner creates a scanner on the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator, opts Options) *Scanner {
	return NewScannerWithFS(calculator, filesystem.NewOSFileSystem(), opts)
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.Provider, opts Options) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if len(opts.Include) == 0 {
		opts.Include = DefaultOptions().Include
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
		opts:       opts,
	}
}

// ScanDirectory recursively scans sourcePath for meta documents.
func (s *Scanner) ScanDirectory(sourcePath string) (Result, error) {
	if err := s.opts.Validate(); err != nil {
		return Result{}, err
	}

	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open directory: %w", err)
	}

	files := []FileEntry{}
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}
		if file.Info().IsDir() {
			return nil
		}

		relPath := filepath.ToSlash(file.RelativePath())
		if !s.selected(relPath) {
			return nil
		}

		entry, err := s.processFile(file, relPath)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", relPath, err)
		}
		files = append(files, entry)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return Result{
		Root:       dir.Path(),
		Files:      files,
		Duplicates: duplicates(files),
	}, nil
}

func (s *Scanner) selected(relPath string) bool {
	return matchAny(s.opts.Include, relPath) && !matchAny(s.opts.Exclude, relPath)
}

func matchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

func (s *Scanner) processFile(file filesystem.File, relPath string) (FileEntry, error) {
	content, err := file.ReadContent()
	if err != nil {
		return FileEntry{}, fmt.Errorf("failed to read file: %w", err)
	}

	info := file.Info()
	unixPath := "./" + strings.TrimPrefix(relPath, "./")

	directory := "./"
	if lastSlash := strings.LastIndex(unixPath, "/"); lastSlash >= 0 {
		directory = unixPath[:lastSlash+1]
	}
	depth := max(strings.Count(directory, "/")-1, 0)

	return FileEntry{
		Path:        unixPath,
		Name:        info.Name(),
		Directory:   directory,
		Depth:       depth,
		Dialect:     detect.Detect(string(content), info.Name()),
		SizeBytes:   info.Size(),
		Checksum:    s.calculator.CalculateNormalized(content),
		ChecksumRaw: s.calculator.CalculateRaw(content),
		ModifiedAt:  info.ModTime(),
	}, nil
}

// duplicates groups files sharing a normalized checksum, ordered by the
// first path of each group.
func duplicates(files []FileEntry) []DuplicateGroup {
	index := make(map[string]int)
	var groups []DuplicateGroup
	raw := make(map[string]string)
	for _, f := range files {
		i, ok := index[f.Checksum]
		if !ok {
			index[f.Checksum] = len(groups)
			groups = append(groups, DuplicateGroup{Checksum: f.Checksum, Exact: true, Paths: []string{f.Path}})
			raw[f.Checksum] = f.ChecksumRaw
			continue
		}
		groups[i].Paths = append(groups[i].Paths, f.Path)
		if raw[f.Checksum] != f.ChecksumRaw {
			groups[i].Exact = false
		}
	}

	out := []DuplicateGroup{}
	for _, g := range groups {
		if len(g.Paths) > 1 {
			out = append(out, g)
		}
	}
	return out
}
