// Package merge combines several documents of one dialect into a single
// deduplicated document.
//
// Every input is parsed into its own collection, the records are unioned
// by identity, duplicates are removed by content fingerprint and, for
// vehicles documents, handling ids that only differ by a suffix can be
// consolidated onto their shortest form. Comments found in any input are
// carried over to the output.
package merge

import (
	"errors"
	"fmt"

	"github.com/vvka-141/metakit/internal/checksum"
	"github.com/vvka-141/metakit/internal/detect"
	"github.com/vvka-141/metakit/internal/logging"
	"github.com/vvka-141/metakit/internal/parser"
	"github.com/vvka-141/metakit/internal/serializer"
	"github.com/vvka-141/metakit/pkg/metakit"
)

// Input is one document taking part in a merge.
type Input struct {
	Path    string
	Content string
}

// Options configures a merge.
type Options struct {
	// ConsolidateSimilarIDs rewrites vehicles handling ids onto a shorter id
	// they start with.
	ConsolidateSimilarIDs bool
	KitPairing            parser.KitPairing
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		ConsolidateSimilarIDs: true,
		KitPairing:            parser.KitPairingIndex,
	}
}

// Summary describes what a merge did.
type Summary struct {
	InputFiles        int             `json:"inputFiles"`
	ParsedEntries     int             `json:"parsedEntries"`
	UniqueEntries     int             `json:"uniqueEntries"`
	DuplicatesRemoved int             `json:"duplicatesRemoved"`
	Dialect           metakit.Dialect `json:"type"`
	PreservedComments int             `json:"preservedComments"`
	Consolidations    int             `json:"handlingIdConsolidations"`
}

// Result is the merged document with its summary.
type Result struct {
	Content string                   `json:"-"`
	Summary Summary                  `json:"summary"`
	Records []*metakit.VehicleRecord `json:"-"`
	Notes   []parser.Note            `json:"notes,omitempty"`
}

// Engine merges documents. It holds no state between calls.
type Engine struct {
	opts     Options
	parser   *parser.Parser
	checksum checksum.SHA256
	logger   metakit.Logger
}

// New creates an engine. A nil logger discards output.
func New(opts Options, logger metakit.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Engine{
		opts:     opts,
		parser:   parser.New(parser.Options{KitPairing: opts.KitPairing}, logger),
		checksum: checksum.New(),
		logger:   logger,
	}
}

// Merge merges inputs with a silent engine.
func Merge(inputs []Input, opts Options) (*Result, error) {
	return New(opts, nil).Merge(inputs)
}

// PreviewConsolidation lists the consolidations a merge of inputs would make.
func PreviewConsolidation(inputs []Input) ([]string, error) {
	return New(DefaultOptions(), nil).PreviewConsolidation(inputs)
}

// union is the state shared by Merge and PreviewConsolidation.
type union struct {
	dialect metakit.Dialect
	parsed  int
	records []*metakit.VehicleRecord
	notes   []parser.Note
}

// Merge combines inputs into one document. It fails without output when
// there are no inputs, when any input has no detectable dialect, or when
// the inputs do not all share one dialect.
func (e *Engine) Merge(inputs []Input) (*Result, error) {
	u, err := e.collect(inputs)
	if err != nil {
		return nil, err
	}

	unique := e.dedupe(u.dialect, u.records)
	consolidations := 0
	if u.dialect == metakit.DialectVehicles && e.opts.ConsolidateSimilarIDs {
		consolidations = Consolidate(unique)
	}

	content, err := serializer.Serialize(u.dialect, unique)
	if err != nil {
		return nil, err
	}
	comments := collectComments(inputs)
	content = attachComments(content, comments)

	summary := Summary{
		InputFiles:        len(inputs),
		ParsedEntries:     u.parsed,
		UniqueEntries:     len(unique),
		DuplicatesRemoved: max(0, u.parsed-len(unique)),
		Dialect:           u.dialect,
		PreservedComments: len(comments),
		Consolidations:    consolidations,
	}
	e.logger.Verbose("Merged %d %s file(s): %d parsed, %d unique, %d duplicate(s) removed",
		summary.InputFiles, summary.Dialect, summary.ParsedEntries, summary.UniqueEntries, summary.DuplicatesRemoved)
	if consolidations > 0 {
		e.logger.Verbose("Consolidated %d handling id(s)", consolidations)
	}

	return &Result{Content: content, Summary: summary, Records: unique, Notes: u.notes}, nil
}

// PreviewConsolidation returns the "id -> canonical" pairs Merge would apply
// to a vehicles merge of inputs. Other dialects have nothing to consolidate.
func (e *Engine) PreviewConsolidation(inputs []Input) ([]string, error) {
	u, err := e.collect(inputs)
	if err != nil {
		return nil, err
	}
	if u.dialect != metakit.DialectVehicles {
		return []string{}, nil
	}
	return previewPairs(e.dedupe(u.dialect, u.records)), nil
}

// ResolveDialect returns the single dialect shared by all inputs.
func ResolveDialect(inputs []Input) (metakit.Dialect, error) {
	if len(inputs) == 0 {
		return metakit.DialectNone, metakit.ErrNoInputs
	}

	dialect := metakit.DialectNone
	contents := make([]string, 0, len(inputs))
	for _, in := range inputs {
		d := detect.Detect(in.Content, in.Path)
		if d == metakit.DialectNone {
			return metakit.DialectNone, fmt.Errorf("%w: %s", metakit.ErrNoDialect, in.Path)
		}
		if dialect == metakit.DialectNone {
			dialect = d
		} else if d != dialect {
			return metakit.DialectNone, fmt.Errorf("%w: %s is %s, expected %s", metakit.ErrMixedDialects, in.Path, d, dialect)
		}
		contents = append(contents, in.Content)
	}

	if dialect == metakit.DialectCarcols {
		dialect = detect.RefineContainer(contents...)
	}
	return dialect, nil
}

func (e *Engine) collect(inputs []Input) (*union, error) {
	d, err := ResolveDialect(inputs)
	if err != nil {
		return nil, err
	}

	u := &union{dialect: d}
	seen := make(map[string]*metakit.VehicleRecord)
	for _, in := range inputs {
		coll := metakit.NewCollection()
		rep, err := e.parser.Parse(d, in.Content, coll)
		if err != nil {
			var docErr *metakit.DocumentError
			if errors.As(err, &docErr) && docErr.Path == "" {
				docErr.Path = in.Path
			}
			return nil, err
		}
		u.notes = append(u.notes, rep.Notes...)

		for _, r := range coll.Records() {
			if !r.Loaded.Has(d) {
				continue
			}
			u.parsed++
			e.fold(u, seen, r)
		}
	}
	return u, nil
}

// fold adds r to the union according to the dialect's identity rules.
func (e *Engine) fold(u *union, seen map[string]*metakit.VehicleRecord, r *metakit.VehicleRecord) {
	var key string
	switch u.dialect {
	case metakit.DialectVehicles:
		key = metakit.FoldName(r.Identity.ModelName)
	case metakit.DialectCarvariations:
		key = metakit.FoldName(r.Variation.ModelName)
	case metakit.DialectHandling:
		key = metakit.FoldName(r.Handling.HandlingName)
	default:
		u.records = append(u.records, r)
		return
	}

	existing, ok := seen[key]
	if !ok {
		seen[key] = r
		u.records = append(u.records, r)
		return
	}
	if u.dialect == metakit.DialectVehicles {
		existing.Identity.Flags = existing.Identity.Flags.Union(r.Identity.Flags)
		existing.Identity.HandlingID = PickCanonicalID(existing.Identity.HandlingID, r.Identity.HandlingID)
	}
	e.logger.Verbose("Duplicate %s entry %q, keeping first", u.dialect, key)
}
