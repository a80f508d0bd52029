// Package engine drives a report run: it fetches correspondents, the
// classification field and documents, groups them and writes every report
// variant.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/grouping"
	"github.com/Veraticus/asnreport/internal/model"
	"github.com/Veraticus/asnreport/internal/paperless"
	"github.com/Veraticus/asnreport/internal/report"
)

// Default run parameters.
const (
	DefaultASNFrom = 1
	DefaultASNTo   = 9999
	DefaultFieldID = 3
)

// Options selects what a run fetches and how it groups.
type Options struct {
	ASNFrom    int
	ASNTo      int
	FieldID    int
	NoGrouping bool
}

// DefaultOptions returns the default run options.
func DefaultOptions() Options {
	return Options{
		ASNFrom: DefaultASNFrom,
		ASNTo:   DefaultASNTo,
		FieldID: DefaultFieldID,
	}
}

// Validate checks the ASN range.
func (o Options) Validate() error {
	if o.ASNFrom < 0 {
		return fmt.Errorf("%w: ASN lower bound must not be negative: %d", common.ErrInvalidConfig, o.ASNFrom)
	}
	if o.ASNFrom > o.ASNTo {
		return fmt.Errorf("%w: ASN lower bound %d exceeds upper bound %d", common.ErrInvalidConfig, o.ASNFrom, o.ASNTo)
	}
	return nil
}

// Dataset is everything a run fetched, grouped and ready to render.
type Dataset struct {
	Documents  *paperless.DocumentSet
	Names      map[int]string
	Groups     grouping.Groups
	FieldName  string
	Classified bool
}

// Engine orchestrates fetching, grouping and report writing.
type Engine struct {
	source   paperless.DocumentSource
	writer   TableWriter
	announce Announcer
	now      func() time.Time
}

// New creates a new engine with the given dependencies.
func New(source paperless.DocumentSource, writer TableWriter) *Engine {
	return &Engine{
		source:   source,
		writer:   writer,
		announce: func(string) {},
		now:      time.Now,
	}
}

// WithAnnouncer sets the callback told about each written report.
func (e *Engine) WithAnnouncer(a Announcer) *Engine {
	if a != nil {
		e.announce = a
	}
	return e
}

// WithClock overrides the timestamp source used in report names.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	if now != nil {
		e.now = now
	}
	return e
}

// Load fetches and groups everything a run needs. Correspondents come
// first; the classification field is fetched before documents so a field
// failure stops the run before documents are requested.
func (e *Engine) Load(ctx context.Context, opts Options) (*Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	correspondents, err := e.source.FetchCorrespondents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch correspondents: %w", err)
	}
	names := model.CorrespondentNames(correspondents)
	common.LogDebug("Loaded correspondents", common.Fields{"count": len(names)})

	var field *model.CustomField
	if !opts.NoGrouping {
		field, err = e.source.FetchCustomField(ctx, opts.FieldID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch custom field labels: %w", err)
		}
		common.LogDebug("Loaded classification field", common.Fields{
			"id":      field.ID,
			"name":    field.Name,
			"options": len(field.SelectOptions),
		})
	}

	docs, err := e.source.FetchDocuments(ctx, opts.ASNFrom, opts.ASNTo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}

	ds := &Dataset{
		Documents: docs,
		Names:     names,
	}
	if field != nil {
		ds.Classified = true
		ds.FieldName = field.Name
		ds.Groups = grouping.ByClassification(docs.Documents, opts.FieldID, field.LabelMap())
	} else {
		ds.Groups = grouping.Single("", docs.Documents)
	}

	common.LogInfo("Fetched documents", common.Fields{
		"documents": len(docs.Documents),
		"min_asn":   docs.MinASN,
		"max_asn":   docs.MaxASN,
		"groups":    len(ds.Groups),
	})

	return ds, nil
}

// Render produces every report table for ds: the correspondent-flat
// report, then for classified runs one by-correspondent and one by-ASN
// report per group. Table names are unique within the run.
func (e *Engine) Render(ds *Dataset) []report.Table {
	ts := e.now()

	var r *report.Renderer
	if ds.Classified {
		r = report.NewClassifiedRenderer(ts, ds.Names, ds.FieldName)
	} else {
		r = report.NewRenderer(ts, ds.Names)
	}

	tables := []report.Table{
		r.CorrespondentFlat(ds.Groups.Flatten(), ds.Documents.MinASN, ds.Documents.MaxASN),
	}
	if !ds.Classified {
		return tables
	}

	keys := ds.Groups.SortedKeys()
	for _, key := range keys {
		tables = append(tables, r.GroupByCorrespondent(key, ds.Groups[key]))
	}
	for _, key := range keys {
		tables = append(tables, r.GroupByASN(key, ds.Groups[key]))
	}

	// Labels such as "Shelf/1" and "Shelf-1" map to the same file name.
	report.Dedupe(tables)
	return tables
}

// Run fetches, groups and writes every report, returning the written
// paths in order. Nothing is written unless every fetch succeeded.
func (e *Engine) Run(ctx context.Context, opts Options) ([]string, error) {
	ds, err := e.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	tables := e.Render(ds)
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path, err := e.writer.Write(table)
		if err != nil {
			return paths, fmt.Errorf("failed to export %s: %w", table.Name, err)
		}
		paths = append(paths, path)
		e.announce(path)
	}

	common.LogInfo("Report run complete", common.Fields{"files": len(paths)})
	return paths, nil
}
