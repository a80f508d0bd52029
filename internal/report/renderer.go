// Package report renders grouped documents into tab-separated report tables.
package report

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/asnreport/internal/grouping"
	"github.com/Veraticus/asnreport/internal/model"
)

// Column headers shared by the report shapes.
const (
	ColumnCorrespondent = "Correspondent"
	ColumnDate          = "Date"
	ColumnTitle         = "Title"
	ColumnASN           = "ASN"
)

// Table is a rendered report ready to be written.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Renderer turns grouped documents into report tables.
type Renderer struct {
	timestamp  time.Time
	names      map[int]string
	fieldName  string
	classified bool
}

// NewRenderer creates a renderer for runs without classification grouping.
func NewRenderer(timestamp time.Time, names map[int]string) *Renderer {
	return &Renderer{timestamp: timestamp, names: names}
}

// NewClassifiedRenderer creates a renderer whose reports carry a
// classification column headed fieldName.
func NewClassifiedRenderer(timestamp time.Time, names map[int]string, fieldName string) *Renderer {
	return &Renderer{timestamp: timestamp, names: names, fieldName: fieldName, classified: true}
}

// row is a document with its resolved correspondent and outer group.
type row struct {
	group         string
	correspondent string
	doc           model.Document
}

// byCorrespondentDate orders rows by lowercased correspondent, then date,
// then ASN.
func byCorrespondentDate(a, b row) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a.correspondent), strings.ToLower(b.correspondent)),
		strings.Compare(a.doc.Date(), b.doc.Date()),
		cmp.Compare(a.doc.ASN, b.doc.ASN),
	)
}

func byASN(a, b row) int {
	return cmp.Compare(a.doc.ASN, b.doc.ASN)
}

// CorrespondentFlat renders the whole document set ordered by
// correspondent and date. minASN and maxASN name the file. The
// classification column is included only for classified renderers and
// carries each entry's group.
func (r *Renderer) CorrespondentFlat(entries []grouping.Entry, minASN, maxASN int) Table {
	header := []string{ColumnCorrespondent, ColumnDate, ColumnTitle}
	if r.classified {
		header = append(header, r.fieldName)
	}
	header = append(header, ColumnASN)

	rows := make([]row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, row{
			group:         e.Group,
			correspondent: model.ResolveCorrespondent(r.names, e.Document.Correspondent),
			doc:           e.Document,
		})
	}
	slices.SortStableFunc(rows, byCorrespondentDate)

	records := make([][]string, 0, len(rows))
	for _, rw := range rows {
		record := []string{rw.correspondent, rw.doc.Date(), rw.doc.Title}
		if r.classified {
			record = append(record, rw.group)
		}
		record = append(record, strconv.Itoa(rw.doc.ASN))
		records = append(records, record)
	}

	return Table{
		Name:   FileName(r.timestamp, "", OrderCorrespondent, minASN, maxASN),
		Header: header,
		Rows:   records,
	}
}

// GroupByCorrespondent renders one outer group, sub-grouped by
// correspondent and ordered by correspondent then date.
func (r *Renderer) GroupByCorrespondent(group string, docs []model.Document) Table {
	inner := grouping.ByCorrespondent(docs, r.names)

	rows := make([]row, 0, len(docs))
	for _, name := range inner.SortedKeys() {
		for _, doc := range inner[name] {
			rows = append(rows, row{group: group, correspondent: name, doc: doc})
		}
	}
	slices.SortStableFunc(rows, byCorrespondentDate)

	records := make([][]string, 0, len(rows))
	for _, rw := range rows {
		records = append(records, []string{
			group,
			rw.correspondent,
			rw.doc.Date(),
			rw.doc.Title,
			strconv.Itoa(rw.doc.ASN),
		})
	}

	minASN, maxASN := grouping.Bounds(docs, 0, 0)
	return Table{
		Name:   FileName(r.timestamp, GroupSegment(group), OrderCorrespondent, minASN, maxASN),
		Header: []string{r.fieldName, ColumnCorrespondent, ColumnDate, ColumnTitle, ColumnASN},
		Rows:   records,
	}
}

// GroupByASN renders one outer group ordered by ASN.
func (r *Renderer) GroupByASN(group string, docs []model.Document) Table {
	rows := make([]row, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, row{
			group:         group,
			correspondent: model.ResolveCorrespondent(r.names, doc.Correspondent),
			doc:           doc,
		})
	}
	slices.SortStableFunc(rows, byASN)

	records := make([][]string, 0, len(rows))
	for _, rw := range rows {
		records = append(records, []string{
			group,
			strconv.Itoa(rw.doc.ASN),
			rw.correspondent,
			rw.doc.Title,
			rw.doc.Date(),
		})
	}

	minASN, maxASN := grouping.Bounds(docs, 0, 0)
	return Table{
		Name:   FileName(r.timestamp, GroupSegment(group), OrderASN, minASN, maxASN),
		Header: []string{r.fieldName, ColumnASN, ColumnCorrespondent, ColumnTitle, ColumnDate},
		Rows:   records,
	}
}
