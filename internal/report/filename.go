package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat is the YYYYMMDD_HHMMSS prefix shared by every file of a run.
const TimestampFormat = "20060102_150405"

// Order names the row ordering of a report; it appears in the filename.
type Order string

const (
	// OrderCorrespondent sorts rows by correspondent, then date.
	OrderCorrespondent Order = "Correspondent"
	// OrderASN sorts rows by archive serial number.
	OrderASN Order = "ASN"
)

// EmptyGroupName stands in for an empty classification label in file
// names, so a group report never takes the whole-set report's name.
const EmptyGroupName = "(empty)"

var unsafeName = strings.NewReplacer("/", "-", "\\", "-", "\x00", "")

// FileName builds <timestamp>_[<group>_]grouped_by_<order>_ASN_<min>-<max>.csv.
// An empty group omits the group segment; callers naming a group report use
// GroupSegment. Path separators in the group are replaced so the file stays
// in the output directory.
func FileName(ts time.Time, group string, order Order, minASN, maxASN int) string {
	var b strings.Builder
	b.WriteString(ts.Format(TimestampFormat))
	b.WriteByte('_')
	if group != "" {
		b.WriteString(unsafeName.Replace(group))
		b.WriteByte('_')
	}
	fmt.Fprintf(&b, "grouped_by_%s_ASN_%d-%d.csv", order, minASN, maxASN)
	return b.String()
}

// GroupSegment returns the file name segment for a group report's label.
func GroupSegment(group string) string {
	if group == "" {
		return EmptyGroupName
	}
	return group
}

// Dedupe renames tables whose name repeats an earlier table's by adding
// _2, _3, ... before the extension. The first table keeps its name.
func Dedupe(tables []Table) {
	seen := make(map[string]bool, len(tables))
	for i := range tables {
		name := tables[i].Name
		if seen[name] {
			ext := filepath.Ext(name)
			base := strings.TrimSuffix(name, ext)
			for n := 2; seen[name]; n++ {
				name = fmt.Sprintf("%s_%d%s", base, n, ext)
			}
			tables[i].Name = name
		}
		seen[name] = true
	}
}
