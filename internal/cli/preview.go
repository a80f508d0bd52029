package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Veraticus/asnreport/internal/grouping"
	"github.com/Veraticus/asnreport/internal/model"
	"github.com/Veraticus/asnreport/internal/report"
)

// WritePreview prints groups as a tree: each outer group heading followed
// either by correspondent sub-headings (report.OrderCorrespondent) or by
// an ASN-ordered document list (report.OrderASN). Documents are listed in
// ASN order in both modes. The empty group key,
// used when classification grouping is off, gets no heading.
func WritePreview(w io.Writer, groups grouping.Groups, names map[int]string, order report.Order) error {
	var b strings.Builder

	for _, key := range groups.SortedKeys() {
		docs := groups[key]
		if key != "" {
			b.WriteString("\n" + FormatTitle(key) + "\n")
		}

		switch order {
		case report.OrderASN:
			sorted := slices.Clone(docs)
			slices.SortStableFunc(sorted, func(x, y model.Document) int {
				return cmp.Compare(x.ASN, y.ASN)
			})
			for _, doc := range sorted {
				line := fmt.Sprintf("ASN: %d | Correspondent: %s | Title: %s | Date: %s",
					doc.ASN, model.ResolveCorrespondent(names, doc.Correspondent), doc.Title, doc.Date())
				b.WriteString(ItemStyle.Render(line) + "\n")
			}
		case report.OrderCorrespondent:
			inner := grouping.ByCorrespondent(docs, names)
			for _, name := range inner.SortedKeys() {
				b.WriteString("\n" + SubtitleStyle.Render("Correspondent: "+name) + "\n")

				sorted := slices.Clone(inner[name])
				slices.SortStableFunc(sorted, func(x, y model.Document) int {
					return cmp.Compare(x.ASN, y.ASN)
				})
				for _, doc := range sorted {
					line := fmt.Sprintf("ASN: %d | Title: %s | Date: %s", doc.ASN, doc.Title, doc.Date())
					b.WriteString(ItemStyle.Render(line) + "\n")
				}
			}
		default:
			return fmt.Errorf("unknown preview order: %s", order)
		}
	}

	if groups.Count() == 0 {
		b.WriteString(FormatWarning("No documents in range") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
