// Package grouping partitions documents by classification label and by
// correspondent, and computes the ASN bounds of a document set.
package grouping

import (
	"slices"
	"strings"

	"github.com/Veraticus/asnreport/internal/model"
)

// Groups maps a group key to the documents in that group.
type Groups map[string][]model.Document

// Entry pairs a document with the outer group it was placed in.
type Entry struct {
	Group    string
	Document model.Document
}

// ByClassification groups documents by the label of their fieldID
// assignment. The first assignment for fieldID wins. Documents without an
// assignment, or whose value has no label, land in model.Unknown.
func ByClassification(docs []model.Document, fieldID int, labels map[model.OptionID]string) Groups {
	groups := make(Groups)
	for _, doc := range docs {
		key := model.Unknown
		if value, ok := doc.FieldValue(fieldID); ok {
			key = model.ResolveLabel(labels, value)
		}
		groups[key] = append(groups[key], doc)
	}
	return groups
}

// ByCorrespondent groups documents by correspondent display name, with
// unresolvable correspondents under model.Unknown.
func ByCorrespondent(docs []model.Document, names map[int]string) Groups {
	groups := make(Groups)
	for _, doc := range docs {
		key := model.ResolveCorrespondent(names, doc.Correspondent)
		groups[key] = append(groups[key], doc)
	}
	return groups
}

// Single wraps docs as one group under key, for runs without
// classification grouping.
func Single(key string, docs []model.Document) Groups {
	return Groups{key: slices.Clone(docs)}
}

// SortedKeys returns the group keys in case-insensitive ascending order.
// Keys that differ only in case are ordered by their raw value.
func (g Groups) SortedKeys() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareFold)
	return keys
}

// Count returns the total number of documents across all groups.
func (g Groups) Count() int {
	n := 0
	for _, docs := range g {
		n += len(docs)
	}
	return n
}

// Flatten returns every document paired with its group key, groups in
// SortedKeys order.
func (g Groups) Flatten() []Entry {
	entries := make([]Entry, 0, g.Count())
	for _, key := range g.SortedKeys() {
		for _, doc := range g[key] {
			entries = append(entries, Entry{Group: key, Document: doc})
		}
	}
	return entries
}

// Bounds returns the smallest and largest ASN in docs. An empty set
// reports the fallback bounds.
func Bounds(docs []model.Document, fallbackMin, fallbackMax int) (int, int) {
	if len(docs) == 0 {
		return fallbackMin, fallbackMax
	}

	minASN, maxASN := docs[0].ASN, docs[0].ASN
	for _, doc := range docs[1:] {
		minASN = min(minASN, doc.ASN)
		maxASN = max(maxASN, doc.ASN)
	}
	return minASN, maxASN
}

// CompareFold orders strings case-insensitively, falling back to a
// byte-wise comparison so the order is total.
func CompareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
