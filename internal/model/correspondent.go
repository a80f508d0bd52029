package model

// Correspondent is the sender or issuer associated with a document.
type Correspondent struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// CorrespondentNames builds an id -> name lookup.
func CorrespondentNames(correspondents []Correspondent) map[int]string {
	names := make(map[int]string, len(correspondents))
	for _, c := range correspondents {
		names[c.ID] = c.Name
	}
	return names
}

// ResolveCorrespondent returns the display name for id. A nil id or one
// missing from names resolves to Unknown.
func ResolveCorrespondent(names map[int]string, id *int) string {
	if id == nil {
		return Unknown
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return Unknown
}
