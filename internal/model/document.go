// Package model defines the Paperless-ngx records a report is built from.
package model

// Unknown is the group key used when a classification value or a
// correspondent cannot be resolved to a display name.
const Unknown = "Unknown"

// Document represents a single archived document as returned by Paperless.
type Document struct {
	Correspondent *int                  `json:"correspondent"`
	Title         string                `json:"title"`
	Created       string                `json:"created"`
	CreatedDate   string                `json:"created_date,omitempty"`
	CustomFields  []CustomFieldInstance `json:"custom_fields"`
	ID            int                   `json:"id"`
	ASN           int                   `json:"archive_serial_number"`
}

// CustomFieldInstance is a value assigned to a document for one custom field.
type CustomFieldInstance struct {
	Value OptionID `json:"value"`
	Field int      `json:"field"`
}

// Date returns the creation date used for sorting and reporting.
// Older servers only send created; newer ones add created_date.
func (d Document) Date() string {
	if d.CreatedDate != "" {
		return d.CreatedDate
	}
	return d.Created
}

// FieldValue returns the value of the first assignment for fieldID.
// Assignment order is whatever the server returned.
func (d Document) FieldValue(fieldID int) (OptionID, bool) {
	for _, cf := range d.CustomFields {
		if cf.Field == fieldID {
			return cf.Value, true
		}
	}
	return "", false
}
