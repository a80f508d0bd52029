package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// OptionID identifies a select option. Paperless has sent option ids as
// strings, and select values as integer indexes, depending on version;
// both normalize to the same string form.
type OptionID string

// UnmarshalJSON accepts a JSON string, number, or null. Values of other
// custom field types (booleans, document link lists) keep their raw JSON
// text so they never match a select option.
func (o *OptionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*o = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OptionID(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid numeric option id: %w", err)
		}
		*o = OptionID(n.String())
	default:
		*o = OptionID(data)
	}
	return nil
}

// SelectOption is one selectable value of a select custom field.
type SelectOption struct {
	ID    OptionID `json:"id"`
	Label string   `json:"label"`
}

// CustomField describes a Paperless custom field definition.
type CustomField struct {
	Name          string
	DataType      string
	SelectOptions []SelectOption
	ID            int
}

type customFieldJSON struct {
	ExtraData struct {
		SelectOptions []json.RawMessage `json:"select_options"`
	} `json:"extra_data"`
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	ID       int    `json:"id"`
}

// UnmarshalJSON decodes a custom field, accepting both the current
// {id, label} option objects and the legacy bare-string options whose id
// is their position in the list.
func (f *CustomField) UnmarshalJSON(data []byte) error {
	var raw customFieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	options := make([]SelectOption, 0, len(raw.ExtraData.SelectOptions))
	for i, msg := range raw.ExtraData.SelectOptions {
		var label string
		if err := json.Unmarshal(msg, &label); err == nil {
			options = append(options, SelectOption{ID: OptionID(strconv.Itoa(i)), Label: label})
			continue
		}

		var opt SelectOption
		if err := json.Unmarshal(msg, &opt); err != nil {
			return fmt.Errorf("invalid select option %d: %w", i, err)
		}
		options = append(options, opt)
	}

	*f = CustomField{
		ID:            raw.ID,
		Name:          raw.Name,
		DataType:      raw.DataType,
		SelectOptions: options,
	}
	return nil
}

// LabelMap returns a new option id -> label map. Fields without select
// options yield an empty map.
func (f CustomField) LabelMap() map[OptionID]string {
	labels := make(map[OptionID]string, len(f.SelectOptions))
	for _, opt := range f.SelectOptions {
		labels[opt.ID] = opt.Label
	}
	return labels
}

// ResolveLabel maps an option id to its label, or Unknown.
func ResolveLabel(labels map[OptionID]string, id OptionID) string {
	if label, ok := labels[id]; ok {
		return label
	}
	return Unknown
}
