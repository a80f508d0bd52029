package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFieldDecode(t *testing.T) {
	tests := []struct {
		want    map[OptionID]string
		name    string
		payload string
	}{
		{
			name: "option objects",
			payload: `{"id": 3, "name": "Lagerort", "data_type": "select",
				"extra_data": {"select_options": [
					{"id": "a1", "label": "Cellar"},
					{"id": "b2", "label": "Attic"}
				]}}`,
			want: map[OptionID]string{"a1": "Cellar", "b2": "Attic"},
		},
		{
			name: "legacy string options",
			payload: `{"id": 3, "name": "Lagerort", "data_type": "select",
				"extra_data": {"select_options": ["Cellar", "Attic"]}}`,
			want: map[OptionID]string{"0": "Cellar", "1": "Attic"},
		},
		{
			name:    "non-select field",
			payload: `{"id": 3, "name": "Amount", "data_type": "monetary", "extra_data": {}}`,
			want:    map[OptionID]string{},
		},
		{
			name:    "missing extra_data",
			payload: `{"id": 3, "name": "Note", "data_type": "string"}`,
			want:    map[OptionID]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var field CustomField
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &field))
			assert.Equal(t, 3, field.ID)
			assert.Equal(t, tt.want, field.LabelMap())
		})
	}
}

func TestCustomFieldDecodeInvalidOption(t *testing.T) {
	var field CustomField
	err := json.Unmarshal([]byte(`{"id": 1, "extra_data": {"select_options": [42]}}`), &field)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid select option 0")
}

func TestLabelMapIsFresh(t *testing.T) {
	field := CustomField{SelectOptions: []SelectOption{{ID: "a", Label: "A"}}}

	first := field.LabelMap()
	first["b"] = "B"

	assert.Len(t, field.LabelMap(), 1)
}

func TestResolveLabel(t *testing.T) {
	labels := map[OptionID]string{"a": "Cellar"}

	assert.Equal(t, "Cellar", ResolveLabel(labels, "a"))
	assert.Equal(t, Unknown, ResolveLabel(labels, "z"))
	assert.Equal(t, Unknown, ResolveLabel(labels, ""))
	assert.Equal(t, Unknown, ResolveLabel(nil, "a"))
}
