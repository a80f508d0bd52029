package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIError(t *testing.T) {
	err := &APIError{Resource: "documents", StatusCode: 404, Body: "Not found."}

	assert.Equal(t, "failed to fetch documents: status 404: Not found.", err.Error())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	wrapped := fmt.Errorf("failed to fetch documents: %w", err)
	var apiErr *APIError
	assert.ErrorAs(t, wrapped, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestUserError(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "with cause",
			err:  NewUserError("failed to load Paperless config", ErrMissingConfig),
			want: "failed to load Paperless config: missing configuration",
		},
		{
			name: "message only",
			err:  NewUserError("nothing to do", nil),
			want: "nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	assert.True(t, errors.Is(tests[0].err, ErrMissingConfig))
}
