package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeValidationError(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name string
		req  DoodleRequest
		want string
	}{
		{
			name: "missing occasion",
			req:  DoodleRequest{},
			want: "Invalid Occasion: required field",
		},
		{
			name: "occasion too short",
			req:  DoodleRequest{Occasion: "ab"},
			want: "Invalid Occasion: too short",
		},
		{
			name: "occasion too long",
			req:  DoodleRequest{Occasion: strings.Repeat("x", 501)},
			want: "Invalid Occasion: too long",
		},
		{
			name: "style hint too long",
			req:  DoodleRequest{Occasion: "Launch Day", StyleHint: strings.Repeat("s", 201)},
			want: "Invalid StyleHint: too long",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(tc.req)
			require.Error(t, err, "test case must fail validation")
			assert.Equal(t, tc.want, SanitizeValidationError(err))
		})
	}
}

func TestSanitizeValidationErrorFallback(t *testing.T) {
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
