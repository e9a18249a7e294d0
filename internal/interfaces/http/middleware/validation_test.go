package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postageForm struct {
	Amount string `json:"amount" validate:"required,numeric"`
	Note   string `json:"note" validate:"omitempty,max=5"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(postageForm{Amount: "", Note: "toolongnote"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-42")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	assert.Equal(t, "req-42", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	assert.Equal(t, "Must be at most 5 characters", resp.Error.Details[1].Message)
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}

func TestGetValidationMessage(t *testing.T) {
	v := validator.New()

	type form struct {
		ID    string `validate:"uuid"`
		State string `validate:"oneof=draft packed"`
	}
	err := v.Struct(form{ID: "nope", State: "teleported"})
	require.Error(t, err)

	errs := err.(validator.ValidationErrors)
	require.Len(t, errs, 2)
	assert.Equal(t, "Invalid UUID format", getValidationMessage(errs[0]))
	assert.Equal(t, "Must be one of: draft packed", getValidationMessage(errs[1]))
}
