package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type updateForm struct {
	Title string `validate:"omitempty,min=3"`
	Link  string `validate:"omitempty,url"`
}

func TestValidate_Passing(t *testing.T) {
	assert.Nil(t, Validate(updateForm{Title: "hello"}))
	assert.Nil(t, Validate(updateForm{}))
}

func TestValidate_ReportsFieldAndTag(t *testing.T) {
	errs := Validate(updateForm{Title: "ab", Link: "not-a-url"})

	assert.Equal(t, "min", errs["Title"])
	assert.Equal(t, "url", errs["Link"])
}
