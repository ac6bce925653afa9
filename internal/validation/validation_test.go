package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string   `json:"name" validate:"required,min=2"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required,sgphone"`
	Level    string   `json:"level" validate:"omitempty,level"`
	Contact  string   `json:"contact" validate:"omitempty,oneof=whatsapp phone email"`
	Subjects []string `json:"subjects" validate:"required,min=1,dive,required"`
}

func TestNormalizePhone(t *testing.T) {
	for in, want := range map[string]string{
		"91234567":        "+6591234567",
		"+65 9123 4567":   "+6591234567",
		"65-6123-4567":    "+6561234567",
		"(+65) 8123 4567": "+6581234567",
	} {
		got, ok := NormalizePhone(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "1234567", "51234567", "+6691234567", "912345678"} {
		_, ok := NormalizePhone(bad)
		assert.False(t, ok, bad)
	}
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	err := v.Struct(sample{
		Name: "Mrs Tan", Email: "tan@example.sg", Phone: "9123 4567",
		Level: "p5", Contact: "whatsapp", Subjects: []string{"Math"},
	})
	assert.NoError(t, err)
}

func TestStruct_FieldMessages(t *testing.T) {
	v := New()
	err := v.Struct(sample{Name: "A", Email: "nope", Phone: "123", Level: "p9", Contact: "fax", Subjects: []string{""}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 2 characters", verr.Fields["name"])
	assert.Equal(t, "must be a valid email address", verr.Fields["email"])
	assert.Equal(t, "must be a Singapore phone number", verr.Fields["phone"])
	assert.Contains(t, verr.Fields["level"], "school level")
	assert.Equal(t, "must be one of: whatsapp, phone, email", verr.Fields["contact"])
	assert.Equal(t, "is required", verr.Fields["subjects[0]"])
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("email", "a@b.sg", "required,email"))

	err := v.Var("email", "", "required,email")
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"email": "is required"}, verr.Fields)
}

func TestErrorString(t *testing.T) {
	err := &Error{Fields: map[string]string{"b": "bad", "a": "worse"}}
	assert.Equal(t, "validation failed: a: worse; b: bad", err.Error())
}
