package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"required,notblank"`
	Year  int    `json:"year" validate:"min=1000"`
	Pass  string `json:"pass" validate:"min=6,max=8"`
	Inner *int   `json:"inner" validate:"required"`
}

func TestCustomValidator(t *testing.T) {
	v := NewCustomValidator()
	one := 1

	require.NoError(t, v.Validate(sample{Name: "x", Year: 1999, Pass: "secret", Inner: &one}))

	err := v.Validate(sample{Name: "   ", Year: 999, Pass: "123"})
	require.Error(t, err)
	require.Equal(t,
		"name must not be blank; year must be at least 1000; pass must be at least 6 characters long; inner is required",
		Message(err))

	err = v.Validate(sample{Name: "x", Year: 1999, Pass: "secret123", Inner: &one})
	require.Error(t, err)
	require.Equal(t, "pass must be at most 8 characters long", Message(err))
}
