package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("label", "is required")
	ve.AddFieldError("cols", "must be between 1 and 200")

	s.True(ve.HasErrors())
	s.Equal("validation failed: cols: must be between 1 and 200; label: is required", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	err := errors.NewValidationBuilder().
		Field("label", "is required").
		Fieldf("rows", "must be between %d and %d", 1, 200).
		RequiredField("descriptor").
		InvalidField("die", "d7 is not a die").
		Build()

	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Contains(err.Error(), "die: is invalid: d7 is not a die")
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.NoError(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "goblin", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  orc  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("label", tc.value, vb)
			if tc.shouldErr {
				s.Error(vb.Build())
			} else {
				s.NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("cols", 0, 1, 200, vb)
	errors.ValidateRange("rows", 20, 1, 200, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Contains(err.Error(), "cols: must be between 1 and 200")
	s.NotContains(err.Error(), "rows")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("driver", "sqlite", []string{"sqlite", "redis"}, vb)
	s.NoError(vb.Build())

	errors.ValidateEnum("driver", "mongo", []string{"sqlite", "redis"}, vb)
	s.ErrorContains(vb.Build(), "driver: must be one of: sqlite, redis")
}
