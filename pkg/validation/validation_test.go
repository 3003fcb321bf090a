package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "teampulse/pkg/domain-errors"
)

type signup struct {
	TenantName string `json:"tenantName" validate:"notblank,max=10"`
	Email      string `json:"email" validate:"required,emailaddr"`
	Domain     string `json:"domain" validate:"required,domain"`
	Teams      []int  `json:"teams" validate:"min=1"`
}

func validSignup() signup {
	return signup{TenantName: "Acme", Email: "a@acme.io", Domain: "acme.io", Teams: []int{1}}
}

func TestValidate(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		require.NoError(t, Validate(validSignup()))
	})

	t.Run("uses json field names in messages", func(t *testing.T) {
		req := validSignup()
		req.TenantName = "   "
		err := Validate(req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "tenantName must not be blank", err.Error())
	})

	t.Run("max length", func(t *testing.T) {
		req := validSignup()
		req.TenantName = "a much too long name"
		assert.EqualError(t, Validate(req), "tenantName must be at most 10 characters")
	})

	t.Run("domain pattern", func(t *testing.T) {
		for _, d := range []string{"acme", "acme.c", "ac me.io", "acme.io/x"} {
			req := validSignup()
			req.Domain = d
			assert.EqualError(t, Validate(req), "domain must be a valid domain", d)
		}
		for _, d := range []string{"acme.io", "my-co.com", "x1.jp"} {
			req := validSignup()
			req.Domain = d
			assert.NoError(t, Validate(req), d)
		}
	})

	t.Run("email pattern", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.EqualError(t, Validate(req), "email must be a valid email")
	})

	t.Run("empty slice", func(t *testing.T) {
		req := validSignup()
		req.Teams = nil
		assert.EqualError(t, Validate(req), "teams must contain at least 1 item(s)")
	})
}

func TestValidateFields(t *testing.T) {
	err := ValidateFields(signup{Teams: []int{1}})
	require.Error(t, err)

	var dErr *dErrors.Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, dErrors.CodeValidation, dErr.Code)
	assert.Equal(t, []string{"tenantName must not be blank"}, dErr.Fields["tenantName"])
	assert.Equal(t, []string{"email is required"}, dErr.Fields["email"])
	assert.Equal(t, []string{"domain is required"}, dErr.Fields["domain"])
	assert.NotContains(t, dErr.Fields, "teams")
}
