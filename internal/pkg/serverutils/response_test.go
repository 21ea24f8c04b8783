package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequest(t *testing.T) {
	type loginForm struct {
		Username string `validate:"required,min=3"`
		Pin      string `validate:"required"`
	}

	err := ValidateRequest(loginForm{Username: "alice", Pin: "1234"})
	assert.NoError(t, err)

	err = ValidateRequest(loginForm{Username: "al"})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestAppErrorConstructors(t *testing.T) {
	assert.Equal(t, 400, BadRequest("nope").Status)
	assert.Equal(t, 401, Unauthorized("nope").Status)
	assert.Equal(t, 404, NotFound("nope").Status)
	assert.Equal(t, "nope", NotFound("nope").Error())
}
