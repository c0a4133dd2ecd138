package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myblog/internal/models"
)

func TestMapCreateUserRequest(t *testing.T) {
	req := models.CreateUserRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "secret"}
	var u models.User
	require.NoError(t, New().Map(&u, &req))

	assert.Equal(t, "Ada", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Empty(t, u.ID)
	assert.Empty(t, u.PasswordHash)
}
