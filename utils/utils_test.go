package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("lst")
	assert.True(t, strings.HasPrefix(id, "lst-"))
	assert.Len(t, id, len("lst-")+10)
	assert.NotEqual(t, id, GenerateID("lst"))
}

func TestValidateIDs(t *testing.T) {
	assert.True(t, ValidateListingID("lst-aB3dE5fG7h"))
	assert.False(t, ValidateListingID("usr-aB3dE5fG7h"))
	assert.False(t, ValidateListingID("bogus"))

	assert.True(t, ValidateUserID("usr-aB3dE5fG7h"))
	assert.False(t, ValidateUserID("lst-aB3dE5fG7h"))
	assert.False(t, ValidateUserID(""))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)
	assert.True(t, CheckPassword("hunter2hunter2", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
