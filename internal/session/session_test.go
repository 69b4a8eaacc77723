package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CUMALL_EMAIL", "amina@cu.edu")
	t.Setenv("CUMALL_ROOM", "B12")
	t.Setenv("CUMALL_HALL", "Nile Hall")
	t.Setenv("CUMALL_TOKEN", "tok-123")

	id := LoadFromEnv()
	assert.Equal(t, "amina@cu.edu", id.Email)
	assert.Equal(t, "B12", id.RoomNumber)
	assert.Equal(t, "Nile Hall", id.Hall)
	assert.Equal(t, "tok-123", id.Token)
	assert.True(t, id.Authenticated())
}

func TestAuthenticated_RequiresEmailAndToken(t *testing.T) {
	t.Parallel()

	assert.False(t, Identity{}.Authenticated())
	assert.False(t, Identity{Email: "a@b.c"}.Authenticated())
	assert.False(t, Identity{Token: "tok"}.Authenticated())
	assert.True(t, Identity{Email: "a@b.c", Token: "tok"}.Authenticated())
}
