package session

import "os"

// Identity is the authenticated customer the cart belongs to. The cart
// service only reads it; issuing the token is the auth backend's job.
type Identity struct {
	Email      string
	RoomNumber string
	Hall       string
	Token      string
}

// Authenticated reports whether checkout is allowed to proceed.
func (id Identity) Authenticated() bool {
	return id.Email != "" && id.Token != ""
}

func LoadFromEnv() Identity {
	return Identity{
		Email:      os.Getenv("CUMALL_EMAIL"),
		RoomNumber: os.Getenv("CUMALL_ROOM"),
		Hall:       os.Getenv("CUMALL_HALL"),
		Token:      os.Getenv("CUMALL_TOKEN"),
	}
}
