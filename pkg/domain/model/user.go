package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/mweegram/tickful/pkg/domain/types"
)

// SentinelUserName is the reserved account that owns system-generated tickets
// until an analyst claims them. It exists exactly once.
const SentinelUserName = "Nobody"

// User is an analyst account. Names are unique. CredentialHash is a bcrypt
// hash and must never be logged; the logging layer redacts it by field name.
type User struct {
	ID             types.UserID
	Name           string
	CredentialHash string `masq:"secret"`
	Email          string
	QueueID        types.QueueID
}

// Validate checks if the user is valid
func (u *User) Validate() error {
	if u.Name == "" {
		return goerr.New("user name is required")
	}
	return nil
}

// IsSentinel reports whether this is the reserved unowned account
func (u *User) IsSentinel() bool {
	return u.Name == SentinelUserName
}
