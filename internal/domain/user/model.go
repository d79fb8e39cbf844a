package user

import (
	"fmt"
	"strings"
)

// User is one member of the fixed league roster.
type User struct {
	ID   int64
	Name string
}

func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("user id must be > 0")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	return nil
}
