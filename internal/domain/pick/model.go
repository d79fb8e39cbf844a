package pick

import (
	"errors"
	"time"
)

// ErrDuplicate is returned by repositories when a (user, game) pick exists.
var ErrDuplicate = errors.New("pick already exists")

// Pick is one user's selected winner for one game.
type Pick struct {
	UserID     int64
	GameID     int64
	PickedTeam string
	Season     int
	Week       int
	CreatedAt  time.Time
}

// Selection is a requested pick before it is bound to a user and week.
type Selection struct {
	GameID     int64
	PickedTeam string
}
