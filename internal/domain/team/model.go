package team

import (
	"fmt"
	"strings"
)

// Team is the static metadata of one NFL franchise, keyed by its canonical
// nickname.
type Team struct {
	Nickname      string
	Abbr          string
	Primary       string
	Secondary     string
	TextOnPrimary string
}

type LogoSize int

const (
	LogoSmall  LogoSize = 100
	LogoMedium LogoSize = 200
	LogoLarge  LogoSize = 500
)

const logoURLFormat = "https://a.espncdn.com/i/teamlogos/nfl/%d/scoreboard/%s.png"

// LogoURL returns the ESPN scoreboard logo for an abbreviation. Unsupported
// sizes use the large variant.
func LogoURL(abbr string, size LogoSize) string {
	switch size {
	case LogoSmall, LogoMedium, LogoLarge:
	default:
		size = LogoLarge
	}
	return fmt.Sprintf(logoURLFormat, size, strings.ToLower(strings.TrimSpace(abbr)))
}

func (t Team) LogoURL(size LogoSize) string {
	return LogoURL(t.Abbr, size)
}
