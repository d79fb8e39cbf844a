package team

import "strings"

var catalog = []Team{
	{Nickname: "Cardinals", Abbr: "ari", Primary: "#97233F", Secondary: "#FFB612", TextOnPrimary: "#fff"},
	{Nickname: "Falcons", Abbr: "atl", Primary: "#A71930", Secondary: "#000000", TextOnPrimary: "#fff"},
	{Nickname: "Ravens", Abbr: "bal", Primary: "#241773", Secondary: "#9E7C0C", TextOnPrimary: "#fff"},
	{Nickname: "Bills", Abbr: "buf", Primary: "#00338D", Secondary: "#C60C30", TextOnPrimary: "#fff"},
	{Nickname: "Panthers", Abbr: "car", Primary: "#0085CA", Secondary: "#101820", TextOnPrimary: "#fff"},
	{Nickname: "Bears", Abbr: "chi", Primary: "#0B162A", Secondary: "#C83803", TextOnPrimary: "#fff"},
	{Nickname: "Bengals", Abbr: "cin", Primary: "#FB4F14", Secondary: "#000000", TextOnPrimary: "#000"},
	{Nickname: "Browns", Abbr: "cle", Primary: "#311D00", Secondary: "#FF3C00", TextOnPrimary: "#fff"},
	{Nickname: "Cowboys", Abbr: "dal", Primary: "#041E42", Secondary: "#869397", TextOnPrimary: "#fff"},
	{Nickname: "Broncos", Abbr: "den", Primary: "#002244", Secondary: "#FB4F14", TextOnPrimary: "#fff"},
	{Nickname: "Lions", Abbr: "det", Primary: "#0076B6", Secondary: "#B0B7BC", TextOnPrimary: "#fff"},
	{Nickname: "Packers", Abbr: "gb", Primary: "#203731", Secondary: "#FFB612", TextOnPrimary: "#fff"},
	{Nickname: "Texans", Abbr: "hou", Primary: "#03202F", Secondary: "#A71930", TextOnPrimary: "#fff"},
	{Nickname: "Colts", Abbr: "ind", Primary: "#002C5F", Secondary: "#A2AAAD", TextOnPrimary: "#fff"},
	{Nickname: "Jaguars", Abbr: "jax", Primary: "#006778", Secondary: "#9F792C", TextOnPrimary: "#fff"},
	{Nickname: "Chiefs", Abbr: "kc", Primary: "#E31837", Secondary: "#FFB81C", TextOnPrimary: "#fff"},
	{Nickname: "Raiders", Abbr: "lv", Primary: "#000000", Secondary: "#A5ACAF", TextOnPrimary: "#fff"},
	{Nickname: "Chargers", Abbr: "lac", Primary: "#0080C6", Secondary: "#FFC20E", TextOnPrimary: "#fff"},
	{Nickname: "Rams", Abbr: "lar", Primary: "#003594", Secondary: "#FFA300", TextOnPrimary: "#fff"},
	{Nickname: "Dolphins", Abbr: "mia", Primary: "#008E97", Secondary: "#FC4C02", TextOnPrimary: "#fff"},
	{Nickname: "Vikings", Abbr: "min", Primary: "#4F2683", Secondary: "#FFC62F", TextOnPrimary: "#fff"},
	{Nickname: "Patriots", Abbr: "ne", Primary: "#002244", Secondary: "#C60C30", TextOnPrimary: "#fff"},
	{Nickname: "Saints", Abbr: "no", Primary: "#101820", Secondary: "#D3BC8D", TextOnPrimary: "#fff"},
	{Nickname: "Giants", Abbr: "nyg", Primary: "#0B2265", Secondary: "#A71930", TextOnPrimary: "#fff"},
	{Nickname: "Jets", Abbr: "nyj", Primary: "#125740", Secondary: "#000000", TextOnPrimary: "#fff"},
	{Nickname: "Eagles", Abbr: "phi", Primary: "#004C54", Secondary: "#A5ACAF", TextOnPrimary: "#fff"},
	{Nickname: "Steelers", Abbr: "pit", Primary: "#101820", Secondary: "#FFB612", TextOnPrimary: "#fff"},
	{Nickname: "49ers", Abbr: "sf", Primary: "#AA0000", Secondary: "#B3995D", TextOnPrimary: "#fff"},
	{Nickname: "Seahawks", Abbr: "sea", Primary: "#002244", Secondary: "#69BE28", TextOnPrimary: "#fff"},
	{Nickname: "Buccaneers", Abbr: "tb", Primary: "#D50A0A", Secondary: "#FF7900", TextOnPrimary: "#fff"},
	{Nickname: "Titans", Abbr: "ten", Primary: "#0C2340", Secondary: "#4B92DB", TextOnPrimary: "#fff"},
	{Nickname: "Commanders", Abbr: "wsh", Primary: "#5A1414", Secondary: "#FFB612", TextOnPrimary: "#fff"},
}

var byNickname = func() map[string]Team {
	out := make(map[string]Team, len(catalog))
	for _, t := range catalog {
		out[strings.ToLower(t.Nickname)] = t
	}
	return out
}()

// All returns a copy of the catalog in its fixed order.
func All() []Team {
	return append([]Team(nil), catalog...)
}

// Lookup finds a team by nickname, ignoring case and surrounding whitespace.
func Lookup(raw string) (Team, bool) {
	t, ok := byNickname[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}
