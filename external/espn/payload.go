package espn

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Date         string             `json:"date"`
	Status       eventStatus        `json:"status"`
	Competitions []eventCompetition `json:"competitions"`
}

type eventStatus struct {
	Type struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		State     string `json:"state"`
		Completed bool   `json:"completed"`
	} `json:"type"`
}

type eventCompetition struct {
	Competitors []eventCompetitor `json:"competitors"`
}

type eventCompetitor struct {
	HomeAway string `json:"homeAway"`
	Winner   bool   `json:"winner"`
	Team     struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
	} `json:"team"`
}
