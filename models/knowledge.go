package models

// Event describes the exhibition the avatar is deployed at. One record is
// loaded from the knowledge base at startup.
type Event struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Organizer   string `json:"organizer"`
	Location    string `json:"location"`
	LayoutInfo  string `json:"layout_info"`
}

// Project is a single knowledge-base entry, one exhibition stall. Projects are
// immutable once loaded; their identity is their position in the loaded set.
type Project struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	StallNumber string `json:"stall_number"`
	TeamName    string `json:"team_name"`
	Description string `json:"description"`
}

// KnowledgeDB mirrors the on-disk data/db.json document.
type KnowledgeDB struct {
	Events   []Event   `json:"events"`
	Projects []Project `json:"projects"`
}
