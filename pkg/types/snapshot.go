package types

// ListStatus separates "still loading" from "loaded but nothing matches".
type ListStatus string

const (
	ListLoading     ListStatus = "loading"
	ListUnavailable ListStatus = "unavailable"
	ListReady       ListStatus = "ready"
	ListEmpty       ListStatus = "empty"
)

type ChampionCard struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Region      string `json:"region"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Initial     string `json:"initial"` // placeholder glyph when the image fails
	Favorite    bool   `json:"favorite"`
	Selected    bool   `json:"selected"`
}

type FilterView struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Region   string `json:"region,omitempty"`
}

type Suggestion struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type CompareSlot struct {
	Name   string `json:"name,omitempty"`
	Image  string `json:"image,omitempty"`
	Filled bool   `json:"filled"`
}

type CompareView struct {
	Slots  []CompareSlot `json:"slots"`
	Active bool          `json:"active"`
	Ready  bool          `json:"ready"`
}

type BuildSlot struct {
	Item   string `json:"item,omitempty"`
	Image  string `json:"image,omitempty"`
	Filled bool   `json:"filled"`
}

type BuildView struct {
	Slots []BuildSlot `json:"slots"`
	Full  bool        `json:"full"`
}

type QuizView struct {
	Started  bool     `json:"started"`
	Done     bool     `json:"done"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question,omitempty"`
	Answers  []string `json:"answers,omitempty"`
	Result   string   `json:"result,omitempty"`
}

// Snapshot is the full page state sent to a visitor after every accepted
// intent.
type Snapshot struct {
	Version     int            `json:"version"`
	Filter      FilterView     `json:"filter"`
	Status      ListStatus     `json:"status"`
	Champions   []ChampionCard `json:"champions"`
	Suggestions []Suggestion   `json:"suggestions,omitempty"`
	Favorites   []string       `json:"favorites"`
	Compare     CompareView    `json:"compare"`
	Build       BuildView      `json:"build"`
	Quiz        QuizView       `json:"quiz"`
	Urf         bool           `json:"urf"`
}
