package models

import "time"

// Match results as stored in Match.Result.
const (
	ResultLoss = -1
	ResultDraw = 0
	ResultWin  = 1
)

// Match is a single game logged by its owner.
// Nullable fields stay nil when the player did not record them.
type Match struct {
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Opponent  *string   `json:"opponent"`
	Format    *int      `json:"format"`
	Goals     *int      `json:"goals"`
	Assists   *int      `json:"assists"`
	Result    *int      `json:"result"`
	Notes     *string   `json:"notes"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IsMVP     bool      `json:"isMvp"`
}

// MatchSummary aggregates a player's matches.
type MatchSummary struct {
	Matches int `json:"matches"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Wins    int `json:"wins"`
	Draws   int `json:"draws"`
	Losses  int `json:"losses"`
	MVPs    int `json:"mvps"`
}

// Add folds a match into the summary.
func (s *MatchSummary) Add(m *Match) {
	s.Matches++
	if m.Goals != nil {
		s.Goals += *m.Goals
	}
	if m.Assists != nil {
		s.Assists += *m.Assists
	}
	if m.Result != nil {
		switch *m.Result {
		case ResultWin:
			s.Wins++
		case ResultDraw:
			s.Draws++
		case ResultLoss:
			s.Losses++
		}
	}
	if m.IsMVP {
		s.MVPs++
	}
}
