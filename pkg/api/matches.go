package api

import "time"

// MatchRequest is the body of POST /matches and PUT /matches/{id}.
// PUT replaces every editable field.
type MatchRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	Opponent *string   `json:"opponent,omitempty" validate:"omitempty,max=100"`
	Format   *int      `json:"format,omitempty" validate:"omitempty,min=1,max=11"`
	Goals    *int      `json:"goals,omitempty" validate:"omitempty,min=0,max=99"`
	Assists  *int      `json:"assists,omitempty" validate:"omitempty,min=0,max=99"`
	Result   *int      `json:"result,omitempty" validate:"omitempty,oneof=-1 0 1"`
	Notes    *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
	IsMVP    bool      `json:"isMvp"`
}

// MatchResponse is the public representation of a match.
type MatchResponse struct {
	Date     time.Time `json:"date"`
	Opponent *string   `json:"opponent"`
	Format   *int      `json:"format"`
	Goals    *int      `json:"goals"`
	Assists  *int      `json:"assists"`
	Result   *int      `json:"result"` // 1 win, 0 draw, -1 loss
	Notes    *string   `json:"notes"`
	ID       string    `json:"id"`
	IsMVP    bool      `json:"isMvp"`
}

// SummaryResponse holds the caller's aggregated totals.
type SummaryResponse struct {
	Matches int `json:"matches"`
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Wins    int `json:"wins"`
	Draws   int `json:"draws"`
	Losses  int `json:"losses"`
	MVPs    int `json:"mvps"`
}
