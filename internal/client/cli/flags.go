package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/futbol/pkg/api"
)

const dateLayout = "2006-01-02"

// matchFlags описывает поля матча, общие для add и edit.
// Пустое значение числового флага очищает поле.
type matchFlags struct {
	fs       *flag.FlagSet
	date     string
	opponent string
	format   string
	goals    string
	assists  string
	result   string
	notes    string
	mvp      bool
}

func newMatchFlags(name string, out io.Writer) *matchFlags {
	f := &matchFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	f.fs.SetOutput(out)
	f.fs.StringVar(&f.date, "date", "", "match date, YYYY-MM-DD (default today)")
	f.fs.StringVar(&f.opponent, "opponent", "", "opponent name")
	f.fs.StringVar(&f.format, "format", "", "players per side, 1-11")
	f.fs.StringVar(&f.goals, "goals", "", "goals scored")
	f.fs.StringVar(&f.assists, "assists", "", "assists")
	f.fs.StringVar(&f.result, "result", "", "win, draw or loss")
	f.fs.StringVar(&f.notes, "notes", "", "free-form notes")
	f.fs.BoolVar(&f.mvp, "mvp", false, "named man of the match")
	return f
}

func (f *matchFlags) parse(args []string) error {
	return f.fs.Parse(args)
}

// apply переносит в req только явно заданные флаги
func (f *matchFlags) apply(req *api.MatchRequest) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "date":
			req.Date, err = parseDate(f.date)
		case "opponent":
			req.Opponent = optionalString(f.opponent)
		case "format":
			req.Format, err = optionalInt("format", f.format)
		case "goals":
			req.Goals, err = optionalInt("goals", f.goals)
		case "assists":
			req.Assists, err = optionalInt("assists", f.assists)
		case "result":
			req.Result, err = parseResult(f.result)
		case "notes":
			req.Notes = optionalString(f.notes)
		case "mvp":
			req.IsMVP = f.mvp
		}
	})
	return err
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(name, s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: must be a number", name, s)
	}
	return &n, nil
}

func parseResult(s string) (*int, error) {
	var n int
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "win", "w", "1":
		n = 1
	case "draw", "d", "0":
		n = 0
	case "loss", "l", "-1":
		n = -1
	default:
		return nil, fmt.Errorf("invalid result %q: use win, draw or loss", s)
	}
	return &n, nil
}

func resultLabel(r *int) string {
	if r == nil {
		return "-"
	}
	switch *r {
	case 1:
		return "win"
	case 0:
		return "draw"
	case -1:
		return "loss"
	default:
		return strconv.Itoa(*r)
	}
}

// requestFromResponse нужен edit: PUT заменяет все поля
func requestFromResponse(m *api.MatchResponse) api.MatchRequest {
	return api.MatchRequest{
		Date:     m.Date,
		Opponent: m.Opponent,
		Format:   m.Format,
		Goals:    m.Goals,
		Assists:  m.Assists,
		Result:   m.Result,
		Notes:    m.Notes,
		IsMVP:    m.IsMVP,
	}
}
