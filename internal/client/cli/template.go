package cli

import (
	"fmt"
	"strconv"
	"text/template"

	"github.com/iudanet/futbol/internal/client/iocli"
	"github.com/iudanet/futbol/pkg/api"
)

const usageText = `Futbol Client

Usage:
  futbol [OPTIONS] COMMAND [ARGS]

Options:
  --version               Show version information
  --server URL            Server URL (default: http://localhost:8080)
  --db PATH               Path to local database (default: futbol-client.db)
  --cookies-reliable      Trust the cookie channel (shorter session confirmation)
  --password-file PATH    Path to file containing the password

Password Priority (highest to lowest):
  1. FUTBOL_PASSWORD environment variable
  2. --password-file (file path)
  3. Interactive prompt (fallback)

Commands:
  register                Register new user
  login                   Login and confirm the session
  logout                  Logout and forget the local token
  status                  Show who the session belongs to
  add [flags]             Log a match
  list                    List matches, newest first
  get <id>                Show match details
  edit <id> [flags]       Change a match (only the given flags)
  delete <id>             Delete a match
  summary                 Show totals

Match flags:
  --date YYYY-MM-DD  --opponent NAME  --format N  --goals N  --assists N
  --result win|draw|loss  --mvp  --notes TEXT

Examples:
  futbol register
  futbol login
  futbol add --date 2025-05-04 --opponent "Real Barrio" --goals 2 --result win --mvp
  futbol edit 3f0c1a52-0f5e-4a44-9d1c-4bb0d3d0a0b1 --goals 3
  futbol --server https://futbol.example.com summary
`

const matchTemplate = `
=== Match Details ===

ID:       {{.ID}}
Date:     {{.Date}}
Opponent: {{.Opponent}}
Format:   {{.Format}}
Goals:    {{.Goals}}
Assists:  {{.Assists}}
Result:   {{.Result}}
MVP:      {{if .MVP}}yes{{else}}no{{end}}
{{- if .Notes }}
Notes:    {{.Notes}}
{{- end}}
`

const matchesListTemplate = `
=== Matches ===

{{- if eq (len .) 0 }}
No matches found.

Use 'futbol add' to log your first match.
{{ else }}
Found {{len .}} match(es):
{{ range . }}
- {{.Date}} vs {{.Opponent}}  {{.Result}}  G {{.Goals}} / A {{.Assists}}{{if .MVP}}  MVP{{end}}
   ID: {{.ID}}
{{- end }}
{{ end }}`

const summaryTemplate = `
=== Summary ===

Matches: {{.Matches}}
Goals:   {{.Goals}}
Assists: {{.Assists}}
Record:  {{.Wins}}W {{.Draws}}D {{.Losses}}L
MVP:     {{.MVPs}}
`

var (
	matchTmpl   = template.Must(template.New("match").Parse(matchTemplate))
	listTmpl    = template.Must(template.New("matches").Parse(matchesListTemplate))
	summaryTmpl = template.Must(template.New("summary").Parse(summaryTemplate))
)

// matchView is a match with every optional field rendered for display.
type matchView struct {
	ID       string
	Date     string
	Opponent string
	Format   string
	Goals    string
	Assists  string
	Result   string
	Notes    string
	MVP      bool
}

func newMatchView(m *api.MatchResponse) matchView {
	v := matchView{
		ID:       m.ID,
		Date:     m.Date.UTC().Format(dateLayout),
		Opponent: "-",
		Format:   "-",
		Goals:    intOrDash(m.Goals),
		Assists:  intOrDash(m.Assists),
		Result:   resultLabel(m.Result),
		MVP:      m.IsMVP,
	}
	if m.Opponent != nil {
		v.Opponent = *m.Opponent
	}
	if m.Format != nil {
		v.Format = fmt.Sprintf("%d v %d", *m.Format, *m.Format)
	}
	if m.Notes != nil {
		v.Notes = *m.Notes
	}
	return v
}

func intOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func render(out iocli.IO, tmpl *template.Template, data any) error {
	if err := tmpl.Execute(out, data); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}
