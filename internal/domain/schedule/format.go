package schedule

import (
	"strings"
	"time"

	"github.com/riskibarqy/aes-results/internal/domain/results"
)

const (
	UnknownTime = "Unknown"

	scheduledLayout = "2006-01-02T15:04:05"
	displayLayout   = "1/2 3:04pm"

	workMarker = "WORK"
)

// FormatTime renders a results-service timestamp as "2/5 11:00am". Empty
// input yields UnknownTime; input that does not parse is returned unchanged.
func FormatTime(iso string) string {
	if iso == "" {
		return UnknownTime
	}
	parsed, ok := ParseScheduled(iso)
	if !ok {
		return iso
	}
	return parsed.Format(displayLayout)
}

// ParseScheduled parses a zone-less, seconds-precision timestamp. time.Parse
// also accepts fractional seconds after the layout, so the length must match.
func ParseScheduled(iso string) (time.Time, bool) {
	if len(iso) != len(scheduledLayout) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(scheduledLayout, iso)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// DatePart truncates a timestamp at its date/time separator.
func DatePart(ts string) string {
	date, _, _ := strings.Cut(ts, "T")
	return date
}

// TeamLabel names one side of a match, prefixed with "(W) " or "(L) " once
// the match has scores. An absent name falls back to the side token.
func TeamLabel(m results.Match, side results.Side) string {
	name := results.StringOr(m.TeamName(side), string(side))
	if !m.Scored() {
		return name
	}
	if m.TeamWon(side) {
		return "(W) " + name
	}
	return "(L) " + name
}

// FormatScores joins "a-b" for every set where both scores count. A zero
// score counts as absent.
func FormatScores(sets []results.Set) string {
	parts := make([]string, 0, len(sets))
	for _, set := range sets {
		if !set.FirstTeamScore.Counts() || !set.SecondTeamScore.Counts() {
			continue
		}
		parts = append(parts, set.FirstTeamScore.String()+"-"+set.SecondTeamScore.String())
	}
	return strings.Join(parts, ", ")
}

// Line renders the summary as a single pipe-separated line.
func (m MatchSummary) Line() string {
	prefix := []string{m.MatchTime, m.PlayName, m.MatchName}
	if m.TeamWorks {
		return strings.Join(append(prefix, workMarker, m.Court), " | ")
	}

	tail := m.Court
	if m.ScoreText() != "" {
		tail = m.ScoreText()
	}
	return strings.Join(append(prefix, m.Team1+" vs "+m.Team2, tail), " | ")
}

// Line renders the projection as "rank -> play | Play: time court | Work: time court".
func (p FutureProjection) Line() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.RankText))
	b.WriteString(" -> ")
	b.WriteString(p.PlayName)
	b.WriteString(" | Play: ")
	b.WriteString(strings.TrimSpace(p.NextMatchTime + " " + p.NextMatchCourt))
	b.WriteString(" | Work: ")
	b.WriteString(strings.TrimSpace(p.WorkTime + " " + p.WorkCourt))
	return b.String()
}
