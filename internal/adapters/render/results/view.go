package results

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/trajectory-cli/internal/application"
	"github.com/bnema/trajectory-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth   = 24
	labelWidth = 22
	tierWidth  = 7
)

// SessionView is everything shown for one session.
type SessionView struct {
	Session    domain.Session
	Projection application.Projection
	Pending    bool
	// Now enables the result age line; zero hides it.
	Now time.Time
}

type SessionRow struct {
	Session domain.Session
	Pending bool
}

func RenderSession(view SessionView) (string, error) {
	return run(func(s styles) string {
		return renderSession(view, s)
	})
}

func RenderSessionList(rows []SessionRow) (string, error) {
	return run(func(s styles) string {
		return renderSessionList(rows, s)
	})
}

func RenderCatalogue(specs []domain.TraitSpec) (string, error) {
	return run(func(s styles) string {
		return renderCatalogue(specs, s)
	})
}

func renderSession(view SessionView, s styles) string {
	lines := []string{sessionTitle(view.Session, s)}
	if view.Pending {
		lines = append(lines, s.pending.Render("prediction pending..."))
	}

	lines = append(lines, s.section.Render(renderTraits(view.Session.Traits, s)))
	lines = append(lines, s.section.Render(renderProjection(view, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionTitle(session domain.Session, s styles) string {
	title := s.session.Render(fmt.Sprintf("%s (#%d)", session.Name, session.ID))
	if session.Active {
		title += " " + s.active.Render("[active]")
	}
	return title
}

func renderTraits(traits domain.TraitVector, s styles) string {
	descriptors := traits.Descriptors()
	lines := []string{s.title.Render("Traits")}

	for _, spec := range domain.TraitSpecs() {
		value, err := traits.Get(spec.Name)
		if err != nil {
			continue
		}

		shown := fmt.Sprintf("%3d", value)
		if spec.Kind == domain.TraitKindFlag {
			shown = flagLabel(value)
		}

		line := s.label.Render(padRight(spec.Label, labelWidth)) + " " + s.detail.Render(shown)
		if descriptor, ok := descriptors[spec.Name]; ok {
			line += " " + s.meta.Render("("+descriptor+")")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProjection(view SessionView, s styles) string {
	if !view.Session.HasResults() {
		return s.empty.Render("No prediction yet.")
	}

	lines := []string{s.title.Render("Career trajectory")}
	if age := formatAge(view.Session.ResultsAt, view.Now); age != "" {
		lines = append(lines, s.header.Render("updated "+age))
	}

	if len(view.Projection.Rankings) == 0 {
		lines = append(lines, s.empty.Render("No careers returned."))
	}
	for _, row := range view.Projection.Rankings {
		lines = append(lines, rankingLine(row, s))
	}

	lines = append(lines, s.section.Render(s.title.Render("Influences")))
	if len(view.Projection.Influences) == 0 {
		lines = append(lines, s.empty.Render("No reasoning returned."))
	}
	for _, row := range view.Projection.Influences {
		lines = append(lines, influenceLine(row, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func rankingLine(row application.RankingRow, s styles) string {
	tierStyle := s.tier
	if row.Tier == application.TierOptimal {
		tierStyle = s.optimal
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		tierStyle.Render(padRight(row.Tier, tierWidth)),
		" ",
		s.detail.Render(padRight(row.Career, labelWidth)),
		" ",
		renderProgressBar(row.Confidence, barWidth, s),
		" ",
		s.meta.Render(fmt.Sprintf("%5.1f%%", row.Confidence)),
	)
}

func influenceLine(row application.InfluenceRow, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(padRight(row.Feature, labelWidth)),
		" ",
		renderProgressBar(row.Magnitude, barWidth, s),
		" ",
		directionStyle(row.Direction, s).Render(row.Signed),
	)
}

func directionStyle(direction application.Direction, s styles) lipgloss.Style {
	switch direction {
	case application.DirectionPositive:
		return s.positive
	case application.DirectionNegative:
		return s.negative
	default:
		return s.neutral
	}
}

func renderSessionList(rows []SessionRow, s styles) string {
	lines := []string{
		s.title.Render("Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(rows))),
	}

	if len(rows) == 0 {
		lines = append(lines, s.empty.Render("No sessions. Use `new` to start one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, row := range rows {
		marker := "  "
		if row.Session.Active {
			marker = s.active.Render("* ")
		}

		status := s.empty.Render("no results")
		switch {
		case row.Pending:
			status = s.pending.Render("pending")
		case row.Session.HasResults():
			if career, ok := row.Session.Results.TopCareer(); ok {
				status = s.optimal.Render(career)
			} else {
				status = s.detail.Render("results")
			}
		}

		lines = append(lines, marker+s.meta.Render(fmt.Sprintf("#%-3d", row.Session.ID))+" "+
			s.detail.Render(padRight(row.Session.Name, labelWidth))+" "+status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCatalogue(specs []domain.TraitSpec, s styles) string {
	lines := []string{s.title.Render("Traits")}
	for _, spec := range specs {
		bounds := fmt.Sprintf("%d-%d", spec.Min, spec.Max)
		defaultValue := fmt.Sprintf("default %d", spec.Default)
		if spec.Kind == domain.TraitKindFlag {
			bounds = "yes/no"
			defaultValue = "default " + flagLabel(spec.Default)
		}

		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.session.Render(padRight(string(spec.Name), labelWidth)),
			" ",
			s.label.Render(padRight(spec.Label, labelWidth)),
			" ",
			s.detail.Render(padRight(bounds, tierWidth)),
			" ",
			s.meta.Render(defaultValue),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := clampPercent(percent) / 100.0
	filled := int(math.Round(float64(width) * fraction))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func formatAge(at, now time.Time) string {
	if at.IsZero() || now.IsZero() {
		return ""
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return pluralize(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return pluralize(int(elapsed.Hours()), "hour") + " ago"
	default:
		return "at " + at.Format("15:04 on 02 Jan")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func flagLabel(v int) string {
	if v != 0 {
		return "yes"
	}
	return "no"
}

func padRight(v string, width int) string {
	if pad := width - lipgloss.Width(v); pad > 0 {
		return v + strings.Repeat(" ", pad)
	}
	return v
}
