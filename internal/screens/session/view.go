package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/ui/components"
	"github.com/kasambhusal/sajha-gyan/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderInfoLine renders the subject, position and running score.
func (s *SessionScreen) renderInfoLine(width int) string {
	state := s.state
	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.SubjectColor(state.Plan.Subject.Color)).
		Bold(true).
		Render("  " + state.Plan.Subject.Title)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d  %d:%02d",
			state.Index+1,
			state.Total(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			state.TotalCorrect,
			mins, secs,
		))

	line := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + infoRight
	}
	return line
}

// renderQuestionView renders the active question with its answer widget.
func (s *SessionScreen) renderQuestionView(width, height int) string {
	q := s.state.CurrentQuestion()
	if q == nil {
		return renderLoading(width, height, false)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionBody(*q, width))
	b.WriteString("\n\n")

	if q.Type == questionbank.TypeMCQ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		b.WriteString(centered(width).Foreground(theme.TextDim).Render(
			fmt.Sprintf("Select (1-%d) or use arrows + Enter", min(len(q.Options), 9))))
	} else {
		b.WriteString(centered(width).Render("Answer: " + s.input.View()))
		b.WriteString("\n\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Explain in your own words, then press Enter"))
	}
	return b.String()
}

func (s *SessionScreen) renderQuestionBody(q questionbank.Question, width int) string {
	tag := theme.Hint.Render(q.Type.DisplayName())
	if q.Difficulty != "" {
		tag += theme.Hint.Render(" · " + string(q.Difficulty))
	}
	text := lipgloss.NewStyle().
		Width(min(width-8, 72)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Question)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text) + "\n" + centered(width).Render(tag)
}

// renderFeedback renders the verdict, the expected answer and the
// explanation.
func (s *SessionScreen) renderFeedback(width, height int) string {
	state := s.state
	q := state.CurrentQuestion()

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")

	if state.LastAnswerCorrect {
		b.WriteString(centered(width).Foreground(theme.Success).Bold(true).Render("Correct!"))
	} else {
		b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Not quite"))
	}
	b.WriteString("\n\n")

	if q != nil {
		if q.Type == questionbank.TypeMCQ {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
		} else {
			b.WriteString(centered(width).Render("Answer: " + s.input.View()))
			if guide := q.CorrectText(); guide != "" {
				b.WriteString("\n\n")
				b.WriteString(centered(width).Foreground(theme.TextDim).Render("Model answer: " + guide))
			}
		}
		b.WriteString("\n")

		if exp := q.Explanation; exp != "" {
			box := components.Panel("Explanation", []string{exp}, min(width-8, 72))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
			b.WriteString("\n")
		}
	}

	if s.saveFailed {
		b.WriteString(centered(width).Foreground(theme.Warning).Render("This answer may not have been saved."))
		b.WriteString("\n")
	}

	next := "Press any key for the next question..."
	if state.IsLast() {
		next = "Press any key to see your results..."
	}
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(next))
	return b.String()
}

// renderQuitConfirm renders the leave confirmation dialog.
func renderQuitConfirm(width, height, answered int) string {
	note := "Nothing has been answered yet."
	if answered > 0 {
		note = fmt.Sprintf("Your %d answered question(s) stay saved, but this test is not logged.", answered)
	}

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("Leave this test?"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(note))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.Error).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))
	return b.String()
}

// renderLoading renders the waiting state.
func renderLoading(width, height int, finishing bool) string {
	text := "Preparing your questions..."
	if finishing {
		text = "Saving your results..."
	}
	return centered(width).Foreground(theme.TextDim).Render("\n\n\n  " + text)
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
