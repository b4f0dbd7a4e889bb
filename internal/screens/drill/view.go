package drill

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/aloud/internal/assist"
	"github.com/abhisek/aloud/internal/ui/components"
	"github.com/abhisek/aloud/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	st := s.timer.State()

	var badge string
	switch {
	case st.Done():
		badge = theme.Complete.Render("COMPLETE")
	case st.Running:
		badge = theme.Running.Render("RUNNING")
	default:
		badge = theme.Paused.Render("PAUSED")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + badge + "  " + theme.Hint.Render(difficultyLabel(s.timer.Difficulty())))
	b.WriteString("\n\n")

	b.WriteString(theme.Clock.Render(s.timer.Clock()))
	b.WriteString("\n")

	current := "  " + theme.Body.Render(s.timer.CurrentTaskLabel())
	if !st.Done() {
		current += "  " + theme.TaskClock.Render(s.timer.TaskClock())
	}
	b.WriteString(current)
	b.WriteString("\n\n")

	elapsed := st.Profile.TotalSeconds - st.TotalRemaining
	bar := components.NewProgressBar("elapsed", elapsed, st.Profile.TotalSeconds, min(width-4, 60))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	b.WriteString("  " + theme.Title.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(s.list.View(s.panelViews(width - 10)))
	b.WriteString("\n")

	b.WriteString(s.renderChallenge(width))
	return b.String()
}

func (s *DrillScreen) panelViews(width int) map[int]string {
	out := make(map[int]string, len(s.panels))
	for i, p := range s.panels {
		out[i] = s.renderPanel(p, width)
	}
	return out
}

func (s *DrillScreen) renderPanel(p *panel, width int) string {
	var body string
	switch {
	case p.loading:
		body = s.spinner.View() + " " + theme.Hint.Render("Loading...")
	case p.err != nil:
		body = theme.ErrorText.Render(ansi.Strip(assist.UserMessage(p.err)))
	case p.reply != nil:
		body = renderReply(*p.reply)
	}
	return theme.Panel.MaxWidth(max(width, 20)).Render(body)
}

// renderReply strips terminal control sequences from the completion text
// before styling it.
func renderReply(r assist.Reply) string {
	blocks := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		var parts []string
		if seg.Code != "" {
			parts = append(parts, theme.Code.Render(ansi.Strip(seg.Code)))
		}
		if seg.Complexity != "" {
			parts = append(parts, theme.Complexity.Render(ansi.Strip(seg.Complexity)))
		}
		if len(parts) > 0 {
			blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, parts...))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (s *DrillScreen) renderChallenge(width int) string {
	if s.challenge == "" {
		return "  " + theme.Hint.Render("No challenge yet. Press e to paste one.")
	}
	first, _, _ := strings.Cut(s.challenge, "\n")
	limit := max(width-20, 10)
	if len([]rune(first)) > limit {
		first = string([]rune(first)[:limit]) + "…"
	}
	return "  " + theme.Hint.Render("Challenge: ") + theme.Body.Render(first)
}
