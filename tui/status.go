package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar draws the table counts on the left and the RNG state on
// the right. The looting bonus is dropped first when the bar is too narrow.
func (m Model) renderStatusBar() string {
	eng := m.session.Engine

	entries := 0
	for _, t := range eng.Defs.Tables {
		entries += len(t.Entries)
	}
	left := fmt.Sprintf(" Tables: %d | Entries: %d", len(eng.Defs.Tables), entries)

	rng := fmt.Sprintf("Seed:%d Pos:%d ", eng.RNG.Seed(), eng.RNG.Position())
	right := rng
	if eng.LootingBonus != 0 {
		right = fmt.Sprintf("Bonus:%g | %s", eng.LootingBonus, rng)
	}
	if lipgloss.Width(left)+lipgloss.Width(right)+2 >= m.width {
		right = rng
	}

	gap := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}
