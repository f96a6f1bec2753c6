package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/lootcore/engine/loot"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleText = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeading = lipgloss.NewStyle().
			Bold(true)

	styleEntry = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleDrop = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindText lineKind = iota
	kindHeading
	kindEntry
	kindDrop
	kindSystem
	kindError
	kindTrace
)

var (
	entryLine = regexp.MustCompile(`^\d+\. `)
	dropLine  = regexp.MustCompile(`^\d+x `)
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Roll failed"),
		strings.HasPrefix(line, "There is no"),
		strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "Unknown click"):
		return kindError
	case entryLine.MatchString(line):
		return kindEntry
	case dropLine.MatchString(line):
		return kindDrop
	case strings.HasSuffix(line, ":") && !strings.HasPrefix(line, " "):
		return kindHeading
	default:
		return kindText
	}
}

// kindStyles is the base style of each line kind; color codes render on top.
var kindStyles = map[lineKind]lipgloss.Style{
	kindText:    styleText,
	kindHeading: styleHeading,
	kindEntry:   styleEntry,
	kindDrop:    styleDrop,
	kindSystem:  styleSystem,
	kindError:   styleError,
	kindTrace:   styleTrace,
}

// codeColors maps the sixteen color codes to ANSI colors.
var codeColors = map[rune]lipgloss.Color{
	'0': "0", '1': "4", '2': "2", '3': "6",
	'4': "1", '5': "5", '6': "3", '7': "7",
	'8': "8", '9': "12", 'a': "10", 'b': "14",
	'c': "9", 'd': "13", 'e': "11", 'f': "15",
}

// colorize renders ColorMarker codes in line with lipgloss, starting from
// the given base style. A color code clears formatting, as does §r.
func colorize(line string, base lipgloss.Style) string {
	if !strings.ContainsRune(line, loot.ColorMarker) {
		return base.Render(line)
	}

	var out strings.Builder
	style := base
	var seg []rune
	flush := func() {
		if len(seg) > 0 {
			out.WriteString(style.Render(string(seg)))
			seg = seg[:0]
		}
	}

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		if runes[i] != loot.ColorMarker || i+1 >= len(runes) {
			seg = append(seg, runes[i])
			continue
		}
		flush()
		i++
		code := runes[i]
		if c, ok := codeColors[code]; ok {
			style = base.Foreground(c)
			continue
		}
		switch code {
		case 'l':
			style = style.Bold(true)
		case 'o':
			style = style.Italic(true)
		case 'n':
			style = style.Underline(true)
		case 'm':
			style = style.Strikethrough(true)
		case 'r':
			style = base
		}
	}
	flush()
	return out.String()
}
