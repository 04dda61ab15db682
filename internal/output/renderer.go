package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
)

// Renderer writes LogEvent values to an output stream.
type Renderer interface {
	Render(event model.LogEvent) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleChat        = lipgloss.NewStyle().Foreground(lipgloss.Color("255")) // white
	styleJoin        = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true) // green bold
	styleLeave       = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleDeath       = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleAdvancement = lipgloss.NewStyle().Foreground(lipgloss.Color("99")) // purple
	styleOther       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	stylePlayer      = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // cyan
)

// TextRenderer prints events to the terminal with kind-based colors.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

func (r *TextRenderer) Render(event model.LogEvent) error {
	tag := styleKindTag(event.Kind)
	player := stylePlayer.Render(event.PlayerName)

	line := fmt.Sprintf("%s %s %s %s", event.Timestamp, tag, player, event.Message)
	_, err := fmt.Fprintln(r.w, line)
	return err
}

func styleKindTag(kind model.EventKind) string {
	padded := fmt.Sprintf("%-11s", kind)
	switch kind {
	case model.KindChat:
		return styleChat.Render(padded)
	case model.KindJoin:
		return styleJoin.Render(padded)
	case model.KindLeave:
		return styleLeave.Render(padded)
	case model.KindDeath:
		return styleDeath.Render(padded)
	case model.KindAdvancement:
		return styleAdvancement.Render(padded)
	default:
		return styleOther.Render(padded)
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints each event as a single JSON object per line.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes JSON lines to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

func (r *JSONRenderer) Render(event model.LogEvent) error {
	return r.enc.Encode(event)
}
