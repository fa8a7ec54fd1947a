// Package tui materializes mural descriptors in a terminal. All state that
// matters lives in mural.Controller; the model only tracks cursor and scroll.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/totegamma/hl3mural/internal/media"
	"github.com/totegamma/hl3mural/internal/mural"
)

// DefaultMarginRows is the sentinel margin in terminal rows.
const DefaultMarginRows = 10

// header and footer rows around the tile list
const chromeRows = 3

type loadedMsg struct {
	outcome mural.Outcome
}

type Model struct {
	ctx        context.Context
	controller *mural.Controller
	sentinel   *mural.Sentinel
	styles     Styles

	spinner spinner.Model
	detail  viewport.Model

	tiles  []mural.Tile
	cursor int
	offset int
	width  int
	height int
}

func New(ctx context.Context, controller *mural.Controller, marginRows int) Model {
	if marginRows < 0 {
		marginRows = DefaultMarginRows
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		controller: controller,
		sentinel:   mural.NewSentinel(controller, marginRows),
		styles:     DefaultStyles(),
		spinner:    sp,
		detail:     viewport.New(80, 20),
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadMore())
}

func (m Model) loadMore() tea.Cmd {
	ctx, c := m.ctx, m.controller
	return func() tea.Msg {
		return loadedMsg{outcome: c.LoadMore(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	ctx, c := m.ctx, m.controller
	return func() tea.Msg {
		return loadedMsg{outcome: c.Refresh(ctx)}
	}
}

// observe reports the sentinel position after the last tile.
func (m Model) observe() tea.Cmd {
	ctx, s := m.ctx, m.sentinel
	distance := len(m.tiles) - (m.offset + m.visibleRows())
	return func() tea.Msg {
		return loadedMsg{outcome: s.Observe(ctx, distance)}
	}
}

func (m Model) visibleRows() int {
	rows := m.height - chromeRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 4
		return m, m.observe()

	case loadedMsg:
		m.tiles = m.controller.Tiles()
		if m.cursor >= len(m.tiles) {
			m.cursor = max(len(m.tiles)-1, 0)
		}
		if msg.outcome == mural.OutcomeAppended {
			// the new page may still not fill the screen
			return m, m.observe()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if _, open := m.controller.Detail(); open {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.tiles)-1 {
			m.cursor++
		}
		if m.cursor >= m.offset+m.visibleRows() {
			m.offset = m.cursor - m.visibleRows() + 1
		}
		return m, m.observe()
	case "r":
		m.cursor = 0
		m.offset = 0
		m.tiles = nil
		return m, m.refresh()
	case "enter":
		d, ok := m.controller.Open(m.cursor)
		if ok {
			m.detail.SetContent(m.renderDetail(d))
			m.detail.GotoTop()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q", "backspace":
		m.controller.Close()
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if _, open := m.controller.Detail(); open {
		return m.styles.Modal.Render(m.detail.View()) + "\n" +
			m.styles.Muted.Render("esc close • ↑/↓ scroll")
	}

	state := m.controller.State()

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render(fmt.Sprintf("HL3 Mural · %d stories", len(m.tiles))))
	sb.WriteString("\n")

	if len(m.tiles) == 0 && state.End {
		sb.WriteString(m.styles.Muted.Render(mural.EmptyNote))
		sb.WriteString("\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.tiles))
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.renderTile(m.tiles[i], i == m.cursor))
		sb.WriteString("\n")
	}

	switch {
	case state.Loading:
		sb.WriteString(m.spinner.View() + " Loading stories…")
	case state.End:
		sb.WriteString(m.styles.Muted.Render("end of the mural"))
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("↑/↓ move • enter read • r refresh • q quit"))
	return sb.String()
}

func (m Model) renderTile(t mural.Tile, selected bool) string {
	marker := "  "
	name := m.styles.Normal.Render(t.Name)
	if selected {
		marker = m.styles.Selected.Render("▸ ")
		name = m.styles.Selected.Render(t.Name)
	}
	return marker + name + "  " + m.styles.Action.Render(t.Action) + "  " + m.styles.Muted.Render(thumbLabel(t.Thumbnail))
}

func thumbLabel(thumb string) string {
	if strings.HasPrefix(thumb, "data:") {
		return "[initials]"
	}
	return thumb
}

func (m Model) renderDetail(d mural.Detail) string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(d.Name))
	sb.WriteString("\n\n")

	width := m.detail.Width
	if width < 20 {
		width = 20
	}
	sb.WriteString(lipgloss.NewStyle().Width(width).Render(d.Story))
	sb.WriteString("\n")

	for _, e := range d.Embeds {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Action.Render(embedLabel(e)))
		sb.WriteString(" ")
		sb.WriteString(e.Src)
	}
	return sb.String()
}

func embedLabel(e media.Embed) string {
	switch {
	case e.Kind == media.EmbedImage:
		return "Image"
	case e.Title != "":
		return "Video"
	default:
		return "Embed"
	}
}
