package view

import (
	"context"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/timezone-buddy/internal/types"
)

// Loader fetches the current buddy list.
type Loader func(ctx context.Context) ([]types.Buddy, error)

type (
	tickMsg   time.Time
	loadedMsg struct {
		list []types.Buddy
		err  error
	}
)

// liveModel keeps the menu bar on screen, redrawing on the minute.
type liveModel struct {
	ctx    context.Context
	load   Loader
	now    func() time.Time
	use24h bool
	st     styles

	// loading stays true until the first load finishes.
	loading bool

	list []types.Buddy
	err  error
	at   time.Time
}

func newLiveModel(ctx context.Context, r *lipgloss.Renderer, load Loader, now func() time.Time, use24h bool) liveModel {
	return liveModel{
		ctx:    ctx,
		load:   load,
		now:    now,
		use24h: use24h,
		st:     newStyles(r),
		at:     now(),

		loading: true,
	}
}

func (m liveModel) Init() tea.Cmd {
	return tea.Batch(m.reload(), tick())
}

func (m liveModel) reload() tea.Cmd {
	return func() tea.Msg {
		list, err := m.load(m.ctx)
		return loadedMsg{list: list, err: err}
	}
}

// tick fires on the next wall-clock minute boundary.
func tick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.reload()
		}
	case tickMsg:
		m.at = m.now()
		return m, tea.Batch(m.reload(), tick())
	case loadedMsg:
		m.list, m.err = msg.list, msg.err
		m.loading = false
		m.at = m.now()
	}
	return m, nil
}

func (m liveModel) View() string {
	var b strings.Builder
	switch {
	case m.loading:
		b.WriteString(m.st.title.Render(MenuBarTooltip) + "\n")
		b.WriteString("  " + m.st.dim.Render("Loading…") + "\n")
	case m.err != nil:
		b.WriteString(m.st.failure.Render("Failed to load buddies: "+m.err.Error()) + "\n")
	default:
		b.WriteString(menuBarString(m.st, BuildMenuBar(m.list, m.at, m.use24h)))
	}
	b.WriteString("\n" + m.st.dim.Render("r reload • q quit") + "\n")
	return b.String()
}

// RunLive shows the menu bar on out until the user quits or ctx ends.
func RunLive(ctx context.Context, in io.Reader, out io.Writer, load Loader, now func() time.Time, use24h bool) error {
	m := newLiveModel(ctx, lipgloss.NewRenderer(out), load, now, use24h)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}
