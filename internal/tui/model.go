package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bleathingman/iron-system/internal/engine"
	"github.com/bleathingman/iron-system/internal/storage"
	"github.com/bleathingman/iron-system/internal/ui"
)

// rolloverEvery is how often the board re-runs the day rollover.
const rolloverEvery = time.Minute

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	stats   *storage.Stats
	pool    []storage.Objective
	elite   *engine.EliteOffer
	catalog []storage.Objective
	today   time.Time

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	stats   *storage.Stats
	pool    []storage.Objective
	elite   *engine.EliteOffer
	catalog []storage.Objective
	today   time.Time
	err     error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(rolloverEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// loadCmd runs the rollover for the current level, then reads the board.
func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st, err := m.svc.LoadStats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		level := engine.LevelForTotalXP(st.TotalExp)
		if _, err := m.svc.Tick(m.ctx, level); err != nil {
			return loadedMsg{err: err}
		}
		pool, err := m.svc.LoadDailyObjectives(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		elite, err := m.svc.LoadEliteDaily(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		catalog, err := m.svc.LoadObjectivesForLevel(m.ctx, level)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stats: st, pool: pool, elite: elite, catalog: catalog, today: m.svc.Today()}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Complete(m.ctx, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tickCmd())
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.stats = msg.stats
		m.pool = msg.pool
		m.elite = msg.elite
		m.catalog = msg.catalog
		m.today = msg.today
		if n := len(m.rows()); m.selected >= n {
			m.selected = max(n-1, 0)
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = completeLog(msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			rows := m.rows()
			if m.selected < 0 || m.selected >= len(rows) {
				return m, nil
			}
			r := rows[m.selected]
			if !r.open {
				m.lastLog = "Already done for this period."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", r.obj.ID)
			return m, m.completeCmd(r.obj.ID)
		}
	}
	return m, nil
}

func completeLog(res *engine.CompleteResult) string {
	if !res.Validated {
		return fmt.Sprintf("%s is on cooldown.", res.ObjectiveID)
	}
	parts := []string{fmt.Sprintf("Completed %s: +%d XP", res.ObjectiveID, res.XPAwarded)}
	if res.BonusGranted {
		parts = append(parts, fmt.Sprintf("daily bonus +%d", res.BonusXP))
	}
	if res.LevelUp {
		parts = append(parts, fmt.Sprintf("level %d → %d", res.LevelBefore, res.LevelAfter))
	}
	for _, id := range res.Unlocked {
		parts = append(parts, "unlocked "+ui.Achievement(id).Title)
	}
	return strings.Join(parts, " | ")
}

type section int

const (
	sectionPool section = iota
	sectionElite
	sectionCatalog
)

type boardRow struct {
	section section
	obj     storage.Objective
	open    bool
}

// rows lists the selectable objectives: today's pool, the elite, then the
// full catalog for the current level.
func (m boardModel) rows() []boardRow {
	var out []boardRow
	add := func(sec section, o storage.Objective) {
		out = append(out, boardRow{section: sec, obj: o, open: engine.IsOpen(o, m.today)})
	}
	for _, o := range m.pool {
		add(sectionPool, o)
	}
	if m.elite != nil {
		add(sectionElite, m.elite.Objective)
	}
	for _, o := range m.catalog {
		add(sectionCatalog, o)
	}
	return out
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	n := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < n; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.stats == nil {
		return "Iron System | loading…"
	}
	lvl := engine.LevelForTotalXP(m.stats.TotalExp)
	bar := progressBar(engine.XPInLevel(m.stats.TotalExp), engine.XPPerLevel, 30)
	return fmt.Sprintf("Iron System | Level %d | XP %d %s | Streak %d | Combo %d",
		lvl, m.stats.TotalExp, bar, m.stats.CurrentStreak, m.stats.ComboValidations)
}

func (m boardModel) renderSidebar() string {
	if m.stats == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Today"}
	lines = append(lines, fmt.Sprintf("- goal %s", progressBar(m.svc.DailyProgress(m.stats), 100, 14)))
	lines = append(lines, fmt.Sprintf("- best streak %d", m.stats.BestStreak))
	lines = append(lines, fmt.Sprintf("- validations %d", m.stats.TotalValidations))
	lines = append(lines, "")
	lines = append(lines, "Reps")
	for _, ex := range engine.Exercises {
		lines = append(lines, fmt.Sprintf("- %s %d", ex, engine.Reps(*m.stats, ex)))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	rows := m.rows()
	var out []string
	current := section(-1)
	for i, r := range rows {
		if r.section != current {
			if current >= 0 {
				out = append(out, "")
			}
			out = append(out, sectionTitle(r.section))
			current = r.section
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if !r.open {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s %s (+%d, %s)", cursor, mark, ui.CategoryIcon(r.obj.Category), r.obj.Title, r.obj.Value, r.obj.Frequency))
	}
	if len(m.pool) == 0 {
		out = append([]string{"Daily pool: cleared"}, out...)
	}
	return strings.Join(out, "\n")
}

func sectionTitle(s section) string {
	switch s {
	case sectionPool:
		return "Daily pool"
	case sectionElite:
		return "Elite"
	default:
		return "Objectives"
	}
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = min(max(value, 0), total)
	filled := min(value*width/total, width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
