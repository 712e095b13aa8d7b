package ui

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/olivier-w/tapburst/internal/config"
	"github.com/olivier-w/tapburst/internal/reaction"
)

const (
	defaultWidth  = 50
	defaultHeight = 24
	minCanvasRows = 5

	// header, buttons, stats and gauge; help adds its own lines
	chromeLines = 4

	hintText = "Tap to react!"
)

// Sounder plays the reaction sounds.
type Sounder interface {
	Pop()
	BurstPop()
	Toggle() bool
	Enabled() bool
}

type nopSounder struct{}

func (nopSounder) Pop()          {}
func (nopSounder) BurstPop()     {}
func (nopSounder) Toggle() bool  { return false }
func (nopSounder) Enabled() bool { return false }

// Model is the Bubbletea model for the tapburst TUI.
type Model struct {
	settings config.Settings
	manager  *reaction.Manager
	clock    *reaction.ManualClock
	sound    Sounder
	logger   *log.Logger
	rng      *rand.Rand

	background colorful.Color
	burst      BurstMode
	tally      *tally
	springs    springField
	gauge      progress.Model
	help       help.Model
	keys       keyMap

	width    int
	height   int
	started  time.Time
	stats    string
	quitting bool
}

// New creates a Model driving manager. The model advances clock on every
// frame, so manager must have been created with it.
func New(s config.Settings, manager *reaction.Manager, clock *reaction.ManualClock, snd Sounder, logger *log.Logger) Model {
	if snd == nil {
		snd = nopSounder{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := clock.Now()
	// One pulse per button, plus the capacity gauge.
	springs := newSpringField(frameRate, len(s.Emojis)+1, 6, 0.6)
	gauge := progress.New(
		progress.WithGradient("#34c759", "#ff3b5c"),
		progress.WithoutPercentage(),
	)
	m := Model{
		settings:   s,
		manager:    manager,
		clock:      clock,
		sound:      snd,
		logger:     logger,
		rng:        rand.New(rand.NewPCG(uint64(now.UnixNano()), 1)),
		background: parseHex(s.Window.Background),
		tally:      newTally(),
		springs:    springs,
		gauge:      gauge,
		help:       help.New(),
		keys:       newKeyMap(),
		started:    now,
	}
	m.refreshStats()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(), tickCmd(), tea.SetWindowTitle("tapburst"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch {
		case key.Matches(msg, m.keys.React):
			if i, ok := reactionIndex(msg); ok && i < len(m.settings.Emojis) {
				m.react(i, m.centre(), false)
			}
		case key.Matches(msg, m.keys.Random):
			m.react(m.randomReaction(), m.centre(), false)
		case key.Matches(msg, m.keys.Burst):
			m.burst = m.burst.Next()
			m.logger.Debug("burst mode", "mode", m.burst)
		case key.Matches(msg, m.keys.Sound):
			on := m.sound.Toggle()
			m.logger.Debug("sound toggled", "enabled", on)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		cols, rows := m.canvasSize()
		switch {
		case msg.Y >= 1 && msg.Y < 1+rows:
			x := (float64(msg.X) + 0.5) / float64(cols) * float64(m.settings.Window.Width)
			m.react(m.randomReaction(), x, true)
		case msg.Y == 1+rows:
			if i, ok := buttonAt(m.settings.Emojis, msg.X); ok {
				m.react(i, m.centre(), false)
			}
		}
		return m, nil

	case frameMsg:
		m.clock.Set(time.Time(msg))
		m.manager.Update()
		for i := range m.settings.Emojis {
			m.springs.step(i, 0)
		}
		load := float64(m.manager.ActiveCount()) / float64(m.manager.Tuning().MaxActive)
		m.springs.step(len(m.settings.Emojis), load)
		return m, frameCmd()

	case statsTickMsg:
		m.refreshStats()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 2*indent
		return m, nil
	}

	return m, nil
}

// react spawns catalog entry i. Keyboard and button presses launch around
// x and honour burst mode. Clicks on the canvas launch one reaction exactly
// at x.
func (m *Model) react(i int, x float64, exact bool) {
	if i < 0 || i >= len(m.settings.Emojis) {
		return
	}
	r := m.settings.Emojis[i]

	n := 1
	if !exact {
		n = m.burst.Count(m.rng)
	}
	for range n {
		switch {
		case exact:
			m.manager.SpawnAt(r.Icon, r.Color, x)
		case m.burst == BurstOn:
			jitter := m.settings.Animation.BurstJitter
			m.manager.SpawnAt(r.Icon, r.Color, x+(m.rng.Float64()*2-1)*jitter)
		default:
			m.manager.Spawn(r.Icon, r.Color)
		}
	}

	m.tally.add(r.Icon, n)
	m.springs.kick(i, 1)
	if n > 1 {
		m.sound.BurstPop()
	} else {
		m.sound.Pop()
	}
	m.logger.Debug("reaction", "glyph", r.Icon, "count", n, "active", m.manager.ActiveCount())
}

func (m Model) centre() float64 {
	return float64(m.settings.Window.Width) / 2
}

func (m *Model) randomReaction() int {
	if len(m.settings.Emojis) == 0 {
		return -1
	}
	return m.rng.IntN(len(m.settings.Emojis))
}

func (m *Model) refreshStats() {
	uptime := m.clock.Now().Sub(m.started)
	m.stats = renderStats(m.manager.TotalSpawned(), m.manager.ActiveCount(), m.tally, uptime)
}

func (m Model) size() (int, int) {
	w, h := m.width, m.height
	if w < 30 {
		w = defaultWidth
	}
	if h < chromeLines+minCanvasRows {
		h = defaultHeight
	}
	return w, h
}

// canvasSize is the number of terminal cells given to the floating
// reactions, directly below the header line.
func (m Model) canvasSize() (cols, rows int) {
	w, h := m.size()
	helpLines := strings.Count(m.help.View(m.keys), "\n") + 1
	return w, max(h-chromeLines-helpLines, minCanvasRows)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, _ := m.size()
	cols, rows := m.canvasSize()

	cv := newCanvas(cols, rows, float64(m.settings.Window.Width), float64(m.settings.CanvasHeight()), m.background)
	renderReactions(cv, m.manager.Emojis(), m.settings.Animation.SpawnSize)
	if m.tally.total == 0 {
		cv.drawText(rows/2, hintText, colorful.Color{R: 0.6, G: 0.6, B: 0.7})
	}

	label := fmt.Sprintf(" %d/%d", m.manager.ActiveCount(), m.manager.Tuning().MaxActive)
	m.gauge.Width = max(w-2*indent-len(label), 10)
	gauge := m.gauge.ViewAs(clamp01(m.springs.value(len(m.settings.Emojis)))) + gaugeLabelStyle.Render(label)

	pad := strings.Repeat(" ", indent)
	var b strings.Builder
	b.WriteString(pad + renderHeader(w, m.burst, m.sound.Enabled()) + "\n")
	b.WriteString(cv.render(currentColorProfile()) + "\n")
	b.WriteString(renderButtons(m.settings.Emojis, &m.springs) + "\n")
	b.WriteString(pad + statsStyle.Render(m.stats) + "\n")
	b.WriteString(pad + gauge + "\n")
	b.WriteString(pad + m.help.View(m.keys))
	return b.String()
}
