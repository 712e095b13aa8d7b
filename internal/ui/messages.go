package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	frameRate     = 60
	statsInterval = 200 * time.Millisecond
)

type frameMsg time.Time
type statsTickMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func tickCmd() tea.Cmd {
	return tea.Tick(statsInterval, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}
