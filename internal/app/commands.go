package app

import (
	"context"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/posts"
)

// Modal tags.
const (
	modalClear = "clear"
	modalOpen  = "open"
)

// locatedMsg carries the result of a location lookup.
type locatedMsg struct {
	pos geo.Position
	err error
}

func locateCmd(ctx context.Context, l *geo.Locator) tea.Cmd {
	return func() tea.Msg {
		pos, err := l.Locate(ctx)
		return locatedMsg{pos: pos, err: err}
	}
}

func validatePostID(s string) error {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 || id > posts.MaxID {
		return fmt.Errorf("enter a number from 1 to %d", posts.MaxID)
	}
	return nil
}
