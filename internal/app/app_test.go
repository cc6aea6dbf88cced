package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/wayfarer/internal/config"
	"github.com/zjrosen/wayfarer/internal/favorites"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/kv"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/pubsub"
	"github.com/zjrosen/wayfarer/internal/theme"
	"github.com/zjrosen/wayfarer/internal/ui/toaster"
	"github.com/zjrosen/wayfarer/internal/watcher"
)

var (
	lisbon = posts.Post{ID: 7, Title: "Lisbon", Body: "Trams and *pastéis de nata*.", UserID: 1}
	kyoto  = posts.Post{ID: 12, Title: "Kyoto", Body: "Temples and gardens.", UserID: 2}
)

type stubGetter map[int]posts.Post

func (g stubGetter) Get(_ context.Context, id int) (posts.Post, error) {
	p, ok := g[id]
	if !ok {
		return posts.Post{}, &posts.StatusError{StatusCode: 404, URL: fmt.Sprintf("/posts/%d", id)}
	}
	return p, nil
}

type fixture struct {
	registry *favorites.Registry
	theme    *theme.Service
	store    *kv.MemoryStore
}

func newTestModel(t *testing.T, opts ...func(*Config)) (Model, fixture) {
	t.Helper()

	prev := lipgloss.HasDarkBackground()
	t.Cleanup(func() { lipgloss.SetHasDarkBackground(prev) })

	store := kv.NewMemoryStore(0)
	fx := fixture{
		registry: favorites.New(store),
		theme:    theme.NewService(store, theme.NewStaticPreference("dark")),
		store:    store,
	}
	cfg := Config{
		Registry: fx.registry,
		Fetcher:  posts.NewFetcher(stubGetter{7: lisbon, 12: kyoto}, posts.WithRandomID(func() int { return 7 })),
		Theme:    fx.theme,
		UI:       config.Defaults().UI,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	m, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model), fx
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return m
}

func withPost(t *testing.T, m Model, p posts.Post) Model {
	t.Helper()
	m, _ = update(t, m, pubsub.Event[posts.Outcome]{Payload: posts.Outcome{Kind: posts.OutcomeSuccess, Post: p}})
	return m
}

// deliverFavorites feeds the pending registry notification into the model.
func deliverFavorites(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.favListener.Listen()()
	require.IsType(t, pubsub.Event[[]favorites.Favorite]{}, msg)
	m, _ = update(t, m, msg)
	return m
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	require.ErrorContains(t, err, "favorites registry")
	require.ErrorContains(t, err, "post fetcher")
	require.ErrorContains(t, err, "theme service")
}

func TestNew_LoadsExistingFavorites(t *testing.T) {
	m, fx := newTestModel(t)
	_, err := fx.registry.Add(kyoto)
	require.NoError(t, err)
	m = deliverFavorites(t, m)

	require.Len(t, m.favs, 1)
	require.Contains(t, m.View(), "Kyoto")
	require.Contains(t, m.View(), "Favorites (1)")
}

func TestView_UntitledDestination(t *testing.T) {
	m, _ := newTestModel(t)
	m = withPost(t, m, posts.Post{ID: 31, Body: "No name yet."})

	require.Contains(t, m.View(), "(untitled)")
}

func TestUpdate_SuccessOutcomeShowsDestination(t *testing.T) {
	m, _ := newTestModel(t)
	require.True(t, m.loading)

	m = withPost(t, m, lisbon)

	require.False(t, m.loading)
	require.Equal(t, lisbon, *m.post)
	view := m.View()
	require.Contains(t, view, "Destination #7")
	require.Contains(t, view, "Lisbon")
	require.Contains(t, view, "Trams")
}

func TestUpdate_FailureOutcomeShowsToast(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, pubsub.Event[posts.Outcome]{Payload: posts.Outcome{
		Kind:    posts.OutcomeFailure,
		Message: "Failed to fetch destination (HTTP 503).",
	}})

	require.NotNil(t, cmd)
	require.False(t, m.loading)
	require.True(t, m.toaster.Visible())
	require.Contains(t, m.View(), "HTTP 503")
}

func TestFavorite_WithoutPostWarns(t *testing.T) {
	m, fx := newTestModel(t)

	m = press(t, m, 'f')

	require.Zero(t, fx.registry.Len())
	require.Equal(t, "No destination loaded yet", m.toaster.Message())
}

func TestFavorite_AddThenDuplicate(t *testing.T) {
	m, fx := newTestModel(t)
	m = withPost(t, m, lisbon)

	m = press(t, m, 'f')
	require.Equal(t, `Added "Lisbon" to favorites`, m.toaster.Message())
	require.True(t, fx.registry.Contains(7))
	m = deliverFavorites(t, m)
	require.Len(t, m.favs, 1)
	require.Contains(t, m.View(), "★")

	m = press(t, m, 'f')
	require.Equal(t, "Already in favorites", m.toaster.Message())
	require.Equal(t, 1, fx.registry.Len())
}

func TestFavorite_PersistFailureShowsError(t *testing.T) {
	registry := favorites.New(kv.NewMemoryStore(8))
	m, _ := newTestModel(t, func(c *Config) { c.Registry = registry })
	m = withPost(t, m, lisbon)

	m = press(t, m, 'f')

	require.Contains(t, m.toaster.Message(), "Could not save favorites")
	require.Zero(t, registry.Len())
}

func TestRemoveSelected(t *testing.T) {
	m, fx := newTestModel(t)
	_, err := fx.registry.Add(lisbon)
	require.NoError(t, err)
	m = deliverFavorites(t, m)
	_, err = fx.registry.Add(kyoto)
	require.NoError(t, err)
	m = deliverFavorites(t, m)

	// Newest first: Kyoto, Lisbon. Select Lisbon and remove it.
	m = press(t, m, 'j')
	require.Equal(t, 1, m.cursor)
	m = press(t, m, 'd')
	require.Equal(t, `Removed "Lisbon"`, m.toaster.Message())

	m = deliverFavorites(t, m)
	require.Equal(t, []int{12}, ids(m.favs))
	require.Zero(t, m.cursor, "cursor clamps to the shorter list")
}

func TestRemoveSelected_EmptyIsNoop(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, 'd')

	require.False(t, m.toaster.Visible())
}

func TestClearFavorites_Confirmed(t *testing.T) {
	m, fx := newTestModel(t)
	_, _ = fx.registry.Add(lisbon)
	_, _ = fx.registry.Add(kyoto)
	m = deliverFavorites(t, m)
	m = deliverFavorites(t, m)

	m = press(t, m, 'C')
	require.NotNil(t, m.modal)
	require.Contains(t, m.View(), "This removes all 2 saved destinations.")
	require.Equal(t, 2, fx.registry.Len(), "nothing cleared before confirming")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	require.Nil(t, m.modal)
	require.Equal(t, "Favorites cleared", m.toaster.Message())
	m = deliverFavorites(t, m)
	require.Empty(t, m.favs)
	require.Contains(t, m.View(), "No favorites yet")
}

func TestClearFavorites_Cancelled(t *testing.T) {
	m, fx := newTestModel(t)
	_, _ = fx.registry.Add(lisbon)
	m = deliverFavorites(t, m)

	m = press(t, m, 'C')
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, cmd())

	require.Nil(t, m.modal)
	require.Equal(t, 1, fx.registry.Len())
}

func TestClearFavorites_EmptyDoesNotPrompt(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, 'C')

	require.Nil(t, m.modal)
	require.Equal(t, "No favorites to clear", m.toaster.Message())
}

func TestOpenByID(t *testing.T) {
	m, _ := newTestModel(t)
	m = withPost(t, m, lisbon)

	m = press(t, m, 'o')
	require.NotNil(t, m.modal)
	// Keys go to the dialog, not the explorer.
	m = press(t, m, '1')
	m = press(t, m, '2')
	require.False(t, m.toaster.Visible())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Nil(t, m.modal)
	require.True(t, m.loading)

	m, _ = update(t, m, m.postListener.Listen()())
	require.Equal(t, kyoto, *m.post)
}

func TestOpenByID_RejectsOutOfRange(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, 'o')
	for _, r := range "500" {
		m = press(t, m, r)
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Nil(t, cmd)
	require.NotNil(t, m.modal)
	require.Contains(t, m.View(), "enter a number from 1 to 100")
}

func TestCursor_StaysInBounds(t *testing.T) {
	m, fx := newTestModel(t)
	_, _ = fx.registry.Add(lisbon)
	m = deliverFavorites(t, m)

	m = press(t, m, 'k')
	require.Zero(t, m.cursor)
	m = press(t, m, 'j')
	require.Zero(t, m.cursor)

	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	require.Zero(t, m.cursor)
}

func TestToggleTheme(t *testing.T) {
	m, fx := newTestModel(t)
	require.Equal(t, theme.Dark, m.mode)

	m = press(t, m, 't')
	require.Equal(t, "Theme: light", m.toaster.Message())
	require.Equal(t, theme.Light, fx.theme.Current())

	msg := m.themeListener.Listen()()
	m, _ = update(t, m, msg)
	require.Equal(t, theme.Light, m.mode)
	require.False(t, lipgloss.HasDarkBackground())
	require.Contains(t, m.View(), "theme: light (chosen)")

	value, ok, err := fx.store.Get(kv.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "light", value)
}

func TestFollowSystemTheme(t *testing.T) {
	m, fx := newTestModel(t)
	require.NoError(t, fx.theme.Set(theme.Light))

	m = press(t, m, 'T')

	require.Equal(t, "Following system theme (dark)", m.toaster.Message())
	_, explicit := fx.theme.Explicit()
	require.False(t, explicit)
}

func TestLocate_Unsupported(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, 'g')

	require.Equal(t, "Location is not supported", m.toaster.Message())
	require.False(t, m.locating)
}

func TestLocate_Success(t *testing.T) {
	provider := geo.ProviderFunc(func(context.Context, geo.Options) (geo.Position, error) {
		return geo.Position{Latitude: 38.72, Longitude: -9.14, Place: "Lisbon, Portugal"}, nil
	})
	m, _ := newTestModel(t, func(c *Config) {
		c.Locator = geo.NewLocator(provider, geo.WithPermission(geo.Granted))
	})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	require.True(t, m.locating)
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "locating")

	located := locateCmd(context.Background(), m.locator)()
	m, _ = update(t, m, located)

	require.False(t, m.locating)
	require.Equal(t, "Lisbon, Portugal", m.location.Place)
	require.Contains(t, m.toaster.Message(), "Lisbon, Portugal")
	require.Contains(t, m.View(), "near")
}

func TestLocate_ErrorUsesFixedMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m.locating = true

	m, _ = update(t, m, locatedMsg{err: &geo.Error{Kind: geo.PermissionDenied}})

	require.False(t, m.locating)
	require.Equal(t, "Location access was denied.", m.toaster.Message())
	require.Nil(t, m.location)
}

func TestLocate_PlainError(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, locatedMsg{err: errors.New("boom")})

	require.Equal(t, "boom", m.toaster.Message())
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, '?')
	require.True(t, m.showHelp)
	require.Contains(t, m.View(), "new destination")

	// Keys other than close and quit are swallowed while help is open.
	m = press(t, m, 'f')
	require.False(t, m.toaster.Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.showHelp)
}

func TestToggleStatusBar(t *testing.T) {
	m, _ := newTestModel(t)
	require.Contains(t, m.View(), "? help")

	m = press(t, m, 'w')

	require.NotContains(t, m.View(), "? help")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestToastDismissal(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, 'f')
	stale := toaster.DismissMsg{Seq: m.toaster.Seq()}
	m = press(t, m, 'g')

	m, _ = update(t, m, stale)
	require.True(t, m.toaster.Visible())

	m, _ = update(t, m, toaster.DismissMsg{Seq: m.toaster.Seq()})
	require.False(t, m.toaster.Visible())
}

func TestConfigReload(t *testing.T) {
	reloaded := config.Defaults()
	reloaded.Theme.System = "light"
	reloaded.UI.ShowStatusBar = false
	m, fx := newTestModel(t, func(c *Config) {
		c.Reload = func() (config.Config, error) { return reloaded, nil }
	})

	m, _ = update(t, m, pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged}})

	require.Equal(t, "Configuration reloaded", m.toaster.Message())
	require.Equal(t, theme.Light, fx.theme.Current())
	require.False(t, m.showStatusBar)
}

func TestConfigReload_UnsetSystemThemeFallsBack(t *testing.T) {
	svc := theme.NewService(kv.NewMemoryStore(0), theme.StaticPreference{})
	svc.SystemChanged(theme.Dark)
	reloaded := config.Defaults()
	reloaded.Theme.System = ""
	m, _ := newTestModel(t, func(c *Config) {
		c.Theme = svc
		c.Reload = func() (config.Config, error) { return reloaded, nil }
	})
	require.Equal(t, theme.Dark, svc.Current())

	m, _ = update(t, m, pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged}})

	require.Equal(t, "Configuration reloaded", m.toaster.Message())
	require.Equal(t, theme.Light, svc.Current())
}

func TestConfigReload_Error(t *testing.T) {
	m, _ := newTestModel(t, func(c *Config) {
		c.Reload = func() (config.Config, error) { return config.Config{}, errors.New("bad yaml") }
	})

	m, _ = update(t, m, pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged}})

	require.Equal(t, "Config not reloaded: bad yaml", m.toaster.Message())
}

func TestConfigReload_IgnoresWatcherErrors(t *testing.T) {
	called := false
	m, _ := newTestModel(t, func(c *Config) {
		c.Reload = func() (config.Config, error) { called = true; return config.Defaults(), nil }
	})

	m, _ = update(t, m, pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.WatcherError, Error: errors.New("overflow")}})

	require.False(t, called)
	require.False(t, m.toaster.Visible())
}

func TestView_BeforeWindowSize(t *testing.T) {
	m, err := New(Config{
		Registry: favorites.New(kv.NewMemoryStore(0)),
		Fetcher:  posts.NewFetcher(stubGetter{}),
		Theme:    theme.NewService(kv.NewMemoryStore(0), theme.StaticPreference{}),
	})
	require.NoError(t, err)
	defer func() { _ = m.Close() }()

	require.Equal(t, "Loading...", m.View())
}

func TestApp_FetchAndFavoriteEndToEnd(t *testing.T) {
	m, fx := newTestModel(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Destination #7"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Favorites (1)"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, []int{7}, ids(final.favs))
	require.True(t, fx.registry.Contains(7))
}

func ids(favs []favorites.Favorite) []int {
	out := make([]int, len(favs))
	for i, f := range favs {
		out[i] = f.ID
	}
	return out
}

func TestLogs_RequireDebug(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, 'L')

	require.False(t, m.logs.Visible())
	require.Contains(t, m.toaster.Message(), "--debug")
}

func TestLogs_OverlayInDebugMode(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(log.InitWriter(&buf))
	m, _ := newTestModel(t, func(c *Config) { c.Debug = true })
	log.Info(log.CatFavs, "added favorite", "id", 7)

	m = press(t, m, 'L')
	require.True(t, m.logs.Visible())
	require.Contains(t, m.View(), "added favorite")

	// Explorer keys are captured while the overlay is open.
	m = press(t, m, 'f')
	require.False(t, m.toaster.Visible())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.logs.Visible())
}
