// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/wayfarer/internal/config"
	"github.com/zjrosen/wayfarer/internal/favorites"
	"github.com/zjrosen/wayfarer/internal/geo"
	"github.com/zjrosen/wayfarer/internal/keys"
	"github.com/zjrosen/wayfarer/internal/log"
	"github.com/zjrosen/wayfarer/internal/posts"
	"github.com/zjrosen/wayfarer/internal/pubsub"
	"github.com/zjrosen/wayfarer/internal/theme"
	"github.com/zjrosen/wayfarer/internal/ui/logoverlay"
	"github.com/zjrosen/wayfarer/internal/ui/markdown"
	"github.com/zjrosen/wayfarer/internal/ui/modal"
	"github.com/zjrosen/wayfarer/internal/ui/styles"
	"github.com/zjrosen/wayfarer/internal/ui/toaster"
	"github.com/zjrosen/wayfarer/internal/watcher"
)

// Config wires the collaborators into the model. Registry, Fetcher and
// Theme are required.
type Config struct {
	Registry *favorites.Registry
	Fetcher  *posts.Fetcher
	Theme    *theme.Service

	// Locator is optional. Without it the locate key reports that location
	// is unsupported.
	Locator *geo.Locator

	// Watcher is optional. On ConfigChanged, Reload is called and the new
	// theme settings are applied.
	Watcher *watcher.Watcher
	Reload  func() (config.Config, error)

	UI    config.UIConfig
	Debug bool
}

// Model is the root application state.
type Model struct {
	registry *favorites.Registry
	fetcher  *posts.Fetcher
	theme    *theme.Service
	locator  *geo.Locator
	watcher  *watcher.Watcher
	reload   func() (config.Config, error)
	keys     keys.KeyMap

	ctx    context.Context
	cancel context.CancelFunc

	// pubsub bridges from collaborator callbacks into the update loop
	postBroker    *pubsub.Broker[posts.Outcome]
	favBroker     *pubsub.Broker[[]favorites.Favorite]
	themeBroker   *pubsub.Broker[theme.Mode]
	postListener  *pubsub.ContinuousListener[posts.Outcome]
	favListener   *pubsub.ContinuousListener[[]favorites.Favorite]
	themeListener *pubsub.ContinuousListener[theme.Mode]
	watchListener *pubsub.ContinuousListener[watcher.WatcherEvent]
	logListener   *pubsub.ContinuousListener[string]
	favSub        *favorites.Subscription
	themeSub      *theme.Subscription

	// Destination panel
	post     *posts.Post
	postErr  string
	loading  bool
	renderer *markdown.Renderer
	body     string

	// Favorites panel
	favs   []favorites.Favorite
	cursor int

	// Location
	locating bool
	location *geo.Position

	mode          theme.Mode
	markdownStyle string
	showStatusBar bool
	showHelp      bool
	modal         *modal.Model
	debug         bool
	lastLog       string
	logs          logoverlay.Model

	spinner spinner.Model
	toaster toaster.Model

	width  int
	height int
}

// New validates cfg and builds the model. It subscribes to the registry
// and theme service; call Close to release them.
func New(cfg Config) (Model, error) {
	var missing []error
	if cfg.Registry == nil {
		missing = append(missing, errors.New("favorites registry"))
	}
	if cfg.Fetcher == nil {
		missing = append(missing, errors.New("post fetcher"))
	}
	if cfg.Theme == nil {
		missing = append(missing, errors.New("theme service"))
	}
	if len(missing) > 0 {
		return Model{}, fmt.Errorf("app: missing required collaborator: %w", errors.Join(missing...))
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		registry:      cfg.Registry,
		fetcher:       cfg.Fetcher,
		theme:         cfg.Theme,
		locator:       cfg.Locator,
		watcher:       cfg.Watcher,
		reload:        cfg.Reload,
		keys:          keys.DefaultKeyMap(),
		ctx:           ctx,
		cancel:        cancel,
		postBroker:    pubsub.NewBroker[posts.Outcome](),
		favBroker:     pubsub.NewBroker[[]favorites.Favorite](pubsub.WithOverflow(pubsub.KeepLatest)),
		themeBroker:   pubsub.NewBroker[theme.Mode](pubsub.WithOverflow(pubsub.KeepLatest)),
		favs:          cfg.Registry.List(),
		loading:       true,
		mode:          cfg.Theme.Current(),
		markdownStyle: cfg.UI.MarkdownStyle,
		showStatusBar: cfg.UI.ShowStatusBar,
		debug:         cfg.Debug,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.SpinnerStyle)),
		toaster:       toaster.New(),
		logs:          logoverlay.New(),
	}

	m.postListener = pubsub.NewContinuousListener[posts.Outcome](ctx, m.postBroker)
	m.favListener = pubsub.NewContinuousListener[[]favorites.Favorite](ctx, m.favBroker)
	m.themeListener = pubsub.NewContinuousListener[theme.Mode](ctx, m.themeBroker)
	m.favSub = cfg.Registry.Subscribe(pubsub.Forward(m.favBroker, pubsub.UpdatedEvent))
	m.themeSub = cfg.Theme.Subscribe(pubsub.Forward(m.themeBroker, pubsub.UpdatedEvent))

	if cfg.Watcher != nil {
		m.watchListener = pubsub.NewContinuousListener[watcher.WatcherEvent](ctx, cfg.Watcher.Broker())
	}
	if cfg.Debug {
		m.logListener = log.NewListener(ctx)
	}

	styles.ApplyMode(m.mode)
	return m, nil
}

// Init starts the listeners and the first fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.postListener.Listen(),
		m.favListener.Listen(),
		m.themeListener.Listen(),
	}
	if m.watchListener != nil {
		cmds = append(cmds, m.watchListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	m.requestPost()
	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

// requestPost starts fetching a random destination. The outcome arrives as
// a pubsub.Event[posts.Outcome]; superseded requests never arrive.
func (m Model) requestPost() {
	m.fetcher.Start(m.ctx, pubsub.Forward(m.postBroker, pubsub.UpdatedEvent))
}

func (m *Model) startFetch() tea.Cmd {
	m.loading = true
	m.requestPost()
	return m.spinner.Tick
}

func (m *Model) startFetchID(id int) tea.Cmd {
	m.loading = true
	m.fetcher.StartByID(m.ctx, id, pubsub.Forward(m.postBroker, pubsub.UpdatedEvent))
	return m.spinner.Tick
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.logs.SetSize(msg.Width, msg.Height)
		if m.modal != nil {
			resized := m.modal.SetSize(msg.Width, msg.Height)
			m.modal = &resized
		}
		m.rebuildRenderer()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.loading && !m.locating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pubsub.Event[posts.Outcome]:
		m.handleOutcome(msg.Payload)
		return m, tea.Batch(m.postListener.Listen(), m.toastCmd())

	case pubsub.Event[[]favorites.Favorite]:
		m.favs = msg.Payload
		m.clampCursor()
		return m, m.favListener.Listen()

	case pubsub.Event[theme.Mode]:
		m.applyMode(msg.Payload)
		return m, m.themeListener.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		cmd := m.handleWatcherEvent(msg.Payload)
		if m.watchListener != nil {
			cmd = tea.Batch(cmd, m.watchListener.Listen())
		}
		return m, cmd

	case log.LogEvent:
		m.lastLog = msg.Payload
		if m.logs.Visible() {
			m.logs.Refresh()
		}
		if m.logListener != nil {
			return m, m.logListener.Listen()
		}
		return m, nil

	case locatedMsg:
		return m.handleLocated(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case modal.SubmitMsg:
		m.modal = nil
		return m.handleModalSubmit(msg)

	case modal.CancelMsg:
		m.modal = nil
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil
	}

	// Cursor blink and other component messages.
	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.modal.Update(msg)
	m.modal = &updated
	return m, cmd
}

func (m Model) openModal(cfg modal.Config) (tea.Model, tea.Cmd) {
	dlg := modal.New(cfg).SetSize(m.width, m.height)
	m.modal = &dlg
	return m, dlg.Init()
}

func (m Model) handleModalSubmit(msg modal.SubmitMsg) (tea.Model, tea.Cmd) {
	switch msg.Tag {
	case modalClear:
		return m.clearFavorites()
	case modalOpen:
		id, err := strconv.Atoi(msg.Value)
		if err != nil {
			return m, nil
		}
		return m, m.startFetchID(id)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.logs.Visible() {
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatusBar = !m.showStatusBar
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if !m.debug {
			return m.showToast("Debug logging is off (run with --debug)", toaster.StyleInfo)
		}
		m.logs.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.favs)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.startFetch()

	case key.Matches(msg, m.keys.Open):
		return m.openModal(modal.Config{
			Tag:          modalOpen,
			Title:        "Open destination",
			Input:        &modal.InputConfig{Label: "Post id", Placeholder: fmt.Sprintf("1-%d", posts.MaxID), MaxLength: 6, Validate: validatePostID},
			ConfirmLabel: "Open",
		})

	case key.Matches(msg, m.keys.Favorite):
		return m.addFavorite()

	case key.Matches(msg, m.keys.Remove):
		return m.removeSelected()

	case key.Matches(msg, m.keys.Clear):
		if len(m.favs) == 0 {
			return m.showToast("No favorites to clear", toaster.StyleInfo)
		}
		return m.openModal(modal.Config{
			Tag:            modalClear,
			Title:          "Clear favorites?",
			Message:        fmt.Sprintf("This removes all %d saved destinations.", len(m.favs)),
			ConfirmLabel:   "Clear",
			ConfirmVariant: modal.ButtonDanger,
		})

	case key.Matches(msg, m.keys.ToggleTheme):
		mode, err := m.theme.Toggle()
		if err != nil {
			return m.showToast("Could not save theme: "+err.Error(), toaster.StyleError)
		}
		return m.showToast("Theme: "+mode.String(), toaster.StyleInfo)

	case key.Matches(msg, m.keys.FollowTheme):
		if err := m.theme.Reset(); err != nil {
			return m.showToast("Could not reset theme: "+err.Error(), toaster.StyleError)
		}
		return m.showToast("Following system theme ("+m.theme.Current().String()+")", toaster.StyleInfo)

	case key.Matches(msg, m.keys.Locate):
		return m.locate()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.cursor < len(m.favs)-1 {
			m.cursor++
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i := range m.favs {
		if z := zone.Get(favoriteZoneID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) handleOutcome(out posts.Outcome) {
	switch out.Kind {
	case posts.OutcomeSuccess:
		post := out.Post
		m.post = &post
		m.postErr = ""
		m.loading = false
		m.renderBody()
	case posts.OutcomeFailure:
		m.postErr = out.Message
		m.loading = false
		m.toaster = m.toaster.Show(out.Message, toaster.StyleError)
	}
}

func (m Model) addFavorite() (tea.Model, tea.Cmd) {
	if m.post == nil {
		return m.showToast("No destination loaded yet", toaster.StyleWarn)
	}
	added, err := m.registry.Add(*m.post)
	switch {
	case err != nil:
		return m.showToast("Could not save favorites: "+err.Error(), toaster.StyleError)
	case !added:
		return m.showToast("Already in favorites", toaster.StyleInfo)
	}
	m.cursor = 0
	return m.showToast(fmt.Sprintf("Added %q to favorites", m.post.Title), toaster.StyleSuccess)
}

func (m Model) removeSelected() (tea.Model, tea.Cmd) {
	if len(m.favs) == 0 {
		return m, nil
	}
	fav := m.favs[m.cursor]
	if err := m.registry.Remove(fav.ID); err != nil {
		return m.showToast("Could not save favorites: "+err.Error(), toaster.StyleError)
	}
	return m.showToast(fmt.Sprintf("Removed %q", fav.Title), toaster.StyleSuccess)
}

func (m Model) clearFavorites() (tea.Model, tea.Cmd) {
	if err := m.registry.Clear(); err != nil {
		return m.showToast("Could not save favorites: "+err.Error(), toaster.StyleError)
	}
	m.cursor = 0
	return m.showToast("Favorites cleared", toaster.StyleSuccess)
}

func (m Model) locate() (tea.Model, tea.Cmd) {
	if m.locator == nil || !m.locator.Supported() {
		return m.showToast("Location is not supported", toaster.StyleWarn)
	}
	if m.locating {
		return m, nil
	}
	m.locating = true
	return m, tea.Batch(locateCmd(m.ctx, m.locator), m.spinner.Tick)
}

func (m Model) handleLocated(msg locatedMsg) (tea.Model, tea.Cmd) {
	m.locating = false
	if msg.err != nil {
		var geoErr *geo.Error
		if errors.As(msg.err, &geoErr) {
			return m.showToast(geoErr.Message(), toaster.StyleError)
		}
		return m.showToast(msg.err.Error(), toaster.StyleError)
	}
	pos := msg.pos
	m.location = &pos
	return m.showToast("You are near "+pos.String(), toaster.StyleSuccess)
}

func (m *Model) handleWatcherEvent(ev watcher.WatcherEvent) tea.Cmd {
	if ev.Kind != watcher.ConfigChanged || m.reload == nil {
		return nil
	}
	cfg, err := m.reload()
	if err != nil {
		log.ErrorErr(log.CatConfig, "Reloading config failed", err, "path", ev.Path)
		m.toaster = m.toaster.Show("Config not reloaded: "+err.Error(), toaster.StyleError)
		return m.toastCmd()
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		m.toaster = m.toaster.Show("Theme not applied: "+err.Error(), toaster.StyleError)
		return m.toastCmd()
	}
	if mode, err := theme.ParseMode(cfg.Theme.System); err == nil {
		m.theme.SystemChanged(mode)
	} else {
		m.theme.SystemCleared()
	}
	m.markdownStyle = cfg.UI.MarkdownStyle
	m.showStatusBar = cfg.UI.ShowStatusBar
	m.spinner.Style = styles.SpinnerStyle
	m.rebuildRenderer()

	log.Info(log.CatConfig, "Config reloaded", "path", ev.Path)
	m.toaster = m.toaster.Show("Configuration reloaded", toaster.StyleInfo)
	return m.toastCmd()
}

func (m *Model) applyMode(mode theme.Mode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	styles.ApplyMode(mode)
	m.rebuildRenderer()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.favs) {
		m.cursor = len(m.favs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) showToast(message string, style toaster.Style) (tea.Model, tea.Cmd) {
	m.toaster = m.toaster.Show(message, style)
	return m, m.toastCmd()
}

// toastCmd schedules dismissal of the current toast, if one is showing.
func (m Model) toastCmd() tea.Cmd {
	if !m.toaster.Visible() {
		return nil
	}
	return toaster.ScheduleDismiss(m.toaster.Seq(), toaster.DefaultDuration)
}

// Close releases subscriptions, cancels any fetch and stops the watcher.
func (m *Model) Close() error {
	if m.favSub != nil {
		m.favSub.Unsubscribe()
	}
	if m.themeSub != nil {
		m.themeSub.Unsubscribe()
	}
	if m.fetcher != nil {
		m.fetcher.Cancel()
	}
	if m.cancel != nil {
		m.cancel()
	}
	if m.postBroker != nil {
		m.postBroker.Close()
		m.favBroker.Close()
		m.themeBroker.Close()
	}
	if m.watcher != nil {
		return m.watcher.Stop()
	}
	return nil
}
