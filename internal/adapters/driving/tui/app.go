package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/views/categories"
	"github.com/custodia-labs/cloudtiles/internal/adapters/driving/tui/views/services"
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// The catalog browser is only touched from Update, except while a load is
// in flight, when the load command owns it and Update ignores input.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings shared by every view.
	keymap *keymap.KeyMap

	// categoriesView is the category grid.
	categoriesView *categories.View

	// servicesView is the service grid of the selected category.
	servicesView *services.View

	// statusBar shows state and key hints on the last line.
	statusBar *status.Bar

	// help renders the full keybinding list.
	help help.Model

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is restored when the help view closes.
	previousView messages.ViewType

	// loading is set while the catalog is being fetched.
	loading bool

	// reloadPending records a dataset change seen during a load.
	reloadPending bool

	// screen is the last screen received from the browser.
	screen domain.Screen

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.Styles.FullKey = s.Title
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		categoriesView: categories.NewView(s, km),
		servicesView:   services.NewView(s, km),
		statusBar:      status.NewBar(s, km),
		help:           h,
		currentView:    messages.ViewLoading,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It starts the initial catalog load and the dataset watch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("cloudtiles"),
		a.startLoad(false),
		a.waitForChange(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		a.statusBar, cmd = a.statusBar.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.CatalogLoaded:
		return a, a.applyLoad(msg)

	case messages.DatasetChanged:
		if a.loading {
			a.reloadPending = true
			return a, a.waitForChange()
		}
		return a, tea.Batch(a.startLoad(true), a.waitForChange())

	case messages.ReloadRequested:
		if a.loading {
			return a, nil
		}
		return a, a.startLoad(true)

	case messages.CategorySelected:
		if a.loading {
			return a, nil
		}
		screen, err := a.ports.Browser.ShowIndex(msg.Index)
		if err != nil {
			a.setError(err)
			return a, nil
		}
		a.servicesView.SetScreen(screen)
		a.servicesView.Reset()
		a.show(screen)
		return a, nil

	case messages.TileToggled:
		if a.loading {
			return a, nil
		}
		screen, err := a.ports.Browser.Toggle(msg.Position)
		if err != nil {
			a.setError(err)
			return a, nil
		}
		a.servicesView.SetScreen(screen)
		a.show(screen)
		return a, nil

	case messages.BackRequested:
		if a.loading {
			return a, nil
		}
		screen := a.ports.Browser.Back()
		a.categoriesView.SetScreen(screen)
		a.show(screen)
		return a, nil

	case messages.LinkRequested:
		if a.loading {
			return a, nil
		}
		return a, a.linkAction(msg)

	case messages.LinkActionCompleted:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		if msg.Copied {
			a.statusBar.SetNotice("リンクをコピーしました: " + msg.Link)
		} else {
			a.statusBar.SetNotice("ブラウザで開きました: " + msg.Link)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to the active view
	switch a.currentView {
	case messages.ViewCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
	case messages.ViewServices:
		a.servicesView, cmd = a.servicesView.Update(msg)
	case messages.ViewLoading, messages.ViewLoadError, messages.ViewHelp:
		// These views don't handle other messages
	}
	return a, cmd
}

// handleKeyMsg handles global keys and forwards the rest to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keymap.Quit) {
		return a, tea.Quit
	}
	if a.loading {
		return a, nil
	}

	if a.currentView == messages.ViewHelp {
		if key.Matches(msg, a.keymap.Help) || key.Matches(msg, a.keymap.Back) {
			a.currentView = a.previousView
			a.statusBar.Clear()
		}
		return a, nil
	}

	// Any key dismisses a notice or error from a previous action
	if a.statusBar.State() == status.StateNotice || a.statusBar.State() == status.StateError {
		a.statusBar.Clear()
	}

	switch {
	case key.Matches(msg, a.keymap.Help):
		a.previousView = a.currentView
		a.currentView = messages.ViewHelp
		a.statusBar.SetState(status.StateHelp)
		return a, nil

	case key.Matches(msg, a.keymap.Reload):
		return a, a.startLoad(true)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewCategories:
		a.categoriesView, cmd = a.categoriesView.Update(msg)
	case messages.ViewServices:
		a.servicesView, cmd = a.servicesView.Update(msg)
	case messages.ViewLoading, messages.ViewLoadError, messages.ViewHelp:
		// Only global keys apply
	}
	return a, cmd
}

// startLoad fetches the catalog in the background.
func (a *App) startLoad(reload bool) tea.Cmd {
	a.loading = true
	a.reloadPending = false
	a.currentView = messages.ViewLoading

	browser := a.ports.Browser
	ctx := a.ctx
	load := func() tea.Msg {
		var screen domain.Screen
		if reload {
			screen = browser.Reload(ctx)
		} else {
			screen = browser.Init(ctx)
		}
		return messages.CatalogLoaded{Screen: screen, Err: browser.Err()}
	}

	return tea.Batch(a.statusBar.StartLoading(), load)
}

// applyLoad shows the result of a load.
func (a *App) applyLoad(msg messages.CatalogLoaded) tea.Cmd {
	a.loading = false
	a.err = msg.Err
	a.statusBar.Clear()

	a.categoriesView.SetScreen(msg.Screen)
	a.categoriesView.Reset()
	a.show(msg.Screen)

	if a.reloadPending {
		return a.startLoad(true)
	}
	return nil
}

// show makes screen current and updates the status bar to match.
func (a *App) show(screen domain.Screen) {
	a.screen = screen
	a.currentView = messages.ViewFor(screen)

	switch a.currentView {
	case messages.ViewServices:
		a.statusBar.SetBindings(a.keymap.ServicesHelp())
		a.statusBar.SetSummary(fmt.Sprintf("%d サービス", screen.TileCount()))
	case messages.ViewLoadError:
		a.statusBar.SetBindings(a.keymap.LoadErrorHelp())
		a.statusBar.SetSummary("")
	case messages.ViewLoading, messages.ViewCategories, messages.ViewHelp:
		a.statusBar.SetBindings(a.keymap.CategoriesHelp())
		a.statusBar.SetSummary(fmt.Sprintf("%d カテゴリ", screen.TileCount()))
	}
}

// linkAction resolves the tile's link and opens or copies it.
func (a *App) linkAction(msg messages.LinkRequested) tea.Cmd {
	link, ok := a.ports.Browser.Link(msg.Position)
	if !ok {
		a.setError(ErrNoLink)
		return nil
	}
	if a.ports.Links == nil {
		a.setError(ErrLinksUnavailable)
		return nil
	}

	links := a.ports.Links
	copyLink := msg.Copy
	return func() tea.Msg {
		var err error
		if copyLink {
			err = links.CopyLink(link)
		} else {
			err = links.OpenLink(link)
		}
		return messages.LinkActionCompleted{Link: link, Copied: copyLink, Err: err}
	}
}

// waitForChange blocks on the dataset change channel.
func (a *App) waitForChange() tea.Cmd {
	changes := a.ports.Changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return messages.DatasetChanged{}
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetError(err)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewLoading:
		body = a.styles.Title.Render("cloudtiles") + "\n\n" + a.styles.Muted.Render("サービス情報を読み込んでいます...")
	case messages.ViewCategories:
		body = a.categoriesView.View()
	case messages.ViewServices:
		body = a.servicesView.View()
	case messages.ViewLoadError:
		body = a.viewLoadError()
	case messages.ViewHelp:
		body = a.viewHelp()
	}

	bodyHeight := max(1, a.height-1)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	return body + "\n" + a.statusBar.View()
}

// viewLoadError renders the terminal load-error screen.
func (a *App) viewLoadError() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render(a.screen.Title))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Error.Render(a.screen.Placeholder))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Muted.Render("r: 再読み込み  q: 終了"))
	return b.String()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.FullHelpView(a.keymap.FullHelp()) + "\n\n" +
		a.styles.Muted.Render("[esc] close help")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Screen returns the last screen received from the browser.
func (a *App) Screen() domain.Screen {
	return a.screen
}

// Loading reports whether a catalog load is in flight.
func (a *App) Loading() bool {
	return a.loading
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions. The last line belongs to the
// status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.statusBar.SetWidth(width)
	a.categoriesView.SetDimensions(width, height-1)
	a.servicesView.SetDimensions(width, height-1)
}
