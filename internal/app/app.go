// Package app holds the root Bubble Tea model: view routing, layout,
// and the command plumbing between the UI and the board data service.
// All board state lives in a single Session mutated only from the
// Update loop; commands do I/O and report back as messages.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/board"
	"opsboard/internal/keys"
	"opsboard/internal/model"
	"opsboard/internal/prefs"
	"opsboard/internal/remote"
	appsync "opsboard/internal/sync"
	"opsboard/internal/theme"
	"opsboard/internal/ui"
	"opsboard/internal/ui/boardview"
	"opsboard/internal/ui/cardform"
	"opsboard/internal/ui/cardview"
	"opsboard/internal/ui/command"
	helpview "opsboard/internal/ui/help"
	"opsboard/internal/ui/memberform"
	"opsboard/internal/ui/themepicker"
)

// noticeDuration is how long a transient status message stays visible.
// Tests shorten it to pump expiry ticks synchronously.
var noticeDuration = 4 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewCard
	ViewCardCreate
	ViewCardEdit
	ViewMemberForm
	ViewThemePicker
	ViewHelp
	ViewCommand
)

// noticeExpiredMsg clears a transient notice; seq guards against
// clearing a newer notice.
type noticeExpiredMsg struct {
	seq int
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState

	layout  ui.Layout
	svc     remote.Service
	prefs   *prefs.Store
	session *board.Session
	keys    *keys.KeyMap

	boardView   boardview.Model
	cardView    cardview.Model
	cardForm    cardform.Model
	memberForm  memberform.Model
	themePicker themepicker.Model
	helpView    helpview.Model
	commandView command.Model

	ticker *appsync.Ticker
	spin   spinner.Model

	username  string
	ready     bool
	loading   bool
	notice    string
	noticeSeq int
	authError string
}

// New creates the root application model.
func New(svc remote.Service, p *prefs.Store, cfg *model.AppConfig) Model {
	km := keys.DefaultKeyMap()
	session := board.NewSession()

	tickInterval := time.Duration(cfg.Display.FuelTickSec) * time.Second

	m := Model{
		currentView: ViewBoard,
		svc:         svc,
		prefs:       p,
		session:     session,
		keys:        km,
		boardView:   boardview.New(session, km, 80, 24),
		cardForm:    cardform.New(session.Catalog(), 80, 24),
		memberForm:  memberform.New(80, 24),
		helpView:    helpview.New(km, 80, 24),
		commandView: command.New(80, 24),
		ticker:      appsync.New(tickInterval),
		spin:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		username:    cfg.Remote.Username,
		loading:     true,
	}
	m.layout.Background = initialBackground(p, cfg)
	return m
}

// Init loads the board and starts the fuel ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadBoard(),
		m.loadMembers(),
		m.ticker.Start(),
		m.spin.Tick,
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case boardLoadedMsg:
		return m.handleBoardLoaded(msg)

	case membersLoadedMsg:
		if msg.err == nil {
			m.session.SetMembers(msg.members)
		}
		return m, nil

	case cardRefreshedMsg:
		return m.handleCardRefreshed(msg)

	case opFailedMsg:
		return m.handleOpFailed(msg)

	case reorderFailedMsg:
		// An optimistic reorder was rejected; discard the local
		// ordering and reload the whole board from the service.
		mm, cmd := m.setNotice("Reorder failed, reloading: " + msg.err.Error())
		mm.loading = true
		return mm, tea.Batch(cmd, mm.loadBoard(), mm.spin.Tick)

	case cardCreatedMsg:
		return m.handleCardCreated(msg)

	case cardDeletedMsg:
		m.session.DropCard(msg.cardID)
		if m.currentView == ViewCard && m.cardView.Gone() {
			m.currentView = ViewBoard
		}
		m.boardView.ClampCursor()
		return m, nil

	case columnChangedMsg:
		if msg.err != nil {
			mm, cmd := m.setNotice(msg.err.Error())
			return mm, cmd
		}
		m.loading = true
		return m, tea.Batch(m.loadBoard(), m.spin.Tick)

	case memberRegisteredMsg:
		if msg.err != nil {
			mm, cmd := m.setNotice("Registration failed: " + msg.err.Error())
			return mm, cmd
		}
		mm, cmd := m.setNotice("Member " + msg.member.Display() + " registered")
		return mm, tea.Batch(cmd, mm.loadMembers())

	case themeSavedMsg:
		if msg.err != nil {
			mm, cmd := m.setNotice("Could not save theme: " + msg.err.Error())
			return mm, cmd
		}
		return m, nil

	case appsync.FuelTickMsg:
		m.boardView.SetNow(msg.Now)
		m.cardView.SetNow(msg.Now)
		return m, m.ticker.WaitForTick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	// Board view intents.

	case boardview.OpenCardMsg:
		m.previousView = m.currentView
		m.currentView = ViewCard
		m.cardView = cardview.New(
			m.session, m.keys, msg.CardID,
			m.layout.ContentWidth(), m.layout.ContentHeight(),
		)
		return m, nil

	case boardview.MoveCardMsg:
		return m, m.persistCardMove(msg.Move)

	case boardview.MoveColumnMsg:
		return m, m.persistColumnOrder(msg.Order)

	case boardview.CreateCardMsg:
		return m, m.createCard(msg.ColumnID, model.Card{Title: msg.Title})

	case boardview.CreateColumnMsg:
		return m, m.createColumn(msg.Title)

	case boardview.ArchiveCardMsg:
		return m, m.archiveCard(msg.CardID)

	case boardview.DeleteColumnMsg:
		return m, m.deleteColumn(msg.ColumnID)

	case boardview.RenameColumnMsg:
		return m, m.renameColumn(msg.ColumnID, msg.Title)

	case boardview.CopyCardMsg:
		return m, m.copyCard(msg.CardID, msg.ToColumnID)

	case boardview.ValidationMsg:
		mm, cmd := m.setNotice(msg.Text)
		return mm, cmd

	// Card view intents.

	case cardview.CloseMsg:
		m.currentView = ViewBoard
		m.boardView.ClampCursor()
		return m, nil

	case cardview.EditCardMsg:
		if card, ok := m.session.Card(msg.CardID); ok {
			m.previousView = m.currentView
			m.currentView = ViewCardEdit
			return m, m.cardForm.StartEdit(card)
		}
		return m, nil

	case cardview.ValidationMsg:
		mm, cmd := m.setNotice(msg.Text)
		return mm, cmd

	case cardview.RenameLabelMsg:
		// The rename is board-wide: every card showing this color
		// picks up the new name. The stored name rides along on the
		// next labels write of the open card.
		m.session.RenameLabel(msg.Color, msg.Name)
		mm := m.rebuildCardView()
		if card, ok := mm.session.Card(mm.cardView.CardID()); ok {
			return mm, mm.cardOp(card.ID, func(ctx context.Context) error {
				return mm.svc.SetLabels(ctx, card.ID, card.Labels)
			})
		}
		return mm, nil

	// Card form intents.

	case cardform.CardCreatedMsg:
		m.currentView = ViewBoard
		return m, m.createCard(msg.ColumnID, msg.Card)

	case cardform.CardUpdatedMsg:
		m.currentView = m.previousView
		return m, m.applyCardEdit(msg.Card)

	case cardform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Member form intents.

	case memberform.MemberSubmittedMsg:
		m.currentView = m.previousView
		return m, m.registerMember(msg.Username, msg.DisplayName, msg.Password)

	case memberform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Theme picker intents.

	case themepicker.ThemeChosenMsg:
		m.currentView = m.previousView
		m.layout.Background = msg.Background
		return m, m.saveTheme(msg.Background.Name)

	case themepicker.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if handled, mm, cmd := m.handleGlobalKey(msg); handled {
			return mm, cmd
		}
	}

	// Card mutation intents share one dispatch table.
	if cmd, ok := m.dispatchCardOp(msg); ok {
		return m, cmd
	}

	return m.updateActiveView(msg)
}

// handleResize propagates the new terminal size to every view.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	bg := m.layout.Background
	m.layout = ui.NewLayout(msg.Width, msg.Height)
	m.layout.Background = bg
	m.ready = true

	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	m.boardView.SetSize(w, h)
	m.cardView.SetSize(w, h)
	m.cardForm.SetSize(w, h)
	m.memberForm.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.helpView.SetSize(w, h)

	// Forward to the active view so huh forms can size themselves.
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work regardless of the focused
// view. Text-entry views keep all their keys.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.ticker.Stop()
		return true, m, tea.Quit
	}

	// Views with focused inputs own their whole keyspace.
	switch m.currentView {
	case ViewCardCreate, ViewCardEdit, ViewMemberForm, ViewCommand:
		return false, m, nil
	case ViewBoard:
		if m.boardView.InputActive() {
			return false, m, nil
		}
	case ViewCard:
		if m.cardView.InputActive() {
			return false, m, nil
		}
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewBoard {
			m.ticker.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "t":
		if m.currentView == ViewBoard {
			m.previousView = m.currentView
			m.currentView = ViewThemePicker
			m.themePicker = themepicker.New(m.keys, m.layout.Background.Name)
			return true, m, nil
		}

	case "r":
		if m.currentView == ViewBoard {
			m.loading = true
			return true, m, tea.Batch(m.loadBoard(), m.loadMembers(), m.spin.Tick)
		}

	case "M":
		if m.currentView == ViewBoard {
			m.previousView = m.currentView
			m.currentView = ViewMemberForm
			return true, m, m.memberForm.Start()
		}

	case "e":
		if m.currentView == ViewBoard {
			if card, ok := m.boardView.SelectedCard(); ok {
				m.previousView = m.currentView
				m.currentView = ViewCardEdit
				return true, m, m.cardForm.StartEdit(card)
			}
		}

	case "f":
		if m.currentView == ViewBoard {
			cols := m.session.Columns()
			if len(cols) > 0 {
				m.previousView = m.currentView
				m.currentView = ViewCardCreate
				m.cardForm.SetColumns(cols)
				colID := cols[0].ID
				if card, ok := m.boardView.SelectedCard(); ok {
					colID = card.ColumnID
				}
				return true, m, m.cardForm.StartCreate(colID)
			}
		}

	case "esc":
		switch m.currentView {
		case ViewHelp, ViewThemePicker, ViewCommand:
			m.currentView = m.previousView
			return true, m, nil
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewCard:
		m.cardView, cmd = m.cardView.Update(msg)
	case ViewCardCreate, ViewCardEdit:
		m.cardForm, cmd = m.cardForm.Update(msg)
	case ViewMemberForm:
		m.memberForm, cmd = m.memberForm.Update(msg)
	case ViewThemePicker:
		m.themePicker, cmd = m.themePicker.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "quit", "q":
		m.ticker.Stop()
		return m, tea.Quit
	case "reload", "refresh":
		m.loading = true
		return m, tea.Batch(m.loadBoard(), m.loadMembers(), m.spin.Tick)
	case "theme":
		m.previousView = m.currentView
		m.currentView = ViewThemePicker
		m.themePicker = themepicker.New(m.keys, m.layout.Background.Name)
		return m, nil
	case "member", "register":
		m.previousView = m.currentView
		m.currentView = ViewMemberForm
		return m, m.memberForm.Start()
	case "delete":
		// Permanent removal, unlike x (archive). Acts on the card
		// under the cursor, or the open card in the detail view.
		if m.currentView == ViewCard {
			return m, m.deleteCard(m.cardView.CardID())
		}
		if card, ok := m.boardView.SelectedCard(); ok {
			return m, m.deleteCard(card.ID)
		}
		mm, c := m.setNotice("No card selected")
		return mm, c
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	default:
		mm, c := m.setNotice("Unknown command: " + cmd)
		return mm, c
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("opsboard", m.boardStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBoard:
		return m.boardView.View()
	case ViewCard:
		return m.cardView.View()
	case ViewCardCreate, ViewCardEdit:
		return m.cardForm.View()
	case ViewMemberForm:
		return m.memberForm.View()
	case ViewThemePicker:
		return m.themePicker.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// boardStatus summarizes the board for the header's right side.
func (m Model) boardStatus() string {
	if m.loading {
		return m.spin.View() + "loading"
	}
	if m.authError != "" {
		return "auth required"
	}

	cols := m.session.Columns()
	cards := 0
	for _, c := range cols {
		cards += len(m.session.CardsFor(c.ID))
	}
	return fmt.Sprintf("%d columns · %d cards", len(cols), cards)
}

// keyHints returns keyboard shortcut hints for the status bar. A
// pending notice takes its place until it expires.
func (m Model) keyHints() string {
	if m.notice != "" {
		return theme.NoticeStyle.Render(m.notice)
	}
	if m.authError != "" {
		return m.authError
	}

	switch m.currentView {
	case ViewCard:
		return "x toggle | a add | @ assign | c comment | e edit | L link | U upload | D delete | esc back"
	case ViewCardCreate, ViewCardEdit:
		return "enter next | shift+tab back | esc cancel"
	case ViewMemberForm:
		return "enter next | esc cancel"
	case ViewThemePicker:
		return "j/k move | enter select | esc cancel"
	case ViewHelp:
		return "? close help"
	case ViewCommand:
		return "enter execute | esc back"
	default:
		return "q quit | ? help | n card | N column | y copy | R rename | space grab | G grab column | enter open"
	}
}

// setNotice shows a transient status message and schedules its expiry.
func (m Model) setNotice(text string) (Model, tea.Cmd) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// rebuildCardView refreshes the detail view after a session change.
func (m Model) rebuildCardView() Model {
	if m.currentView == ViewCard {
		m.cardView.Rebuild()
	}
	m.boardView.ClampCursor()
	return m
}

// initialBackground resolves the startup backdrop: the persisted
// choice wins over the config default.
func initialBackground(p *prefs.Store, cfg *model.AppConfig) theme.Background {
	name, err := p.Theme(context.Background())
	if err != nil || name == "" {
		name = cfg.Display.Theme
	}
	return theme.BackgroundByName(name)
}
