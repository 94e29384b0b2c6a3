package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/latke/internal/api"
)

// defaultPollInterval is the cadence between authorization polls.
const defaultPollInterval = 5 * time.Second

// Pairer is the device pairing capability of the API client.
type Pairer interface {
	RequestDeviceCode(ctx context.Context) (*api.DeviceCode, error)
	PollDeviceCode(ctx context.Context, code string) (*api.SessionInfo, error)
}

type codeIssuedMsg struct {
	code *api.DeviceCode
	err  error
}

type pollTickMsg struct{}

type pollResultMsg struct {
	session *api.SessionInfo
	err     error
}

type countdownMsg struct{}

// PairModel drives the device pairing flow: request a code, show it to the
// user, then poll until the code is confirmed on another device or expires.
type PairModel struct {
	ctx          context.Context
	client       Pairer
	pollInterval time.Duration
	spinner      spinner.Model
	code         *api.DeviceCode
	remaining    int // seconds until the code expires
	session      *api.SessionInfo
	err          error
	help         help.Model
	keys         keyMap
}

// NewPairModel creates a new pairing model with the provided dependencies.
func NewPairModel(ctx context.Context, client Pairer) *PairModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.warn

	return &PairModel{
		ctx:          ctx,
		client:       client,
		pollInterval: defaultPollInterval,
		spinner:      s,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Session returns the paired session, or the error that ended the flow.
func (m *PairModel) Session() (*api.SessionInfo, error) {
	return m.session, m.err
}

// Init requests a pairing code and starts the spinner.
func (m *PairModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.requestCode())
}

// Update handles incoming messages and updates the model state.
func (m *PairModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.err == nil && m.session == nil {
				m.err = fmt.Errorf("pairing cancelled")
			}
			return m, tea.Quit
		}
		return m, nil

	case codeIssuedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.code = msg.code
		m.remaining = msg.code.ExpiresIn
		return m, tea.Batch(m.schedulePoll(), m.scheduleCountdown())

	case pollTickMsg:
		return m, m.poll()

	case pollResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.session != nil {
			m.session = msg.session
			return m, tea.Quit
		}
		return m, m.schedulePoll()

	case countdownMsg:
		if m.session != nil || m.err != nil {
			return m, nil
		}
		m.remaining--
		if m.remaining <= 0 {
			m.err = fmt.Errorf("pairing code expired")
			return m, tea.Quit
		}
		return m, m.scheduleCountdown()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the pairing flow.
func (m *PairModel) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Pairing failed: %v", m.err)) + "\n"
	}
	if m.session != nil {
		return styles.ok.Render(fmt.Sprintf("✓ Paired as user %s", m.session.UserID)) + "\n"
	}

	title := styles.title.Render("Device Pairing")
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.code == nil {
		return fmt.Sprintf("%s\n%s Requesting pairing code...\n\n%s", title, m.spinner.View(), helpView)
	}

	code := styles.code.Render(m.code.Code)
	status := fmt.Sprintf("%s Waiting for confirmation... (%s left)", m.spinner.View(), formatSeconds(m.remaining))
	return fmt.Sprintf("%s\nEnter this code on your other device:\n\n%s\n\n%s\n\n%s", title, code, status, helpView)
}

func (m *PairModel) requestCode() tea.Cmd {
	return func() tea.Msg {
		code, err := m.client.RequestDeviceCode(m.ctx)
		return codeIssuedMsg{code: code, err: err}
	}
}

func (m *PairModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

func (m *PairModel) scheduleCountdown() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{}
	})
}

func (m *PairModel) poll() tea.Cmd {
	return func() tea.Msg {
		session, err := m.client.PollDeviceCode(m.ctx, m.code.Code)
		return pollResultMsg{session: session, err: err}
	}
}

func formatSeconds(s int) string {
	if s >= 60 {
		return fmt.Sprintf("%d:%02d", s/60, s%60)
	}
	return fmt.Sprintf("0:%02d", s)
}
