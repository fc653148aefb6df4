package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/session"
)

// AvatarOptions are the presets offered by the avatar picker.
var AvatarOptions = []string{
	"https://i.pravatar.cc/150?img=1",
	"https://i.pravatar.cc/150?img=2",
	"https://i.pravatar.cc/150?img=3",
	"https://i.pravatar.cc/150?img=4",
	"https://i.pravatar.cc/150?img=5",
}

const defaultAvatar = "https://i.pravatar.cc/150"

type (
	profileMsg struct {
		profile model.UserProfile
		err     error
	}
	avatarMsg struct {
		avatar string
		err    error
	}
	loggedOutMsg struct{ err error }
)

type profileScreen struct {
	deps    Deps
	profile *model.UserProfile
	loading bool
	errMsg  string

	picking bool
	cursor  int

	logout dialog
}

func newProfileScreen(deps Deps) *profileScreen {
	return &profileScreen{deps: deps}
}

func (s *profileScreen) Enter() tea.Cmd {
	s.loading = true
	backend, ctx := s.deps.API, s.deps.ctx()
	return func() tea.Msg {
		p, err := backend.GetProfile(ctx)
		return profileMsg{profile: p, err: err}
	}
}

func (s *profileScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileMsg:
		s.loading = false
		if msg.err != nil {
			s.deps.Log.WithError(msg.err).Error("failed to fetch profile")
			s.errMsg = api.UserMessage(msg.err, "Failed to fetch profile")
			return s, nil
		}
		p := msg.profile
		s.profile = &p
		return s, nil

	case avatarMsg:
		if msg.err != nil {
			s.deps.Log.WithError(msg.err).Error("failed to update avatar")
			s.errMsg = api.UserMessage(msg.err, "Failed to update avatar")
			return s, nil
		}
		if s.profile != nil {
			s.profile.Avatar = msg.avatar
		}
		s.picking = false
		return s, nil

	case loggedOutMsg:
		if msg.err != nil && !errors.Is(msg.err, session.ErrEnvManaged) {
			s.errMsg = "Logout failed: " + msg.err.Error()
			return s, nil
		}
		return s, replace(newLoginScreen(s.deps))

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

func (s *profileScreen) handleKey(k string) (Screen, tea.Cmd) {
	flow := s.deps.Auth

	if s.logout.visible {
		switch k {
		case "y", "enter":
			s.logout.hide()
			return s, func() tea.Msg { return loggedOutMsg{err: flow.ConfirmLogout()} }
		case "n", "esc":
			s.logout.hide()
			flow.CancelLogout()
		}
		return s, nil
	}

	if s.picking {
		switch k {
		case "left", "h", "up", "k":
			s.cursor = (s.cursor + len(AvatarOptions) - 1) % len(AvatarOptions)
		case "right", "l", "down", "j":
			s.cursor = (s.cursor + 1) % len(AvatarOptions)
		case "1", "2", "3", "4", "5":
			s.cursor = int(k[0] - '1')
			return s, s.changeAvatar(AvatarOptions[s.cursor])
		case "enter":
			return s, s.changeAvatar(AvatarOptions[s.cursor])
		case "esc":
			s.picking = false
		}
		return s, nil
	}

	switch k {
	case "esc":
		return s, back
	case "r":
		s.errMsg = ""
		return s, s.Enter()
	case "v":
		if s.profile != nil {
			s.picking = true
			s.errMsg = ""
		}
	case "o":
		flow.RequestLogout()
		s.logout.confirm("Logout Confirmation", "Are you sure you want to logout?")
	}
	return s, nil
}

// changeAvatar is a no-op until the profile is loaded.
func (s *profileScreen) changeAvatar(avatar string) tea.Cmd {
	if s.profile == nil {
		return nil
	}
	backend, ctx := s.deps.API, s.deps.ctx()
	return func() tea.Msg { return avatarMsg{avatar: avatar, err: backend.UpdateAvatar(ctx, avatar)} }
}

func (s *profileScreen) View() string {
	if s.logout.visible {
		return s.logout.View()
	}
	var b strings.Builder
	switch {
	case s.loading:
		b.WriteString(mutedStyle.Render("Loading profile…") + "\n")
	case s.profile == nil:
		b.WriteString("No profile data available\n")
	default:
		p := s.profile
		avatar := p.Avatar
		if avatar == "" {
			avatar = defaultAvatar
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("Welcome, %s!", p.Username)) + "\n\n")
		b.WriteString(mutedStyle.Render("User Information") + "\n")
		b.WriteString(labelStyle.Render("Username:") + p.Username + "\n")
		b.WriteString(labelStyle.Render("Email:") + p.Email + "\n")
		b.WriteString(labelStyle.Render("Avatar:") + accentStyle.Render(avatar) + "\n")
	}
	if s.picking {
		b.WriteString("\n" + titleStyle.Render("Select an Avatar") + "\n")
		for i, a := range AvatarOptions {
			line := fmt.Sprintf("%d  %s", i+1, a)
			if i == s.cursor {
				b.WriteString(selectedStyle.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	if s.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(s.errMsg) + "\n")
	}
	b.WriteString("\n")
	if s.picking {
		b.WriteString(helpLine("←/→", "choose", "enter", "select", "esc", "close"))
	} else {
		b.WriteString(helpLine("v", "change avatar", "o", "logout", "r", "reload", "esc", "back"))
	}
	return panelString(b.String())
}
