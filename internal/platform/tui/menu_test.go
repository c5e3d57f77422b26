package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapdojo/internal/core"
	_ "github.com/vovakirdan/flapdojo/internal/games/flappy"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func TestMenuListsVariants(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	view := m.View()

	for _, want := range []string{"F L A P   D O J O", "Flappy Classic", "Flappy Dojo"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q", want)
		}
	}
}

func TestMenuResult(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuResult
	}{
		{
			name: "select first",
			keys: []tea.KeyMsg{{Type: tea.KeyEnter}},
			want: MenuResult{GameID: "flappy"},
		},
		{
			name: "select second",
			keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			want: MenuResult{GameID: "flappy_dojo"},
		},
		{
			name: "cursor stops at the end",
			keys: []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}},
			want: MenuResult{GameID: "flappy_dojo"},
		},
		{
			name: "scoreboard",
			keys: []tea.KeyMsg{{Type: tea.KeyTab}},
			want: MenuResult{WantsScoreboard: true},
		},
		{
			name: "quit",
			keys: []tea.KeyMsg{runeKey('q')},
			want: MenuResult{Quit: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := core.DefaultConfig()
			m := NewMenuModel(nil, cfg)
			for _, k := range tt.keys {
				m = sendMenu(t, m, k)
			}

			tt.want.Config = cfg
			if got := m.Result(); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m = sendMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("expected 120x40, got %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}
