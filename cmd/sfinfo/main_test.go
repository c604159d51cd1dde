package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sfbind/internal/native"
	"sfbind/internal/native/nativetest"
)

func TestCollectAndRender(t *testing.T) {
	d := nativetest.New().Install(t)
	d.Fullscreen = []native.VideoMode{
		{Width: 2560, Height: 1440, BitsPerPixel: 24},
		{Width: 1920, Height: 1080, BitsPerPixel: 24},
	}

	rep := collect()
	if !rep.shaders {
		t.Error("expected shaders to be reported available")
	}
	if len(rep.fullscreen) != 2 || len(rep.valid) != 2 {
		t.Fatalf("expected 2 fullscreen modes, got %d (%d validity flags)", len(rep.fullscreen), len(rep.valid))
	}
	for i, ok := range rep.valid {
		if !ok {
			t.Errorf("mode %d: expected valid", i)
		}
	}

	out := rep.render()
	for _, want := range []string{"2560x1440x24", "1920x1080x24", "desktop"} {
		if !strings.Contains(out, want) {
			t.Errorf("render: output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNoFullscreenModes(t *testing.T) {
	d := nativetest.New().Install(t)
	d.Fullscreen = nil

	rep := collect()
	if rep.fullscreen != nil {
		t.Errorf("expected no fullscreen modes, got %v", rep.fullscreen)
	}
	if out := rep.render(); !strings.Contains(out, "none") {
		t.Errorf("render: expected 'none' for missing modes:\n%s", out)
	}
}

func TestInteractiveDetail(t *testing.T) {
	nativetest.New().Install(t)

	m := newInteractiveModel(collect())
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := model.(*interactiveModel).detail
	if !strings.Contains(got, "1920 x 1080") {
		t.Errorf("expected details of the selected mode, got %q", got)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("expected quit command on q")
	}
}

func TestOptional(t *testing.T) {
	if optional("") != nil {
		t.Error("empty flag must map to no input")
	}
	if p := optional("a.frag"); p == nil || *p != "a.frag" {
		t.Errorf("expected a.frag, got %v", p)
	}
}

func TestRunExitCodes(t *testing.T) {
	defer func(f func() bool) { isTerminal = f }(isTerminal)
	isTerminal = func() bool { return false }

	if code := run([]string{"-no-such-flag"}); code != 2 {
		t.Errorf("unknown flag: expected exit code 2, got %d", code)
	}
	if code := run([]string{"-i"}); code != 2 {
		t.Errorf("-i without a terminal: expected exit code 2, got %d", code)
	}
}
