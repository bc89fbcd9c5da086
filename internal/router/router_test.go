package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kasambhusal/sajha-gyan/internal/screen"
)

type fakeScreen struct {
	title    string
	inits    int
	keepsEsc bool
	got      []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return "view:" + s.title }
func (s *fakeScreen) Title() string        { return s.title }
func (s *fakeScreen) HandlesBack() bool    { return s.keepsEsc }

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestNavigationMessages(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	practice := &fakeScreen{title: "Practice"}
	session := &fakeScreen{title: "Algebra"}
	results := &fakeScreen{title: "Results"}
	login := &fakeScreen{title: "Sign In"}

	r := New(home)
	steps := []struct {
		msg  tea.Msg
		want []string
	}{
		{PushScreenMsg{Screen: practice}, []string{"Home", "Practice"}},
		{PushScreenMsg{Screen: session}, []string{"Home", "Practice", "Algebra"}},
		{ReplaceScreenMsg{Screen: results}, []string{"Home", "Practice", "Results"}},
		{PopScreenMsg{}, []string{"Home", "Practice"}},
		{ResetScreenMsg{Screen: login}, []string{"Sign In"}},
	}
	for i, step := range steps {
		if !IsNavigation(step.msg) {
			t.Fatalf("step %d: %T not recognised as navigation", i, step.msg)
		}
		r.Update(step.msg)
		if got := titles(r); !slices.Equal(got, step.want) {
			t.Fatalf("step %d: stack = %v, want %v", i, got, step.want)
		}
	}

	for _, s := range []*fakeScreen{practice, session, results, login} {
		if s.inits != 1 {
			t.Errorf("%s: Init ran %d times, want 1", s.title, s.inits)
		}
	}
	if home.inits != 0 {
		t.Error("the root screen is initialised by the caller, not the router")
	}
}

func TestPopResumesScreenBelow(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	r.Push(&fakeScreen{title: "History"})

	cmd := r.Pop()
	if cmd == nil {
		t.Fatal("expected a resume command")
	}
	if _, ok := cmd().(ResumedMsg); !ok {
		t.Errorf("got %T, want ResumedMsg", cmd())
	}
	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at the root must be a no-op")
	}
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestBack(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	r := New(home)
	if cmd, handled := r.Back(); cmd != nil || !handled {
		t.Error("Esc at the root is swallowed without navigating")
	}

	session := &fakeScreen{title: "Algebra", keepsEsc: true}
	r.Push(session)
	if cmd, handled := r.Back(); cmd != nil || handled {
		t.Error("a screen that handles Esc must receive it")
	}

	session.keepsEsc = false
	cmd, handled := r.Back()
	if !handled || cmd == nil {
		t.Fatal("expected a pop")
	}
	if _, ok := cmd().(PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", cmd())
	}
}

func TestTrailSkipsUntitledScreens(t *testing.T) {
	r := New(&fakeScreen{title: ""})
	r.Push(&fakeScreen{title: "Home"})
	r.Push(&fakeScreen{title: "Results"})
	if got := r.Trail(); !slices.Equal(got, []string{"Home", "Results"}) {
		t.Errorf("trail = %v", got)
	}
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	top := &fakeScreen{title: "Stats"}
	r := New(home)
	r.Push(top)

	r.Update(ResumedMsg{})
	if len(top.got) != 1 || len(home.got) != 0 {
		t.Errorf("top got %d, home got %d; want 1 and 0", len(top.got), len(home.got))
	}
	if IsNavigation(ResumedMsg{}) {
		t.Error("ResumedMsg does not change the stack")
	}
	if v := r.View(80, 24); v != "view:Stats" {
		t.Errorf("view = %q", v)
	}
}
