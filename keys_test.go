package main

import "testing"

func TestKeyRegistryLookupByScope(t *testing.T) {
	r := NewKeyRegistry()

	unmix := r.Lookup("u", scopeOptions)
	if unmix == nil {
		t.Fatal("expected unmix binding in options scope")
	}
	if unmix.Action != actionUnmix {
		t.Fatalf("unmix action = %q, want %q", unmix.Action, actionUnmix)
	}

	if got := r.Lookup("u", scopePresets); got != nil {
		t.Fatalf("did not expect unmix binding in presets scope, got %q", got.Action)
	}
}

func TestKeyRegistryGlobalFallback(t *testing.T) {
	r := NewKeyRegistry()

	next := r.Lookup("tab", scopeOptions)
	if next == nil {
		t.Fatal("expected tab to fall back to global scope")
	}
	if next.Action != actionNextTab {
		t.Fatalf("tab action = %q, want %q", next.Action, actionNextTab)
	}

	// Text-entry scopes only fall back for keys they don't shadow.
	if got := r.Lookup("enter", scopeLevelsInput); got == nil || got.Action != actionConfirm {
		t.Fatalf("enter in levels input = %v, want confirm", got)
	}
}

func TestKeyRegistryUppercaseDistinct(t *testing.T) {
	r := NewKeyRegistry()

	if got := r.Lookup("g", scopeOptions); got == nil || got.Action != actionJumpTop {
		t.Fatalf("g = %v, want jump_top", got)
	}
	if got := r.Lookup("G", scopeOptions); got == nil || got.Action != actionJumpBottom {
		t.Fatalf("G = %v, want jump_bottom", got)
	}
}

func TestKeyRegistryNoDuplicateInSameScope(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	r.Register(Binding{Action: actionAdd, Keys: []string{"x"}, Help: "first", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionDelete, Keys: []string{"x"}, Help: "duplicate", Scopes: []string{"scope_a"}})
	r.Register(Binding{Action: actionDelete, Keys: []string{"x"}, Help: "other scope", Scopes: []string{"scope_b"}})

	a := r.BindingsForScope("scope_a")
	if len(a) != 1 {
		t.Fatalf("scope_a bindings = %d, want 1", len(a))
	}
	if a[0].Action != actionAdd {
		t.Fatalf("scope_a action = %q, want %q", a[0].Action, actionAdd)
	}

	b := r.BindingsForScope("scope_b")
	if len(b) != 1 {
		t.Fatalf("scope_b bindings = %d, want 1", len(b))
	}
}

func TestKeyRegistryHelpBindings(t *testing.T) {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	r.Register(Binding{Action: actionNavigate, Keys: []string{"j/k", "j", "k"}, Help: "navigate", Scopes: []string{"scope_help"}})

	help := r.HelpBindings("scope_help")
	if len(help) != 1 {
		t.Fatalf("help binding count = %d, want 1", len(help))
	}
	entry := help[0].Help()
	if entry.Key != "j/k" {
		t.Fatalf("help key = %q, want %q", entry.Key, "j/k")
	}
	if entry.Desc != "navigate" {
		t.Fatalf("help desc = %q, want %q", entry.Desc, "navigate")
	}
}

func TestNormalizeKeyName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{" ", "space"},
		{"Enter", "enter"},
		{"return", "enter"},
		{"CTRL+C", "ctrl+c"},
		{"control+p", "ctrl+p"},
		{"G", "G"},
		{"g", "g"},
		{"  esc ", "esc"},
	}
	for _, c := range cases {
		if got := normalizeKeyName(c.in); got != c.want {
			t.Fatalf("normalizeKeyName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNavDeltaFromKeyName(t *testing.T) {
	for _, k := range []string{"j", "down", "ctrl+n", "l", "right"} {
		if got := navDeltaFromKeyName(k); got != 1 {
			t.Fatalf("navDeltaFromKeyName(%q) = %d, want 1", k, got)
		}
	}
	for _, k := range []string{"k", "up", "ctrl+p", "h", "left"} {
		if got := navDeltaFromKeyName(k); got != -1 {
			t.Fatalf("navDeltaFromKeyName(%q) = %d, want -1", k, got)
		}
	}
	if got := navDeltaFromKeyName("enter"); got != 0 {
		t.Fatalf("navDeltaFromKeyName(enter) = %d, want 0", got)
	}
}
