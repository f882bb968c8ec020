package keymap

import "github.com/charmbracelet/bubbles/key"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys
	order    []Binding
}

// NewResolver creates a resolver from bindings. A key bound twice resolves
// to the later binding.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		order:    bindings,
	}
	for _, b := range bindings {
		for _, k := range b.Keys {
			r.bindings[k] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(k string) Action {
	return r.bindings[k]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpBindings converts the bindings of a context into bubbles key bindings
// for the help line. enabled reports whether an action is currently usable;
// bubbles/help leaves disabled bindings out of the rendered line.
func (r *Resolver) HelpBindings(context string, enabled func(Action) bool) []key.Binding {
	var out []key.Binding
	for _, b := range r.order {
		if b.Context != context {
			continue
		}
		kb := key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(helpKey(b.Keys[0]), b.Description),
		)
		if enabled != nil && !enabled(b.Action) {
			kb.SetEnabled(false)
		}
		out = append(out, kb)
	}
	return out
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
