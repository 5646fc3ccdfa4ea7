// Package focus tracks which widget holds keyboard focus. The chain keeps
// the single-focus invariant: granting focus to one member clears it from
// every other member.
package focus

// Focusable is any widget that can hold keyboard focus.
type Focusable interface {
	SetFocused(focused bool)
	Focused() bool
}

// Chain is an ordered set of focusable widgets. The host registers widgets
// in tab order and routes Tab presses through MoveFocus.
type Chain struct {
	members []Focusable
}

// NewChain creates an empty focus chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a widget to the chain. Adding the same widget twice is a no-op.
func (c *Chain) Add(f Focusable) {
	for _, m := range c.members {
		if m == f {
			return
		}
	}
	c.members = append(c.members, f)
}

// Remove drops a widget from the chain.
func (c *Chain) Remove(f Focusable) {
	for i, m := range c.members {
		if m == f {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// Focus gives focus to f, clearing it from every other member. If f is not
// in the chain only the clearing happens.
func (c *Chain) Focus(f Focusable) {
	for _, m := range c.members {
		if m != f && m.Focused() {
			m.SetFocused(false)
		}
	}
	if f != nil && !f.Focused() {
		f.SetFocused(true)
	}
}

// Clear removes focus from every member.
func (c *Chain) Clear() {
	c.Focus(nil)
}

// Current returns the focused member, or nil.
func (c *Chain) Current() Focusable {
	for _, m := range c.members {
		if m.Focused() {
			return m
		}
	}
	return nil
}

// MoveFocus shifts focus by delta positions in registration order, wrapping
// at both ends. With no current focus it starts from the first member for
// positive delta and the last for negative.
func (c *Chain) MoveFocus(delta int) {
	n := len(c.members)
	if n == 0 {
		return
	}
	cur := -1
	for i, m := range c.members {
		if m.Focused() {
			cur = i
			break
		}
	}
	var next int
	if cur < 0 {
		if delta >= 0 {
			next = 0
		} else {
			next = n - 1
		}
	} else {
		next = ((cur+delta)%n + n) % n
	}
	c.Focus(c.members[next])
}
