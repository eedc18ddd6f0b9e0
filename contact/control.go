package contact

import "sync"

// SendingLabel is shown on the submit control while an email is in flight.
const SendingLabel = "Sender..."

// SubmitControl is the submit affordance of the form.
type SubmitControl interface {
	Label() string
	SetLabel(label string)
	SetDisabled(disabled bool)
}

// acquire disables the control and shows label. The returned func restores
// the original label and re-enables it; it is safe to call more than once.
func acquire(c SubmitControl, label string) func() {
	if c == nil {
		return func() {}
	}

	original := c.Label()
	c.SetDisabled(true)
	c.SetLabel(label)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.SetLabel(original)
			c.SetDisabled(false)
		})
	}
}

// Button is a SubmitControl that records its state so a view can render it.
type Button struct {
	label    string
	mu       sync.Mutex
	disabled bool
}

// NewButton returns an enabled button with the given label.
func NewButton(label string) *Button {
	return &Button{label: label}
}

func (b *Button) Label() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.label
}

func (b *Button) SetLabel(label string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.label = label
}

func (b *Button) SetDisabled(disabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = disabled
}

// Disabled reports whether the button is currently disabled.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}
