package views

import "github.com/dalcoin/site/contact"

// Contact form element ids and paths.
const (
	ContactID      = "contact"
	ContactAlertID = "contact-alert"
	ContactAction  = "/kontakt"

	SubmitLabel = "Send henvendelse"
	RetryLabel  = "Prøv igjen"
)

// AlertKind selects the styling of a notice.
type AlertKind string

const (
	AlertInfo  AlertKind = "info"
	AlertError AlertKind = "error"
)

// Visitor-facing notices.
const (
	NoticeDeliveryFailed = "Vi kunne ikke sende henvendelsen akkurat nå. Opplysningene dine er tatt vare på, prøv igjen om litt eller ring oss."
	NoticeInProgress     = "Henvendelsen din blir allerede sendt. Vent et øyeblikk."
	NoticeExpired        = "Skjemaet var utløpt. Kontroller opplysningene og send på nytt."
)

// ContactForm is everything the contact form renders from.
type ContactForm struct {
	// Button carries the submit label and disabled state. Nil means an
	// enabled button labelled SubmitLabel.
	Button     *contact.Button
	Errors     contact.ValidationResult
	Notice     string
	NoticeKind AlertKind
	Token      string
	Request    contact.Request
}

func alertClass(kind AlertKind, message string) string {
	if message == "" {
		return "alert"
	}
	if kind == "" {
		kind = AlertInfo
	}
	return "alert alert--" + string(kind)
}

func successHeading(name string) string {
	if name == "" {
		return "Takk for henvendelsen!"
	}
	return "Takk for henvendelsen, " + name + "!"
}

func errorID(field contact.Field) string {
	return string(field) + "Error"
}

// autofocus reports whether field is the first invalid one.
func (f ContactForm) autofocus(field contact.Field) bool {
	focus, ok := f.Errors.FirstInvalid()
	return ok && focus == field
}

func (f ContactForm) submitLabel() string {
	if f.Button == nil {
		return SubmitLabel
	}
	return f.Button.Label()
}

func (f ContactForm) submitDisabled() bool {
	return f.Button != nil && f.Button.Disabled()
}
