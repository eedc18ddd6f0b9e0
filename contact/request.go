package contact

import (
	"net/url"
	"strings"

	"github.com/dalcoin/site/pkg/sanitizer"
)

// Field identifies a form input. The values double as HTML name and id.
type Field string

const (
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldPhone       Field = "phone"
	FieldAddress     Field = "address"
	FieldFloorType   Field = "floorType"
	FieldSize        Field = "size"
	FieldDescription Field = "description"
	FieldSiteVisit   Field = "siteVisit"

	// FieldToken carries the per-render submission token. It is not user input.
	FieldToken Field = "token"
)

// Fields lists the user-facing inputs in document order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldFloorType,
	FieldSize,
	FieldDescription,
	FieldSiteVisit,
}

// NotSelected renders unset or unknown choices.
const NotSelected = "Ikke valgt"

// NotProvided renders an empty address.
const NotProvided = "Ikke oppgitt"

// Option is one entry of a select input.
type Option struct {
	Code  string
	Label string
}

// FloorType is a floor-work category code.
type FloorType string

var floorTypes = []Option{
	{Code: "parkett", Label: "Parkett/tregulv"},
	{Code: "laminat", Label: "Laminat"},
	{Code: "vinyl", Label: "Vinyl/LVT"},
	{Code: "linoleum", Label: "Linoleum/belegg"},
	{Code: "avretting", Label: "Gulvavretting"},
	{Code: "tapetsering", Label: "Tapetsering"},
	{Code: "usikker", Label: "Usikker – trenger råd"},
}

// FloorTypes returns the selectable floor types in display order.
func FloorTypes() []Option {
	return append([]Option(nil), floorTypes...)
}

// Label returns the display label, or NotSelected for an unknown code.
func (f FloorType) Label() string {
	return label(floorTypes, string(f))
}

// SizeBand is an area-size band code.
type SizeBand string

var sizeBands = []Option{
	{Code: "under20", Label: "Under 20 m²"},
	{Code: "20-50", Label: "20-50 m²"},
	{Code: "50-100", Label: "50-100 m²"},
	{Code: "over100", Label: "Over 100 m²"},
}

// SizeBands returns the selectable size bands in display order.
func SizeBands() []Option {
	return append([]Option(nil), sizeBands...)
}

// Label returns the display label, or NotSelected for an unknown code.
func (s SizeBand) Label() string {
	return label(sizeBands, string(s))
}

func label(opts []Option, code string) string {
	for _, o := range opts {
		if o.Code == code {
			return o.Label
		}
	}
	return NotSelected
}

// Request is one contact-form submission.
type Request struct {
	Name        string
	Email       string
	Phone       string
	Address     string
	FloorType   FloorType
	Size        SizeBand
	Description string
	Token       string
	SiteVisit   bool
}

// FromForm builds a Request from posted form values.
// Markup is stripped from every field and surrounding whitespace trimmed;
// single-line fields also have inner whitespace collapsed.
func FromForm(form url.Values) Request {
	get := func(f Field) string { return form.Get(string(f)) }

	return Request{
		Name:        sanitizer.SingleLine(get(FieldName)),
		Email:       sanitizer.SingleLine(get(FieldEmail)),
		Phone:       sanitizer.SingleLine(get(FieldPhone)),
		Address:     sanitizer.SingleLine(get(FieldAddress)),
		FloorType:   FloorType(strings.TrimSpace(get(FieldFloorType))),
		Size:        SizeBand(strings.TrimSpace(get(FieldSize))),
		Description: sanitizer.MultiLine(get(FieldDescription)),
		SiteVisit:   checked(get(FieldSiteVisit)),
		Token:       strings.TrimSpace(get(FieldToken)),
	}
}

// Value returns the raw string value of f, as it should be echoed back into the form.
func (r Request) Value(f Field) string {
	switch f {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldPhone:
		return r.Phone
	case FieldAddress:
		return r.Address
	case FieldFloorType:
		return string(r.FloorType)
	case FieldSize:
		return string(r.Size)
	case FieldDescription:
		return r.Description
	case FieldToken:
		return r.Token
	case FieldSiteVisit:
		if r.SiteVisit {
			return "on"
		}
	}
	return ""
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes", "ja":
		return true
	}
	return false
}
