package contact

import "strings"

// DefaultSiteName appears in the message heading.
const DefaultSiteName = "DALCOIN"

// BuildMessageBody formats req as the plain-text email sent to the company.
// The output depends only on req; field order is fixed.
func BuildMessageBody(req Request) string {
	return buildMessageBody(DefaultSiteName, req)
}

func buildMessageBody(site string, req Request) string {
	address := req.Address
	if address == "" {
		address = NotProvided
	}

	visit := "Nei"
	if req.SiteVisit {
		visit = "Ja"
	}

	var b strings.Builder
	b.WriteString("Ny henvendelse fra " + site + " nettside\n\n")
	b.WriteString("Navn: " + req.Name + "\n")
	b.WriteString("E-post: " + req.Email + "\n")
	b.WriteString("Telefon: " + req.Phone + "\n")
	b.WriteString("Adresse/Område: " + address + "\n")
	b.WriteString("Type gulv: " + req.FloorType.Label() + "\n")
	b.WriteString("Størrelse: " + req.Size.Label() + "\n")
	b.WriteString("Ønsker befaring: " + visit + "\n")
	b.WriteString("\nProsjektbeskrivelse:\n")
	b.WriteString(req.Description)
	return b.String()
}

// Subject is the subject line of the company email.
func Subject(req Request) string {
	return "Ny henvendelse fra " + req.Name
}
