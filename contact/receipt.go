package contact

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"

	"github.com/dalcoin/site/pkg/mailer"
)

//go:embed emails
var emails embed.FS

// ReceiptTemplate is the mailer template sent to the requester.
const ReceiptTemplate = "receipt.md"

// Templates returns the email templates for mailer.NewRenderer.
func Templates() fs.FS {
	sub, err := fs.Sub(emails, "emails")
	if err != nil {
		panic(err)
	}
	return sub
}

type receiptData struct {
	Site      string
	Name      string
	Phone     string
	Address   string
	FloorType string
	Size      string
	SiteVisit bool
}

// sendReceipt acknowledges a delivered request to the requester.
// Failures are logged and never change the outcome.
func (c *Controller) sendReceipt(ctx context.Context, req Request) {
	if !c.cfg.Receipt {
		return
	}

	err := c.mailer.Send(ctx, mailer.SendParams{
		To:       req.Email,
		Template: ReceiptTemplate,
		From:     c.cfg.From,
		ReplyTo:  c.cfg.To,
		Tags:     mailer.Tags{"category": "contact_receipt"},
		Data: receiptData{
			Site:      c.cfg.SiteName,
			Name:      req.Name,
			Phone:     req.Phone,
			Address:   req.Address,
			FloorType: req.FloorType.Label(),
			Size:      req.Size.Label(),
			SiteVisit: req.SiteVisit,
		},
	})
	if err != nil {
		c.logger.WarnContext(ctx, "contact receipt failed", slog.Any("error", err))
	}
}
