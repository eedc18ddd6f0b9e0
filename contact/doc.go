// Package contact implements the contact-request flow of the DALCOIN site:
// validating a request, formatting it as an email, delivering it and
// reporting the outcome to the page.
//
// Validate and BuildMessageBody are pure. Controller.Submit is the only step
// that talks to the outside world:
//
//	ctrl := contact.NewController(m, contact.Config{},
//	    contact.WithLogger(log),
//	    contact.WithGuard(contact.NewGuard(claims, 2*time.Minute)),
//	)
//	out := ctrl.Submit(ctx, req, button)
//	switch out.State {
//	case contact.Invalid:        // re-render the form with out.Validation
//	case contact.Delivered:      // show the success panel
//	case contact.DeliveryFailed: // show the retry panel, out.Err holds the reason
//	case contact.Rejected:       // an earlier post of the same form is still running
//	}
//
// The submit control passed to Submit is disabled and relabelled while the
// email is in flight and restored on every return path, panics included.
package contact
