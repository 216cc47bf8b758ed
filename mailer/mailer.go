// Package mailer delivers magic-link sign-in emails. Delivery is
// polymorphic: production mode hands the link to an SMTP transport, demo
// mode emits it to the process log so the flow works with no mail
// infrastructure at all.
package mailer

// Mailer sends the one-time sign-in link for an email address.
type Mailer interface {
	LoginEmail(to, loginURL string) error
}
