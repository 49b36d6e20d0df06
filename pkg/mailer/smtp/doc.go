// Package smtp delivers mailer messages over SMTP with go-mail.
//
// Every Send opens a fresh connection, authenticates with PLAIN (or LOGIN
// when that is all the server offers) and closes the session afterwards, so a Transport keeps no connection state and
// is safe for concurrent use.
//
//	t, err := smtp.New(smtp.FromMailerConfig(cfg))
//	if err != nil {
//		return err
//	}
//	m, err := mailer.New(cfg, t)
//
// Connection security follows mailer.DeliveryOptions.TLS: implicit TLS, or
// opportunistic STARTTLS. Failures wrap mailer.ErrConnection, mailer.ErrAuth
// or mailer.ErrRejected.
package smtp
