// Package mailer composes, validates and delivers email.
//
// The package separates message assembly from delivery. A Mailer validates
// addresses, reads attachments and renders templates into a Message, then hands
// it to a Transport. Transports live in subpackages: smtp (go-mail), resend,
// postmark and mailgun.
//
// # Architecture
//
//   - Address and AddressPolicy: syntactic validation and lower-casing, or pass-through
//   - Build: turns BuildParams into a Message, all or nothing
//   - TemplateRenderer: markdown or HTML templates with YAML front matter and layouts
//   - Transport: one delivery attempt per call, no retries
//   - Mailer: Send, SendAsync, SendBulk, SendBulkAsync and SendTemplate
//
// # Usage
//
//	cfg := mailer.Config{
//		Email:    "noreply@example.com",
//		Host:     "smtp.example.com",
//		Password: os.Getenv("EMAIL_PASSWORD"),
//	}
//
//	transport, err := smtp.New(smtp.FromMailerConfig(cfg))
//	if err != nil {
//		return err
//	}
//
//	renderer, err := mailer.NewRenderer(os.DirFS("templates"), mailer.RendererConfig{
//		DefaultLayout: "base.html",
//	})
//	if err != nil {
//		return err
//	}
//
//	m, err := mailer.New(cfg, transport, mailer.WithRenderer(renderer), mailer.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	err = m.SendTemplate(ctx, mailer.TemplateParams{
//		To:       "user@example.com",
//		Template: "welcome.md",
//		Context:  mailer.MustContextOf(map[string]any{"name": "Alice"}),
//	})
//
// # Templates
//
// Markdown templates carry optional YAML front matter:
//
//	---
//	Subject: Welcome, {{.name}}
//	Layout: base.html
//	---
//	# Hello {{.name}}
//
//	[!button:primary|Get Started](https://example.com/start)
//
// The body is executed as a Go template with the context, converted to HTML and
// placed into the layout as {{.Content}}. Layouts live under "layouts/" in the
// template file system. Files that are not markdown are html/template files
// rendered without a layout. Referencing a key missing from the context fails
// with ErrRenderFailed, before anything is sent.
//
// # Bulk Sending
//
// SendBulk sends one message per recipient, in order, and stops at the first
// failure. The returned *BulkError names the recipient that failed; earlier
// recipients have already been sent. SendBulkAsync sends concurrently, bounded
// by Config.BulkConcurrency.
//
// # Errors
//
// Errors wrap the sentinels in errors.go and are matched with errors.Is:
// ErrInvalidAddress, ErrBuildFailed, ErrRenderFailed and ErrSendFailed. Send
// failures additionally wrap ErrAuth, ErrConnection or ErrRejected when the
// transport can tell them apart.
package mailer
