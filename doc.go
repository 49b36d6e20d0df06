// Package mailkit composes, validates and delivers email.
//
// It wires the building blocks under pkg/ into a ready-to-use Mailer: address
// validation, message building with file attachments, SMTP delivery through
// go-mail, markdown and HTML templates with layouts, and async and bulk sending.
//
// # Quick Start
//
// Configure from the environment (EMAIL, SMTP_SERVER, EMAIL_PASSWORD and friends):
//
//	m, err := mailkit.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = m.Send(ctx, mailkit.SendParams{
//	    To:      []string{"user@example.com"},
//	    Subject: "Hello",
//	    Body:    "Plain text body",
//	})
//
// Or build the config in code:
//
//	m, err := mailkit.New(mailkit.Config{
//	    Email:    "noreply@example.com",
//	    Host:     "smtp.example.com",
//	    Password: os.Getenv("EMAIL_PASSWORD"),
//	})
//
// # Transports
//
// SMTP is the default. HTTP providers plug in through WithTransport:
//
//	t, _ := resend.New(resend.Config{APIKey: key})
//	m, err := mailkit.New(cfg, mailkit.WithTransport(t))
//
// See packages pkg/mailer/smtp, pkg/mailer/resend, pkg/mailer/postmark and
// pkg/mailer/mailgun.
//
// # Templates
//
// Templates are loaded from Config.TemplateDir ("templates" by default) or from
// the fs.FS passed to WithTemplateFS. Files ending in .md are markdown rendered
// into a layout; other files are HTML templates.
//
//	err = m.SendTemplate(ctx, mailkit.TemplateParams{
//	    To:       "user@example.com",
//	    Template: "welcome.md",
//	    Context:  mailer.MustContextOf(map[string]any{"Name": "Ann"}),
//	})
//
// # Errors
//
// Failures are classified with sentinel errors usable with errors.Is:
// ErrInvalidAddress, ErrBuildFailed, ErrRenderFailed and ErrSendFailed, the
// latter refined by ErrAuth, ErrConnection or ErrRejected.
package mailkit
