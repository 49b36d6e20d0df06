package smtp

import (
	"slices"
	"strings"

	gosmtp "github.com/wneessen/go-mail/smtp"
)

// plainOrLogin authenticates with PLAIN and falls back to LOGIN when the
// server advertises LOGIN only. Both refuse unencrypted sessions except to
// localhost.
type plainOrLogin struct {
	username string
	password string
	host     string
	next     gosmtp.Auth
}

func newAuth(cfg Config) *plainOrLogin {
	return &plainOrLogin{username: cfg.Username, password: cfg.Password, host: cfg.Host}
}

// Start implements smtp.Auth.
func (a *plainOrLogin) Start(server *gosmtp.ServerInfo) (string, []byte, error) {
	a.next = gosmtp.PlainAuth("", a.username, a.password, a.host, false)
	if !advertises(server.Auth, "PLAIN") && advertises(server.Auth, "LOGIN") {
		a.next = gosmtp.LoginAuth(a.username, a.password, a.host, false)
	}
	return a.next.Start(server)
}

// Next implements smtp.Auth.
func (a *plainOrLogin) Next(fromServer []byte, more bool) ([]byte, error) {
	return a.next.Next(fromServer, more)
}

func advertises(mechs []string, mech string) bool {
	return slices.ContainsFunc(mechs, func(m string) bool {
		return strings.EqualFold(m, mech)
	})
}
