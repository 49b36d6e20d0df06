package smtp_test

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal SMTP responder for driving the transport in tests.
type fakeServer struct {
	ln        net.Listener
	mechs     string // Advertised AUTH mechanisms
	authReply string
	rcptReply string

	mu    sync.Mutex
	auths []string
	rcpts []string
	data  []string
}

func startServer(t *testing.T, authReply, rcptReply string) *fakeServer {
	t.Helper()
	return startServerWithAuth(t, "PLAIN LOGIN", authReply, rcptReply)
}

func startServerWithAuth(t *testing.T, mechs, authReply, rcptReply string) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{ln: ln, mechs: mechs, authReply: authReply, rcptReply: rcptReply}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	return s
}

func (s *fakeServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// mechanisms returns the AUTH mechanism of every login attempt.
func (s *fakeServer) mechanisms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.auths...)
}

func (s *fakeServer) recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rcpts...)
}

func (s *fakeServer) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.data...)
}

func (s *fakeServer) serve(conn net.Conn) {
	defer func() { _ = conn.Close() }()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	reply := func(lines ...string) {
		for _, l := range lines {
			_, _ = w.WriteString(l + "\r\n")
		}
		_ = w.Flush()
	}

	reply("220 localhost ESMTP ready")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		upper := strings.ToUpper(cmd)

		switch {
		case strings.HasPrefix(upper, "EHLO"):
			reply("250-localhost", "250-AUTH "+s.mechs, "250 8BITMIME")
		case strings.HasPrefix(upper, "AUTH"):
			fields := strings.Fields(upper)
			mech := ""
			if len(fields) > 1 {
				mech = fields[1]
			}
			s.mu.Lock()
			s.auths = append(s.auths, mech)
			s.mu.Unlock()

			if mech == "LOGIN" && len(fields) == 2 {
				// Username and password prompts, base64 encoded.
				reply("334 VXNlcm5hbWU6")
				if _, err := r.ReadString('\n'); err != nil {
					return
				}
				reply("334 UGFzc3dvcmQ6")
				if _, err := r.ReadString('\n'); err != nil {
					return
				}
			}
			reply(s.authReply)
		case strings.HasPrefix(upper, "RCPT TO:"):
			s.mu.Lock()
			s.rcpts = append(s.rcpts, strings.TrimSpace(cmd[len("RCPT TO:"):]))
			s.mu.Unlock()
			reply(s.rcptReply)
		case upper == "DATA":
			reply("354 end data with <CR><LF>.<CR><LF>")
			var body strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				body.WriteString(l)
			}
			s.mu.Lock()
			s.data = append(s.data, body.String())
			s.mu.Unlock()
			reply("250 2.0.0 queued")
		case upper == "QUIT":
			reply("221 2.0.0 bye")
			return
		default:
			reply("250 2.0.0 ok")
		}
	}
}
