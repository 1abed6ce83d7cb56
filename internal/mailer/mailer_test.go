package mailer_test

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexa-app/vexa-web/internal/mailer"
)

func TestConfirmationMessage(t *testing.T) {
	m := mailer.New(mailer.Config{From: "noreply@vexa.local"})

	msg := string(m.ConfirmationMessage("ada@example.com", "Ada Lovelace"))

	assert.Contains(t, msg, "From: noreply@vexa.local\r\n")
	assert.Contains(t, msg, "To: ada@example.com\r\n")
	// Turkish subject must be RFC 2047 encoded.
	assert.Contains(t, msg, "Subject: =?utf-8?")
	assert.Contains(t, msg, "Merhaba Ada Lovelace")
	assert.Contains(t, msg, "Vexa Ekibi")
}

// fakeSMTP runs a single-connection SMTP server that accepts everything
// and records the DATA payload.
func fakeSMTP(t *testing.T) (addr string, data <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		write := func(s string) { conn.Write([]byte(s + "\r\n")) }

		write("220 test.local ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				write("250-test.local")
				write("250 OK")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case strings.HasPrefix(cmd, "DATA"):
				write("354 go ahead")
				var sb strings.Builder
				for {
					dl, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if strings.TrimRight(dl, "\r\n") == "." {
						break
					}
					sb.WriteString(dl)
				}
				out <- sb.String()
				write("250 OK")
			case strings.HasPrefix(cmd, "QUIT"):
				write("221 bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	return ln.Addr().String(), out
}

func TestSendConfirmation(t *testing.T) {
	addr, data := fakeSMTP(t)

	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	m := mailer.New(mailer.Config{
		Host: host,
		Port: port,
		From: "noreply@vexa.local",
		// STARTTLS requested but not advertised by the fake server, so
		// the send proceeds in plaintext.
		StartTLS: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, m.SendConfirmation(ctx, "ada@example.com", "Ada Lovelace"))

	select {
	case msg := <-data:
		assert.Contains(t, msg, "To: ada@example.com")
		assert.Contains(t, msg, "Merhaba Ada Lovelace")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received by fake SMTP server")
	}
}
