package testutil

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dom/chateo-backend/internal/service"
	gorillaWS "github.com/gorilla/websocket"
)

// PresenceURL returns the ws:// address of the presence endpoint.
func PresenceURL(ts *TestServer) string {
	return "ws" + strings.TrimPrefix(ts.Server.URL, "http") + "/api/v1/ws"
}

// PresenceConn is one live test connection to the presence endpoint.
// The socket carries no application frames; the connection itself is
// the signal.
type PresenceConn struct {
	t     *testing.T
	conn  *gorillaWS.Conn
	close sync.Once
}

// DialPresence opens a presence connection authenticated by the given
// session token.
func DialPresence(t *testing.T, ts *TestServer, sessionToken string) *PresenceConn {
	t.Helper()

	header := http.Header{}
	header.Set("Cookie", fmt.Sprintf("%s=%s", service.SessionCookieName, sessionToken))

	dialer := gorillaWS.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, resp, err := dialer.Dial(PresenceURL(ts), header)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("failed to connect to presence endpoint: %v", err)
	}

	pc := &PresenceConn{t: t, conn: conn}

	t.Cleanup(func() {
		pc.Close()
	})

	return pc
}

// Close shuts the connection down; safe to call more than once.
func (c *PresenceConn) Close() {
	c.close.Do(func() {
		c.conn.WriteControl(
			gorillaWS.CloseMessage,
			gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		c.conn.Close()
	})
}
