package testutil

import (
	"context"
	"regexp"
	"sync"
	"testing"
)

var codeRegex = regexp.MustCompile(`\d{6}`)

// SentMessage records one delivery through the FakeSender.
type SentMessage struct {
	To   string
	Body string
}

// FakeSender is an in-memory sms.Sender for tests.
type FakeSender struct {
	mu       sync.Mutex
	messages []SentMessage
	err      error
}

func (f *FakeSender) Send(ctx context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, SentMessage{To: to, Body: body})
	return nil
}

// FailWith makes all subsequent sends return err (nil to recover).
func (f *FakeSender) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *FakeSender) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *FakeSender) Messages() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]SentMessage, len(f.messages))
	copy(out, f.messages)
	return out
}

// LastCode extracts the 6-digit code from the most recent message body.
func (f *FakeSender) LastCode(t *testing.T) string {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.messages) == 0 {
		t.Fatal("no messages sent")
	}
	code := codeRegex.FindString(f.messages[len(f.messages)-1].Body)
	if code == "" {
		t.Fatalf("no code found in message body: %q", f.messages[len(f.messages)-1].Body)
	}
	return code
}

func (f *FakeSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = nil
	f.err = nil
}
