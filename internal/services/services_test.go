package services

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/db"
	"github.com/arzan03/newsroom/internal/mailer"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg mailer.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) messages() []mailer.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mailer.Message(nil), n.sent...)
}

var resetLink = regexp.MustCompile(`/reset-password/([0-9a-f]+)`)

// rawTokenFrom pulls the raw reset token out of the last mailed link.
func rawTokenFrom(t *testing.T, n *recordingNotifier) string {
	t.Helper()
	msgs := n.messages()
	require.NotEmpty(t, msgs, "no reset email was sent")
	m := resetLink.FindStringSubmatch(msgs[len(msgs)-1].Body)
	require.Len(t, m, 2, "reset link missing from email body")
	return m[1]
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type authFixture struct {
	users    *db.MemoryUserRepository
	tokens   *auth.TokenIssuer
	notifier *recordingNotifier
	clock    *fakeClock
	auth     *AuthService
	reset    *ResetService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	f := &authFixture{
		users:    db.NewMemoryUserRepository(),
		tokens:   auth.NewTokenIssuer("test-secret", auth.DefaultSessionTTL),
		notifier: &recordingNotifier{},
		clock:    newFakeClock(),
	}
	f.auth = NewAuthService(f.users, f.tokens, bcrypt.MinCost, log)
	f.auth.now = f.clock.Now
	f.reset = NewResetService(f.users, f.notifier, ResetConfig{
		FrontendURL: "http://localhost:3000/",
		BcryptCost:  bcrypt.MinCost,
	}, log)
	f.reset.now = f.clock.Now
	return f
}

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, mailer.Message) error {
	return errors.New("smtp down")
}
