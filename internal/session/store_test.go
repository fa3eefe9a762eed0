package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"kakeibo/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

// SessionStoreSuite provides a test suite for session lifecycle operations
type SessionStoreSuite struct {
	suite.Suite
	store *Store
}

// SetupTest runs before each test
func (suite *SessionStoreSuite) SetupTest() {
	suite.store = New(time.Hour, 100, testLogger())
}

// TearDownTest runs after each test
func (suite *SessionStoreSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Stop()
	}
}

func (suite *SessionStoreSuite) TestCreateAndFind() {
	sess := suite.store.Create([]byte("user:1"))
	require.NotEmpty(suite.T(), sess.Token)
	assert.Less(suite.T(), time.Since(sess.CreatedAt), 5*time.Second, "CreatedAt should be recent")
	assert.True(suite.T(), sess.ExpiresAt.After(sess.CreatedAt), "expiry lies in the future")

	found, ok := suite.store.Find(sess.Token)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), []byte("user:1"), found.Data, "payload is stored verbatim")
	assert.Equal(suite.T(), sess.Token, found.Token)
}

func (suite *SessionStoreSuite) TestTokensAreUnique() {
	a := suite.store.Create(nil)
	b := suite.store.Create(nil)
	assert.NotEqual(suite.T(), a.Token, b.Token)
}

func (suite *SessionStoreSuite) TestFindUnknownToken() {
	_, ok := suite.store.Find("not-a-token")
	assert.False(suite.T(), ok)
}

func (suite *SessionStoreSuite) TestExpiredSessionIsGone() {
	store := New(10*time.Millisecond, 100, testLogger())
	defer store.Stop()

	sess := store.Create([]byte("short-lived"))
	time.Sleep(25 * time.Millisecond)

	_, ok := store.Find(sess.Token)
	assert.False(suite.T(), ok, "expired session must not resolve")
	assert.Equal(suite.T(), 0, store.Size(), "lookup drops the expired entry")
}

func (suite *SessionStoreSuite) TestRenewExtendsExpiry() {
	sess := suite.store.Create([]byte("user:1"))

	// Ensure the renewed deadline measurably differs
	time.Sleep(10 * time.Millisecond)

	require.True(suite.T(), suite.store.Renew(sess.Token))

	renewed, ok := suite.store.Find(sess.Token)
	require.True(suite.T(), ok)
	assert.True(suite.T(), renewed.ExpiresAt.After(sess.ExpiresAt),
		"ExpiresAt should move forward on renewal")
}

func (suite *SessionStoreSuite) TestRenewUnknownOrExpired() {
	assert.False(suite.T(), suite.store.Renew("not-a-token"))

	store := New(10*time.Millisecond, 100, testLogger())
	defer store.Stop()

	sess := store.Create(nil)
	time.Sleep(25 * time.Millisecond)
	assert.False(suite.T(), store.Renew(sess.Token), "an expired session cannot be renewed")
}

func (suite *SessionStoreSuite) TestDelete() {
	sess := suite.store.Create([]byte("user:1"))

	suite.store.Delete(sess.Token)

	_, ok := suite.store.Find(sess.Token)
	assert.False(suite.T(), ok)

	// Deleting again is a no-op
	suite.store.Delete(sess.Token)
	assert.Equal(suite.T(), 0, suite.store.Size())
}

func (suite *SessionStoreSuite) TestCapacityEvictsLeastRecentlyUsed() {
	store := New(time.Hour, 2, testLogger())
	defer store.Stop()

	a := store.Create([]byte("a"))
	b := store.Create([]byte("b"))

	// Touch a so b becomes the least recently used
	_, ok := store.Find(a.Token)
	require.True(suite.T(), ok)

	c := store.Create([]byte("c"))
	assert.Equal(suite.T(), 2, store.Size())

	_, ok = store.Find(b.Token)
	assert.False(suite.T(), ok, "the least recently used session is evicted")
	_, ok = store.Find(a.Token)
	assert.True(suite.T(), ok)
	_, ok = store.Find(c.Token)
	assert.True(suite.T(), ok)
}

func (suite *SessionStoreSuite) TestCleanExpired() {
	store := New(50*time.Millisecond, 100, testLogger())
	defer store.Stop()

	store.Create([]byte("old-1"))
	store.Create([]byte("old-2"))
	time.Sleep(70 * time.Millisecond)

	fresh := store.Create([]byte("fresh"))

	removed := store.CleanExpired()
	assert.Equal(suite.T(), 2, removed)
	assert.Equal(suite.T(), 1, store.Size())

	_, ok := store.Find(fresh.Token)
	assert.True(suite.T(), ok, "live sessions survive the sweep")
}

func (suite *SessionStoreSuite) TestStopIsIdempotent() {
	store := New(time.Hour, 10, testLogger())
	store.Stop()
	store.Stop()
}

// Test suite runner
func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}
