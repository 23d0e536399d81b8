package telegram

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBotAPI struct {
	mu    sync.Mutex
	texts []string
	chats []string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"digest","username":"digest_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		r.ParseForm()
		f.mu.Lock()
		f.texts = append(f.texts, r.FormValue("text"))
		f.chats = append(f.chats, r.FormValue("chat_id"))
		f.mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func newTestBot(t *testing.T) (*Bot, *fakeBotAPI) {
	fake := &fakeBotAPI{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	bot, err := NewBotWithEndpoint("123:abc", 42, srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	return bot, fake
}

func TestBot_SendStatus(t *testing.T) {
	bot, fake := newTestBot(t)

	require.NoError(t, bot.SendStatus("Found 3 jobs, email sent"))
	assert.Equal(t, []string{"ℹ️ Found 3 jobs, email sent"}, fake.texts)
	assert.Equal(t, []string{"42"}, fake.chats)
}

func TestBot_SendError(t *testing.T) {
	bot, fake := newTestBot(t)

	require.NoError(t, bot.SendError(errors.New("smtp auth: 535")))
	assert.Equal(t, []string{"❌ Error: smtp auth: 535"}, fake.texts)
}

func TestNewBot_InvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer srv.Close()

	_, err := NewBotWithEndpoint("bad", 42, srv.URL+"/bot%s/%s")
	assert.Error(t, err)
}
