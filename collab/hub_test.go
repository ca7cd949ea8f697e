package collab

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, p *Peer) Message {
	t.Helper()
	select {
	case m, ok := <-p.Messages():
		require.True(t, ok, "channel closed")
		return m
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func empty(t *testing.T, p *Peer) {
	t.Helper()
	select {
	case m := <-p.Messages():
		t.Fatalf("unexpected message %+v", m)
	default:
	}
}

func drain(p *Peer) {
	for len(p.Messages()) > 0 {
		<-p.Messages()
	}
}

func TestJoinAnnouncesAndRequestsNotation(t *testing.T) {
	h := NewHub(nil, 0)
	ann := h.Join("song", "ann")
	assert := assert.New(t)
	assert.Equal(Message{Type: UserJoined, Username: "ann", Users: []string{"ann"}}, next(t, ann))

	bob := h.Join("song", "bob")
	assert.Equal(Message{Type: UserJoined, Username: "bob", Users: []string{"ann", "bob"}}, next(t, ann))
	assert.Equal(Message{Type: RequestNotation, RequesterID: bob.ID}, next(t, ann))
	assert.Equal(Message{Type: UserJoined, Username: "bob", Users: []string{"ann", "bob"}}, next(t, bob))
	empty(t, bob)
}

func TestUpdateSkipsSender(t *testing.T) {
	h := NewHub(nil, 0)
	ann := h.Join("song", "ann")
	bob := h.Join("song", "bob")
	other := h.Join("elsewhere", "cat")
	next(t, ann)
	next(t, ann)
	assert.Equal(t, RequestNotation, next(t, ann).Type)
	next(t, bob)
	next(t, other)

	h.Update(ann, "C4q D4q")
	assert.Equal(t, Message{Type: NotationUpdated, Notation: "C4q D4q", Username: "ann"}, next(t, bob))
	empty(t, ann)
	empty(t, other)
}

func TestShareGoesToRequesterOnly(t *testing.T) {
	h := NewHub(nil, 0)
	ann := h.Join("song", "ann")
	bob := h.Join("song", "bob")
	cat := h.Join("song", "cat")
	drain(ann)
	drain(bob)
	drain(cat)

	h.Share(ann, cat.ID, "E4h")
	assert.Equal(t, Message{Type: NotationShared, Notation: "E4h"}, next(t, cat))
	empty(t, bob)
	empty(t, ann)

	h.Share(ann, "nobody", "E4h")
	empty(t, bob)
	empty(t, cat)
}

func TestLeaveRemovesEmptyRooms(t *testing.T) {
	h := NewHub(nil, 0)
	ann := h.Join("song", "ann")
	bob := h.Join("song", "bob")
	next(t, ann)
	next(t, ann)
	next(t, ann)
	assert.Equal(t, UserJoined, next(t, bob).Type)
	empty(t, bob)

	h.Leave(bob)
	assert := assert.New(t)
	assert.Equal(Message{Type: UserLeft, Username: "bob", Users: []string{"ann"}}, next(t, ann))
	_, ok := <-bob.Messages()
	assert.False(ok)

	h.Leave(ann)
	assert.Nil(h.Users("song"))
	assert.Empty(h.rooms)

	// leaving twice is harmless
	h.Leave(ann)
}

type saves struct {
	mu    sync.Mutex
	calls []string
	done  chan struct{}
}

func (s *saves) save(roomID, notation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, roomID+":"+notation)
	s.done <- struct{}{}
}

func TestUpdatesAreSavedOnceQuiet(t *testing.T) {
	s := &saves{done: make(chan struct{}, 4)}
	h := NewHub(s.save, 20*time.Millisecond)
	ann := h.Join("song", "ann")

	h.Update(ann, "C4q")
	h.Update(ann, "C4q D4q")
	h.Update(ann, "C4q D4q E4q")

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("notation was never saved")
	}
	time.Sleep(50 * time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.Equal(t, []string{"song:C4q D4q E4q"}, s.calls)
}

func dial(t *testing.T, url, username string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.Nil(t, err)
	require.Nil(t, conn.WriteJSON(Message{Type: JoinRoom, Username: username}))
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var m Message
	require.Nil(t, conn.ReadJSON(&m))
	return m
}

func TestServeOverWebsocket(t *testing.T) {
	h := NewHub(nil, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, "song")
	}))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	assert := assert.New(t)
	ann := dial(t, url, "ann")
	defer ann.Close()
	assert.Equal(UserJoined, read(t, ann).Type)

	bob := dial(t, url, "bob")
	defer bob.Close()
	assert.Equal([]string{"ann", "bob"}, read(t, bob).Users)
	assert.Equal([]string{"ann", "bob"}, read(t, ann).Users)

	request := read(t, ann)
	assert.Equal(RequestNotation, request.Type)
	require.Nil(t, ann.WriteJSON(Message{Type: ShareNotation, RequesterID: request.RequesterID, Notation: "G4w"}))
	assert.Equal(Message{Type: NotationShared, Notation: "G4w"}, read(t, bob))

	require.Nil(t, bob.WriteJSON(Message{Type: UpdateNotation, Notation: "G4w A4w"}))
	assert.Equal(Message{Type: NotationUpdated, Notation: "G4w A4w", Username: "bob"}, read(t, ann))

	bob.Close()
	assert.Equal(Message{Type: UserLeft, Username: "bob", Users: []string{"ann"}}, read(t, ann))
}

func TestServeRejectsMissingJoin(t *testing.T) {
	h := NewHub(nil, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Serve(w, r, "song")
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.Nil(t, err)
	defer conn.Close()
	require.Nil(t, conn.WriteJSON(Message{Type: UpdateNotation, Notation: "C4q"}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.NotNil(t, err)
	assert.Nil(t, h.Users("song"))
}
