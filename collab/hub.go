package collab

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
)

const (
	JoinRoom        = "join-room"
	UpdateNotation  = "update-notation"
	ShareNotation   = "share-notation"
	UserJoined      = "user-joined"
	UserLeft        = "user-left"
	NotationUpdated = "notation-updated"
	RequestNotation = "request-notation"
	NotationShared  = "notation-shared"
)

// Message is the single envelope for everything sent over a connection.
// The notation travels as an opaque string.
type Message struct {
	Type        string   `json:"type"`
	RoomID      string   `json:"roomId,omitempty"`
	Username    string   `json:"username,omitempty"`
	Notation    string   `json:"notation,omitempty"`
	RequesterID string   `json:"requesterId,omitempty"`
	Users       []string `json:"users,omitempty"`
}

const sendBuffer = 64

type Peer struct {
	ID       string
	Username string
	RoomID   string
	send     chan Message
}

// Messages delivers what the hub routes to this peer. It is closed when the
// peer leaves.
func (p *Peer) Messages() <-chan Message {
	return p.send
}

type room struct {
	peers    map[string]*Peer
	debounce func(f func())
}

// SaveFunc persists the latest notation of a room.
type SaveFunc func(roomID, notation string)

// Hub relays notation between peers of the same room.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room
	save  SaveFunc
	delay time.Duration
}

// NewHub creates a hub. If save is not nil, notation updates are passed to
// it once a room has been quiet for delay.
func NewHub(save SaveFunc, delay time.Duration) *Hub {
	return &Hub{rooms: make(map[string]*room), save: save, delay: delay}
}

func (r *room) usernames() []string {
	res := make([]string, 0, len(r.peers))
	for _, p := range r.peers {
		res = append(res, p.Username)
	}
	sort.Strings(res)
	return res
}

func deliver(p *Peer, m Message) {
	select {
	case p.send <- m:
	default:
		log.Printf("dropping %v for %v in %v: buffer full", m.Type, p.Username, p.RoomID)
	}
}

// Join adds a peer to a room, tells the room about it and asks the other
// peers to share their notation with the newcomer.
func (h *Hub) Join(roomID, username string) *Peer {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		r = &room{peers: make(map[string]*Peer), debounce: debounce.New(h.delay)}
		h.rooms[roomID] = r
	}
	p := &Peer{ID: uuid.New().String(), Username: username, RoomID: roomID, send: make(chan Message, sendBuffer)}
	r.peers[p.ID] = p

	joined := Message{Type: UserJoined, Username: username, Users: r.usernames()}
	for _, other := range r.peers {
		deliver(other, joined)
		if other != p {
			deliver(other, Message{Type: RequestNotation, RequesterID: p.ID})
		}
	}
	return p
}

// Update forwards notation to everyone in the room except the sender and
// schedules it to be saved.
func (h *Hub) Update(p *Peer, notation string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[p.RoomID]
	if !ok || r.peers[p.ID] != p {
		return
	}
	for _, other := range r.peers {
		if other != p {
			deliver(other, Message{Type: NotationUpdated, Notation: notation, Username: p.Username})
		}
	}

	if h.save != nil {
		roomID, save := p.RoomID, h.save
		r.debounce(func() { save(roomID, notation) })
	}
}

// Share answers a request-notation by sending notation to the requester only.
func (h *Hub) Share(p *Peer, requesterID, notation string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[p.RoomID]
	if !ok {
		return
	}
	if requester, ok := r.peers[requesterID]; ok {
		deliver(requester, Message{Type: NotationShared, Notation: notation})
	}
}

// Leave removes the peer, closes its message channel and drops the room
// once it is empty.
func (h *Hub) Leave(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[p.RoomID]
	if !ok || r.peers[p.ID] != p {
		return
	}
	delete(r.peers, p.ID)
	close(p.send)

	if len(r.peers) == 0 {
		delete(h.rooms, p.RoomID)
		return
	}
	left := Message{Type: UserLeft, Username: p.Username, Users: r.usernames()}
	for _, other := range r.peers {
		deliver(other, left)
	}
}

// Users lists the usernames in a room.
func (h *Hub) Users(roomID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[roomID]
	if !ok {
		return nil
	}
	return r.usernames()
}
