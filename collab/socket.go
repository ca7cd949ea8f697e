package collab

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jsphweid/scorepad/constants"
)

const (
	writeWait = 10 * time.Second
	// room for the envelope around a maximal notation
	readLimit = constants.MaxNotationBytes + 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Serve upgrades the request and runs the connection as a peer of roomID.
// The first message must be a join-room carrying the username.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("could not upgrade connection for room %v: %v", roomID, err)
		return
	}
	conn.SetReadLimit(readLimit)

	var join Message
	if err := conn.ReadJSON(&join); err != nil || join.Type != JoinRoom {
		log.Printf("closing connection for room %v: expected %v", roomID, JoinRoom)
		conn.Close()
		return
	}
	if join.Username == "" {
		join.Username = "anonymous"
	}

	p := h.Join(roomID, join.Username)
	go writePump(conn, p)
	h.readPump(conn, p)
}

func writePump(conn *websocket.Conn, p *Peer) {
	defer conn.Close()
	for m := range p.Messages() {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(m); err != nil {
			log.Printf("write to %v failed: %v", p.Username, err)
			return
		}
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) readPump(conn *websocket.Conn, p *Peer) {
	defer h.Leave(p)
	for {
		var m Message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("connection of %v in %v dropped: %v", p.Username, p.RoomID, err)
			}
			return
		}
		switch m.Type {
		case UpdateNotation:
			h.Update(p, m.Notation)
		case ShareNotation:
			h.Share(p, m.RequesterID, m.Notation)
		default:
			log.Printf("ignoring %q from %v", m.Type, p.Username)
		}
	}
}
