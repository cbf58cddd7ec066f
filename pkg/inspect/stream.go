package inspect

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// handleWS upgrades the connection, sends the current frame of every root,
// then keeps the client registered until it disconnects.
func (in *Inspector) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := in.upgrader.Upgrade(w, r, nil)
	if err != nil {
		in.logger.Debug("inspect: upgrade failed", "error", err)
		return
	}

	in.writeMu.Lock()
	for _, f := range in.frames() {
		if err := in.write(conn, f); err != nil {
			in.writeMu.Unlock()
			conn.Close()
			return
		}
	}
	in.clientsMu.Lock()
	in.clients[conn] = true
	in.clientsMu.Unlock()
	in.writeMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	in.drop(conn)
}

// ClientCount returns the number of connected websocket clients.
func (in *Inspector) ClientCount() int {
	in.clientsMu.Lock()
	defer in.clientsMu.Unlock()
	return len(in.clients)
}

func (in *Inspector) write(conn *websocket.Conn, f Frame) error {
	data, err := EncodeFrame(f)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// broadcast sends f to every client. Clients that fail are dropped.
func (in *Inspector) broadcast(f Frame) {
	in.writeMu.Lock()
	defer in.writeMu.Unlock()

	in.clientsMu.Lock()
	clients := make([]*websocket.Conn, 0, len(in.clients))
	for c := range in.clients {
		clients = append(clients, c)
	}
	in.clientsMu.Unlock()

	for _, c := range clients {
		if err := in.write(c, f); err != nil {
			in.drop(c)
		}
	}
}

func (in *Inspector) drop(conn *websocket.Conn) {
	in.clientsMu.Lock()
	delete(in.clients, conn)
	in.clientsMu.Unlock()
	conn.Close()
}
