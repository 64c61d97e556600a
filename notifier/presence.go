package notifier

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Conn is a live, addressable connection for push delivery. The
// websocket Client below is the production implementation.
type Conn interface {
	WriteJSON(v interface{}) error
}

// Client wraps a websocket connection. Underlying conns are not safe
// for concurrent writers, so every write goes through the mutex.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

// WriteJSON sends a JSON message on the connection
func (cl *Client) WriteJSON(v interface{}) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.conn.WriteJSON(v)
}

// Registry is the in-memory presence map: user id -> live connection.
// It is not authoritative; a missing entry means "assume offline".
// Last registration wins when the same user reconnects.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]Conn
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint]Conn)}
}

// Register binds a user id to a live connection, replacing any
// previous handle for that user.
func (r *Registry) Register(userID uint, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[userID] = conn
}

// Unregister removes the mapping, but only if it still points at the
// closing connection. A reconnect that already overwrote the entry is
// left alone.
func (r *Registry) Unregister(userID uint, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients[userID] == conn {
		delete(r.clients, userID)
	}
}

// Get returns the live connection for a user, if any
func (r *Registry) Get(userID uint) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.clients[userID]
	return conn, ok
}

// Count returns the number of connected users
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
