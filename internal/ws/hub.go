package ws

import (
	"context"
	"goalboard/internal/models"
	"goalboard/internal/providers"
	"goalboard/internal/structures"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"
)

const (
	writeTimeout      = 10 * time.Second
	defaultPingPeriod = 54 * time.Second
	defaultSendBuffer = 16
	readLimit         = 512
)

const EventState = "state"

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Same-origin is not enforced; put a reverse proxy in front for that.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is the JSON envelope pushed to pages.
type Message struct {
	Event string           `json:"event"`
	Data  *models.Snapshot `json:"data"`
}

// StateSource is the part of the goal service the hub needs.
type StateSource interface {
	GetSnapshot() *models.Snapshot
	Subscribe(observer models.LedgerObserver) func()
}

// Hub pushes the ledger state to every connected page after each mutation.
type Hub struct {
	source     StateSource
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	pingPeriod time.Duration
	sendBuffer int

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	count   atomic.Int64

	unsubscribe func()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func NewHub(conf *structures.Config, source StateSource, logger providers.Logger, metrics providers.MetricsProviderInterface) *Hub {
	h := &Hub{
		source:     source,
		logger:     logger,
		metrics:    metrics,
		pingPeriod: conf.Websocket.PingPeriod,
		sendBuffer: conf.Websocket.SendBuffer,
		clients:    make(map[*client]struct{}),
	}
	if h.pingPeriod <= 0 {
		h.pingPeriod = defaultPingPeriod
	}
	if h.sendBuffer <= 0 {
		h.sendBuffer = defaultSendBuffer
	}
	h.unsubscribe = source.Subscribe(h)
	return h
}

// OnLedgerChanged implements models.LedgerObserver.
func (h *Hub) OnLedgerChanged(snapshot *models.Snapshot) {
	data, err := encode(snapshot)
	if err != nil {
		h.logger.Errorf(providers.TypeApp, "Unable to encode state for live update: %s", err)
		return
	}
	h.broadcast(data)
}

// Run blocks until ctx is cancelled, then detaches from the ledger and closes
// every connection.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()
	h.Close()
}

func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
	h.mu.Unlock()

	h.unsubscribe()
	h.count.Store(0)
	h.metrics.SetWsClients(0)
}

// ServeHTTP upgrades the connection, sends the current state right away and
// then keeps the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnf(providers.TypeGet, "Websocket upgrade failed: %s", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}
	// Queued before registration so it cannot race a close of send.
	if data, err := encode(h.source.GetSnapshot()); err == nil {
		c.send <- data
	}
	if !h.register(c) {
		conn.Close()
		return
	}
	defer h.unregister(c)

	go c.writePump(h.pingPeriod)
	c.readPump(h.pingPeriod)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

func encode(snapshot *models.Snapshot) ([]byte, error) {
	return json.Marshal(Message{Event: EventState, Data: snapshot})
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.metrics.SetWsClients(int(h.count.Inc()))
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.metrics.SetWsClients(int(h.count.Dec()))
	}
}

// broadcast sends under the read lock: send channels are only closed under
// the write lock, so every registered client's channel is open here.
func (h *Hub) broadcast(data []byte) {
	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warnf(providers.TypeApp, "Dropping slow live update client")
		h.unregister(c)
	}
}

func (c *client) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only handles control frames; pages never send data.
func (c *client) readPump(pingPeriod time.Duration) {
	defer c.conn.Close()
	pongWait := pingPeriod * 10 / 9
	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}
