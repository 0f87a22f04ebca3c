package ws

import (
	"context"
	"goalboard/internal/models"
	"goalboard/internal/structures"
	"goalboard/internal/testutil"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Websocket: structures.WebsocketConfig{SendBuffer: 4, PingPeriod: time.Second},
	}
}

func newTestHub(t *testing.T) (*Hub, *testutil.MockGoalService, *testutil.MockMetrics, *httptest.Server) {
	svc := testutil.NewMockGoalService()
	metrics := &testutil.MockMetrics{}
	hub := NewHub(testConfig(), svc, &testutil.MockLogger{}, metrics)
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, svc, metrics, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	require.Eventually(t, func() bool { return hub.Count() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestNewHub_SubscribesToSource(t *testing.T) {
	_, svc, _, _ := newTestHub(t)
	assert.Equal(t, 1, svc.Observers)
}

func TestHub_SendsStateOnConnect(t *testing.T) {
	hub, _, metrics, srv := newTestHub(t)
	conn := dial(t, srv)

	msg := readMessage(t, conn)
	assert.Equal(t, EventState, msg.Event)
	require.NotNil(t, msg.Data)
	assert.Equal(t, 173, msg.Data.Current)
	assert.Len(t, msg.Data.Contributions, 5)

	waitForClients(t, hub, 1)
	assert.Eventually(t, func() bool { return metrics.GetWsClients() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsAfterMutation(t *testing.T) {
	hub, svc, _, srv := newTestHub(t)
	first := dial(t, srv)
	second := dial(t, srv)
	readMessage(t, first)
	readMessage(t, second)
	waitForClients(t, hub, 2)

	added := svc.AddRandomContribution()

	for _, conn := range []*websocket.Conn{first, second} {
		msg := readMessage(t, conn)
		require.Len(t, msg.Data.Contributions, 6)
		assert.Equal(t, added.ID, msg.Data.Contributions[0].ID)
		assert.Equal(t, 173+models.Score(added), msg.Data.Current)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub, _, _, srv := newTestHub(t)
	conn := dial(t, srv)
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_RunClosesOnCancel(t *testing.T) {
	hub, svc, metrics, srv := newTestHub(t)
	conn := dial(t, srv)
	readMessage(t, conn)
	waitForClients(t, hub, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, 0, metrics.GetWsClients())

	// detached from the ledger: further mutations are not delivered
	svc.AddRandomContribution()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func TestHub_RejectsClientsAfterClose(t *testing.T) {
	hub, _, _, srv := newTestHub(t)
	hub.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.Count())
}

func registerDetached(t *testing.T, hub *Hub, n int) []*client {
	clients := make([]*client, n)
	for i := range clients {
		clients[i] = &client{send: make(chan []byte, 1)}
		require.True(t, hub.register(clients[i]))
	}
	return clients
}

func TestHub_BroadcastDuringUnregister(t *testing.T) {
	hub, _, metrics, _ := newTestHub(t)
	clients := registerDetached(t, hub, 5000)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			hub.broadcast([]byte("x"))
		}
	}()
	go func() {
		defer wg.Done()
		for i := len(clients) - 1; i >= 0; i-- {
			hub.unregister(clients[i])
		}
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, 0, metrics.GetWsClients())
	for _, c := range clients {
		assert.True(t, isClosed(c.send))
	}
}

func TestHub_BroadcastDuringClose(t *testing.T) {
	hub, _, _, _ := newTestHub(t)
	registerDetached(t, hub, 5000)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			hub.broadcast([]byte("x"))
		}
	}()
	go func() {
		defer wg.Done()
		hub.Close()
	}()
	wg.Wait()

	assert.Equal(t, 0, hub.Count())
	assert.False(t, hub.register(&client{send: make(chan []byte, 1)}))
}

func TestHub_SlowClientDroppedOnBroadcast(t *testing.T) {
	hub, _, _, _ := newTestHub(t)
	clients := registerDetached(t, hub, 2)
	clients[0].send <- []byte("pending")

	hub.broadcast([]byte("x"))

	assert.Equal(t, 1, hub.Count())
	assert.True(t, isClosed(clients[0].send))
	assert.Equal(t, []byte("x"), <-clients[1].send)
}

// isClosed drains ch and reports whether it has been closed.
func isClosed(ch chan []byte) bool {
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return true
			}
		default:
			return false
		}
	}
}
