package comment

import (
	"encoding/json"
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

func dialFeed(t *testing.T, hub *Hub, blogID int64) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.ServeFeed(blogID, conn)
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.SubscriberCount(blogID) > 0
	}, time.Second, 10*time.Millisecond)

	return client, func() {
		client.Close()
		srv.Close()
	}
}

func TestHub_BroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialFeed(t, hub, 7)
	defer cleanup()

	hub.Broadcast(7, Event{Type: EventDeleted, BlogID: 7, ID: 42})

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, EventDeleted, got.Type)
	assert.Equal(t, int64(7), got.BlogID)
	assert.Equal(t, int64(42), got.ID)
}

func TestHub_ConcurrentBroadcastsSingleConnection(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialFeed(t, hub, 7)
	defer cleanup()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := client.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Writes from many goroutines must all funnel through the single
	// write pump without tripping gorilla's concurrent-write check.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				hub.Broadcast(7, Event{Type: EventCreated, BlogID: 7})
			}
		}()
	}
	wg.Wait()

	client.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not observe connection close")
	}
}

func TestHub_BroadcastSkipsOtherRooms(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialFeed(t, hub, 7)
	defer cleanup()

	hub.Broadcast(8, Event{Type: EventCreated, BlogID: 8})

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := client.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnsubscribeOnDisconnect(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	client, cleanup := dialFeed(t, hub, 7)
	defer cleanup()

	client.Close()

	assert.Eventually(t, func() bool {
		return hub.SubscriberCount(7) == 0
	}, time.Second, 10*time.Millisecond)
}
