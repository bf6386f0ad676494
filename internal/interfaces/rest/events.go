package rest_interface

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/coinpurse/internal/core/domain"
	"github.com/vulpemventures/coinpurse/internal/core/ports"
)

const (
	clientBufferSize = 32
	writeTimeout     = 10 * time.Second

	topicWallet  = "wallet"
	topicHistory = "history"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type eventMessage struct {
	Topic     string          `json:"topic"`
	EventType string          `json:"event_type"`
	Country   string          `json:"country"`
	Coins     []coinDTO       `json:"coins,omitempty"`
	Record    *recordResponse `json:"record,omitempty"`
}

// eventHub fans out the repository events to every connected websocket
// client. Slow clients miss the events that don't fit their buffer.
type eventHub struct {
	lock    sync.RWMutex
	clients map[chan eventMessage]struct{}
	closed  bool
}

func newEventHub(repoManager ports.RepoManager) *eventHub {
	hub := &eventHub{clients: make(map[chan eventMessage]struct{})}

	for _, eventType := range []domain.WalletEventType{
		domain.WalletCreated, domain.WalletCoinsAdded,
		domain.WalletCoinsUsed, domain.WalletReset,
	} {
		repoManager.RegisterHandlerForWalletEvent(
			eventType, func(e domain.WalletEvent) {
				hub.broadcast(eventMessage{
					Topic:     topicWallet,
					EventType: e.EventType.String(),
					Country:   e.Country,
					Coins:     fromCoins(e.Coins),
				})
			},
		)
	}

	for _, eventType := range []domain.HistoryEventType{
		domain.SpendRecordAdded, domain.HistoryReset,
	} {
		repoManager.RegisterHandlerForHistoryEvent(
			eventType, func(e domain.HistoryEvent) {
				msg := eventMessage{
					Topic:     topicHistory,
					EventType: e.EventType.String(),
					Country:   e.Country,
				}
				if e.Record != nil {
					r := fromRecord(e.Record)
					msg.Record = &r
				}
				hub.broadcast(msg)
			},
		)
	}

	return hub
}

func (h *eventHub) subscribe() (chan eventMessage, bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.closed {
		return nil, false
	}
	ch := make(chan eventMessage, clientBufferSize)
	h.clients[ch] = struct{}{}
	return ch, true
}

func (h *eventHub) unsubscribe(ch chan eventMessage) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
}

func (h *eventHub) broadcast(msg eventMessage) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

func (h *eventHub) numOfClients() int {
	h.lock.RLock()
	defer h.lock.RUnlock()
	return len(h.clients)
}

// close disconnects all clients and rejects new ones.
func (h *eventHub) close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
		close(ch)
	}
}

// streamEvents upgrades the connection to a websocket and streams the
// events of all wallets, or only of the one given with ?country=.
func (h *eventHub) streamEvents(c *gin.Context) {
	filter := strings.ToUpper(c.Query("country"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("rest service: failed to upgrade connection")
		return
	}
	defer conn.Close()

	ch, ok := h.subscribe()
	if !ok {
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
		)
		return
	}
	defer h.unsubscribe(ch)

	// Reads are only needed to detect the client going away.
	chDone := make(chan struct{})
	go func() {
		defer close(chDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				conn.WriteMessage(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				)
				return
			}
			if filter != "" && msg.Country != filter {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-chDone:
			return
		}
	}
}
