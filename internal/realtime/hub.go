// Package realtime разводит сигналы об изменении записей по подписчикам конкретного пользователя.
package realtime

import (
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Event string

const (
	// EventRecordsChanged - коллекция записей пользователя изменилась, нужен новый снимок.
	EventRecordsChanged Event = "RecordsChanged"
	// EventAccountDeleted - пользователь удалён, подписки нужно закрыть.
	EventAccountDeleted Event = "AccountDeleted"
)

const outboundBuffer = 16

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

// UserChannel - имя канала, на который подписаны все сессии пользователя.
func UserChannel(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

type Client struct {
	ID       uuid.UUID
	UserID   int64
	Channels map[string]bool
	Outbound chan Message

	done      chan struct{}
	closeOnce sync.Once
}

// Done закрывается вместе с клиентом.
func (c *Client) Done() <-chan struct{} { return c.done }

type Hub struct {
	mu            sync.RWMutex
	logger        *zap.SugaredLogger
	subscriptions map[string]map[*Client]bool
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{
		logger:        logger.With("component", "hub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) NewClient(userID int64) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, outboundBuffer),
		done:     make(chan struct{}),
	}
}

func (h *Hub) AddChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	client.Channels[channel] = true
	clients, ok := h.subscriptions[channel]
	if !ok {
		clients = make(map[*Client]bool)
		h.subscriptions[channel] = clients
	}
	clients[client] = true

	h.logger.Debugw("client subscribed", "clientID", client.ID, "channel", channel)
}

func (h *Hub) RemoveChannel(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(client.Channels, channel)
	h.unsubscribeLocked(client, channel)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range client.Channels {
		h.unsubscribeLocked(client, ch)
	}
	client.Channels = make(map[string]bool)
}

func (h *Hub) unsubscribeLocked(client *Client, channel string) {
	if subs, ok := h.subscriptions[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// Subscribers - число клиентов на канале.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}

// Broadcast не блокируется: при полном буфере сообщение клиенту теряется.
// Следующее изменение всё равно принесёт полный снимок.
func (h *Hub) Broadcast(msg Message) {
	if msg.Channel == "" {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subscriptions[msg.Channel] {
		select {
		case c.Outbound <- msg:
		default:
			h.logger.Warnw("dropping message, outbound buffer full", "clientID", c.ID, "channel", msg.Channel)
		}
	}
}

// CloseClient отписывает клиента и закрывает его очередь. Повторный вызов безопасен.
func (h *Hub) CloseClient(client *Client) {
	client.closeOnce.Do(func() {
		close(client.done)
		h.RemoveClient(client)
		// под блокировкой: Broadcast больше не увидит клиента
		h.mu.Lock()
		close(client.Outbound)
		h.mu.Unlock()
	})
}
