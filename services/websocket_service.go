package services

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Bhargavvz/todoapp/broker"
	"github.com/Bhargavvz/todoapp/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	todoResource = "todo"

	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// WebSocketServiceInterface defines the operations provided by the WebSocket service
type WebSocketServiceInterface interface {
	broker.Publisher
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	ClientCount() int
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Hub  *WebSocketService
	Conn *websocket.Conn
	Send chan []byte

	mu sync.Mutex
	// Keys are "todo" for every todo event or "todo:<id>" for one todo.
	Subscriptions map[string]bool
}

type outbound struct {
	data         []byte
	resourceType string
	resourceID   string
}

type unicast struct {
	client *Client
	data   []byte
}

// WebSocketService fans todo events out to live clients.
type WebSocketService struct {
	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan outbound
	direct       chan unicast
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader

	isRunning atomic.Bool
	stopOnce  sync.Once
	stopChan  chan struct{}
}

// NewWebSocketService creates a hub accepting connections from origins. An
// empty list or "*" accepts any origin.
func NewWebSocketService(origins []string) *WebSocketService {
	return &WebSocketService{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, sendBufferSize),
		direct:     make(chan unicast, sendBufferSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		stopChan: make(chan struct{}),
	}
}

// Start runs the hub loop in the background.
func (ws *WebSocketService) Start() {
	if !ws.isRunning.CompareAndSwap(false, true) {
		return
	}
	go ws.run()
	log.Println("WebSocket service started")
}

// Stop closes every client connection and ends the hub loop.
func (ws *WebSocketService) Stop() {
	if !ws.isRunning.Load() {
		return
	}
	ws.stopOnce.Do(func() {
		ws.isRunning.Store(false)
		close(ws.stopChan)

		ws.clientsMutex.Lock()
		for id, client := range ws.clients {
			// Ends writePump without waiting for the next ping.
			close(client.Send)
			if client.Conn != nil {
				client.Conn.Close()
			}
			delete(ws.clients, id)
		}
		ws.clientsMutex.Unlock()

		log.Println("WebSocket service stopped")
	})
}

func (ws *WebSocketService) ClientCount() int {
	ws.clientsMutex.RLock()
	defer ws.clientsMutex.RUnlock()
	return len(ws.clients)
}

// Publish broadcasts event to every client subscribed to the todo it concerns.
func (ws *WebSocketService) Publish(ctx context.Context, event models.TodoEvent) error {
	if !ws.isRunning.Load() {
		return nil
	}

	message := models.NewStandardMessage(models.EventMessage, event.Event, event).
		WithResource(todoResource, event.TodoID)
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	select {
	case ws.broadcast <- outbound{data: data, resourceType: todoResource, resourceID: event.TodoID}:
		return nil
	case <-ws.stopChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleConnection upgrades the request and registers the client.
func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	if !ws.isRunning.Load() {
		c.String(http.StatusServiceUnavailable, ErrWebSocketConnection.Error())
		return
	}

	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		return
	}

	client := &Client{
		ID:            uuid.New().String(),
		Hub:           ws,
		Conn:          conn,
		Send:          make(chan []byte, sendBufferSize),
		Subscriptions: map[string]bool{todoResource: true},
	}

	select {
	case ws.register <- client:
	case <-ws.stopChan:
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}

// run handles the main client message hub
func (ws *WebSocketService) run() {
	for {
		select {
		case <-ws.stopChan:
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			log.Printf("Client connected: %s", client.ID)

		case client := <-ws.unregister:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[client.ID]; ok {
				delete(ws.clients, client.ID)
				close(client.Send)
				log.Printf("Client disconnected: %s", client.ID)
			}
			ws.clientsMutex.Unlock()

		case msg := <-ws.broadcast:
			ws.deliver(msg)

		case msg := <-ws.direct:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[msg.client.ID]; ok {
				ws.enqueue(msg.client, msg.data)
			}
			ws.clientsMutex.Unlock()
		}
	}
}

func (ws *WebSocketService) deliver(msg outbound) {
	ws.clientsMutex.Lock()
	defer ws.clientsMutex.Unlock()

	sent := 0
	for _, client := range ws.clients {
		if !client.isSubscribed(msg.resourceType, msg.resourceID) {
			continue
		}
		if ws.enqueue(client, msg.data) {
			sent++
		}
	}
	log.Printf("Sent %s:%s event to %d clients (out of %d connected)",
		msg.resourceType, msg.resourceID, sent, len(ws.clients))
}

// enqueue drops clients whose send buffer is full. Callers hold clientsMutex.
func (ws *WebSocketService) enqueue(client *Client, data []byte) bool {
	select {
	case client.Send <- data:
		return true
	default:
		log.Printf("Client %s send buffer full, removing client", client.ID)
		close(client.Send)
		delete(ws.clients, client.ID)
		return false
	}
}

func (c *Client) isSubscribed(resourceType, resourceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Subscriptions["all"] || c.Subscriptions[resourceType] {
		return true
	}
	return resourceID != "" && c.Subscriptions[resourceType+":"+resourceID]
}

// readPump handles incoming messages from the WebSocket client
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.stopChan:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Error reading from WebSocket: %v", err)
			}
			return
		}
		c.processMessage(message)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processMessage handles messages received from the client
func (c *Client) processMessage(msg []byte) {
	var clientMsg models.ClientMessage
	if err := json.Unmarshal(msg, &clientMsg); err != nil {
		c.reply(models.ErrorMessage, "invalid_message", map[string]string{"message": err.Error()})
		return
	}

	switch clientMsg.Type {
	case models.SubscribeMessage:
		c.handleSubscribe(clientMsg)
	case models.UnsubscribeMessage:
		c.handleUnsubscribe(clientMsg)
	case models.PingMessage:
		c.reply(models.PingMessage, "pong", nil)
	default:
		log.Printf("Unknown message type: %s", clientMsg.Type)
		c.reply(models.ErrorMessage, "unknown_type", map[string]string{"message": "unknown message type " + string(clientMsg.Type)})
	}
}

// handleSubscribe narrows or widens delivery. Subscribing to a single todo drops
// the default subscription to every todo.
func (c *Client) handleSubscribe(msg models.ClientMessage) {
	payload, ok := c.subscriptionPayload(msg)
	if !ok {
		return
	}

	c.mu.Lock()
	if payload.ID != "" {
		delete(c.Subscriptions, payload.Resource)
		c.Subscriptions[payload.Resource+":"+payload.ID] = true
	} else {
		c.Subscriptions[payload.Resource] = true
	}
	c.mu.Unlock()

	log.Printf("Client %s subscribed to %s %s", c.ID, payload.Resource, payload.ID)
	c.reply(models.SubscriptionMessage, "confirmed", payload)
}

func (c *Client) handleUnsubscribe(msg models.ClientMessage) {
	payload, ok := c.subscriptionPayload(msg)
	if !ok {
		return
	}

	c.mu.Lock()
	if payload.ID != "" {
		delete(c.Subscriptions, payload.Resource+":"+payload.ID)
	} else {
		delete(c.Subscriptions, payload.Resource)
	}
	c.mu.Unlock()

	c.reply(models.SubscriptionMessage, "removed", payload)
}

func (c *Client) subscriptionPayload(msg models.ClientMessage) (models.SubscriptionPayload, bool) {
	var payload models.SubscriptionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Resource == "" {
		c.reply(models.ErrorMessage, "invalid_subscription", map[string]string{"message": "resource is required"})
		return payload, false
	}
	return payload, true
}

// reply goes through the hub so it never races the hub closing Send.
func (c *Client) reply(msgType models.WebSocketMessageType, event string, payload interface{}) {
	data, err := json.Marshal(models.NewStandardMessage(msgType, event, payload))
	if err != nil {
		log.Printf("Error serializing reply: %v", err)
		return
	}
	select {
	case c.Hub.direct <- unicast{client: c, data: data}:
	case <-c.Hub.stopChan:
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
	}
}
