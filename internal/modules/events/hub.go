package events

import (
	"sync"

	"github.com/gorilla/websocket"

	"agentcrm/internal/domain"
)

const (
	TypeLeadCreated = "lead.created"
	TypeLeadUpdated = "lead.updated"
)

// LeadEvent — событие по лиду, доставляемое агентам в реальном времени.
type LeadEvent struct {
	Type string       `json:"type"`
	Lead *domain.Lead `json:"lead"`
}

type Hub struct {
	connections map[string]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*websocket.Conn),
	}
}

func (h *Hub) Register(agentID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if oldConn, exists := h.connections[agentID]; exists && oldConn != nil {
		_ = oldConn.Close()
	}

	h.connections[agentID] = conn
}

func (h *Hub) Unregister(agentID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, exists := h.connections[agentID]; exists && conn != nil {
		_ = conn.Close()
		delete(h.connections, agentID)
	}
}

func (h *Hub) SendToAgent(agentID string, message interface{}) bool {
	h.mutex.RLock()
	conn, exists := h.connections[agentID]
	h.mutex.RUnlock()

	if !exists || conn == nil {
		return false
	}

	if err := conn.WriteJSON(message); err != nil {
		h.Unregister(agentID)
		return false
	}

	return true
}

// Broadcast отправляет сообщение всем подключённым агентам.
func (h *Hub) Broadcast(message interface{}) {
	h.mutex.RLock()
	ids := make([]string, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mutex.RUnlock()

	for _, id := range ids {
		h.SendToAgent(id, message)
	}
}

// NotifyLead доставляет событие назначенному агенту;
// лид без агента уходит всем подключённым.
func (h *Hub) NotifyLead(eventType string, lead *domain.Lead) {
	evt := LeadEvent{Type: eventType, Lead: lead}
	if lead.AgentID != "" {
		h.SendToAgent(lead.AgentID, evt)
		return
	}
	h.Broadcast(evt)
}

func (h *Hub) LeadCreated(lead *domain.Lead) {
	h.NotifyLead(TypeLeadCreated, lead)
}

func (h *Hub) LeadUpdated(lead *domain.Lead) {
	h.NotifyLead(TypeLeadUpdated, lead)
}

func (h *Hub) IsOnline(agentID string) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, exists := h.connections[agentID]
	return exists
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.connections)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for agentID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, agentID)
	}
}
