package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/workbridge-dev/workbridge/db"
	"github.com/workbridge-dev/workbridge/internal/models"
	"github.com/workbridge-dev/workbridge/internal/types"
	"github.com/workbridge-dev/workbridge/internal/utils"
)

var (
	contractClients   = make(map[uint]map[*websocket.Conn]bool)
	contractClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type contractSnapshot struct {
	Type       string              `json:"type"`
	Contract   ContractResponse    `json:"contract"`
	Milestones []MilestoneResponse `json:"milestones"`
}

func buildContractSnapshot(contractID uint) (*contractSnapshot, error) {
	var contract models.Contract

	if err := db.DB.First(&contract, contractID).Error; err != nil {
		return nil, err
	}

	var milestones []models.Milestone

	if err := db.DB.Where("contract_id = ?", contractID).Order("order_index ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}

	snapshot := contractSnapshot{
		Type:       "contract_update",
		Contract:   contractToResponse(contract),
		Milestones: make([]MilestoneResponse, 0, len(milestones)),
	}

	for _, milestone := range milestones {
		snapshot.Milestones = append(snapshot.Milestones, milestoneToResponse(milestone))
	}

	return &snapshot, nil
}

// BroadcastContractUpdate pushes a fresh contract snapshot to every client
// watching the contract. Failed connections are dropped from the registry.
func BroadcastContractUpdate(contractID uint) {
	contractClientsMu.RLock()
	clients, exists := contractClients[contractID]
	if !exists || len(clients) == 0 {
		contractClientsMu.RUnlock()
		return
	}

	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	contractClientsMu.RUnlock()

	snapshot, err := buildContractSnapshot(contractID)

	if err != nil {
		log.Printf("Failed to build contract snapshot for broadcast: %v", err)
		return
	}

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		if err := conn.WriteJSON(snapshot); err != nil {
			log.Printf("Failed to broadcast contract update to client: %v", err)

			contractClientsMu.Lock()
			if clients, exists := contractClients[contractID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(contractClients, contractID)
				}
			}
			contractClientsMu.Unlock()
			conn.Close()
		}
	}
}

func ContractWebSocket(c *gin.Context) {
	userID, err := utils.GetCurrentUserID(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contractID, err := utils.GetContractID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := findParticipantContract(c, contractID, userID); !ok {
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	contractClientsMu.Lock()
	if contractClients[contractID] == nil {
		contractClients[contractID] = make(map[*websocket.Conn]bool)
	}
	contractClients[contractID][conn] = true
	contractClientsMu.Unlock()

	defer func() {
		contractClientsMu.Lock()

		if clients, exists := contractClients[contractID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(contractClients, contractID)
			}
		}

		contractClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for contract %d", contractID)
	}()

	// Send the current state right away so the client does not have to wait
	// for the next change.
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for initial snapshot: %v", err)
		return
	}

	snapshot, err := buildContractSnapshot(contractID)

	if err != nil {
		log.Printf("Failed to build initial contract snapshot: %v", err)
		return
	}

	if err := conn.WriteJSON(snapshot); err != nil {
		log.Printf("Failed to send initial snapshot: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for contract %d: %v", contractID, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for contract %d: %v", contractID, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for contract %d: %v", contractID, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for contract %d: %v", contractID, err)
			}
			break
		}
	}
}
