package mcpserver

import (
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// LSPBridgeSession implements the MCP server's ClientSession interface.
type LSPBridgeSession struct {
	id            string
	notifChannel  chan mcp.JSONRPCNotification
	isInitialized bool
	createdAt     time.Time
	lastAccessed  time.Time
}

// NewLSPBridgeSession creates a session identified by sessionID.
func NewLSPBridgeSession(sessionID string) *LSPBridgeSession {
	return &LSPBridgeSession{
		id:           sessionID,
		notifChannel: make(chan mcp.JSONRPCNotification, 10),
		createdAt:    time.Now(),
		lastAccessed: time.Now(),
	}
}

func (s *LSPBridgeSession) SessionID() string { return s.id }

func (s *LSPBridgeSession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifChannel
}

func (s *LSPBridgeSession) Initialize() {
	s.isInitialized = true
	s.lastAccessed = time.Now()
}

func (s *LSPBridgeSession) Initialized() bool { return s.isInitialized }

func (s *LSPBridgeSession) GetLastAccessed() time.Time { return s.lastAccessed }

func (s *LSPBridgeSession) GetCreatedAt() time.Time { return s.createdAt }
