package store

// ChatTurn is one prior exchange line kept for grounding follow-up answers.
type ChatTurn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// SessionContext is the per-session conversational state: the most recently
// mentioned part/model/order (normalized) plus a rolling chat history.
//
// Fields are only ever overwritten with a freshly extracted value for the
// turn; they are never cleared while the record lives. Callers that need
// strict per-session ordering must serialize turns for the same session id
// at the transport layer; the record itself carries no lock.
type SessionContext struct {
	SessionId   string     `json:"session_id"`
	ActivePart  string     `json:"active_part"`
	ActiveModel string     `json:"active_model"`
	ActiveOrder string     `json:"active_order"`
	History     []ChatTurn `json:"history,omitempty"`
	LastQuery   string     `json:"last_query,omitempty"`
}

// NewSessionContext returns the default (all-empty) record for a session.
func NewSessionContext(sessionId string) *SessionContext {
	return &SessionContext{SessionId: sessionId}
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// AppendTurn records an exchange, keeping at most maxTurns entries.
func (c *SessionContext) AppendTurn(role, content string, maxTurns int) {
	c.History = append(c.History, ChatTurn{Role: role, Content: content})
	if maxTurns > 0 && len(c.History) > maxTurns {
		c.History = c.History[len(c.History)-maxTurns:]
	}
}
