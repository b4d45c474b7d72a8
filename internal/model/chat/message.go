package chat

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in the conversation. Immutable once appended;
// display order is append order.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
