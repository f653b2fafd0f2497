package model

// Role identifies who produced a conversation turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the conversation log
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
