package domain

// Message is one conversation turn, in OpenAI chat format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatReply is the assistant's response to one /ask turn.
type ChatReply struct {
	Answer      string    `json:"answer"`
	Results     []Product `json:"results"`
	Suggestions []string  `json:"suggestions"`
	History     []Message `json:"history,omitempty"`
	WhatsAppURL string    `json:"whatsappUrl,omitempty"`
}
