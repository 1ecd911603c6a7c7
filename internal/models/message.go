package models

// Role identifies who authored a message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label returns the prefix used when a message is rendered
func (r Role) Label() string {
	if r == RoleUser {
		return "You: "
	}
	return "Barb: "
}

// Message represents a chat message. It is also the wire shape sent upstream.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Labeled returns the message content prefixed with its role label
func (m Message) Labeled() string {
	return m.Role.Label() + m.Content
}

// ErrorMessage builds the assistant message shown when a request fails
func ErrorMessage(err error) Message {
	return Message{Role: RoleAssistant, Content: "Error: " + err.Error()}
}

// Conversation is an ordered, append-only transcript.
// The only in-place mutation is growth of the trailing assistant message.
type Conversation struct {
	messages []Message
}

// NewConversation creates a conversation seeded with the given messages
func NewConversation(msgs ...Message) *Conversation {
	c := &Conversation{}
	c.messages = append(c.messages, msgs...)
	return c
}

// Append adds a message to the end of the transcript
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// AppendDelta grows the trailing assistant message.
// It reports false when the last message is not an assistant message.
func (c *Conversation) AppendDelta(delta string) bool {
	n := len(c.messages)
	if n == 0 || c.messages[n-1].Role != RoleAssistant {
		return false
	}
	c.messages[n-1].Content += delta
	return true
}

// Messages returns a copy of the transcript, safe to hand to another goroutine
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the last message, if any
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastReply returns the content of the most recent assistant message
func (c *Conversation) LastReply() string {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i].Content
		}
	}
	return ""
}
