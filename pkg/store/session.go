package store

// Turn roles. The agent prompt uses "model" for assistant turns to stay
// aligned with the Gemini role naming used elsewhere.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one transcript entry. Immutable once appended.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session holds the ordered transcript for one conversation id.
// Lifecycle is process-wide and in-memory only; sessions are created on first
// reference and removed only by an explicit clear.
type Session struct {
	ID    string `json:"id"`
	Turns []Turn `json:"turns"`
}
