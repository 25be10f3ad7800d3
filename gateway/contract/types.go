package contract

// Intent is the classified purpose of a question. It selects which catalog
// operation answers it.
type Intent string

const (
	IntentSpec        Intent = "spec"
	IntentFluids      Intent = "fluids"
	IntentTires       Intent = "tires"
	IntentMaintenance Intent = "maintenance"
	IntentDealer      Intent = "dealer"
	IntentParts       Intent = "parts"
	IntentAccessory   Intent = "accessory"
	IntentRecommend   Intent = "recommend"
)

// DefaultModelYear is assumed when a question carries no 4-digit year token.
const DefaultModelYear = 2024

// Entities holds everything the router could extract from a question.
type Entities struct {
	Model     string `json:"model,omitempty"`
	Year      int    `json:"year"`
	Subsystem string `json:"subsystem,omitempty"`
	Zip       string `json:"zip,omitempty"`
}

// RiderProfile feeds the recommend fallback. Field values come from the
// router's secondary heuristics when no keyword group matched.
type RiderProfile struct {
	Experience      string `json:"experience"`
	RideType        string `json:"ride_type"`
	ComfortPriority bool   `json:"comfort_priority"`
}

// RunStatus is the observable state of a remote assistant run.
type RunStatus string

const (
	RunCreated        RunStatus = "CREATED"
	RunRunning        RunStatus = "RUNNING"
	RunRequiresAction RunStatus = "REQUIRES_ACTION"
	RunCompleted      RunStatus = "COMPLETED"
	RunFailed         RunStatus = "FAILED"
	RunCancelled      RunStatus = "CANCELLED"
	RunExpired        RunStatus = "EXPIRED"
	RunTimeout        RunStatus = "TIMEOUT"
)

// Terminal reports whether the remote run can make no further progress.
// TIMEOUT is local bookkeeping, not a remote state, so it is excluded.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunCompleted, RunFailed, RunCancelled, RunExpired:
		return true
	default:
		return false
	}
}

// ToolCall is a mid-run request from the assistant to execute a named
// capability with JSON-encoded arguments.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolResult pairs a tool call with its JSON-encoded outcome. Every pending
// ToolCall must receive exactly one ToolResult before polling resumes.
type ToolResult struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// RunSnapshot is one observation of a remote run.
type RunSnapshot struct {
	Status           RunStatus  `json:"status"`
	PendingToolCalls []ToolCall `json:"pending_tool_calls,omitempty"`
}

// MessagePart is one ordered text segment of an assistant message, together
// with any annotation substrings the provider attached to it.
type MessagePart struct {
	Text        string   `json:"text"`
	Annotations []string `json:"annotations,omitempty"`
}

// AnswerSource tells which path produced an answer.
type AnswerSource string

const (
	SourceDeterministic AnswerSource = "deterministic"
	SourceAgent         AnswerSource = "agent"
)

// Answer is the single success shape of the gateway.
type Answer struct {
	Text   string       `json:"text"`
	Source AnswerSource `json:"source"`
}

// Dealer is one enriched dealer-search candidate.
type Dealer struct {
	Name       string  `json:"name"`
	Address    string  `json:"address,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Website    string  `json:"website,omitempty"`
	Rating     float32 `json:"rating,omitempty"`
	BrandMatch bool    `json:"brand_match"`
}
