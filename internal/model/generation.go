package model

import "time"

// Generation status constants.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// Content type constants.
const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeAudio = "audio"
	TypeText  = "text"
)

// Provider identifier constants.
const (
	ProviderOpenAI     = "openai"
	ProviderMidjourney = "midjourney"
	ProviderRunway     = "runway"
	ProviderElevenLabs = "elevenlabs"
	ProviderVeo3       = "veo3"
)

// validTransitions maps each status to the set of statuses it may transition to.
var validTransitions = map[string]map[string]bool{
	StatusQueued: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusCompleted: true,
		StatusFailed:    true,
		StatusCancelled: true,
	},
}

// ValidTransition reports whether transitioning from one status to another is allowed.
func ValidTransition(from, to string) bool {
	targets, ok := validTransitions[from]
	if !ok {
		return false
	}
	return targets[to]
}

// Terminal reports whether a status is terminal. Terminal records never
// change status again.
func Terminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Generation represents a single AI content generation request and its
// lifecycle state. Type and Provider are fixed at creation; ResultURL and
// ErrorMessage are mutually exclusive and set only on the matching terminal
// transition.
type Generation struct {
	ID                  string         `json:"id"`
	Type                string         `json:"type"`
	Provider            string         `json:"provider"`
	Prompt              string         `json:"prompt"`
	Parameters          map[string]any `json:"parameters,omitempty"`
	ProjectID           *string        `json:"project_id,omitempty"`
	Status              string         `json:"status"`
	ResultURL           string         `json:"result_url,omitempty"`
	ErrorMessage        string         `json:"error_message,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	EstimatedCompletion time.Time      `json:"estimated_completion"`
}
