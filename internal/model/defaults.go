package model

import "time"

// Shared defaults used by both the service and the terminal client.
const (
	DefaultFrameInterval   = 80 * time.Millisecond
	DefaultLaneSpeed       = 1.0
	DefaultLaneIdleTimeout = 2000 * time.Millisecond
	DefaultLaneSize        = 5 // trending/discounted rows

	DefaultAssistantLanguage      = "kurdish"
	DefaultAssistantTypingDelay   = 1000 * time.Millisecond
	DefaultAssistantThinkingDelay = 1500 * time.Millisecond
	DefaultAssistantImageDelay    = 2000 * time.Millisecond
)
