package game

// Phase is the coarse state of a game and decides what player input does.
type Phase string

const (
	PhaseAiming        Phase = "AIMING"
	PhaseBallInFlight  Phase = "BALL_IN_FLIGHT"
	PhaseLevelComplete Phase = "LEVEL_COMPLETE"
	PhaseGameOver      Phase = "GAME_OVER"
)

// InputResult says how HandleInput dispatched a player action.
type InputResult string

const (
	InputShot      InputResult = "SHOT"
	InputNextLevel InputResult = "NEXT_LEVEL"
	InputRestart   InputResult = "RESTART"
	InputIgnored   InputResult = "IGNORED"
)

// EventType names something that happened during a frame or an input.
type EventType string

const (
	EventShot           EventType = "shot"
	EventSegmentBroken  EventType = "segment_broken"
	EventNodeBounce     EventType = "node_bounce"
	EventSegmentSpawned EventType = "segment_spawned"
	EventNodeRemoved    EventType = "node_removed"
	EventLevelStarted   EventType = "level_started"
	EventLevelComplete  EventType = "level_complete"
	EventGameOver       EventType = "game_over"
)

// Event records one engine occurrence for collaborators (sound, pub/sub,
// persistence). Segment is -1 when not applicable.
type Event struct {
	Type     EventType `json:"type"`
	Level    int       `json:"level"`
	Segment  SegmentID `json:"segment"`
	Position Vector    `json:"position"`
}

// Score is the result recorded when a game ends.
type Score struct {
	Level     int `json:"level"`
	ShotsUsed int `json:"shots_used"`
}
