package models

// ProctorEvent records browser-focus proctoring counters captured during a
// session. The dispatcher reads the most recent row per session.
type ProctorEvent struct {
	BaseModel

	// SessionID identifies the recording session.
	SessionID string `gorm:"not null;size:255;index" json:"session_id"`

	// Event names the trigger that produced this row (tab switch, etc).
	Event string `gorm:"size:255" json:"event,omitempty"`

	// TabSwitchCount is the running count of tab switches.
	TabSwitchCount int `json:"tabswitch_count"`

	// FullscreenExitCount is the running count of fullscreen exits.
	FullscreenExitCount int `json:"fullscreen_exit_count"`
}

// TableName returns the table name for ProctorEvent.
func (ProctorEvent) TableName() string {
	return "proctor_events"
}

// FrameCapture records one analyzed camera frame: how many people were
// visible and whether a phone was detected.
type FrameCapture struct {
	BaseModel

	// SessionID identifies the recording session.
	SessionID string `gorm:"not null;size:255;index" json:"session_id"`

	// PersonCount is the number of faces detected in the frame.
	PersonCount int `json:"person_count"`

	// CellPhoneDetected is true if a phone was visible in the frame.
	CellPhoneDetected bool `json:"cell_phone_detected"`
}

// TableName returns the table name for FrameCapture.
func (FrameCapture) TableName() string {
	return "frame_captures"
}
