package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Transcript is the domain view of one recorded call. JSON payloads stay raw
// here; the agent fetchers decode them tolerantly.
type Transcript struct {
	Id                uuid.UUID
	Title             string
	UserId            uuid.UUID
	CompanyId         *uuid.UUID
	Score             *int
	DealSignal        string
	Summary           string
	Participants      json.RawMessage
	Analysis          json.RawMessage
	RiskAlerts        json.RawMessage
	QualificationGaps json.RawMessage
	Lines             json.RawMessage
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	IsDeleted         bool
}
