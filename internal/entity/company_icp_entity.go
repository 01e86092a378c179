package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CompanyICP struct {
	Id               uuid.UUID
	CompanyId        uuid.UUID
	ValueProposition string
	Products         json.RawMessage
	IcpAttributes    json.RawMessage
	Personas         json.RawMessage
	CreatedAt        time.Time
}
