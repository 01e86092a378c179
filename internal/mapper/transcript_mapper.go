package mapper

import (
	"encoding/json"
	"time"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TranscriptMapper struct{}

func NewTranscriptMapper() *TranscriptMapper {
	return &TranscriptMapper{}
}

func (m *TranscriptMapper) ToEntity(t *model.Transcript) *entity.Transcript {
	if t == nil {
		return nil
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Transcript{
		Id:                t.Id,
		Title:             t.Title,
		UserId:            t.UserId,
		CompanyId:         t.CompanyId,
		Score:             t.Score,
		DealSignal:        t.DealSignal,
		Summary:           t.Summary,
		Participants:      json.RawMessage(t.Participants),
		Analysis:          json.RawMessage(t.Analysis),
		RiskAlerts:        json.RawMessage(t.RiskAlerts),
		QualificationGaps: json.RawMessage(t.QualificationGaps),
		Lines:             json.RawMessage(t.Lines),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		IsDeleted:         t.DeletedAt.Valid,
	}
}

func (m *TranscriptMapper) ToModel(t *entity.Transcript) *model.Transcript {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Transcript{
		Id:                t.Id,
		Title:             t.Title,
		UserId:            t.UserId,
		CompanyId:         t.CompanyId,
		Score:             t.Score,
		DealSignal:        t.DealSignal,
		Summary:           t.Summary,
		Participants:      datatypes.JSON(t.Participants),
		Analysis:          datatypes.JSON(t.Analysis),
		RiskAlerts:        datatypes.JSON(t.RiskAlerts),
		QualificationGaps: datatypes.JSON(t.QualificationGaps),
		Lines:             datatypes.JSON(t.Lines),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}
