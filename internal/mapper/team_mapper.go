package mapper

import (
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"
)

type TeamMapper struct{}

func NewTeamMapper() *TeamMapper {
	return &TeamMapper{}
}

func (m *TeamMapper) RoleToEntity(r *model.TeamRole) *entity.TeamRole {
	if r == nil {
		return nil
	}
	return &entity.TeamRole{
		Id:             r.Id,
		TeamId:         r.TeamId,
		UserId:         r.UserId,
		Role:           r.Role,
		DepartmentRole: r.DepartmentRole,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *TeamMapper) RoleToModel(r *entity.TeamRole) *model.TeamRole {
	if r == nil {
		return nil
	}
	return &model.TeamRole{
		Id:             r.Id,
		TeamId:         r.TeamId,
		UserId:         r.UserId,
		Role:           r.Role,
		DepartmentRole: r.DepartmentRole,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
	}
}

func (m *TeamMapper) CoachingNoteToEntity(n *model.CoachingNote) *entity.CoachingNote {
	if n == nil {
		return nil
	}
	return &entity.CoachingNote{
		Id:           n.Id,
		UserId:       n.UserId,
		TranscriptId: n.TranscriptId,
		Note:         n.Note,
		CreatedAt:    n.CreatedAt,
	}
}

func (m *TeamMapper) CoachingNoteToModel(n *entity.CoachingNote) *model.CoachingNote {
	if n == nil {
		return nil
	}
	return &model.CoachingNote{
		Id:           n.Id,
		UserId:       n.UserId,
		TranscriptId: n.TranscriptId,
		Note:         n.Note,
		CreatedAt:    n.CreatedAt,
	}
}
