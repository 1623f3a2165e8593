package mapper

import (
	"encoding/json"
	"time"

	"autostream-assistant/internal/entity"
	"autostream-assistant/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LeadMapper struct{}

func NewLeadMapper() *LeadMapper {
	return &LeadMapper{}
}

func (m *LeadMapper) ToEntity(l *model.Lead) *entity.Lead {
	if l == nil {
		return nil
	}

	var deletedAt *time.Time
	if l.DeletedAt.Valid {
		t := l.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !l.UpdatedAt.IsZero() {
		t := l.UpdatedAt
		updatedAt = &t
	}

	metadata := map[string]interface{}{}
	if len(l.Metadata) > 0 {
		// Corrupt metadata is dropped rather than failing the read
		_ = json.Unmarshal(l.Metadata, &metadata)
	}

	return &entity.Lead{
		Id:         l.Id,
		SessionId:  l.SessionId,
		Name:       l.Name,
		Email:      l.Email,
		Platform:   l.Platform,
		Plan:       l.Plan,
		Metadata:   metadata,
		CapturedAt: l.CapturedAt,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  l.DeletedAt.Valid,
	}
}

func (m *LeadMapper) ToModel(l *entity.Lead) *model.Lead {
	if l == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if l.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *l.DeletedAt, Valid: true}
	} else if l.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if l.UpdatedAt != nil {
		updatedAt = *l.UpdatedAt
	}

	var metadata datatypes.JSON
	if len(l.Metadata) > 0 {
		if raw, err := json.Marshal(l.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Lead{
		Id:         l.Id,
		SessionId:  l.SessionId,
		Name:       l.Name,
		Email:      l.Email,
		Platform:   l.Platform,
		Plan:       l.Plan,
		Metadata:   metadata,
		CapturedAt: l.CapturedAt,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *LeadMapper) ToEntities(leads []*model.Lead) []*entity.Lead {
	entities := make([]*entity.Lead, len(leads))
	for i, l := range leads {
		entities[i] = m.ToEntity(l)
	}
	return entities
}
