package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Match struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Subject         string         `gorm:"type:text;not null;index"`
	LearnerId       uuid.UUID      `gorm:"type:uuid;index"`
	EducatorId      uuid.UUID      `gorm:"type:uuid;index"`
	DisplayName     string         `gorm:"type:text"`
	Skills          datatypes.JSON `gorm:"type:jsonb"`
	Bio             string         `gorm:"type:text"`
	SimilarityScore float64
	RawScore        float64
	SessionStatus   string    `gorm:"type:varchar(16)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Match) TableName() string {
	return "matches"
}
