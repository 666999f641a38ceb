package model

import (
	"time"

	"gorm.io/datatypes"
)

type Session struct {
	Id           string         `gorm:"type:text;primaryKey"`
	RoomId       string         `gorm:"type:text;index"`
	Participants datatypes.JSON `gorm:"type:jsonb"`
	Status       string         `gorm:"type:varchar(16);not null;index"`
	SessionType  string         `gorm:"type:varchar(32)"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	StartedAt    time.Time      `gorm:"not null"`
	EndedAt      *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}
