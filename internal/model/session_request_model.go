package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionRequest struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequestId string    `gorm:"type:text;not null;index"`
	ItemType  string    `gorm:"type:varchar(16);not null;index"`

	Status string `gorm:"type:varchar(16)"`

	RoomId    string `gorm:"type:text;index"`
	UserId    string `gorm:"type:text;index"`
	SessionId string `gorm:"type:text;index"`

	Transcript string `gorm:"type:text"`
	Gist       string `gorm:"type:text"`
	Speaker    string `gorm:"type:text"`
	Timestamp  time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SessionRequest) TableName() string {
	return "session_requests"
}
