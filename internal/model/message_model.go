package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId  string    `gorm:"type:text;not null;index:idx_messages_session_ts,priority:1"`
	Timestamp  time.Time `gorm:"not null;index:idx_messages_session_ts,priority:2,sort:desc"`
	Transcript string    `gorm:"type:text;not null"`
	Gist       string    `gorm:"type:text"`
	Speaker    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
