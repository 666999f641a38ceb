package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName  string         `gorm:"type:text;not null"`
	Email     string         `gorm:"type:text;not null;uniqueIndex"`
	Role      string         `gorm:"type:varchar(16);not null;index"`
	Skills    datatypes.JSON `gorm:"type:jsonb"`
	Topics    datatypes.JSON `gorm:"type:jsonb"`
	Bio       string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
