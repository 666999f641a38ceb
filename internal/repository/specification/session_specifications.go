package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionId filters session-scoped rows by their session id (string key)
type BySessionId struct {
	SessionId string
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// BySessionIds filters sessions by a set of ids
type BySessionIds struct {
	Ids []string
}

func (s BySessionIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id IN ?", s.Ids)
}

// ByRoomId filters by signaling room id
type ByRoomId struct {
	RoomId string
}

func (s ByRoomId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomId)
}

// ByRequestId filters session request rows by the request correlation id
type ByRequestId struct {
	RequestId string
}

func (s ByRequestId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_id = ?", s.RequestId)
}

// ByItemType filters session request rows by item kind (SESSION / MESSAGE)
type ByItemType struct {
	ItemType string
}

func (s ByItemType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("item_type = ?", s.ItemType)
}

// ByStatus filters by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByUserId filters by the owning user
type ByUserId struct {
	UserId string
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByLearnerId filters match rows by learner
type ByLearnerId struct {
	LearnerId uuid.UUID
}

func (s ByLearnerId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("learner_id = ?", s.LearnerId)
}

// ByRole filters users by platform role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}
