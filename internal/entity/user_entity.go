package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleLearner  = "learner"
	RoleEducator = "educator"
)

// User is the candidate snapshot the matching engine works with. Credential
// management lives in a separate service; this record carries only the profile
// fields matching and signaling need.
type User struct {
	Id        uuid.UUID
	FullName  string
	Email     string
	Role      string
	Skills    []string // educator-side
	Topics    []string // learner-side
	Bio       string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// SubjectText returns the single joined skills string used as an educator's
// matching subject.
func (u *User) SubjectText() string {
	return joinTags(u.Skills)
}

// TopicText returns the joined topics string a learner is matched on when an
// educator initiates the search.
func (u *User) TopicText() string {
	return joinTags(u.Topics)
}

func joinTags(tags []string) string {
	out := ""
	for i, s := range tags {
		if i > 0 {
			out += " "
		}
		out += s
	}
	return out
}
