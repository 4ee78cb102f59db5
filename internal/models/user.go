package models

import "time"

type UserRole string

const (
	RoleTeamLeader UserRole = "team_leader"
	RoleTeamMember UserRole = "team_member"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'team_member'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Items       []KnowledgeItem    `gorm:"foreignKey:AuthorID" json:"-"`
	Validations []ValidationRecord `gorm:"foreignKey:ValidatorID" json:"-"`
}

// ParseRole only grants team_leader when it is requested verbatim.
func ParseRole(role string) UserRole {
	if UserRole(role) == RoleTeamLeader {
		return RoleTeamLeader
	}
	return RoleTeamMember
}
