package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a bookable practitioner. ID and CreatedAt are assigned by the
// repository on insert; CreatedAt is never written again after that.
type Doctor struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string       `gorm:"type:varchar(100);not null;index" json:"name"`
	Specialization string       `gorm:"type:varchar(100);not null" json:"specialization"`
	Experience     int          `gorm:"not null" json:"experience"`
	Availability   Availability `gorm:"type:text;not null" json:"availability"`
	CreatedAt      time.Time    `gorm:"<-:create;not null" json:"created_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}
