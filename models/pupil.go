package models

import (
	"fmt"
	"time"
)

type Pupil struct {
	ID            uint         `gorm:"primaryKey;autoIncrement"`
	FirstName     string       `gorm:"not null;size:50"`
	LastName      string       `gorm:"not null;size:255"`
	BirthDate     time.Time    `gorm:"type:date;not null"`
	SchoolClassID *uint        `gorm:"index"`
	SchoolClass   *SchoolClass `gorm:"foreignKey:SchoolClassID"`
}

func (Pupil) TableName() string {
	return "pupil"
}

// InClass сообщает, привязан ли ученик именно к этому классу.
func (p *Pupil) InClass(classID uint) bool {
	return p.SchoolClassID != nil && *p.SchoolClassID == classID
}

// AssignTo updates both the foreign key and the loaded relation so the
// pupil serialises with its new class without another query.
func (p *Pupil) AssignTo(class *SchoolClass) {
	id := class.ID
	p.SchoolClassID = &id
	p.SchoolClass = class
}

func (p Pupil) String() string {
	class := "None"
	if p.SchoolClass != nil {
		class = p.SchoolClass.String()
	}
	return fmt.Sprintf("(%s, %s, %s)", p.FirstName, p.LastName, class)
}
