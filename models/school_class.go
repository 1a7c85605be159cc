package models

import "fmt"

type SchoolClass struct {
	ID     uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" db:"name" gorm:"not null;size:50"`
	Course string `json:"course" db:"course" gorm:"not null;size:50"`
}

func (SchoolClass) TableName() string {
	return "school_class"
}

func (c SchoolClass) String() string {
	return fmt.Sprintf("(%s, %s)", c.Name, c.Course)
}
