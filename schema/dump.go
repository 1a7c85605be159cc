package schema

import "pupils-backend/models"

type SchoolClassRecord struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Course string `json:"course"`
}

type PupilRecord struct {
	ID          uint               `json:"id"`
	FirstName   string             `json:"first_name"`
	LastName    string             `json:"last_name"`
	BirthDate   string             `json:"birth_date"`
	SchoolClass *SchoolClassRecord `json:"school_class"`
}

func DumpSchoolClass(c *models.SchoolClass) SchoolClassRecord {
	return SchoolClassRecord{ID: c.ID, Name: c.Name, Course: c.Course}
}

func DumpSchoolClasses(classes []models.SchoolClass) []SchoolClassRecord {
	out := make([]SchoolClassRecord, 0, len(classes))
	for i := range classes {
		out = append(out, DumpSchoolClass(&classes[i]))
	}
	return out
}

func DumpPupil(p *models.Pupil) PupilRecord {
	rec := PupilRecord{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: FormatDate(p.BirthDate),
	}
	if p.SchoolClass != nil {
		class := DumpSchoolClass(p.SchoolClass)
		rec.SchoolClass = &class
	}
	return rec
}

func DumpPupils(pupils []models.Pupil) []PupilRecord {
	out := make([]PupilRecord, 0, len(pupils))
	for i := range pupils {
		out = append(out, DumpPupil(&pupils[i]))
	}
	return out
}
