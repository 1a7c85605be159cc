// Package export builds spreadsheet downloads of the pupil roster.
package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"pupils-backend/models"
	"pupils-backend/schema"
)

const (
	SheetName   = "Pupils"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var header = []interface{}{"ID", "First name", "Last name", "Birth date", "Class", "Course"}

// WriteRoster writes one row per pupil, in the given order, under a header row.
func WriteRoster(w io.Writer, pupils []models.Pupil) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i := range pupils {
		p := &pupils[i]
		className, course := "", ""
		if p.SchoolClass != nil {
			className, course = p.SchoolClass.Name, p.SchoolClass.Course
		}
		row := []interface{}{p.ID, p.FirstName, p.LastName, schema.FormatDate(p.BirthDate), className, course}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrapf(err, "row %d", i+2)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "write pupil %d", p.ID)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}
