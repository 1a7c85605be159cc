package export

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"pupils-backend/models"
)

func readRows(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestWriteRoster(t *testing.T) {
	p1 := models.Pupil{ID: 3, FirstName: "Denis", LastName: "Young", BirthDate: time.Date(2012, 3, 3, 0, 0, 0, 0, time.UTC)}
	p2 := models.Pupil{ID: 1, FirstName: "Clara", LastName: "Mills", BirthDate: time.Date(2010, 9, 1, 0, 0, 0, 0, time.UTC)}
	p2.AssignTo(&models.SchoolClass{ID: 1, Name: "1-A", Course: "Mathematics"})

	var buf bytes.Buffer
	if err := WriteRoster(&buf, []models.Pupil{p1, p2}); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, &buf)
	want := [][]string{
		{"ID", "First name", "Last name", "Birth date", "Class", "Course"},
		{"3", "Denis", "Young", "03-03-2012"},
		{"1", "Clara", "Mills", "01-09-2010", "1-A", "Mathematics"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v\nwant  %v", rows, want)
	}
}

func TestWriteRosterEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRoster(&buf, nil); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, &buf)
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %v", rows)
	}
}
