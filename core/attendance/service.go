package attendance

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

var (
	// errors
	ErrNoneRecorded = errors.New("no attendance recorded")
	ErrNotAssigned  = errors.New("student is not assigned to this teacher")
)

type (
	// Repository is the attendance document contract: whole-document load and
	// replace, absent or corrupt document reads as empty.
	Repository interface {
		LoadSheets() (Sheets, error)
		SaveSheets(sheets Sheets) error
	}

	Service interface {
		// Record marks the given students for one date; every student must be
		// assigned to the recording teacher. All marks land in one write.
		Record(teacher, date string, marks map[string]Status) error
		All() (Sheets, error)
		StudentLog(student string) (DayLog, error)
		Summary() ([]SummaryRow, error)
	}

	service struct {
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service) Service {
	return &service{repo: repo, usrSvc: usrSvc}
}

func (svc *service) Record(teacher, date string, marks map[string]Status) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date, expected YYYY-MM-DD"})
	}
	for student, status := range marks {
		if !status.Valid() {
			return core.NewValidationError(
				nil, core.FieldError{Field: student, Error: fmt.Sprintf("invalid status %q", status)})
		}
	}

	assigned, err := svc.usrSvc.AssignedStudents(teacher)
	if err != nil {
		return err
	}
	roster := make(map[string]bool, len(assigned))
	for _, acct := range assigned {
		roster[acct.Name] = true
	}
	for student := range marks {
		if !roster[core.TitleName(student)] {
			return ErrNotAssigned
		}
	}

	sheets, err := svc.repo.LoadSheets()
	if err != nil {
		return err
	}
	for student, status := range marks {
		student = core.TitleName(student)
		if sheets[student] == nil {
			sheets[student] = make(DayLog)
		}
		sheets[student][date] = status
	}
	return svc.repo.SaveSheets(sheets)
}

func (svc *service) All() (Sheets, error) {
	return svc.repo.LoadSheets()
}

func (svc *service) StudentLog(student string) (DayLog, error) {
	sheets, err := svc.repo.LoadSheets()
	if err != nil {
		return nil, err
	}
	log, ok := sheets[core.TitleName(student)]
	if !ok || len(log) == 0 {
		return nil, ErrNoneRecorded
	}
	return log, nil
}

// Summary aggregates per student: days counted, present/absent split and the
// attendance rate, flagging anyone under 75%.
func (svc *service) Summary() ([]SummaryRow, error) {
	sheets, err := svc.repo.LoadSheets()
	if err != nil {
		return nil, err
	}

	students := make([]string, 0, len(sheets))
	for student := range sheets {
		students = append(students, student)
	}
	sort.Strings(students)

	rows := make([]SummaryRow, 0, len(students))
	for _, student := range students {
		log := sheets[student]
		row := SummaryRow{Student: student, TotalDays: len(log)}
		for _, status := range log {
			if status == StatusPresent {
				row.Present++
			}
		}
		row.Absent = row.TotalDays - row.Present
		if row.TotalDays > 0 {
			row.Rate = math.Round(float64(row.Present)/float64(row.TotalDays)*10000) / 100
		}
		row.Remark = RemarkOnTrack
		if row.Rate < minRate {
			row.Remark = RemarkNeedsIntervention
		}
		rows = append(rows, row)
	}
	return rows, nil
}
