package schedule

import (
	"errors"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

var (
	// errors
	ErrNoneScheduled = errors.New("no timetable found")

	errNoTeacher = "no teacher assigned for this student"
)

type (
	// Repository is the timetable document contract: whole-document load and
	// replace, absent or corrupt document reads as empty.
	Repository interface {
		LoadTimetable() (Timetable, error)
		SaveTimetable(tt Timetable) error
	}

	Service interface {
		// AddEntry appends a slot to both the student's and the teacher's
		// schedules in one write. An empty teacher is filled from the
		// student's pairing.
		AddEntry(ne NewEntry) error
		StudentTimetable(student string) ([]Entry, error)
		TeacherSchedule(teacher string) ([]Entry, error)
		All() (Timetable, error)
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

func (svc *service) AddEntry(ne NewEntry) error {
	if err := ne.Validate(); err != nil {
		return err
	}

	if ne.Teacher == "" {
		teacher, err := svc.usrSvc.AssignedTeacher(ne.Student)
		if err != nil && err != user.ErrNotFound {
			return err
		}
		if teacher == "" {
			return core.NewValidationError(nil, core.FieldError{Field: "teacher", Error: errNoTeacher})
		}
		ne.Teacher = teacher
	}

	tt, err := svc.repo.LoadTimetable()
	if err != nil {
		return err
	}
	if tt.Students == nil {
		tt.Students = make(map[string][]Entry)
	}
	if tt.Teachers == nil {
		tt.Teachers = make(map[string][]Entry)
	}
	tt.Students[ne.Student] = append(tt.Students[ne.Student], Entry{Day: ne.Day, Time: ne.Time, Teacher: ne.Teacher})
	tt.Teachers[ne.Teacher] = append(tt.Teachers[ne.Teacher], Entry{Day: ne.Day, Time: ne.Time, Student: ne.Student})
	return svc.repo.SaveTimetable(tt)
}

func (svc *service) StudentTimetable(student string) ([]Entry, error) {
	tt, err := svc.repo.LoadTimetable()
	if err != nil {
		return nil, err
	}
	entries := tt.Students[core.TitleName(student)]
	if len(entries) == 0 {
		return nil, ErrNoneScheduled
	}
	return entries, nil
}

func (svc *service) TeacherSchedule(teacher string) ([]Entry, error) {
	tt, err := svc.repo.LoadTimetable()
	if err != nil {
		return nil, err
	}
	entries := tt.Teachers[core.TitleName(teacher)]
	if len(entries) == 0 {
		return nil, ErrNoneScheduled
	}
	return entries, nil
}

func (svc *service) All() (Timetable, error) {
	return svc.repo.LoadTimetable()
}
