package schedule

import "github.com/rubiescode/shule/core"

// Weekdays lessons may be scheduled on.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

type (
	// Entry is one timetable slot. Student entries carry the teacher's name
	// and teacher entries the student's; the other field stays empty.
	Entry struct {
		Day     string `json:"day"`
		Time    string `json:"time"`
		Teacher string `json:"teacher,omitempty"`
		Student string `json:"student,omitempty"`
	}

	// Timetable is the whole schedule document: the same slots indexed from
	// both sides, appended in creation order.
	Timetable struct {
		Students map[string][]Entry `json:"students"`
		Teachers map[string][]Entry `json:"teachers"`
	}

	// NewEntry contains information needed to schedule a slot. Teacher may be
	// left empty; it is then filled from the student's pairing.
	NewEntry struct {
		Student string `json:"student" validate:"required"`
		Teacher string `json:"teacher"`
		Day     string `json:"day" validate:"required,weekday"`
		Time    string `json:"time" validate:"required"`
	}
)

func (ne *NewEntry) Validate() error {
	ne.Student = core.TitleName(ne.Student)
	ne.Teacher = core.TitleName(ne.Teacher)
	ne.Day = core.CleanString(ne.Day)
	ne.Time = core.CleanString(ne.Time)
	return core.Validate.Struct(ne)
}
