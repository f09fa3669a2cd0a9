package attendance

import "time"

// Statuses
const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Students below this attendance rate are flagged for intervention.
const minRate = 75.0

const (
	RemarkOnTrack           = "On Track"
	RemarkNeedsIntervention = "Needs Intervention"
)

// DateLayout is the ISO day format attendance is keyed by.
const DateLayout = "2006-01-02"

type (
	Status string

	// DayLog maps an ISO date to that day's status for one student.
	DayLog map[string]Status

	// Sheets is the whole attendance document, keyed by student display name.
	Sheets map[string]DayLog

	SummaryRow struct {
		Student   string  `json:"student"`
		TotalDays int     `json:"total_days"`
		Present   int     `json:"present"`
		Absent    int     `json:"absent"`
		Rate      float64 `json:"rate"` // percent
		Remark    string  `json:"remark"`
	}
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Today returns the current date in DateLayout, the key used when a teacher
// records a class.
func Today() string {
	return time.Now().Format(DateLayout)
}
