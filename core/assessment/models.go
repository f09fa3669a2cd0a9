package assessment

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Kinds of assessment a teacher may record.
const (
	KindCA   Kind = "C.A"
	KindExam Kind = "Exam"
)

// Final score weighting and the intervention threshold.
const (
	caWeight   = 0.4
	examWeight = 0.6
	minFinal   = 40.0

	// Students averaging at or above this overall get an encouraging remark.
	encourageAvg = 70.0
)

const (
	RemarkOnTrack           = "On Track"
	RemarkNeedsIntervention = "Needs Intervention"

	RemarkKeepItUp   = "You're doing great! Keep it up!"
	RemarkWorkHarder = "You need to work harder."
)

type (
	Kind string

	// ScoreList holds percentage strings like "85%". Legacy documents may
	// store a single bare string where a list belongs; unmarshalling folds
	// that into a one-element list.
	ScoreList []string

	// StudentScores maps assessment kind to recorded scores, oldest first.
	StudentScores map[Kind]ScoreList

	// Gradebook is the whole assessment document, keyed by student display name.
	Gradebook map[string]StudentScores

	// Row pairs the i-th C.A and Exam scores of a student with their average.
	Row struct {
		Student string  `json:"student,omitempty"`
		CA      string  `json:"ca"`
		Exam    string  `json:"exam"`
		Average float64 `json:"average"`
	}

	// StudentReport is the view a student gets of their own scores.
	StudentReport struct {
		Student string  `json:"student"`
		Rows    []Row   `json:"rows"`
		Overall float64 `json:"overall"`
		Remark  string  `json:"remark"`
	}

	SummaryRow struct {
		Student string  `json:"student"`
		AvgCA   float64 `json:"avg_ca"`
		AvgExam float64 `json:"avg_exam"`
		Final   float64 `json:"final"` // 0.4*CA + 0.6*Exam
		Remark  string  `json:"remark"`
	}
)

func (k Kind) Valid() bool {
	return k == KindCA || k == KindExam
}

func (sl *ScoreList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*sl = list
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*sl = ScoreList{single}
		return nil
	}
	return errors.New("invalid score list")
}

// parseScore turns a stored "NN%" value into a number; ok is false for
// garbage entries, which aggregates skip.
func parseScore(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatScore(score int) string {
	return strconv.Itoa(score) + "%"
}
