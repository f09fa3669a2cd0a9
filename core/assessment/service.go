package assessment

import (
	"errors"
	"math"
	"sort"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

var (
	// errors
	ErrNoneRecorded = errors.New("no assessments recorded")
	ErrNotAssigned  = errors.New("student is not assigned to this teacher")
)

type (
	// Repository is the assessment document contract: whole-document load and
	// replace, absent or corrupt document reads as empty.
	Repository interface {
		LoadGradebook() (Gradebook, error)
		SaveGradebook(gb Gradebook) error
	}

	Service interface {
		// Record appends one score for a student assigned to the teacher.
		Record(teacher, student string, kind Kind, score int) error
		All() ([]Row, error)
		StudentReport(student string) (StudentReport, error)
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

func (svc *service) Record(teacher, student string, kind Kind, score int) error {
	if !kind.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "must be C.A or Exam"})
	}
	if score < 0 || score > 100 {
		return core.NewValidationError(nil, core.FieldError{Field: "score", Error: "must be between 0 and 100"})
	}

	student = core.TitleName(student)
	assigned, err := svc.usrSvc.AssignedStudents(teacher)
	if err != nil {
		return err
	}
	var found bool
	for _, acct := range assigned {
		if acct.Name == student {
			found = true
			break
		}
	}
	if !found {
		return ErrNotAssigned
	}

	gb, err := svc.repo.LoadGradebook()
	if err != nil {
		return err
	}
	if gb[student] == nil {
		gb[student] = make(StudentScores)
	}
	gb[student][kind] = append(gb[student][kind], formatScore(score))
	return svc.repo.SaveGradebook(gb)
}

// All lists every student's scores, pairing the i-th C.A with the i-th Exam
// and averaging the pair when both parse.
func (svc *service) All() ([]Row, error) {
	gb, err := svc.repo.LoadGradebook()
	if err != nil {
		return nil, err
	}

	students := sortedStudents(gb)
	var rows []Row
	for _, student := range students {
		for i, row := range pairRows(gb[student]) {
			if i == 0 {
				row.Student = student
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (svc *service) StudentReport(student string) (StudentReport, error) {
	gb, err := svc.repo.LoadGradebook()
	if err != nil {
		return StudentReport{}, err
	}
	student = core.TitleName(student)
	scores, ok := gb[student]
	if !ok || len(scores) == 0 {
		return StudentReport{}, ErrNoneRecorded
	}

	rpt := StudentReport{Student: student, Rows: pairRows(scores)}

	var sum float64
	var n int
	for _, kind := range []Kind{KindCA, KindExam} {
		for _, s := range scores[kind] {
			if v, ok := parseScore(s); ok {
				sum += v
				n++
			}
		}
	}
	if n > 0 {
		rpt.Overall = round2(sum / float64(n))
	}
	rpt.Remark = RemarkWorkHarder
	if rpt.Overall >= encourageAvg {
		rpt.Remark = RemarkKeepItUp
	}
	return rpt, nil
}

// Summary averages each student's C.A and Exam scores and weighs them
// 40/60 into a final score, flagging anyone under 40%.
func (svc *service) Summary() ([]SummaryRow, error) {
	gb, err := svc.repo.LoadGradebook()
	if err != nil {
		return nil, err
	}

	students := sortedStudents(gb)
	rows := make([]SummaryRow, 0, len(students))
	for _, student := range students {
		scores := gb[student]
		row := SummaryRow{
			Student: student,
			AvgCA:   average(scores[KindCA]),
			AvgExam: average(scores[KindExam]),
		}
		row.Final = round2(row.AvgCA*caWeight + row.AvgExam*examWeight)
		row.Remark = RemarkOnTrack
		if row.Final < minFinal {
			row.Remark = RemarkNeedsIntervention
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func sortedStudents(gb Gradebook) []string {
	students := make([]string, 0, len(gb))
	for student := range gb {
		students = append(students, student)
	}
	sort.Strings(students)
	return students
}

func pairRows(scores StudentScores) []Row {
	ca, exam := scores[KindCA], scores[KindExam]
	n := len(ca)
	if len(exam) > n {
		n = len(exam)
	}
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		var row Row
		var caVal, examVal float64
		var caOK, examOK bool
		if i < len(ca) {
			row.CA = ca[i]
			caVal, caOK = parseScore(ca[i])
		}
		if i < len(exam) {
			row.Exam = exam[i]
			examVal, examOK = parseScore(exam[i])
		}
		if caOK || examOK {
			row.Average = round2((caVal + examVal) / 2)
		}
		rows = append(rows, row)
	}
	return rows
}

func average(scores ScoreList) float64 {
	var sum float64
	var n int
	for _, s := range scores {
		if v, ok := parseScore(s); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
