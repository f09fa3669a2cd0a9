package document

import "github.com/rubiescode/shule/core/assessment"

const assessmentCollection = "assessments"

type assessmentRepo struct {
	db *DB
}

var _ assessment.Repository = (*assessmentRepo)(nil)

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepo{db: db}
}

func (repo *assessmentRepo) LoadGradebook() (assessment.Gradebook, error) {
	gb := make(assessment.Gradebook)
	if err := repo.db.load(assessmentCollection, &gb); err != nil {
		return nil, err
	}
	if gb == nil {
		gb = make(assessment.Gradebook)
	}
	return gb, nil
}

func (repo *assessmentRepo) SaveGradebook(gb assessment.Gradebook) error {
	return repo.db.save(assessmentCollection, gb)
}
