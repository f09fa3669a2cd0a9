package document

import "github.com/rubiescode/shule/core/schedule"

const scheduleCollection = "timetable"

type scheduleRepo struct {
	db *DB
}

var _ schedule.Repository = (*scheduleRepo)(nil)

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepo{db: db}
}

func (repo *scheduleRepo) LoadTimetable() (schedule.Timetable, error) {
	var tt schedule.Timetable
	if err := repo.db.load(scheduleCollection, &tt); err != nil {
		return schedule.Timetable{}, err
	}
	return tt, nil
}

func (repo *scheduleRepo) SaveTimetable(tt schedule.Timetable) error {
	return repo.db.save(scheduleCollection, tt)
}
