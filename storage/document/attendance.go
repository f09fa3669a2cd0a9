package document

import "github.com/rubiescode/shule/core/attendance"

const attendanceCollection = "attendance"

type attendanceRepo struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepo)(nil)

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepo{db: db}
}

func (repo *attendanceRepo) LoadSheets() (attendance.Sheets, error) {
	sheets := make(attendance.Sheets)
	if err := repo.db.load(attendanceCollection, &sheets); err != nil {
		return nil, err
	}
	if sheets == nil {
		sheets = make(attendance.Sheets)
	}
	return sheets, nil
}

func (repo *attendanceRepo) SaveSheets(sheets attendance.Sheets) error {
	return repo.db.save(attendanceCollection, sheets)
}
