package main

import (
	"log"
	"os"

	"github.com/rubiescode/shule/apps/api/echo"
	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/assessment"
	"github.com/rubiescode/shule/core/attendance"
	"github.com/rubiescode/shule/core/schedule"
	"github.com/rubiescode/shule/core/user"
	"github.com/rubiescode/shule/services/email"
	"github.com/rubiescode/shule/services/logger"
	"github.com/rubiescode/shule/storage/document"
)

func main() {
	// set up loggers
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var appLogger core.Logger
	if core.Conf.Debug {
		appLogger = core.NewStdLogger(stdLogger)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(stdLogger, core.Conf)
		rollbarLogger.Enable(true)
		appLogger = rollbarLogger
	}

	// set up document store
	db, err := document.Open(core.Conf)
	errAndDie(err)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(appLogger)
	}
	usrSvc := user.NewService(document.NewAccountRepository(db), mailSvc)
	attSvc := attendance.NewService(document.NewAttendanceRepository(db), usrSvc)
	assSvc := assessment.NewService(document.NewAssessmentRepository(db), usrSvc)
	schSvc := schedule.NewService(document.NewScheduleRepository(db), usrSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:          core.Conf.Server.Addr,
			Logger:        appLogger,
			AccountSvc:    usrSvc,
			AttendanceSvc: attSvc,
			AssessmentSvc: assSvc,
			ScheduleSvc:   schSvc,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
