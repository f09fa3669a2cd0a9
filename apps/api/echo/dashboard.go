package echoapi

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/assessment"
	"github.com/rubiescode/shule/core/attendance"
	"github.com/rubiescode/shule/core/schedule"
	"github.com/rubiescode/shule/core/session"
	"github.com/rubiescode/shule/core/user"
)

type dashboardApi struct {
	handlers user.HandlerSet
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := dashboardApi{handlers: newHandlerSet(opts)}

	dg := g.Group("/dashboard", jwt)
	dg.GET("/actions", api.actions)
	dg.POST("/perform", api.perform)
}

// Payloads submitted with recording capabilities.
type (
	PairRequest struct {
		Teacher  string   `json:"teacher"`
		Students []string `json:"students"`
	}

	RecordAttendanceRequest struct {
		Date  string                       `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
		Marks map[string]attendance.Status `json:"marks"`
	}

	RecordAssessmentRequest struct {
		Student string          `json:"student"`
		Kind    assessment.Kind `json:"kind"`
		Score   int             `json:"score"`
	}
)

// Handlers

func (api *dashboardApi) actions(ctx echo.Context) error {
	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ident.Actions())
}

// perform runs one dashboard capability for the authenticated identity. A
// short-lived Session wraps the identity so Profile and Logout keep their
// dashboard semantics; everything else dispatches through the handler set.
func (api *dashboardApi) perform(ctx echo.Context) error {
	var data PerformRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PerformRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ident, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	sess := session.New(api.handlers)
	sess.Login(ident)

	result, err := sess.Perform(data.Capability, data.Payload)
	if err != nil {
		return err
	}
	if data.Capability == user.CapLogout {
		result = SuccessResponse{Success: "Logged out. See you soon!"}
	}
	return ctx.JSON(http.StatusOK, PerformResponse{Capability: data.Capability, Result: result})
}

// decodePayload unmarshals the raw capability payload into dst.
func decodePayload(req user.Request, dst interface{}) error {
	raw, ok := req.Payload.(json.RawMessage)
	if !ok || len(raw) == 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "payload", Error: "payload is required"})
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "payload", Error: "malformed payload"})
	}
	return nil
}

// newHandlerSet wires every dispatchable capability to its service call.
func newHandlerSet(opts *Options) user.HandlerSet {
	return user.HandlerSet{
		// Student
		user.CapMyTeacher: func(req user.Request) (interface{}, error) {
			teacher, err := opts.AccountSvc.AssignedTeacher(req.Identity.Name())
			if err != nil {
				return nil, err
			}
			return echo.Map{"teacher": teacher}, nil
		},
		user.CapViewTimeTable: func(req user.Request) (interface{}, error) {
			return opts.ScheduleSvc.StudentTimetable(req.Identity.Name())
		},
		user.CapViewMyAttendance: func(req user.Request) (interface{}, error) {
			return opts.AttendanceSvc.StudentLog(req.Identity.Name())
		},
		user.CapViewMyAssessment: func(req user.Request) (interface{}, error) {
			return opts.AssessmentSvc.StudentReport(req.Identity.Name())
		},

		// Teacher
		user.CapViewSchedule: func(req user.Request) (interface{}, error) {
			return opts.ScheduleSvc.TeacherSchedule(req.Identity.Name())
		},
		user.CapMyStudents: func(req user.Request) (interface{}, error) {
			students, err := opts.AccountSvc.AssignedStudents(req.Identity.Name())
			if err != nil {
				return nil, err
			}
			return NewAccountResponseList(students), nil
		},
		user.CapRecordAssessment: func(req user.Request) (interface{}, error) {
			var data RecordAssessmentRequest
			if err := decodePayload(req, &data); err != nil {
				return nil, err
			}
			if err := opts.AssessmentSvc.Record(req.Identity.Name(), data.Student, data.Kind, data.Score); err != nil {
				return nil, err
			}
			return SuccessResponse{Success: "Assessment recorded."}, nil
		},
		user.CapViewAssessment: func(req user.Request) (interface{}, error) {
			return opts.AssessmentSvc.All()
		},
		user.CapRecordAttendance: func(req user.Request) (interface{}, error) {
			var data RecordAttendanceRequest
			if err := decodePayload(req, &data); err != nil {
				return nil, err
			}
			if data.Date == "" {
				data.Date = attendance.Today()
			}
			if err := opts.AttendanceSvc.Record(req.Identity.Name(), data.Date, data.Marks); err != nil {
				return nil, err
			}
			return SuccessResponse{Success: "Attendance recorded."}, nil
		},
		user.CapViewAttendance: func(req user.Request) (interface{}, error) {
			return opts.AttendanceSvc.All()
		},

		// Admin
		user.CapManageUsers: func(req user.Request) (interface{}, error) {
			accts, err := opts.AccountSvc.QueryAll()
			if err != nil {
				return nil, err
			}
			return NewAccountResponseList(accts), nil
		},
		user.CapPairTeacherStudents: func(req user.Request) (interface{}, error) {
			var data PairRequest
			if err := decodePayload(req, &data); err != nil {
				return nil, err
			}
			if err := opts.AccountSvc.AssignTeacher(data.Teacher, data.Students...); err != nil {
				return nil, err
			}
			return SuccessResponse{Success: "Students paired with teacher."}, nil
		},
		user.CapCreateSchedules: func(req user.Request) (interface{}, error) {
			var data schedule.NewEntry
			if err := decodePayload(req, &data); err != nil {
				return nil, err
			}
			if err := opts.ScheduleSvc.AddEntry(data); err != nil {
				return nil, err
			}
			return SuccessResponse{Success: "Schedule entry created."}, nil
		},
		user.CapViewAllSchedules: func(req user.Request) (interface{}, error) {
			return opts.ScheduleSvc.All()
		},
		user.CapAssessmentSummary: func(req user.Request) (interface{}, error) {
			return opts.AssessmentSvc.Summary()
		},
		user.CapAttendanceSummary: func(req user.Request) (interface{}, error) {
			return opts.AttendanceSvc.Summary()
		},
		user.CapSystemReport: func(req user.Request) (interface{}, error) {
			return opts.AccountSvc.Report()
		},
	}
}
