package user

import "errors"

// Capability is one labeled action a role may invoke from its dashboard menu.
type Capability string

const (
	// CapProfile and CapLogout bracket every role's action list and are
	// handled by the session dashboard itself, never dispatched.
	CapProfile Capability = "Profile"
	CapLogout  Capability = "Logout"

	// Student
	CapMyTeacher        Capability = "My Teacher"
	CapViewTimeTable    Capability = "View Time Table"
	CapViewMyAttendance Capability = "View My Attendance"
	CapViewMyAssessment Capability = "View My Assessment"

	// Teacher
	CapViewSchedule     Capability = "View Schedule"
	CapMyStudents       Capability = "My Students"
	CapRecordAssessment Capability = "Record Assessment"
	CapViewAssessment   Capability = "View Assessment"
	CapRecordAttendance Capability = "Record Attendance"
	CapViewAttendance   Capability = "View Attendance"

	// Admin
	CapManageUsers         Capability = "Manage Users"
	CapPairTeacherStudents Capability = "Pair Teacher-Students"
	CapCreateSchedules     Capability = "Create Schedules"
	CapViewAllSchedules    Capability = "View All Schedules"
	CapAssessmentSummary   Capability = "Assessment Summary"
	CapAttendanceSummary   Capability = "Attendance Summary"
	CapSystemReport        Capability = "System Report"
)

var (
	ErrCapabilityNotAllowed = errors.New("capability not allowed for this role")
	ErrCapabilityNotWired   = errors.New("capability has no handler")
)

type (
	// Request carries one capability invocation to its handler.
	Request struct {
		Identity Identity
		Payload  interface{} // submitted form payload for recording capabilities; nil otherwise
	}

	HandlerFunc func(req Request) (interface{}, error)

	// HandlerSet maps capabilities to their concrete actions. Profile and
	// Logout belong to the session dashboard and never appear here.
	HandlerSet map[Capability]HandlerFunc

	// Identity is the transient, read-only snapshot of an authenticated
	// account, rebuilt from the store on every successful login.
	Identity interface {
		Name() string
		Username() string
		Role() Role

		// Actions returns this role's fixed capability list:
		// CapProfile first, CapLogout last.
		Actions() []Capability

		// Perform dispatches cap to its handler in hs. Capabilities outside
		// this identity's action list are refused with ErrCapabilityNotAllowed.
		Perform(cap Capability, payload interface{}, hs HandlerSet) (interface{}, error)
	}
)

type identity struct {
	name     string
	username string
	role     Role
}

func (i identity) Name() string     { return i.name }
func (i identity) Username() string { return i.username }
func (i identity) Role() Role       { return i.role }

func dispatch(ident Identity, cap Capability, payload interface{}, hs HandlerSet) (interface{}, error) {
	var allowed bool
	for _, c := range ident.Actions() {
		if c == cap && c != CapProfile && c != CapLogout {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrCapabilityNotAllowed
	}
	h, ok := hs[cap]
	if !ok {
		return nil, ErrCapabilityNotWired
	}
	return h(Request{Identity: ident, Payload: payload})
}

// StudentIdentity carries the student's name, username and stage.
type StudentIdentity struct {
	identity
	stage Stage
}

func NewStudent(name, username string, stage Stage) StudentIdentity {
	return StudentIdentity{identity{name, username, RoleStudent}, stage}
}

func (s StudentIdentity) Stage() Stage { return s.stage }

func (s StudentIdentity) Actions() []Capability {
	return []Capability{
		CapProfile,
		CapMyTeacher,
		CapViewTimeTable,
		CapViewMyAttendance,
		CapViewMyAssessment,
		CapLogout,
	}
}

func (s StudentIdentity) Perform(cap Capability, payload interface{}, hs HandlerSet) (interface{}, error) {
	return dispatch(s, cap, payload, hs)
}

// TeacherIdentity's display name is re-derived at login by an independent
// lookup of the first Teacher account with the same username.
type TeacherIdentity struct {
	identity
}

func NewTeacher(name, username string) TeacherIdentity {
	return TeacherIdentity{identity{name, username, RoleTeacher}}
}

func (t TeacherIdentity) Actions() []Capability {
	return []Capability{
		CapProfile,
		CapViewSchedule,
		CapMyStudents,
		CapRecordAssessment,
		CapViewAssessment,
		CapRecordAttendance,
		CapViewAttendance,
		CapLogout,
	}
}

func (t TeacherIdentity) Perform(cap Capability, payload interface{}, hs HandlerSet) (interface{}, error) {
	return dispatch(t, cap, payload, hs)
}

type AdminIdentity struct {
	identity
}

func NewAdmin(name, username string) AdminIdentity {
	return AdminIdentity{identity{name, username, RoleAdmin}}
}

func (a AdminIdentity) Actions() []Capability {
	return []Capability{
		CapProfile,
		CapManageUsers,
		CapPairTeacherStudents,
		CapCreateSchedules,
		CapViewAllSchedules,
		CapAssessmentSummary,
		CapAttendanceSummary,
		CapSystemReport,
		CapLogout,
	}
}

func (a AdminIdentity) Perform(cap Capability, payload interface{}, hs HandlerSet) (interface{}, error) {
	return dispatch(a, cap, payload, hs)
}
