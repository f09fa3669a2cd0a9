package user

import (
	"errors"
	"fmt"
	"net/mail"
	"sort"

	"github.com/rubiescode/shule/core"
)

var (
	// errors
	ErrNotFound         = errors.New("username not found")
	ErrAccountExists    = errors.New("an account with this name already exists")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrUnknownRole      = errors.New("unknown role")
	ErrIdentityMismatch = errors.New("username and full name do not match our records")
	ErrNotTeacher       = errors.New("account is not a teacher")
	ErrNotStudent       = errors.New("account is not a student")
	ErrAlreadyPaired    = errors.New("student already has an assigned teacher")
)

type (
	// Repository is the account store contract. The store is a flat document;
	// every call reloads it fully, mutates a copy and rewrites the whole
	// document (last write wins, no locking).
	//
	// "First" lookups scan accounts in ascending display-name order: the
	// deterministic stand-in for the legacy store's insertion-order scan.
	// Usernames are not unique, so first-match semantics are observable.
	Repository interface {
		CreateAccount(acct Account) (Account, error)
		QueryAllAccounts() ([]Account, error)
		GetAccountByName(name string) (Account, error)
		FirstAccountByUsername(username string) (Account, error)
		FirstAccountByUsernameAndRole(username string, role Role) (Account, error)
		// GetAccountByUsernameAndName matches username exactly and the display
		// name case-insensitively.
		GetAccountByUsernameAndName(username, name string) (Account, error)
		UpdateAccount(acct Account) (Account, error)
		// UpdateAccounts persists several mutated accounts in one write.
		UpdateAccounts(accts ...Account) error
		DeleteAccount(name string) error
		ResetAccounts() error
	}

	Service interface {
		Signup(na NewAccount) (Account, error)
		Login(cred Credentials) (Identity, error)
		ResetPassword(rp ResetAccountPassword) error

		GetByName(name string) (Account, error)
		QueryAll() ([]Account, error)
		Delete(name string) error

		AssignTeacher(teacher string, students ...string) error
		AssignedStudents(teacher string) ([]Account, error)
		AssignedTeacher(student string) (string, error)

		Report() (Report, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) Service {
	return &service{repo: repo, mailSvc: mailSvc}
}

// Signup creates a new Account. The display name is the primary key; the
// duplicate check on the (case/whitespace-normalized) name runs before the
// field validation, matching the legacy flow, so a taken name is reported
// even when other fields are bad. Students get their stage derived from age,
// once, here.
func (svc *service) Signup(na NewAccount) (Account, error) {
	na.Name = core.TitleName(na.Name)

	if _, err := svc.repo.GetAccountByName(na.Name); err == nil {
		return Account{}, core.NewValidationError(ErrAccountExists, core.FieldError{Field: "name", Error: ErrAccountExists.Error()})
	} else if err != ErrNotFound {
		return Account{}, err
	}

	if err := na.Validate(); err != nil {
		return Account{}, err
	}

	acct := Account{
		Name:     na.Name,
		Username: na.Username,
		Email:    na.Email,
		Role:     na.Role,
	}
	if acct.IsStudent() {
		acct.Stage = StageForAge(na.Age)
	}
	acct.SetPassword(na.Password)

	acct, err := svc.repo.CreateAccount(acct)
	if err != nil {
		if err == ErrAccountExists {
			return Account{}, core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return Account{}, err
	}

	svc.sendWelcomeMail(acct)
	return acct, nil
}

// Login authenticates against the first account whose username matches; the
// scan does not continue past a wrong password to some other account sharing
// the handle. The returned Identity is a read-only snapshot of the record.
func (svc *service) Login(cred Credentials) (Identity, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	acct, err := svc.repo.FirstAccountByUsername(cred.Username)
	if err != nil {
		return nil, err
	}
	if err := acct.CheckPassword(cred.Password); err != nil {
		return nil, err
	}

	switch acct.Role {
	case RoleStudent:
		return NewStudent(acct.Name, acct.Username, acct.Stage), nil
	case RoleTeacher:
		// The display name comes from a second, independent scan for the
		// first Teacher account with this username. When usernames collide
		// across roles this may differ from the record that authenticated;
		// preserved as-is from the legacy system.
		name := acct.Username
		if tacct, err := svc.repo.FirstAccountByUsernameAndRole(acct.Username, RoleTeacher); err == nil {
			name = tacct.Name
		}
		return NewTeacher(name, acct.Username), nil
	case RoleAdmin:
		return NewAdmin(acct.Name, acct.Username), nil
	default:
		return nil, ErrUnknownRole
	}
}

// ResetPassword overwrites the password of the account matching the
// username + display name pair. There is no old-password verification; the
// pair is the whole recovery factor. The identity check runs before the
// password fields are validated, matching the legacy flow.
func (svc *service) ResetPassword(rp ResetAccountPassword) error {
	rp.Username = core.CleanString(rp.Username)
	rp.Name = core.TitleName(rp.Name)

	acct, err := svc.repo.GetAccountByUsernameAndName(rp.Username, rp.Name)
	if err != nil {
		if err == ErrNotFound {
			return ErrIdentityMismatch
		}
		return err
	}

	if err := rp.Validate(); err != nil {
		return err
	}

	acct.SetPassword(rp.Password)
	if _, err := svc.repo.UpdateAccount(acct); err != nil {
		return err
	}

	svc.sendPasswordChangedMail(acct)
	return nil
}

func (svc *service) GetByName(name string) (Account, error) {
	return svc.repo.GetAccountByName(core.TitleName(name))
}

func (svc *service) QueryAll() ([]Account, error) {
	return svc.repo.QueryAllAccounts()
}

func (svc *service) Delete(name string) error {
	return svc.repo.DeleteAccount(core.TitleName(name))
}

// AssignTeacher pairs unassigned students with a teacher, by display names.
// All pairings are persisted in a single store write.
func (svc *service) AssignTeacher(teacher string, students ...string) error {
	tacct, err := svc.repo.GetAccountByName(core.TitleName(teacher))
	if err != nil {
		return err
	}
	if !tacct.IsTeacher() {
		return ErrNotTeacher
	}

	updated := make([]Account, 0, len(students))
	for _, student := range students {
		sacct, err := svc.repo.GetAccountByName(core.TitleName(student))
		if err != nil {
			return err
		}
		if !sacct.IsStudent() {
			return ErrNotStudent
		}
		if sacct.Teacher != "" {
			return ErrAlreadyPaired
		}
		sacct.Teacher = tacct.Name
		updated = append(updated, sacct)
	}
	return svc.repo.UpdateAccounts(updated...)
}

func (svc *service) AssignedStudents(teacher string) ([]Account, error) {
	accts, err := svc.repo.QueryAllAccounts()
	if err != nil {
		return nil, err
	}
	teacher = core.TitleName(teacher)
	var students []Account
	for _, acct := range accts {
		if acct.IsStudent() && acct.Teacher == teacher {
			students = append(students, acct)
		}
	}
	return students, nil
}

// AssignedTeacher returns the display name of the student's teacher, or ""
// when no teacher has been assigned yet.
func (svc *service) AssignedTeacher(student string) (string, error) {
	acct, err := svc.repo.GetAccountByName(core.TitleName(student))
	if err != nil {
		return "", err
	}
	return acct.Teacher, nil
}

// Report aggregates the whole store: teacher and admin rosters plus students
// grouped by stage.
func (svc *service) Report() (Report, error) {
	accts, err := svc.repo.QueryAllAccounts()
	if err != nil {
		return Report{}, err
	}

	rpt := Report{
		Teachers:        []string{},
		Admins:          []string{},
		StudentsByStage: make(map[Stage][]string),
		Totals:          make(map[Role]int),
	}
	for _, acct := range accts {
		rpt.Totals[acct.Role]++
		switch acct.Role {
		case RoleTeacher:
			rpt.Teachers = append(rpt.Teachers, acct.Name)
		case RoleAdmin:
			rpt.Admins = append(rpt.Admins, acct.Name)
		case RoleStudent:
			stage := acct.Stage
			if stage == "" {
				stage = StageUnassigned
			}
			rpt.StudentsByStage[stage] = append(rpt.StudentsByStage[stage], acct.Name)
		}
	}
	sort.Strings(rpt.Teachers)
	sort.Strings(rpt.Admins)
	for _, names := range rpt.StudentsByStage {
		sort.Strings(names)
	}
	return rpt, nil
}

func (svc *service) sendWelcomeMail(acct Account) {
	if svc.mailSvc == nil || acct.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject: "Welcome to " + core.Conf.AppName,
		BodyStr: fmt.Sprintf("Hi %s,\n\nYour %s account has been created. You can now log in with your username.", acct.Name, acct.Role),
	})
}

func (svc *service) sendPasswordChangedMail(acct Account) {
	if svc.mailSvc == nil || acct.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Name, Address: acct.Email}},
		Subject: "Your password was changed",
		BodyStr: fmt.Sprintf("Hi %s,\n\nYour password has been reset. If this was not you, contact the school office.", acct.Name),
	})
}
