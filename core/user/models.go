package user

import (
	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/cipher"
)

// Roles
const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdmin   Role = "Admin"
)

// Stages; derived once at signup from the student's age bracket.
const (
	StageAdventurer Stage = "Adventurer"
	StageCreator    Stage = "Creator"
	StageInnovator  Stage = "Innovator"
	StageUnassigned Stage = "Unassigned"
)

var (
	AllRoles  = []Role{RoleStudent, RoleTeacher, RoleAdmin}
	AllStages = []Stage{StageAdventurer, StageCreator, StageInnovator, StageUnassigned}
)

type (
	Role  string
	Stage string
)

// StageForAge derives a student's stage from their age.
// The 8-12 and 12-18 brackets overlap at 12; the first matching bracket wins,
// so a 12 year old is a Creator. This mirrors the legacy assignment exactly.
func StageForAge(age int) Stage {
	switch {
	case 5 <= age && age <= 7:
		return StageAdventurer
	case 8 <= age && age <= 12:
		return StageCreator
	case 12 < age && age <= 18:
		return StageInnovator
	default:
		return StageUnassigned
	}
}

// Account is a stored account record. Records are keyed by the title-cased
// display Name, which is the only unique identifier; Username is a login
// handle that several accounts may share.
type Account struct {
	Name     string `json:"-"` // map key in the store
	Username string `json:"username"`
	Email    string `json:"email,omitempty"` // optional; only used for courtesy notices
	Password string `json:"password"`        // cipher text, never plain
	Role     Role   `json:"role"`
	Stage    Stage  `json:"stage,omitempty"`   // students only
	Teacher  string `json:"teacher,omitempty"` // assigned teacher's display name; students only
}

// SetPassword stores the caesar-shifted form of pwd.
func (a *Account) SetPassword(pwd string) {
	a.Password = cipher.Encrypt(pwd, cipher.AccountShift)
}

// CheckPassword reports whether pwd matches the stored cipher text.
func (a *Account) CheckPassword(pwd string) error {
	if cipher.Decrypt(a.Password, cipher.AccountShift) != pwd {
		return ErrWrongPassword
	}
	return nil
}

func (a *Account) IsStudent() bool { return a.Role == RoleStudent }
func (a *Account) IsTeacher() bool { return a.Role == RoleTeacher }
func (a *Account) IsAdmin() bool   { return a.Role == RoleAdmin }

// NewAccount contains information needed to sign an Account up.
type NewAccount struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
	Role     Role   `json:"role" validate:"required,role"`
	Age      int    `json:"age,omitempty"` // students only; drives the stage bracket
}

func (na *NewAccount) Validate() error {
	na.Name = core.TitleName(na.Name)
	na.Username = core.CleanString(na.Username)
	na.Email = core.CleanString(na.Email, true /* lower */)
	return core.Validate.Struct(na)
}

// Credentials is a login submission.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Username = core.CleanString(c.Username)
	return core.Validate.Struct(c)
}

// ResetAccountPassword identifies an account by username + display name and
// carries the replacement password. There is deliberately no old-password
// check; the username/name pair is the whole recovery factor.
type ResetAccountPassword struct {
	Username        string `json:"username" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (rp *ResetAccountPassword) Validate() error {
	rp.Username = core.CleanString(rp.Username)
	rp.Name = core.TitleName(rp.Name)
	return core.Validate.Struct(rp)
}

// Report summarizes the whole account store for admins.
type Report struct {
	Teachers        []string           `json:"teachers"`
	Admins          []string           `json:"admins"`
	StudentsByStage map[Stage][]string `json:"students_by_stage"`
	Totals          map[Role]int       `json:"totals"`
}
