package user

import (
	"reflect"
	"sort"
	"testing"

	"github.com/rubiescode/shule/core"
)

// fakeRepo is an in-memory Repository with the store's scan semantics:
// accounts keyed by display name, "First" lookups in ascending name order.
type fakeRepo struct {
	accts       map[string]Account
	batchWrites int
}

var _ Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{accts: make(map[string]Account)}
}

func (r *fakeRepo) sortedNames() []string {
	names := make([]string, 0, len(r.accts))
	for name := range r.accts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *fakeRepo) CreateAccount(acct Account) (Account, error) {
	if _, ok := r.accts[acct.Name]; ok {
		return Account{}, ErrAccountExists
	}
	r.accts[acct.Name] = acct
	return acct, nil
}

func (r *fakeRepo) QueryAllAccounts() ([]Account, error) {
	accts := make([]Account, 0, len(r.accts))
	for _, name := range r.sortedNames() {
		accts = append(accts, r.accts[name])
	}
	return accts, nil
}

func (r *fakeRepo) GetAccountByName(name string) (Account, error) {
	acct, ok := r.accts[name]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *fakeRepo) FirstAccountByUsername(username string) (Account, error) {
	for _, name := range r.sortedNames() {
		if r.accts[name].Username == username {
			return r.accts[name], nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *fakeRepo) FirstAccountByUsernameAndRole(username string, role Role) (Account, error) {
	for _, name := range r.sortedNames() {
		if acct := r.accts[name]; acct.Username == username && acct.Role == role {
			return acct, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *fakeRepo) GetAccountByUsernameAndName(username, name string) (Account, error) {
	acct, ok := r.accts[name]
	if !ok || acct.Username != username {
		return Account{}, ErrNotFound
	}
	return acct, nil
}

func (r *fakeRepo) UpdateAccount(acct Account) (Account, error) {
	if _, ok := r.accts[acct.Name]; !ok {
		return Account{}, ErrNotFound
	}
	r.accts[acct.Name] = acct
	return acct, nil
}

func (r *fakeRepo) UpdateAccounts(accts ...Account) error {
	for _, acct := range accts {
		if _, ok := r.accts[acct.Name]; !ok {
			return ErrNotFound
		}
		r.accts[acct.Name] = acct
	}
	r.batchWrites++
	return nil
}

func (r *fakeRepo) DeleteAccount(name string) error {
	if _, ok := r.accts[name]; !ok {
		return ErrNotFound
	}
	delete(r.accts, name)
	return nil
}

func (r *fakeRepo) ResetAccounts() error {
	r.accts = make(map[string]Account)
	return nil
}

func (r *fakeRepo) add(t *testing.T, name, uname, pwd string, role Role, stage ...Stage) Account {
	t.Helper()
	acct := Account{Name: core.TitleName(name), Username: uname, Role: role}
	if len(stage) > 0 {
		acct.Stage = stage[0]
	}
	acct.SetPassword(pwd)
	acct, err := r.CreateAccount(acct)
	if err != nil {
		t.Fatalf("add() failed: %v", err)
	}
	return acct
}

func Test_service_Signup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	acct, err := svc.Signup(NewAccount{Name: "jane doe", Username: "jdoe", Password: "pwd", Role: RoleStudent, Age: 9})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if acct.Name != "Jane Doe" {
		t.Errorf("Name = %q, want %q", acct.Name, "Jane Doe")
	}
	if acct.Stage != StageCreator {
		t.Errorf("Stage = %v, want %v", acct.Stage, StageCreator)
	}
	if acct.Password == "pwd" {
		t.Error("Signup() stored the plain password")
	}

	// duplicate (normalized) name fails and writes nothing
	_, err = svc.Signup(NewAccount{Name: " JANE  doe ", Username: "other", Password: "pwd", Role: RoleTeacher})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Signup() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "name" {
		t.Errorf("Signup() fields = %+v, want a single name error", vErr.Fields)
	}
	if len(repo.accts) != 1 {
		t.Errorf("store has %d accounts, want 1", len(repo.accts))
	}

	// the taken name is reported even when other fields would also fail;
	// the duplicate check runs before the field validation
	_, err = svc.Signup(NewAccount{Name: "jane doe", Password: ""})
	vErr, ok = err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Signup() error = %v, want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "name" {
		t.Errorf("Signup() fields = %+v, want a single name error", vErr.Fields)
	}

	// teachers and admins get no stage
	tacct, err := svc.Signup(NewAccount{Name: "John Smith", Username: "jsmith", Password: "pwd", Role: RoleTeacher, Age: 30})
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	if tacct.Stage != "" {
		t.Errorf("teacher Stage = %v, want empty", tacct.Stage)
	}
}

func Test_service_Login(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	repo.add(t, "Jane Doe", "jdoe", "pwd", RoleStudent, StageCreator)
	repo.add(t, "John Smith", "jsmith", "pwd", RoleTeacher)
	repo.add(t, "Big Boss", "boss", "pwd", RoleAdmin)

	tests := []struct {
		name     string
		cred     Credentials
		wantErr  error
		wantName string
		wantRole Role
	}{
		{name: "student", cred: Credentials{Username: "jdoe", Password: "pwd"}, wantName: "Jane Doe", wantRole: RoleStudent},
		{name: "teacher", cred: Credentials{Username: "jsmith", Password: "pwd"}, wantName: "John Smith", wantRole: RoleTeacher},
		{name: "admin", cred: Credentials{Username: "boss", Password: "pwd"}, wantName: "Big Boss", wantRole: RoleAdmin},
		{name: "unknown username", cred: Credentials{Username: "ghost", Password: "pwd"}, wantErr: ErrNotFound},
		{name: "wrong password", cred: Credentials{Username: "jdoe", Password: "nope"}, wantErr: ErrWrongPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := svc.Login(tt.cred)
			if err != tt.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if ident.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", ident.Name(), tt.wantName)
			}
			if ident.Role() != tt.wantRole {
				t.Errorf("Role() = %v, want %v", ident.Role(), tt.wantRole)
			}
		})
	}

	t.Run("student identity carries stage", func(t *testing.T) {
		ident, err := svc.Login(Credentials{Username: "jdoe", Password: "pwd"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		student, ok := ident.(StudentIdentity)
		if !ok {
			t.Fatalf("Login() identity = %T, want StudentIdentity", ident)
		}
		if student.Stage() != StageCreator {
			t.Errorf("Stage() = %v, want %v", student.Stage(), StageCreator)
		}
	})
}

// Usernames are not unique; the scan authenticates against the first name
// match only and does not fall through to later accounts sharing the handle.
func Test_service_Login_sharedUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	repo.add(t, "Aaron First", "shared", "firstpwd", RoleStudent, StageCreator)
	repo.add(t, "Zoe Last", "shared", "lastpwd", RoleAdmin)

	ident, err := svc.Login(Credentials{Username: "shared", Password: "firstpwd"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if ident.Name() != "Aaron First" {
		t.Errorf("Name() = %q, want %q", ident.Name(), "Aaron First")
	}

	// the later account's password never gets a chance
	if _, err := svc.Login(Credentials{Username: "shared", Password: "lastpwd"}); err != ErrWrongPassword {
		t.Errorf("Login() error = %v, want %v", err, ErrWrongPassword)
	}
}

func Test_service_ResetPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	repo.add(t, "Jane Doe", "jdoe", "oldpwd", RoleStudent, StageCreator)

	t.Run("mismatched pair wins over field validation", func(t *testing.T) {
		// the identity check runs first even when the password fields are bad
		rp := ResetAccountPassword{Username: "jdoe", Name: "Wrong Name", Password: "new", PasswordConfirm: "different"}
		if err := svc.ResetPassword(rp); err != ErrIdentityMismatch {
			t.Errorf("ResetPassword() error = %v, want %v", err, ErrIdentityMismatch)
		}
	})

	t.Run("matching pair with bad fields fails validation", func(t *testing.T) {
		rp := ResetAccountPassword{Username: "jdoe", Name: "Jane Doe", Password: "new", PasswordConfirm: "different"}
		err := svc.ResetPassword(rp)
		if err == nil || err == ErrIdentityMismatch {
			t.Fatalf("ResetPassword() error = %v, want a validation error", err)
		}
	})

	t.Run("happy path", func(t *testing.T) {
		// the name match is case-insensitive and whitespace-tolerant
		rp := ResetAccountPassword{Username: "jdoe", Name: " jane  DOE ", Password: "newpwd", PasswordConfirm: "newpwd"}
		if err := svc.ResetPassword(rp); err != nil {
			t.Fatalf("ResetPassword() error = %v", err)
		}
		if _, err := svc.Login(Credentials{Username: "jdoe", Password: "oldpwd"}); err != ErrWrongPassword {
			t.Errorf("old password still works; error = %v", err)
		}
		if _, err := svc.Login(Credentials{Username: "jdoe", Password: "newpwd"}); err != nil {
			t.Errorf("Login() with new password error = %v", err)
		}
	})
}

func Test_service_AssignTeacher(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	repo.add(t, "John Smith", "jsmith", "pwd", RoleTeacher)
	repo.add(t, "Jane Doe", "jdoe", "pwd", RoleStudent, StageCreator)
	repo.add(t, "Tim Cook", "tim", "pwd", RoleStudent, StageInnovator)
	repo.add(t, "Big Boss", "boss", "pwd", RoleAdmin)

	tests := []struct {
		name     string
		teacher  string
		students []string
		wantErr  error
	}{
		{name: "teacher not found", teacher: "Ghost", students: []string{"Jane Doe"}, wantErr: ErrNotFound},
		{name: "not a teacher", teacher: "Big Boss", students: []string{"Jane Doe"}, wantErr: ErrNotTeacher},
		{name: "not a student", teacher: "John Smith", students: []string{"Big Boss"}, wantErr: ErrNotStudent},
		{name: "ok", teacher: "john smith", students: []string{"jane doe", "Tim Cook"}},
		{name: "already paired", teacher: "John Smith", students: []string{"Jane Doe"}, wantErr: ErrAlreadyPaired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.AssignTeacher(tt.teacher, tt.students...); err != tt.wantErr {
				t.Errorf("AssignTeacher() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if repo.batchWrites != 1 {
		t.Errorf("pairings took %d writes, want 1", repo.batchWrites)
	}

	students, err := svc.AssignedStudents("John Smith")
	if err != nil {
		t.Fatalf("AssignedStudents() error = %v", err)
	}
	names := make([]string, len(students))
	for i, s := range students {
		names[i] = s.Name
	}
	if want := []string{"Jane Doe", "Tim Cook"}; !reflect.DeepEqual(names, want) {
		t.Errorf("AssignedStudents() = %v, want %v", names, want)
	}

	teacher, err := svc.AssignedTeacher("Jane Doe")
	if err != nil {
		t.Fatalf("AssignedTeacher() error = %v", err)
	}
	if teacher != "John Smith" {
		t.Errorf("AssignedTeacher() = %q, want %q", teacher, "John Smith")
	}
}

func Test_service_Report(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	repo.add(t, "John Smith", "jsmith", "pwd", RoleTeacher)
	repo.add(t, "Anna Bell", "abell", "pwd", RoleTeacher)
	repo.add(t, "Big Boss", "boss", "pwd", RoleAdmin)
	repo.add(t, "Jane Doe", "jdoe", "pwd", RoleStudent, StageCreator)
	repo.add(t, "Ben Ten", "ben", "pwd", RoleStudent, StageCreator)
	repo.add(t, "Old Timer", "old", "pwd", RoleStudent) // no stage recorded

	rpt, err := svc.Report()
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if want := []string{"Anna Bell", "John Smith"}; !reflect.DeepEqual(rpt.Teachers, want) {
		t.Errorf("Teachers = %v, want %v", rpt.Teachers, want)
	}
	if want := []string{"Big Boss"}; !reflect.DeepEqual(rpt.Admins, want) {
		t.Errorf("Admins = %v, want %v", rpt.Admins, want)
	}
	if want := []string{"Ben Ten", "Jane Doe"}; !reflect.DeepEqual(rpt.StudentsByStage[StageCreator], want) {
		t.Errorf("StudentsByStage[Creator] = %v, want %v", rpt.StudentsByStage[StageCreator], want)
	}
	if want := []string{"Old Timer"}; !reflect.DeepEqual(rpt.StudentsByStage[StageUnassigned], want) {
		t.Errorf("StudentsByStage[Unassigned] = %v, want %v", rpt.StudentsByStage[StageUnassigned], want)
	}
	if rpt.Totals[RoleStudent] != 3 || rpt.Totals[RoleTeacher] != 2 || rpt.Totals[RoleAdmin] != 1 {
		t.Errorf("Totals = %v", rpt.Totals)
	}
}
