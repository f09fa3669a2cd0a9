package testutil

import (
	"testing"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
	"github.com/rubiescode/shule/storage/document"
)

// PrepareDB points the document store at a fresh temp dir for this test.
func PrepareDB(t *testing.T) *document.DB {
	t.Helper()
	core.Conf.TestMode = true
	core.Conf.DataDir = t.TempDir()
	db, err := document.Open(core.Conf)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateAccount(
	t *testing.T,
	repo user.Repository,
	name, uname, pwd string,
	role user.Role,
	stage user.Stage,
	teacher ...string,
) user.Account {
	t.Helper()
	acct := user.Account{
		Name:     core.TitleName(name),
		Username: uname,
		Role:     role,
		Stage:    stage,
	}
	if len(teacher) > 0 {
		acct.Teacher = core.TitleName(teacher[0])
	}
	if pwd != "" {
		acct.SetPassword(pwd)
	}
	acct, err := repo.CreateAccount(acct)
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}
