package main

import (
	"testing"

	"github.com/rubiescode/shule/core/user"
	"github.com/rubiescode/shule/storage/document"
	"github.com/rubiescode/shule/tests"
)

var acctRepo user.Repository

func setup(t *testing.T) *commandLine {
	db := testutil.PrepareDB(t)
	acctRepo = document.NewAccountRepository(db)
	return &commandLine{acctRepo: acctRepo}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	testutil.CreateAccount(t, acctRepo, "Jane Doe", "jdoe", "pwd", user.RoleStudent, user.StageCreator)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "name but no username", args: []string{"addadmin", "-name", "Big Boss"}, wantErr: errHelp},
		{name: "no password", args: []string{"addadmin", "-name", "Big Boss", "-username", "boss"}, wantErr: errHelp},
		{name: "create", args: []string{"addadmin", "-name", "big boss", "-username", "boss"}, pwd: "secret"},
		{name: "update existing", args: []string{"addadmin", "-name", "Big Boss", "-username", "boss2"}, pwd: "secret2"},
		{name: "promote existing account", args: []string{"addadmin", "-name", "Jane Doe", "-username", "jdoe"}, pwd: "pwd"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	acct, err := acctRepo.GetAccountByName("Big Boss")
	if err != nil {
		t.Fatalf("GetAccountByName() failed: %v", err)
	}
	if acct.Username != "boss2" {
		t.Errorf("Username = %q, want %q", acct.Username, "boss2")
	}
	if !acct.IsAdmin() {
		t.Errorf("Role = %v, want %v", acct.Role, user.RoleAdmin)
	}
	if err := acct.CheckPassword("secret2"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}

	promoted, err := acctRepo.GetAccountByName("Jane Doe")
	if err != nil {
		t.Fatalf("GetAccountByName() failed: %v", err)
	}
	if !promoted.IsAdmin() {
		t.Errorf("Role = %v, want %v", promoted.Role, user.RoleAdmin)
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	acct := testutil.CreateAccount(t, acctRepo, "Jane Doe", "jdoe", "oldpwd", user.RoleStudent, user.StageCreator)

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no name", args: []string{"resetpassword", "-username", "jdoe"}, wantErr: errHelp},
		{name: "no password", args: []string{"resetpassword", "-username", "jdoe", "-name", "Jane Doe"}, wantErr: errHelp},
		{
			name: "mismatched pair", args: []string{"resetpassword", "-username", "jdoe", "-name", "Wrong Name"},
			pwd: "newpwd", wantErr: user.ErrIdentityMismatch,
		},
		{name: "ok", args: []string{"resetpassword", "-username", "jdoe", "-name", "jane DOE"}, pwd: "newpwd"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	refreshed, err := acctRepo.GetAccountByName(acct.Name)
	if err != nil {
		t.Fatalf("GetAccountByName() failed: %v", err)
	}
	if err := refreshed.CheckPassword("newpwd"); err != nil {
		t.Error("failed to update new password")
	}
}

func Test_commandLine_resetStore(t *testing.T) {
	cli := setup(t)

	testutil.CreateAccount(t, acctRepo, "Jane Doe", "jdoe", "pwd", user.RoleStudent, user.StageCreator)

	if err := cli.run([]string{"admin", "resetstore"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	all, err := acctRepo.QueryAllAccounts()
	if err != nil {
		t.Fatalf("QueryAllAccounts() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("store has %d accounts after reset, want 0", len(all))
	}
}
