package main

import (
	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

// addAdmin updates or creates an Admin account.
func (cli *commandLine) addAdmin(name, uname, email, pwd string) error {
	name = core.TitleName(name)
	uname = core.CleanString(uname)
	email = core.CleanString(email, true /* lower */)

	acct, err := cli.acctRepo.GetAccountByName(name)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		acct = user.Account{Name: name}
	}
	acct.Username = uname
	acct.Email = email
	acct.Role = user.RoleAdmin
	acct.SetPassword(pwd)

	if err == user.ErrNotFound {
		_, err = cli.acctRepo.CreateAccount(acct)
		return err
	}
	_, err = cli.acctRepo.UpdateAccount(acct)
	return err
}
