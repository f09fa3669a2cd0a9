package main

import (
	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

func (cli *commandLine) resetPassword(uname, name, pwd string) error {
	acct, err := cli.acctRepo.GetAccountByUsernameAndName(core.CleanString(uname), core.TitleName(name))
	if err != nil {
		if err == user.ErrNotFound {
			return user.ErrIdentityMismatch
		}
		return err
	}
	acct.SetPassword(pwd)
	_, err = cli.acctRepo.UpdateAccount(acct)
	return err
}
