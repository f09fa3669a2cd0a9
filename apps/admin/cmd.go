package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/rubiescode/shule/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	acctRepo user.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  addadmin -name NAME -username USERNAME [-email EMAIL] - create or update an admin account")
	fmt.Println("  resetpassword -username USERNAME -name NAME - reset an account's password")
	fmt.Println("  resetstore - wipe all accounts from the store")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminName := addAdminCmd.String("name", "", "The admin's full name. Doubles as the account key.")
	addAdminUname := addAdminCmd.String("username", "", "The admin's username. The password will be prompted next.")
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email address (optional).")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The account's username.")
	resetPasswordName := resetPasswordCmd.String("name", "", "The account's full name. The password will be prompted next.")

	switch args[1] {
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminName == "" || *addAdminUname == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminName, *addAdminUname, *addAdminEmail, string(pwd))
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" || *resetPasswordName == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, *resetPasswordName, string(pwd))
	case "resetstore":
		return cli.acctRepo.ResetAccounts()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() ([]byte, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	return pwd, err
}
