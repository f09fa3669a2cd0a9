package main

import (
	"log"
	"os"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/storage/document"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up document store
	db, err := document.Open(core.Conf)
	errAndDie(err)

	// start CLI
	cli := commandLine{
		acctRepo: document.NewAccountRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
