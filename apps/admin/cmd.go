package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/Sagar-Ghorade/SmartEdu/core/report"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
	"github.com/Sagar-Ghorade/SmartEdu/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	migrateFunc      = database.Migrate  // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *database.AppDB
	usrRepo    user.Repository
	reportRepo report.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate - apply pending schema migrations")
	fmt.Println("  addadmin -name NAME -email EMAIL - create or promote an admin account; the password is prompted next")
	fmt.Println("  exportreport -out FILE - write the dashboard stats workbook to FILE")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addAdminCmd := flag.NewFlagSet("addadmin", flag.ExitOnError)
	addAdminName := addAdminCmd.String("name", "", "The admin's full name.")
	addAdminEmail := addAdminCmd.String("email", "", "The admin's email. The password will be prompted next.")

	exportCmd := flag.NewFlagSet("exportreport", flag.ExitOnError)
	exportOut := exportCmd.String("out", "", "Destination .xlsx file path.")

	switch args[1] {
	case "migrate":
		return migrateFunc(cli.db)
	case "addadmin":
		if err := addAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAdminName == "" || *addAdminEmail == "" {
			addAdminCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addAdminCmd.Usage()
			return errHelp
		}
		return cli.addAdmin(*addAdminName, *addAdminEmail, string(pwd))
	case "exportreport":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportReport(*exportOut)
	default:
		cli.printUsage()
		return errHelp
	}
}
