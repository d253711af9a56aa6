package main

import (
	"context"
	"os"

	"github.com/Sagar-Ghorade/SmartEdu/core/report"
)

func (cli *commandLine) exportReport(path string) error {
	svc := report.NewService(cli.reportRepo, nil, nil)
	buf, err := svc.Excel(context.Background())
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
