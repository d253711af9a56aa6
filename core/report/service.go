package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

// Stats are the admin dashboard aggregates.
type Stats struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalStudents    int     `json:"totalStudents"`
	TotalClasses     int     `json:"totalClasses"`
	TotalSubjects    int     `json:"totalSubjects"`
	TotalTests       int     `json:"totalTests"`
	TotalEnrollments int     `json:"totalEnrollments"`
	TotalRevenue     float64 `json:"totalRevenue"`
}

type (
	Repository interface {
		GetStats(ctx context.Context, exec ...core.DBExecutor) (Stats, error)
	}

	// Cache is an optional short-TTL stats cache. A failing cache only
	// degrades to direct queries, never fails the request.
	Cache interface {
		GetStats(ctx context.Context) (Stats, bool, error)
		SetStats(ctx context.Context, stats Stats) error
	}

	Service struct {
		repo  Repository
		cache Cache // nil disables caching
		log   core.Logger
	}
)

func NewService(repo Repository, cache Cache, logger core.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: logger}
}

func (svc *Service) Stats(ctx context.Context) (Stats, error) {
	if svc.cache != nil {
		stats, ok, err := svc.cache.GetStats(ctx)
		if err != nil {
			svc.log.Warn(fmt.Sprintf("stats cache read: %v", err), err)
		} else if ok {
			return stats, nil
		}
	}

	stats, err := svc.repo.GetStats(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying stats")
	}

	if svc.cache != nil {
		if err := svc.cache.SetStats(ctx, stats); err != nil {
			svc.log.Warn(fmt.Sprintf("stats cache write: %v", err), err)
		}
	}
	return stats, nil
}

// Excel renders the stats as a one-sheet xlsx workbook.
func (svc *Service) Excel(ctx context.Context) (*bytes.Buffer, error) {
	stats, err := svc.Stats(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Dashboard"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "creating sheet")
	}
	f.SetActiveSheet(idx)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "dropping default sheet")
	}

	rows := []struct {
		metric string
		value  interface{}
	}{
		{"Total Users", stats.TotalUsers},
		{"Total Students", stats.TotalStudents},
		{"Total Classes", stats.TotalClasses},
		{"Total Subjects", stats.TotalSubjects},
		{"Total Tests", stats.TotalTests},
		{"Total Enrollments", stats.TotalEnrollments},
		{"Total Revenue", stats.TotalRevenue},
	}

	if err = f.SetSheetRow(sheet, "A1", &[]interface{}{"Metric", "Value"}); err != nil {
		return nil, errors.Wrap(err, "writing header row")
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		if err = f.SetSheetRow(sheet, cell, &[]interface{}{row.metric, row.value}); err != nil {
			return nil, errors.Wrap(err, "writing stats row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "serializing workbook")
	}
	return buf, nil
}
