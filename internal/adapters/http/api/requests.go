package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/report"
)

const reportDateLayout = "2006-01-02"

// dateFields lets a request carry either an explicit date context or a report
// date to derive it from. With neither, the current date is used.
type dateFields struct {
	DateContext *model.DateContext `json:"date_context,omitempty"`
	ReportDate  string             `json:"report_date,omitempty"`
}

func (d dateFields) resolve(now func() time.Time) (model.DateContext, error) {
	if d.DateContext != nil {
		dc := *d.DateContext
		if dc.DaysCompleted < 0 || dc.DaysRemaining < 0 || dc.TotalDays < 0 {
			return model.DateContext{}, errors.New("date_context days must not be negative")
		}
		return dc, nil
	}
	if s := strings.TrimSpace(d.ReportDate); s != "" {
		t, err := time.Parse(reportDateLayout, s)
		if err != nil {
			return model.DateContext{}, fmt.Errorf("invalid report_date %q; must be YYYY-MM-DD", s)
		}
		return model.NewDateContext(t), nil
	}
	return model.NewDateContext(now()), nil
}

// salesRequest mirrors the OpenAPI schema for POST /reports/sales.
type salesRequest struct {
	Branch  string                    `json:"branch"`
	Records []model.PerformanceRecord `json:"records"`
	dateFields
}

func (r salesRequest) input(now func() time.Time) (report.SalesInput, error) {
	dc, err := r.resolve(now)
	if err != nil {
		return report.SalesInput{}, err
	}
	return report.SalesInput{Branch: r.Branch, Records: r.Records, Dates: dc}, nil
}

// staffRequest mirrors the OpenAPI schema for POST /reports/staff.
type staffRequest struct {
	Branch string              `json:"branch"`
	Staff  []model.StaffRecord `json:"staff"`
	dateFields
}

func (r staffRequest) input(now func() time.Time) (report.StaffInput, error) {
	dc, err := r.resolve(now)
	if err != nil {
		return report.StaffInput{}, err
	}
	return report.StaffInput{Branch: r.Branch, Staff: r.Staff, Dates: dc}, nil
}

// cellsumRequest mirrors the OpenAPI schema for POST /reports/cellsum.
type cellsumRequest struct {
	Branches []model.BranchRecords `json:"branches"`
	dateFields
}

func (r cellsumRequest) input(now func() time.Time) (report.CellsumInput, error) {
	dc, err := r.resolve(now)
	if err != nil {
		return report.CellsumInput{}, err
	}
	return report.CellsumInput{Branches: r.Branches, Dates: dc}, nil
}

// batchItem carries the fields of any report request plus its kind.
type batchItem struct {
	Kind     report.Kind               `json:"kind"`
	Branch   string                    `json:"branch"`
	Records  []model.PerformanceRecord `json:"records"`
	Staff    []model.StaffRecord       `json:"staff"`
	Branches []model.BranchRecords     `json:"branches"`
	dateFields
}

type batchRequest struct {
	Requests []batchItem `json:"requests"`
}

func (b batchItem) request(now func() time.Time) (report.Request, error) {
	req := report.Request{Kind: b.Kind}
	switch b.Kind {
	case report.KindSales:
		in, err := salesRequest{Branch: b.Branch, Records: b.Records, dateFields: b.dateFields}.input(now)
		req.Sales = &in
		return req, err
	case report.KindStaff:
		in, err := staffRequest{Branch: b.Branch, Staff: b.Staff, dateFields: b.dateFields}.input(now)
		req.Staff = &in
		return req, err
	case report.KindCellsum:
		in, err := cellsumRequest{Branches: b.Branches, dateFields: b.dateFields}.input(now)
		req.Cellsum = &in
		return req, err
	default:
		return req, fmt.Errorf("%w: %q", report.ErrUnknownKind, b.Kind)
	}
}

type batchItemResponse struct {
	Index  int            `json:"index"`
	Kind   report.Kind    `json:"kind"`
	Status string         `json:"status"`
	Bundle any            `json:"bundle,omitempty"`
	Error  *errorResponse `json:"error,omitempty"`
}
