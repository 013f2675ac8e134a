// Package ingest turns branch spreadsheets into typed performance records.
//
// Brand sheets carry one header row with BRAND NAME, MONTHLY TARGET,
// ACHIEVEMENT, BALANCE TO DO and DAILY TARGET. Staff sheets carry a two-row
// grouped header: HANDSET and ACCESSORIES over TARGET, ACHIEVEMENT and BALANCE,
// with the salesperson in the first column.
package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v2"

	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/pkg/metrics"
)

// Sheet kinds.
const (
	SheetBrand = "brand"
	SheetStaff = "staff"
)

// Brand sheet headers.
const (
	colBrandName   = "BRAND NAME"
	colTarget      = "MONTHLY TARGET"
	colAchievement = "ACHIEVEMENT"
	colBalance     = "BALANCE TO DO"
	colDaily       = "DAILY TARGET"
)

// Staff sheet header groups and columns.
const (
	groupHandset     = "HANDSET"
	groupAccessories = "ACCESSORIES"
	subTarget        = "TARGET"
	subAchievement   = "ACHIEVEMENT"
	subBalance       = "BALANCE"
	totalMarker      = "TOTAL"
)

// ReadBrandFile reads a brand sheet from path.
func ReadBrandFile(path string, opts ...Option) ([]model.PerformanceRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		metrics.RecordIngestError(SheetBrand)
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	return brandFromFile(f, opts)
}

// ReadBrand reads a brand sheet from an in-memory workbook.
func ReadBrand(data []byte, opts ...Option) ([]model.PerformanceRecord, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		metrics.RecordIngestError(SheetBrand)
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return brandFromFile(f, opts)
}

// ReadStaffFile reads a staff sheet from path.
func ReadStaffFile(path string, opts ...Option) ([]model.StaffRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		metrics.RecordIngestError(SheetStaff)
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	return staffFromFile(f, opts)
}

// ReadStaff reads a staff sheet from an in-memory workbook.
func ReadStaff(data []byte, opts ...Option) ([]model.StaffRecord, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		metrics.RecordIngestError(SheetStaff)
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	return staffFromFile(f, opts)
}

func brandFromFile(f *xlsx.File, opts []Option) ([]model.PerformanceRecord, error) {
	rows, err := readRows(f, buildOptions(opts))
	if err != nil {
		metrics.RecordIngestError(SheetBrand)
		return nil, err
	}
	out, err := ParseBrandRows(rows)
	if err != nil {
		metrics.RecordIngestError(SheetBrand)
		return nil, err
	}
	metrics.RecordIngestRows(SheetBrand, len(out))
	return out, nil
}

func staffFromFile(f *xlsx.File, opts []Option) ([]model.StaffRecord, error) {
	rows, err := readRows(f, buildOptions(opts))
	if err != nil {
		metrics.RecordIngestError(SheetStaff)
		return nil, err
	}
	out, err := ParseStaffRows(rows)
	if err != nil {
		metrics.RecordIngestError(SheetStaff)
		return nil, err
	}
	metrics.RecordIngestRows(SheetStaff, len(out))
	return out, nil
}

// ParseBrandRows converts raw brand sheet rows, header first. Rows whose name
// contains TOTAL (any case) and rows without a name are dropped.
func ParseBrandRows(rows [][]string) ([]model.PerformanceRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: brand sheet has no header row", ErrNoSheet)
	}
	idx := headerIndex(rows[0])
	cols, err := require(idx, colBrandName, colTarget, colAchievement, colBalance, colDaily)
	if err != nil {
		return nil, err
	}

	out := []model.PerformanceRecord{}
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols[0]))
		if name == "" || strings.Contains(strings.ToUpper(name), totalMarker) {
			continue
		}
		out = append(out, model.PerformanceRecord{
			Name:        name,
			Target:      number(cell(row, cols[1])),
			Achieved:    number(cell(row, cols[2])),
			BalanceToDo: number(cell(row, cols[3])),
			DailyTarget: number(cell(row, cols[4])),
		})
	}
	return out, nil
}

// ParseStaffRows converts raw staff sheet rows with a two-row grouped header.
// A group label applies to every column up to the next label, matching merged
// header cells. The row named TOTAL is dropped.
func ParseStaffRows(rows [][]string) ([]model.StaffRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: staff sheet needs a two-row header", ErrNoSheet)
	}
	idx := headerIndex(flattenHeader(rows[0], rows[1]))
	cols, err := require(idx,
		key(groupHandset, subTarget), key(groupHandset, subAchievement), key(groupHandset, subBalance),
		key(groupAccessories, subTarget), key(groupAccessories, subAchievement), key(groupAccessories, subBalance),
	)
	if err != nil {
		return nil, err
	}

	out := []model.StaffRecord{}
	for _, row := range rows[2:] {
		name := strings.TrimSpace(cell(row, 0))
		if name == "" || strings.EqualFold(name, totalMarker) {
			continue
		}
		out = append(out, model.StaffRecord{
			Name: name,
			Handset: model.PerformanceRecord{
				Name:        name,
				Target:      number(cell(row, cols[0])),
				Achieved:    number(cell(row, cols[1])),
				BalanceToDo: number(cell(row, cols[2])),
			},
			Accessories: model.PerformanceRecord{
				Name:        name,
				Target:      number(cell(row, cols[3])),
				Achieved:    number(cell(row, cols[4])),
				BalanceToDo: number(cell(row, cols[5])),
			},
		})
	}
	return out, nil
}

func flattenHeader(groups, subs []string) []string {
	out := make([]string, len(subs))
	var group string
	for i, sub := range subs {
		if g := normalize(cell(groups, i)); g != "" {
			group = g
		}
		out[i] = key(group, sub)
	}
	return out
}

func key(group, sub string) string {
	sub = normalize(sub)
	if group == "" {
		return sub
	}
	return group + "_" + sub
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = normalize(h)
		if _, seen := idx[h]; !seen && h != "" {
			idx[h] = i
		}
	}
	return idx
}

func require(idx map[string]int, names ...string) ([]int, error) {
	cols := make([]int, len(names))
	for i, n := range names {
		c, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
		cols[i] = c
	}
	return cols, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// number coerces a cell to a float; anything non-numeric becomes 0.
func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func readRows(f *xlsx.File, opts options) ([][]string, error) {
	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts options) (*xlsx.Sheet, error) {
	if opts.sheetName != "" {
		sheet, ok := f.Sheet[opts.sheetName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrNoSheet, opts.sheetName)
		}
		return sheet, nil
	}
	if opts.sheetIndex >= len(f.Sheets) {
		return nil, fmt.Errorf("%w: index %d out of range (file has %d sheets)", ErrNoSheet, opts.sheetIndex, len(f.Sheets))
	}
	return f.Sheets[opts.sheetIndex], nil
}

// rowToStrings keeps raw cell values so numeric cells are not affected by
// their display format.
func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, c := range row.Cells {
		if c != nil {
			cells[j] = c.Value
		}
	}
	return cells
}
