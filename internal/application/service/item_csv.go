package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sangkips/lubepos-api/internal/domain/entity"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// itemCSVRow is the CSV shape of an inventory item. Numeric columns are read
// as text so a bad cell fails its own row instead of the whole file.
type itemCSVRow struct {
	ID          string `csv:"id"`
	Name        string `csv:"name"`
	Category    string `csv:"category"`
	Stock       string `csv:"stock"`
	Price       string `csv:"price"`
	Brand       string `csv:"brand"`
	Type        string `csv:"type"`
	SKU         string `csv:"sku"`
	Description string `csv:"description"`
	Image       string `csv:"image"`
	IsOil       string `csv:"is_oil"`
	Volumes     string `csv:"volumes"` // 5L:39.99|1L:11.99
}

// ImportResult contains the result of an item import
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func formatVolumes(volumes []entity.Volume) string {
	parts := make([]string, len(volumes))
	for i, v := range volumes {
		parts[i] = v.Size + ":" + v.Price.StringFixed(2)
	}
	return strings.Join(parts, "|")
}

func parseVolumes(s string) ([]entity.Volume, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var volumes []entity.Volume
	for _, part := range strings.Split(s, "|") {
		idx := strings.LastIndex(part, ":")
		if idx < 0 {
			return nil, fmt.Errorf("volume %q must look like SIZE:PRICE", part)
		}
		p, err := decimal.NewFromString(strings.TrimSpace(part[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("volume %q has an invalid price", part)
		}
		volumes = append(volumes, entity.Volume{Size: strings.TrimSpace(part[:idx]), Price: p})
	}
	return volumes, nil
}

// ExportCSV writes every item, in insertion order, as CSV with a header row
func (s *ItemService) ExportCSV(ctx context.Context, w io.Writer) error {
	items, _, err := s.itemRepo.List(ctx, nil)
	if err != nil {
		return err
	}

	rows := make([]*itemCSVRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, &itemCSVRow{
			ID:          item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Stock:       strconv.Itoa(item.Stock),
			Price:       item.Price.StringFixed(2),
			Brand:       item.Brand,
			Type:        item.Type,
			SKU:         item.SKU,
			Description: item.Description,
			Image:       item.Image,
			IsOil:       strconv.FormatBool(item.IsOil),
			Volumes:     formatVolumes(item.Volumes),
		})
	}

	return gocsv.Marshal(rows, w)
}

// ImportCSV adds one item per valid row. The id column is ignored; every
// imported row becomes a new item. Invalid rows are reported and skipped.
func (s *ItemService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var rows []*itemCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, apperror.NewBadRequestErrorf("Invalid CSV file: %v", err)
	}

	result := &ImportResult{TotalRows: len(rows)}
	for i, row := range rows {
		rowNum := i + 2 // row 1 is the header

		input, rowErr := row.toInput()
		if rowErr != nil {
			rowErr.Row = rowNum
			result.Errors = append(result.Errors, *rowErr)
			continue
		}

		if _, err := s.CreateItem(ctx, input); err != nil {
			result.Errors = append(result.Errors, importErrors(rowNum, err)...)
			continue
		}
		result.Successful++
	}

	result.Failed = result.TotalRows - result.Successful
	return result, nil
}

func (row *itemCSVRow) toInput() (*CreateItemInput, *ImportRowError) {
	input := &CreateItemInput{
		Name:        row.Name,
		Category:    row.Category,
		Brand:       strings.TrimSpace(row.Brand),
		Type:        strings.TrimSpace(row.Type),
		SKU:         strings.TrimSpace(row.SKU),
		Description: row.Description,
		Image:       strings.TrimSpace(row.Image),
	}

	if v := strings.TrimSpace(row.Stock); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ImportRowError{Field: "stock", Message: fmt.Sprintf("Stock '%s' is not a whole number", v)}
		}
		input.Stock = stock
	}

	if v := strings.TrimSpace(row.Price); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, &ImportRowError{Field: "price", Message: fmt.Sprintf("Price '%s' is not a number", v)}
		}
		input.Price = price
	}

	if v := strings.TrimSpace(row.IsOil); v != "" {
		isOil, err := strconv.ParseBool(v)
		if err != nil {
			return nil, &ImportRowError{Field: "is_oil", Message: fmt.Sprintf("is_oil '%s' must be true or false", v)}
		}
		input.IsOil = isOil
	}

	volumes, err := parseVolumes(row.Volumes)
	if err != nil {
		return nil, &ImportRowError{Field: "volumes", Message: err.Error()}
	}
	input.Volumes = volumes

	return input, nil
}

func importErrors(row int, err error) []ImportRowError {
	appErr := apperror.GetAppError(err)
	if len(appErr.Errors) == 0 {
		return []ImportRowError{{Row: row, Message: appErr.Message}}
	}

	out := make([]ImportRowError, len(appErr.Errors))
	for i, fe := range appErr.Errors {
		out[i] = ImportRowError{Row: row, Field: fe.Field, Message: fe.Message}
	}
	return out
}
