package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sangkips/lubepos-api/internal/domain/repository"
	"github.com/sangkips/lubepos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "id,name,category,stock,price,brand,type,sku,description,image,is_oil,volumes", lines[0])
	assert.Contains(t, lines[1], "oil-1,0W-20,Oil,100,39.99,Toyota")
	assert.Contains(t, lines[1], "5L:39.99|4L:34.99|1L:11.99|500ml:6.99")
	assert.Contains(t, lines[5], "part-1,Brake Pads,Parts,30,45.99")
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	svc := NewItemService(newTestEnv(t).items, 10)

	csv := strings.Join([]string{
		"name,category,stock,price,is_oil,volumes",
		"Castrol 10W-40,Oil,20,29.99,true,4L:29.99|1L:9.99",
		"Spark Plug,Parts,abc,4.99,,",
		",Parts,1,1,,",
		"Wax,Detailing,3,5,,",
		"Cabin Filter,Filters,8,11.50,,",
	}, "\n")

	result, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 3, result.Failed)

	require.Len(t, result.Errors, 3)
	assert.Equal(t, ImportRowError{Row: 3, Field: "stock", Message: "Stock 'abc' is not a whole number"}, result.Errors[0])
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "name", result.Errors[1].Field)
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, "category", result.Errors[2].Field)

	list, err := svc.ListItems(ctx, &repository.ItemFilterParams{Search: "castrol"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.True(t, list.Items[0].IsOil)
	assert.Len(t, list.Items[0].Volumes, 2)
	assert.True(t, d("9.99").Equal(list.Items[0].Volumes[1].Price))
}

func TestImportCSVRejectsEmptyFile(t *testing.T) {
	svc := NewItemService(newTestEnv(t).items, 10)

	_, err := svc.ImportCSV(context.Background(), strings.NewReader(""))

	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestParseVolumes(t *testing.T) {
	volumes, err := parseVolumes(" 5L:39.99 | 500ml:6.99 ")
	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, "500ml", volumes[1].Size)
	assert.Equal(t, "5L:39.99|500ml:6.99", formatVolumes(volumes))

	_, err = parseVolumes("5L")
	assert.Error(t, err)
	_, err = parseVolumes("5L:cheap")
	assert.Error(t, err)
}
