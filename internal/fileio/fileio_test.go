package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyMapsCSV(t *testing.T) {
	csv := "商品名,数量\nチャーシューたれ,3\nみそだれ,2\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "sales.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "チャーシューたれ", rows[0]["商品名"])
	assert.Equal(t, "2", rows[1]["数量"])
}

func TestReadAnyMapsCSVHeaderRowOffset(t *testing.T) {
	csv := "エクスポート,\n商品名,数量\nたれ,1\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "sales.csv", 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "たれ", rows[0]["商品名"])
}

func TestReadAnyMapsCSVSkipsBlankRows(t *testing.T) {
	csv := "title,qty\na,1\n,\nb,2\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "x.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestReadAnyMapsBlankHeaderGetsColumnName(t *testing.T) {
	csv := "title,\na,1\n"
	rows, err := ReadAnyMaps(strings.NewReader(csv), "x.csv", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["Column 2"])
}

func TestReadAnyMapsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "商品名"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "数量"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "ぽんず"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 4))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadAnyMaps(&buf, "sales.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ぽんず", rows[0]["商品名"])
	assert.Equal(t, "4", rows[0]["数量"])
}

func TestReadAnyMapsUnsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("x"), "sales.pdf", 1)
	assert.Error(t, err)
}

func TestReadAnyMapsEmptyCSV(t *testing.T) {
	rows, err := ReadAnyMaps(strings.NewReader(""), "x.csv", 1)
	require.NoError(t, err)
	assert.Nil(t, rows)
}
