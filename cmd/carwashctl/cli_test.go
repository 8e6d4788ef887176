package main

import (
	"bytes"
	"carwash/inventory"
	"carwash/repository"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTree(t *testing.T) {
	tree := inventory.BuildTree([]inventory.Category{
		{ID: 1, Name: "Chemicals"},
		{ID: 2, Name: "Wax", OwnerCategoryID: inventory.Owner(1)},
		{ID: 3, Name: "Hard wax", OwnerCategoryID: inventory.Owner(2)},
		{ID: 4, Name: "Lost", OwnerCategoryID: inventory.Owner(99)},
		{ID: 1, Name: "Chemicals again"},
	})
	var buf bytes.Buffer
	printTree(&buf, tree)
	assert.Equal(t, `Chemicals (#1)
  Wax (#2)
    Hard wax (#3)

2 categories could not be placed:
  #1 duplicate (owner none)
  #4 orphan (owner #99)
`, buf.String())
}

func TestPrintTreeWithoutIssues(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, inventory.BuildTree([]inventory.Category{{ID: 1, Name: "Chemicals"}}))
	assert.Equal(t, "Chemicals (#1)\n", buf.String())
}

func TestExportFilter(t *testing.T) {
	filter, err := exportFilter("2026-06-01", "2026-06-30", 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), filter.From)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), filter.To)
	require.NotNil(t, filter.PosID)
	assert.Equal(t, 2, *filter.PosID)

	filter, err = exportFilter("2026-06-01", "2026-06-01", 0)
	require.NoError(t, err)
	assert.Nil(t, filter.PosID)

	_, err = exportFilter("2026-07-01", "2026-06-01", 0)
	assert.Error(t, err)
	_, err = exportFilter("yesterday", "2026-06-01", 0)
	assert.Error(t, err)
}

func TestParsePermissions(t *testing.T) {
	permissions, err := parsePermissions([]string{"finance", "warehouse"})
	require.NoError(t, err)
	assert.Equal(t, []repository.Permission{repository.PermissionFinance, repository.PermissionWarehouse}, permissions)

	_, err = parsePermissions([]string{"root"})
	assert.Error(t, err)
}

type exportFile struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (f *exportFile) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose(t *testing.T) {
	write := func(w io.Writer) error {
		_, err := w.Write([]byte("payouts"))
		return err
	}

	file := &exportFile{}
	require.NoError(t, writeAndClose(file, write))
	assert.True(t, file.closed)
	assert.Equal(t, "payouts", file.String())

	file = &exportFile{closeErr: errors.New("disk full")}
	err := writeAndClose(file, write)
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")

	file = &exportFile{closeErr: errors.New("disk full")}
	err = writeAndClose(file, func(w io.Writer) error { return errors.New("query failed") })
	assert.EqualError(t, err, "query failed")
	assert.True(t, file.closed)
}
