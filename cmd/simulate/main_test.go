package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raterudder/solarcheck/pkg/types"
)

func TestReadScenario(t *testing.T) {
	req, err := readScenario(filepath.Join("testdata", "office.yaml"))
	require.NoError(t, err)
	require.NoError(t, req.Validate())

	assert.Equal(t, "milan office", req.Label)
	assert.Equal(t, types.BuildingCategoryOffice, req.BuildingCategory)
	assert.Equal(t, types.ClimateZoneNorth, req.ClimateZone)
	assert.Equal(t, types.OperatingHoursNone, req.OperatingHours)
	require.NotNil(t, req.MeasuredConsumptionKWH)
	assert.Equal(t, 1200.0, *req.MeasuredConsumptionKWH)
	assert.Equal(t, 7, req.ReferenceMonth)

	require.NotNil(t, req.Economics)
	require.NotNil(t, req.Economics.LifetimeYears)
	assert.Equal(t, 20, *req.Economics.LifetimeYears)
	assert.Nil(t, req.Economics.CAPEXOverride)

	require.NotNil(t, req.Yield)
	profile, err := req.Yield.Profile(req.Latitude, req.Longitude)
	require.NoError(t, err)
	assert.Equal(t, "pvgis-2024", profile.Source)
	assert.Equal(t, 52.0, profile.MonthlyKWHPerKWP[0])
	assert.Equal(t, 1288.0, profile.AnnualKWHPerKWP)
}

func TestReadScenarioErrors(t *testing.T) {
	_, err := readScenario(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latitude: [north"), 0o600))
	_, err = readScenario(path)
	assert.ErrorContains(t, err, "failed to parse scenario")
}
