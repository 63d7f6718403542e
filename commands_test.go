package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tripmind/config"
	"tripmind/models"
)

const planJSON = `{"content": {"destination": "오사카", "total_cost": 800000},
"raw_data": {"mcp_fetched_data": {
	"flight_candidates": [{"airline": "LJ", "outbound_arrival_time": "2025-06-01T19:00:00"}],
	"schedule": [
		{"day": 1, "events": [{"time_slot": "오전", "place_name": "성"}, {"time_slot": "저녁", "place_name": "도톤보리"}]},
		{"day": 2, "events": [{"time_slot": "오후", "place_name": "시장"}]}
	]
}}}`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalizeCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(planJSON), 0o600))

	out, err := run(t, "", "normalize", path)
	require.NoError(t, err)

	var plan models.NormalizedPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, "오사카", plan.Meta.Destination)
	assert.Len(t, plan.Flights, 1)
	assert.Equal(t, []string{"hotels"}, plan.Misses)
}

func TestAdjustCommandFromStdin(t *testing.T) {
	out, err := run(t, planJSON, "adjust", "--flight", "0")
	require.NoError(t, err)

	var days []models.ScheduleDay
	require.NoError(t, json.Unmarshal([]byte(out), &days))
	require.Len(t, days, 2)
	require.Len(t, days[0].Events, 1)
	assert.Equal(t, "호텔 체크인", days[0].Events[0].PlaceName)
}

func TestAdjustCommandBadIndex(t *testing.T) {
	_, err := run(t, planJSON, "adjust", "--flight", "4")
	assert.Error(t, err)

	_, err = run(t, "not json", "normalize")
	assert.Error(t, err)
}

func TestCheckStartup(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	cfg := config.Default()
	err := checkStartup(cfg, logger)
	assert.ErrorIs(t, err, config.ErrInsecureJWTSecret)
	assert.Equal(t, 1, logs.FilterMessage("no .env file found; using system environment").Len())
	assert.Equal(t, 1, logs.FilterMessage("refusing to start").Len())

	cfg.Development = true
	require.NoError(t, checkStartup(cfg, logger))
	assert.Equal(t, 1, logs.FilterMessage("JWT_SECRET is the default; tokens are forgeable").Len())

	cfg = config.Default()
	cfg.JWTSecret = "s3cr3t"
	cfg.EnvFileLoaded = true
	before := logs.Len()
	require.NoError(t, checkStartup(cfg, logger))
	assert.Equal(t, before, logs.Len())
}
