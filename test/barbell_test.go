package test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/barbellviz/internal/gymstats/barbell"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

func (s *IntegrationTestSuite) get(path string) (int, string) {
	req, err := http.NewRequest("GET", serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.T(), err)
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, string(respBytes)
}

func (s *IntegrationTestSuite) addExercise(exerciseID, muscleGroup string, kilos, reps int, createdAt time.Time) {
	_, err := s.DB.Exec(
		`INSERT INTO exercise (exercise_id, muscle_group, kilos, reps, metadata, created_at)
			VALUES ($1, $2, $3, $4, '{"source": "integration-test"}', $5)`,
		exerciseID, muscleGroup, kilos, reps, createdAt,
	)
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) TestBarbell_Breakdown() {
	status, body := s.get("/gymstats/barbell/breakdown?weight=142.5&bar=20")
	require.Equal(s.T(), http.StatusOK, status)

	var resp barbell.BreakdownResponse
	require.NoError(s.T(), json.Unmarshal([]byte(body), &resp))
	assert.Equal(s.T(), 61.25, resp.WeightPerSide)
	assert.Equal(s.T(), plates.Loadout{
		{Weight: 25, Color: "red"},
		{Weight: 25, Color: "red"},
		{Weight: 10, Color: "green"},
		{Weight: 1, Color: "green"},
	}, resp.Plates)
	assert.InDelta(s.T(), 0.25, resp.Remainder, 0.0001)
}

func (s *IntegrationTestSuite) TestBarbell_Page() {
	status, body := s.get("/gymstats/barbell?weights=100,60&bar=15")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Contains(s.T(), body, "42.5 kg (93.5 lbs) per side")
	assert.Contains(s.T(), body, "22.5 kg (49.5 lbs) per side")

	// served from the page cache the second time
	status, cached := s.get("/gymstats/barbell?weights=100,60&bar=15")
	require.Equal(s.T(), http.StatusOK, status)
	assert.Equal(s.T(), body, cached)
}

func (s *IntegrationTestSuite) TestBarbell_ExercisesPage() {
	_, err := s.DB.Exec("DELETE FROM exercise")
	require.NoError(s.T(), err)

	now := time.Now().UTC()
	s.addExercise("bench", "chest", 80, 5, now.Add(-2*time.Hour))
	s.addExercise("squat", "legs", 140, 3, now.Add(-time.Hour))
	s.addExercise("deadlift", "legs", 180, 1, now)

	s.T().Run("latest legs", func(t *testing.T) {
		status, body := s.get("/gymstats/barbell/exercises?group=legs&limit=5")
		require.Equal(t, http.StatusOK, status)

		deadliftIdx := strings.Index(body, "deadlift (legs) x1 - 180 kg")
		squatIdx := strings.Index(body, "squat (legs) x3 - 140 kg")
		require.True(t, deadliftIdx >= 0)
		require.True(t, squatIdx >= 0)
		assert.Less(t, deadliftIdx, squatIdx)
		assert.NotContains(t, body, "bench")
		assert.Contains(t, body, "80.0 kg (176.0 lbs) per side")
	})

	s.T().Run("limited", func(t *testing.T) {
		status, body := s.get("/gymstats/barbell/exercises?limit=1")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "deadlift")
		assert.NotContains(t, body, "squat")
	})

	s.T().Run("no exercises in group", func(t *testing.T) {
		status, body := s.get("/gymstats/barbell/exercises?group=arms")
		require.Equal(t, http.StatusOK, status)
		assert.NotContains(t, body, "per side")
	})
}

func (s *IntegrationTestSuite) TestBarbell_BadRequests() {
	for _, path := range []string{
		"/gymstats/barbell/breakdown",
		"/gymstats/barbell?weights=abc",
		fmt.Sprintf("/gymstats/barbell/exercises?limit=%d", 1000),
	} {
		status, _ := s.get(path)
		assert.Equal(s.T(), http.StatusBadRequest, status, path)
	}
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	resp, err := http.Get(fmt.Sprintf("http://%s:%s/metrics", serverHost, metricsPort))
	require.NoError(s.T(), err)
	defer func() {
		require.NoError(s.T(), resp.Body.Close())
	}()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	assert.Contains(s.T(), string(body), "backend_barbell_")
}
