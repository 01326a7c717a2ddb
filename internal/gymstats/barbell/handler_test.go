package barbell_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/2beens/barbellviz/internal/gymstats/barbell"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/exercises"
	"github.com/2beens/barbellviz/internal/telemetry/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testHandler struct {
	handler   *barbell.Handler
	repo      *MockexercisesRepo
	pageCache *barbell.PageCache
	metrics   *metrics.Manager
	router    *mux.Router
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := NewMockexercisesRepo(ctrl)
	pageCache := barbell.NewPageCache(1, time.Minute)
	metricsManager := metrics.NewTestManager()

	handler := barbell.NewHandler(barbell.NewHandlerParams{
		Calculator:     plates.DefaultCalculator(),
		Bars:           plates.DefaultBars,
		DefaultBar:     plates.DefaultBars[0],
		Repo:           repo,
		PageCache:      pageCache,
		MetricsManager: metricsManager,
		LatestLimit:    5,
	})

	r := mux.NewRouter()
	handler.SetupRoutes(r, nil, 0)

	return &testHandler{
		handler:   handler,
		repo:      repo,
		pageCache: pageCache,
		metrics:   metricsManager,
		router:    r,
	}
}

func (th *testHandler) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest("GET", target, nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	th.router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_HandleBreakdown(t *testing.T) {
	th := newTestHandler(t)

	rr := th.get(t, "/gymstats/barbell/breakdown?weight=115")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp barbell.BreakdownResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, 115.0, resp.TotalWeight)
	assert.Equal(t, 20.0, resp.BarWeight)
	assert.Equal(t, "blue", resp.BarColor)
	assert.Equal(t, 47.5, resp.WeightPerSide)
	assert.InDelta(t, 104.5, resp.WeightPerSideLbs, 0.0001)
	assert.Equal(t, plates.Loadout{
		{Weight: 25, Color: "red"},
		{Weight: 20, Color: "blue"},
		{Weight: 2.5, Color: "red"},
	}, resp.Plates)
	assert.Len(t, resp.Counts, 3)
	assert.Equal(t, 115.0, resp.LoadedWeight)
	assert.InDelta(t, 0, resp.Remainder, plates.Epsilon)
	assert.Equal(t, "47.5 kg (104.5 lbs) per side", resp.Summary)

	assert.Equal(t, 1.0, testutil.ToFloat64(th.metrics.CounterBarbellRenders.WithLabelValues("json")))
}

func TestHandler_HandleBreakdown_OtherBar(t *testing.T) {
	th := newTestHandler(t)

	rr := th.get(t, "/gymstats/barbell/breakdown?weight=60.7&bar=15")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp barbell.BreakdownResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, 15.0, resp.BarWeight)
	assert.Equal(t, "yellow", resp.BarColor)
	assert.InDelta(t, 22.85, resp.WeightPerSide, 0.0001)
	assert.Equal(t, plates.Loadout{
		{Weight: 20, Color: "blue"},
		{Weight: 2.5, Color: "red"},
	}, resp.Plates)
	assert.InDelta(t, 0.35, resp.Remainder, 0.0001)
	assert.Equal(t, 60.0, resp.LoadedWeight)
}

func TestHandler_HandleBreakdown_LighterThanBar(t *testing.T) {
	th := newTestHandler(t)

	rr := th.get(t, "/gymstats/barbell/breakdown?weight=10")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp barbell.BreakdownResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0.0, resp.WeightPerSide)
	assert.Empty(t, resp.Plates)
	assert.Equal(t, "0.0 kg (0.0 lbs) per side", resp.Summary)
}

func TestHandler_HandleBreakdown_BadRequests(t *testing.T) {
	th := newTestHandler(t)

	for _, target := range []string{
		"/gymstats/barbell/breakdown",
		"/gymstats/barbell/breakdown?weight=heavy",
		"/gymstats/barbell/breakdown?weight=100&bar=13",
		"/gymstats/barbell/breakdown?weight=100&bar=x",
		"/gymstats/barbell/breakdown?weight=NaN",
		"/gymstats/barbell/breakdown?weight=Inf",
		"/gymstats/barbell/breakdown?weight=-Inf",
		"/gymstats/barbell/breakdown?weight=1000.5",
		"/gymstats/barbell/breakdown?weight=2e18",
	} {
		rr := th.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}

func TestHandler_HandlePage(t *testing.T) {
	th := newTestHandler(t)

	rr := th.get(t, "/gymstats/barbell?weights=100,60&bar=20")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "40.0 kg (88.0 lbs) per side")
	assert.Contains(t, body, "20.0 kg (44.0 lbs) per side")
	assert.Contains(t, body, `name="weights" value="100,60"`)
	assert.Equal(t, 2, strings.Count(body, `class="barbellWorkout"`))

	assert.Equal(t, 0.0, testutil.ToFloat64(th.metrics.CounterPageCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(th.metrics.CounterPageCacheMisses))
	assert.Equal(t, 2.0, testutil.ToFloat64(th.metrics.CounterBarbellRenders.WithLabelValues("dom")))
	assert.Equal(t, int64(1), th.pageCache.EntryCount())

	// same weights and bar are served from the cache
	cached := th.get(t, "/gymstats/barbell?weights=100,60&bar=20")
	require.Equal(t, http.StatusOK, cached.Code)
	assert.Equal(t, body, cached.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(th.metrics.CounterPageCacheHits))
	assert.Equal(t, 2.0, testutil.ToFloat64(th.metrics.CounterBarbellRenders.WithLabelValues("dom")))
}

func TestHandler_HandlePage_BarChange(t *testing.T) {
	th := newTestHandler(t)

	rr20 := th.get(t, "/gymstats/barbell?weights=100")
	require.Equal(t, http.StatusOK, rr20.Code)
	assert.Contains(t, rr20.Body.String(), "40.0 kg (88.0 lbs) per side")

	// the radio form submits the bar as barWeight
	rr10 := th.get(t, "/gymstats/barbell?weights=100&barWeight=10")
	require.Equal(t, http.StatusOK, rr10.Code)
	assert.Contains(t, rr10.Body.String(), "45.0 kg (99.0 lbs) per side")
	assert.Equal(t, int64(2), th.pageCache.EntryCount())
}

func TestHandler_HandlePage_BadRequests(t *testing.T) {
	th := newTestHandler(t)

	tooMany := strings.Repeat("20,", 31)
	for _, target := range []string{
		"/gymstats/barbell",
		"/gymstats/barbell?weights=,,",
		"/gymstats/barbell?weights=100,abc",
		"/gymstats/barbell?weights=100&bar=33",
		"/gymstats/barbell?weights=" + tooMany,
		"/gymstats/barbell?weights=100,NaN",
		"/gymstats/barbell?weights=Inf",
		"/gymstats/barbell?weights=100,2e18",
	} {
		rr := th.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
	assert.Equal(t, int64(0), th.pageCache.EntryCount())
}

func TestHandler_HandleExercisesPage(t *testing.T) {
	th := newTestHandler(t)

	th.repo.EXPECT().
		ListLatest(gomock.Any(), exercises.LatestParams{MuscleGroup: "legs", Limit: 2}).
		DoAndReturn(func(_ context.Context, _ exercises.LatestParams) ([]exercises.Exercise, error) {
			return []exercises.Exercise{
				{ID: 2, ExerciseID: "squat", MuscleGroup: "legs", Kilos: 120, Reps: 5},
				{ID: 1, ExerciseID: "deadlift", MuscleGroup: "legs", Kilos: 60, Reps: 8},
			}, nil
		})

	rr := th.get(t, "/gymstats/barbell/exercises?limit=2&group=legs&bar=20")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "squat (legs) x5 - 120 kg")
	assert.Contains(t, body, "deadlift (legs) x8 - 60 kg")
	assert.Contains(t, body, "50.0 kg (110.0 lbs) per side")
	assert.Contains(t, body, "20.0 kg (44.0 lbs) per side")
	assert.Contains(t, body, `name="group" value="legs"`)

	// exercise pages are never cached
	assert.Equal(t, int64(0), th.pageCache.EntryCount())
}

func TestHandler_HandleExercisesPage_DefaultLimit(t *testing.T) {
	th := newTestHandler(t)

	th.repo.EXPECT().
		ListLatest(gomock.Any(), exercises.LatestParams{Limit: 5}).
		Return(nil, exercises.ErrNoExercises)

	rr := th.get(t, "/gymstats/barbell/exercises")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "per side")
}

func TestHandler_HandleExercisesPage_Errors(t *testing.T) {
	th := newTestHandler(t)

	th.repo.EXPECT().
		ListLatest(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))

	rr := th.get(t, "/gymstats/barbell/exercises")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	for _, target := range []string{
		"/gymstats/barbell/exercises?limit=abc",
		"/gymstats/barbell/exercises?limit=0",
		"/gymstats/barbell/exercises?limit=51",
		"/gymstats/barbell/exercises?bar=99",
	} {
		rr := th.get(t, target)
		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
}
