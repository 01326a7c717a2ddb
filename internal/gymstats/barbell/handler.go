package barbell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/controller"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/dom"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/render"
	"github.com/2beens/barbellviz/internal/gymstats/exercises"
	"github.com/2beens/barbellviz/internal/middleware"
	"github.com/2beens/barbellviz/internal/telemetry/metrics"
	"github.com/2beens/barbellviz/internal/telemetry/tracing"
	"github.com/2beens/barbellviz/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=barbell_test

const maxWeightsPerPage = 30

type exercisesRepo interface {
	ListLatest(ctx context.Context, params exercises.LatestParams) ([]exercises.Exercise, error)
}

type BreakdownResponse struct {
	TotalWeight      float64             `json:"totalWeight"`
	BarWeight        float64             `json:"barWeight"`
	BarColor         string              `json:"barColor"`
	WeightPerSide    float64             `json:"weightPerSide"`
	WeightPerSideLbs float64             `json:"weightPerSideLbs"`
	Plates           plates.Loadout      `json:"plates"`
	Counts           []plates.PlateCount `json:"counts"`
	LoadedWeight     float64             `json:"loadedWeight"`
	Remainder        float64             `json:"remainder"`
	Summary          string              `json:"summary"`
}

type Handler struct {
	calc           *plates.Calculator
	bars           []plates.BarSpec
	defaultBar     plates.BarSpec
	repo           exercisesRepo
	pageCache      *PageCache
	metricsManager *metrics.Manager
	latestLimit    int
}

type NewHandlerParams struct {
	Calculator     *plates.Calculator
	Bars           []plates.BarSpec
	DefaultBar     plates.BarSpec
	Repo           exercisesRepo
	PageCache      *PageCache
	MetricsManager *metrics.Manager
	LatestLimit    int
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		calc:           params.Calculator,
		bars:           params.Bars,
		defaultBar:     params.DefaultBar,
		repo:           params.Repo,
		pageCache:      params.PageCache,
		metricsManager: params.MetricsManager,
		latestLimit:    params.LatestLimit,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
) {
	barbellRouter := mainRouter.PathPrefix("/gymstats/barbell").Subrouter()
	barbellRouter.HandleFunc("", handler.HandlePage).Methods("GET", "OPTIONS").Name("barbell-page")
	barbellRouter.HandleFunc("/breakdown", handler.HandleBreakdown).Methods("GET", "OPTIONS").Name("barbell-breakdown")
	barbellRouter.HandleFunc("/exercises", handler.HandleExercisesPage).Methods("GET", "OPTIONS").Name("barbell-exercises")

	if rateLimiter != nil {
		barbellRouter.Use(middleware.RateLimit(rateLimiter, "barbell", allowedPerMin, handler.metricsManager))
	}
}

func (handler *Handler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.barbell.breakdown")
	defer span.End()

	weightStr := r.URL.Query().Get("weight")
	if weightStr == "" {
		http.Error(w, "error, weight empty", http.StatusBadRequest)
		return
	}
	totalWeight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil {
		http.Error(w, "error, weight NaN", http.StatusBadRequest)
		return
	}
	if err := plates.CheckTotal(totalWeight); err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}

	bar, err := handler.barFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Float64("weight", totalWeight))
	span.SetAttributes(attribute.Float64("bar", bar.Weight))

	weightPerSide := plates.WeightPerSide(totalWeight, bar.Weight)
	loadout := handler.calc.Breakdown(weightPerSide)
	handler.observeRender("json", len(loadout))

	resp := BreakdownResponse{
		TotalWeight:      totalWeight,
		BarWeight:        bar.Weight,
		BarColor:         bar.Color,
		WeightPerSide:    weightPerSide,
		WeightPerSideLbs: render.ToLbs(weightPerSide),
		Plates:           loadout,
		Counts:           loadout.Counts(),
		LoadedWeight:     bar.Weight + 2*loadout.Total(),
		Remainder:        weightPerSide - loadout.Total(),
		Summary:          render.Summary(weightPerSide),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal breakdown response: %s", err)
		http.Error(w, "failed to marshal breakdown response", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.barbell.page")
	defer span.End()

	weightsStr := r.URL.Query().Get("weights")
	weights, err := pkg.ParseFloatList(weightsStr)
	if err != nil {
		http.Error(w, "error, invalid weights", http.StatusBadRequest)
		return
	}
	if len(weights) == 0 {
		http.Error(w, "error, weights empty", http.StatusBadRequest)
		return
	}
	if len(weights) > maxWeightsPerPage {
		http.Error(w, fmt.Sprintf("error, max %d weights allowed", maxWeightsPerPage), http.StatusBadRequest)
		return
	}
	for _, weight := range weights {
		if err := plates.CheckTotal(weight); err != nil {
			http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	bar, err := handler.barFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Int("weights", len(weights)))
	span.SetAttributes(attribute.Float64("bar", bar.Weight))

	cacheKey := PageCacheKey(bar, weights)
	if page, ok := handler.pageCache.Get(cacheKey); ok {
		handler.metricsManager.CounterPageCacheHits.Inc()
		span.SetAttributes(attribute.Bool("cached", true))
		pkg.WriteHTMLResponseOK(w, page)
		return
	}
	handler.metricsManager.CounterPageCacheMisses.Inc()

	targets := make([]dom.Target, 0, len(weights))
	for _, weight := range weights {
		targets = append(targets, dom.Target{Weight: weight})
	}

	page, err := handler.renderPage(dom.PageParams{
		Title:      "Barbell",
		Hidden:     map[string]string{"weights": weightsStr},
		Bars:       handler.bars,
		CheckedBar: bar.Weight,
		Targets:    targets,
	})
	if err != nil {
		log.Errorf("render barbell page [%s]: %s", cacheKey, err)
		http.Error(w, "error, failed to render page", http.StatusInternalServerError)
		return
	}

	handler.pageCache.Set(cacheKey, page)
	pkg.WriteHTMLResponseOK(w, page)
}

func (handler *Handler) HandleExercisesPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.barbell.exercises")
	defer span.End()

	limit := handler.latestLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "error, limit NaN", http.StatusBadRequest)
			return
		}
	}
	if limit <= 0 || limit > exercises.MaxLatestLimit {
		http.Error(w, fmt.Sprintf("error, limit must be in [1, %d]", exercises.MaxLatestLimit), http.StatusBadRequest)
		return
	}

	bar, err := handler.barFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	muscleGroup := r.URL.Query().Get("group")
	latest, err := handler.repo.ListLatest(ctx, exercises.LatestParams{
		MuscleGroup: muscleGroup,
		Limit:       limit,
	})
	if err != nil && !errors.Is(err, exercises.ErrNoExercises) {
		log.Errorf("list latest exercises [%s], limit %d: %s", muscleGroup, limit, err)
		http.Error(w, "error, failed to get exercises", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("exercises", len(latest)))

	targets := make([]dom.Target, 0, len(latest))
	for _, ex := range latest {
		targets = append(targets, dom.Target{
			Name:   fmt.Sprintf("%s (%s) x%d", ex.ExerciseID, ex.MuscleGroup, ex.Reps),
			Weight: float64(ex.Kilos),
		})
	}

	hidden := map[string]string{"limit": strconv.Itoa(limit)}
	if muscleGroup != "" {
		hidden["group"] = muscleGroup
	}

	page, err := handler.renderPage(dom.PageParams{
		Title:      "Latest exercises",
		Hidden:     hidden,
		Bars:       handler.bars,
		CheckedBar: bar.Weight,
		Targets:    targets,
	})
	if err != nil {
		log.Errorf("render exercises barbell page: %s", err)
		http.Error(w, "error, failed to render page", http.StatusInternalServerError)
		return
	}

	pkg.WriteHTMLResponseOK(w, page)
}

// renderPage builds the page, lets the controller draw every display for the
// checked bar and serializes the result.
func (handler *Handler) renderPage(params dom.PageParams) ([]byte, error) {
	page := dom.NewPage(params)

	displays := make([]controller.Display, 0, len(page.Displays))
	for _, d := range page.Displays {
		displays = append(displays, &meteredDisplay{Display: d, handler: handler})
	}

	ctrl := controller.New(handler.calc, page.Bars, displays...)
	ctrl.Start(page.Bars)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (handler *Handler) barFromRequest(r *http.Request) (plates.BarSpec, error) {
	barStr := strings.TrimSpace(r.URL.Query().Get(dom.BarWeightInputName))
	if barStr == "" {
		barStr = strings.TrimSpace(r.URL.Query().Get("bar"))
	}
	if barStr == "" {
		return handler.defaultBar, nil
	}

	barWeight, err := strconv.ParseFloat(barStr, 64)
	if err != nil {
		return plates.BarSpec{}, errors.New("error, bar weight NaN")
	}

	bar, ok := plates.FindBar(handler.bars, barWeight)
	if !ok {
		return plates.BarSpec{}, fmt.Errorf("error, unknown bar: %s", barStr)
	}
	return bar, nil
}

func (handler *Handler) observeRender(surface string, platesPerSide int) {
	handler.metricsManager.CounterBarbellRenders.WithLabelValues(surface).Inc()
	handler.metricsManager.HistogramPlatesPerSide.Observe(float64(platesPerSide))
}

// meteredDisplay counts every barbell drawn into a page.
type meteredDisplay struct {
	controller.Display
	handler *Handler
}

func (d *meteredDisplay) Show(layout render.Layout) {
	d.Display.Show(layout)
	d.handler.observeRender("dom", len(layout.Plates())/2)
}
