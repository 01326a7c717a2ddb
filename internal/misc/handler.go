package misc

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/pkg"
)

type Handler struct {
	versionInfo   string
	bars          []plates.BarSpec
	defaultBar    plates.BarSpec
	denominations []plates.Denomination
}

type BarsResponse struct {
	Bars          []plates.BarSpec      `json:"bars"`
	DefaultBar    plates.BarSpec        `json:"defaultBar"`
	Denominations []plates.Denomination `json:"denominations"`
}

func NewHandler(
	versionInfo string,
	bars []plates.BarSpec,
	defaultBar plates.BarSpec,
	denominations []plates.Denomination,
) *Handler {
	return &Handler{
		versionInfo:   versionInfo,
		bars:          bars,
		defaultBar:    defaultBar,
		denominations: denominations,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/gymstats/barbell/bars", handler.handleGetBars).Methods("GET", "OPTIONS").Name("barbell-bars")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleGetBars(w http.ResponseWriter, _ *http.Request) {
	resp := BarsResponse{
		Bars:          handler.bars,
		DefaultBar:    handler.defaultBar,
		Denominations: handler.denominations,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal bars response: %s", err)
		http.Error(w, "failed to marshal bars", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}
