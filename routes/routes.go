package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "p9e.in/tankinspect/docs"
	"p9e.in/tankinspect/handlers"
	"p9e.in/tankinspect/middleware"
)

// Options carries the cross-cutting HTTP settings from configuration.
type Options struct {
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	TrustProxy        bool
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(h *handlers.Handler, opts Options) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// =====================================================
	// Operational endpoints
	// =====================================================
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	))

	// =====================================================
	// Inspection API
	// =====================================================
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RateLimit(opts.RateLimitRequests, opts.RateLimitWindow, opts.RateLimitDisabled, opts.TrustProxy))

	registerTankRoutes(api, h)
	registerFindingRoutes(api, h.Resources())
	api.HandleFunc("/metadata", h.Metadata).Methods("GET")

	r.NotFoundHandler = middleware.Metrics(http.HandlerFunc(handlers.NotFound))
	r.MethodNotAllowedHandler = middleware.Metrics(http.HandlerFunc(handlers.MethodNotAllowed))

	var handler http.Handler = r
	handler = middleware.CORS(opts.AllowedOrigins)(handler)
	handler = middleware.SecurityHeaders(handler)
	handler = middleware.AccessLog(handler)
	handler = middleware.Recover(handler)
	handler = middleware.RequestID(handler)
	return middleware.StripTrailingSlash(handler)
}

func registerTankRoutes(api *mux.Router, h *handlers.Handler) {
	registerCRUDRoutes(api, "/tanks", crudHandlers{
		getAll: h.ListTanks,
		create: h.CreateTank,
		getOne: h.GetTank,
		update: h.UpdateTank,
		patch:  h.PatchTank,
		delete: h.DeleteTank,
	})
	api.HandleFunc("/tanks/{id}/summary", h.TankSummary).Methods("GET")
	api.HandleFunc("/tanks/{id}/goal-results/{goal_key}", h.UpsertGoalResult).Methods("PUT")
}

func registerFindingRoutes(api *mux.Router, res handlers.Resources) {
	registerCRUDRoutes(api, "/shell-settlement-surveys", crudFor(res.Surveys))
	registerCRUDRoutes(api, "/ut-results", crudFor(res.UTResults))
	registerCRUDRoutes(api, "/edge-settlement-checks", crudFor(res.EdgeChecks))
	registerCRUDRoutes(api, "/column-plumbness-checks", crudFor(res.PlumbChecks))
	registerCRUDRoutes(api, "/visual-findings", crudFor(res.VisualFindings))
	registerCRUDRoutes(api, "/other-nde", crudFor(res.OtherNDE))
	registerCRUDRoutes(api, "/goal-results", crudFor(res.GoalResults))
	registerCRUDRoutes(api, "/goal-question-templates", crudFor(res.Templates))
}

type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	patch  func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// crudResource is implemented by every handlers.Resource instantiation.
type crudResource interface {
	List(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Patch(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func crudFor(res crudResource) crudHandlers {
	return crudHandlers{
		getAll: res.List,
		create: res.Create,
		getOne: res.Get,
		update: res.Update,
		patch:  res.Patch,
		delete: res.Delete,
	}
}

// registerCRUDRoutes registers standard CRUD routes for a resource
func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	router.HandleFunc(path, h.getAll).Methods("GET")
	router.HandleFunc(path, h.create).Methods("POST")
	router.HandleFunc(path+"/{id}", h.getOne).Methods("GET")
	router.HandleFunc(path+"/{id}", h.update).Methods("PUT")
	router.HandleFunc(path+"/{id}", h.patch).Methods("PATCH")
	router.HandleFunc(path+"/{id}", h.delete).Methods("DELETE")
}
