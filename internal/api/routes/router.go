package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/broki/marketplace-api/internal/api/handlers"
	"github.com/broki/marketplace-api/internal/api/middleware"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	formHandler     *handlers.FormHandler
	authHandler     *handlers.AuthHandler
	propertyHandler *handlers.PropertyHandler
	catalogHandler  *handlers.CatalogHandler
	serviceHandler  *handlers.ServiceHandler
	blogHandler     *handlers.BlogHandler

	tokens          middleware.AccessTokenParser
	cacheMiddleware *middleware.CacheMiddleware
	allowedOrigins  []string
	metrics         *observability.Metrics
}

// NewRouter creates a new router. cacheMiddleware may be nil.
func NewRouter(
	formHandler *handlers.FormHandler,
	authHandler *handlers.AuthHandler,
	propertyHandler *handlers.PropertyHandler,
	catalogHandler *handlers.CatalogHandler,
	serviceHandler *handlers.ServiceHandler,
	blogHandler *handlers.BlogHandler,
	tokens middleware.AccessTokenParser,
	cacheMiddleware *middleware.CacheMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		formHandler:     formHandler,
		authHandler:     authHandler,
		propertyHandler: propertyHandler,
		catalogHandler:  catalogHandler,
		serviceHandler:  serviceHandler,
		blogHandler:     blogHandler,
		tokens:          tokens,
		cacheMiddleware: cacheMiddleware,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Lead forms
	r.handle("POST /api/submit-form/{$}", http.HandlerFunc(r.formHandler.SubmitOutletForm))
	r.handle("POST /api/submit-contact-form/{$}", http.HandlerFunc(r.formHandler.SubmitContactForm))

	// Authentication
	requireAuth := middleware.RequireAuth(r.tokens)
	r.handle("POST /api/register/{$}", http.HandlerFunc(r.authHandler.Register))
	r.handle("POST /api/send-otp/{$}", http.HandlerFunc(r.authHandler.SendOTP))
	r.handle("POST /api/verify-otp/{$}", http.HandlerFunc(r.authHandler.VerifyOTP))
	r.handle("POST /api/logout/{$}", requireAuth(http.HandlerFunc(r.authHandler.Logout)))
	r.handle("GET /api/auth-status/{$}", requireAuth(http.HandlerFunc(r.authHandler.AuthStatus)))

	// Properties
	r.handle("GET /api/filter-property-list/{$}", http.HandlerFunc(r.propertyHandler.ListProperties))
	r.handle("POST /api/upload-properties/{$}", http.HandlerFunc(r.propertyHandler.UploadProperties))
	r.handle("POST /api/property-detail/{$}", http.HandlerFunc(r.propertyHandler.GetPropertyDetail))
	r.handle("GET /api/nearby-property-list/{$}", http.HandlerFunc(r.propertyHandler.ListNearbyProperties))

	// Reference lists
	r.handle("GET /api/cities/{$}", http.HandlerFunc(r.catalogHandler.ListCities))
	r.handle("GET /api/categories/{$}", http.HandlerFunc(r.catalogHandler.ListCategories))
	r.handle("GET /api/tags-list/{$}", http.HandlerFunc(r.catalogHandler.ListTags))

	// Bookable services
	r.handle("GET /api/service-list/{$}", http.HandlerFunc(r.serviceHandler.ListServices))
	r.handle("GET /api/service-detail/{id}/{$}", http.HandlerFunc(r.serviceHandler.GetServiceDetail))

	// Blog
	r.handle("GET /api/article-list/{$}", http.HandlerFunc(r.blogHandler.ListArticles))
	r.handle("GET /api/article-detail/{id}/{$}", http.HandlerFunc(r.blogHandler.GetArticle))

	r.mux.HandleFunc("/", notFound)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Not found."})
}

// handle registers h for an exact pattern ending in "/{$}" and answers 404
// for the same path without its trailing slash instead of redirecting.
func (r *Router) handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
	r.mux.HandleFunc(strings.TrimSuffix(pattern, "/{$}"), notFound)
}
