package api

import (
	"net/http"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/search-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/search-agent/internal/models"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/healthz").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/search").
			To(handler.Search).
			Doc("Search documents").
			Metadata(restfulspec.KeyOpenAPITags, []string{"search"}).
			Reads(models.SearchRequest{}).
			Writes([]models.SearchResult{}).
			Returns(200, "OK", []models.SearchResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/fetch").
			To(handler.Fetch).
			Doc("Fetch full documents by id; missing ids get a not_found entry").
			Metadata(restfulspec.KeyOpenAPITags, []string{"fetch"}).
			Reads(models.FetchRequest{}).
			Writes([]models.FetchEntry{}).
			Returns(200, "OK", []models.FetchEntry{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}

// RegisterDocs serves the OpenAPI document of every web service in the container.
func RegisterDocs(container *restful.Container, version string) {
	config := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
		PostBuildSwaggerObjectHandler: func(swagger *spec.Swagger) {
			swagger.Info = &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       "search-agent",
					Description: "Search and fetch over a document backend",
					Version:     version,
				},
			}
		},
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

// RegisterMetrics mounts a plain http.Handler, typically the Prometheus one.
func RegisterMetrics(container *restful.Container, handler http.Handler) {
	container.Handle("/metrics", handler)
}
