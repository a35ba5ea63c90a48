package webservice

import (
	"errors"
	"net/http"
	"strings"

	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/handler"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/helpers/problem"
	"github.com/developer-overheid-nl/bottles-api/pkg/webservice/middleware"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"The API version of the response",
		"",
	)

	unavailableResponse = fizz.Response(
		"503",
		"Service Unavailable",
		problem.APIError{},
		nil,
		nil,
	)
)

func init() {
	tonic.SetErrorHook(errorHook)
}

// errorHook renders errors of the documented endpoints as problem+json.
func errorHook(c *gin.Context, err error) (int, interface{}) {
	c.Header("Content-Type", "application/problem+json")

	var be tonic.BindError
	if errors.As(err, &be) {
		apiErr := problem.NewBadRequest(be.Error())
		return apiErr.Status, apiErr
	}

	var apiErr problem.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr
	}

	internal := problem.NewUnavailable(err)
	return internal.Status, internal
}

// NewRouter builds the engine. /health and /openapi.json are documented
// through fizz under basePath, like the bottle routes; every other request
// goes to the bottles dispatcher.
func NewRouter(apiVersion, basePath string, bottles *handler.BottlesController, health *handler.HealthController) *fizz.Fizz {
	g := gin.Default()
	g.Use(middleware.RequestID())
	g.Use(APIVersionMiddleware(apiVersion))
	f := fizz.NewFromEngine(g)

	gen := f.Generator()
	gen.API().Components.Headers["API-Version"] = &openapi.HeaderOrRef{
		Header: &openapi.Header{
			Description: "The API version of the response",
			Schema: &openapi.SchemaOrRef{
				Schema: &openapi.Schema{
					Type: "string",
				},
			},
		},
	}

	info := &openapi.Info{
		Title:       "Bottles API",
		Description: "Bottles and the messages they carry",
		Version:     apiVersion,
	}

	root := f.Group(strings.TrimRight(basePath, "/"), "Service", "Service status and API description")

	root.GET("/health",
		[]fizz.OperationOption{
			fizz.Summary("Service and database health"),
			apiVersionHeader,
			unavailableResponse,
		},
		tonic.Handler(health.Health, http.StatusOK),
	)

	root.GET("/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	g.NoRoute(bottles.Dispatch)

	return f
}

// apiVersionWriter stamps API-Version on 2xx responses only. It hooks
// WriteHeader because the dispatcher answers 201 and 204 without a body,
// and those never pass through a render call.
type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code/100 == 2 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}
