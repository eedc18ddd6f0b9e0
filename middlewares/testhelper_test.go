package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/dalcoin/site/internal"
	"github.com/dalcoin/site/middlewares"
	"github.com/dalcoin/site/pkg/logger"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// testApp mounts h at "/" behind mw and records what the ErrorHandler saw.
type testApp struct {
	app    *internal.App
	logs   *bytes.Buffer
	errors []error
}

func newTestApp(h internal.HandlerFunc, mw ...internal.Middleware) *testApp {
	ta := &testApp{logs: &bytes.Buffer{}}
	log := logger.NewWithWriter(ta.logs, logger.Config{Level: "debug", Format: "json"}, middlewares.RequestIDExtractor())

	ta.app = internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h)
			r.POST("/", h)
		})),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			ta.errors = append(ta.errors, err)
			if httpErr := internal.AsHTTPError(err); httpErr != nil {
				for name, values := range httpErr.Headers {
					c.Response().Header()[name] = values
				}
				return c.String(httpErr.Code, httpErr.Message)
			}
			return c.String(http.StatusInternalServerError, err.Error())
		}),
	)
	return ta
}

func (ta *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ta.app.ServeHTTP(w, req)
	return w
}

func (ta *testApp) get() *httptest.ResponseRecorder {
	return ta.do(httptest.NewRequest(http.MethodGet, "/", nil))
}
