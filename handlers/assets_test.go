package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/handlers"
	"github.com/dalcoin/site/views"
)

func TestAssets(t *testing.T) {
	t.Parallel()

	app := site.New(
		site.WithMiddleware(handlers.Assets(views.Assets{
			HTMXSrc:       "/static/js/htmx.min.js",
			HTMXIntegrity: "sha384-abc",
		})),
		site.WithNotFoundHandler(handlers.NotFound("DALCOIN")),
		site.WithHandlers(routes(func(r site.Router) {
			r.GET("/feil", func(c site.Context) error {
				return c.Render(http.StatusOK, views.ErrorPage("DALCOIN", "Feil", "Noe gikk galt."))
			})
		})),
	)

	for _, path := range []string{"/feil", "/missing"} {
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Contains(t, w.Body.String(), `src="/static/js/htmx.min.js"`)
			assert.Contains(t, w.Body.String(), `integrity="sha384-abc"`)
			assert.Contains(t, w.Body.String(), `crossorigin="anonymous"`)
		})
	}
}
