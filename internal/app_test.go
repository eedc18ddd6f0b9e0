package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/internal"
	"github.com/dalcoin/site/pkg/htmx"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

type component string

func (c component) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(c))
	return err
}

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestApp_Routes(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			return c.String(http.StatusOK, "forside")
		})
		r.Route("/kontakt", func(r internal.Router) {
			r.POST("/", func(c internal.Context) error {
				return c.String(http.StatusCreated, "navn="+c.Form("name"))
			})
			r.GET("/{step}", func(c internal.Context) error {
				return c.String(http.StatusOK, "steg "+c.Param("step")+" "+c.Query("q"))
			})
		})
	})))

	t.Run("get", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "forside", w.Body.String())
	})

	t.Run("head answered by get handler", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodHead, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("form post", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/kontakt/", strings.NewReader(url.Values{"name": {"Kari"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		w := serve(app, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "navn=Kari", w.Body.String())
	})

	t.Run("params and query", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/kontakt/2?q=gulv", nil))
		assert.Equal(t, "steg 2 gulv", w.Body.String())
	})
}

func TestApp_Middleware(t *testing.T) {
	t.Parallel()

	type key struct{}
	var order []string

	mark := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	setValue := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(key{}, "fra middleware")
			return next(c)
		}
	}

	app := internal.New(
		internal.WithMiddleware(mark("global"), setValue),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(mark("group"))
				r.GET("/", func(c internal.Context) error {
					return c.String(http.StatusOK, internal.ContextValue[string](c, key{}))
				}, mark("route-1"), mark("route-2"))
			})
		})),
	)

	w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "fra middleware", w.Body.String())
	assert.Equal(t, []string{"global", "group", "route-1", "route-2"}, order)
}

func TestApp_Errors(t *testing.T) {
	t.Parallel()

	handlers := routes(func(r internal.Router) {
		r.GET("/busy", func(c internal.Context) error {
			return c.Error(http.StatusConflict, "opptatt")
		})
		r.GET("/limited", func(c internal.Context) error {
			return internal.ErrTooManyRequests("for mange", internal.WithRetryAfter(30*time.Second))
		})
		r.GET("/boom", func(c internal.Context) error {
			return errors.New("database on fire")
		})
		r.GET("/late", func(c internal.Context) error {
			_ = c.String(http.StatusOK, "ok")
			return errors.New("after write")
		})
	})

	t.Run("default handler", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(handlers))

		w := serve(app, httptest.NewRequest(http.MethodGet, "/busy", nil))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "opptatt", w.Body.String())

		w = serve(app, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))

		w = serve(app, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "fire")

		w = serve(app, httptest.NewRequest(http.MethodGet, "/late", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("custom handler", func(t *testing.T) {
		t.Parallel()

		var got error
		app := internal.New(
			internal.WithHandlers(handlers),
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				return c.String(http.StatusTeapot, "custom")
			}),
		)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
		require.EqualError(t, got, "database on fire")
	})

	t.Run("not found and method not allowed", func(t *testing.T) {
		t.Parallel()

		app := internal.New(
			internal.WithHandlers(handlers),
			internal.WithNotFoundHandler(func(c internal.Context) error {
				return c.String(http.StatusNotFound, "finnes ikke")
			}),
			internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
				return c.String(http.StatusMethodNotAllowed, "ikke tillatt")
			}),
		)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
		assert.Equal(t, "finnes ikke", w.Body.String())

		w = serve(app, httptest.NewRequest(http.MethodPost, "/busy", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestContext_Render(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error {
			return c.RenderPartial(http.StatusUnprocessableEntity,
				component("<html>side</html>"),
				component("<form>skjema</form>"),
				htmx.WithOOB(component(`<div id="alert" hx-swap-oob="true"></div>`)),
				htmx.WithTrigger("contact:invalid"),
			)
		})
	})))

	t.Run("full page", func(t *testing.T) {
		t.Parallel()

		w := serve(app, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "<html>side</html>", w.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Header().Get(htmx.HeaderHXTrigger))
	})

	t.Run("htmx fragment", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")

		w := serve(app, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `<form>skjema</form><div id="alert" hx-swap-oob="true"></div>`, w.Body.String())
		assert.Equal(t, "contact:invalid", w.Header().Get(htmx.HeaderHXTrigger))
	})
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("redis", func(context.Context) error { return errors.New("refused") }),
		internal.WithReadinessCheck("ignored", nil),
		internal.WithHealthTimeout(time.Second),
	))

	assert.Equal(t, http.StatusOK, serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil)).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(app, httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	var order []string

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/", func(c internal.Context) error { return c.String(http.StatusOK, "oppe") })
	})))

	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error {
				order = append(order, "startup")
				return nil
			}),
			internal.OnListen(func(addr net.Addr) {
				resp, err := http.Get("http://" + addr.String() + "/")
				if err == nil {
					_ = resp.Body.Close()
					order = append(order, resp.Status)
				}
				cancel()
			}),
			internal.ShutdownHook(func(context.Context) error {
				order = append(order, "hook-1")
				return nil
			}),
			internal.ShutdownHook(func(context.Context) error {
				order = append(order, "hook-2")
				return errors.New("redis close failed")
			}),
			internal.ShutdownTimeout(time.Second),
		)
	}()

	select {
	case err := <-done:
		require.EqualError(t, err, "redis close failed")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"startup", "200 OK", "hook-1", "hook-2"}, order)
}

func TestApp_Run_StartupHookFails(t *testing.T) {
	t.Parallel()

	app := internal.New()
	err := app.Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error {
		return errors.New("no config")
	}))
	require.ErrorContains(t, err, "no config")
}
