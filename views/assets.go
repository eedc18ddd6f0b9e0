package views

import (
	"context"

	"github.com/a-h/templ"
)

// DefaultHTMXSrc is where the htmx script loads from unless Assets says otherwise.
const DefaultHTMXSrc = "https://unpkg.com/htmx.org@2.0.4"

// Assets points the layout at its external scripts. HTMXIntegrity is a
// subresource integrity hash ("sha384-...") checked by the browser. Point
// HTMXSrc at a path under /static/ to serve htmx from the site itself.
type Assets struct {
	HTMXSrc       string
	HTMXIntegrity string
}

type assetsKey struct{}

// WithAssets returns a copy of ctx that layouts render with a.
func WithAssets(ctx context.Context, a Assets) context.Context {
	return context.WithValue(ctx, assetsKey{}, a)
}

func assetsFrom(ctx context.Context) Assets {
	a, _ := ctx.Value(assetsKey{}).(Assets)
	return a
}

func (a Assets) htmxAttrs() templ.Attributes {
	src := a.HTMXSrc
	if src == "" {
		src = DefaultHTMXSrc
	}
	attrs := templ.Attributes{"src": src}
	if a.HTMXIntegrity != "" {
		attrs["integrity"] = a.HTMXIntegrity
		attrs["crossorigin"] = "anonymous"
	}
	return attrs
}
