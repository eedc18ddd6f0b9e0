package handlers

import (
	"github.com/dalcoin/site"
	"github.com/dalcoin/site/views"
)

// Assets sets where pages rendered below it load htmx from.
func Assets(a views.Assets) site.Middleware {
	return func(next site.HandlerFunc) site.HandlerFunc {
		return func(c site.Context) error {
			c.SetContext(views.WithAssets(c.Context(), a))
			return next(c)
		}
	}
}
