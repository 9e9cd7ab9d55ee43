// Package sqlite provides the SQLite dialect renderer for dblink.
package sqlite

import (
	"github.com/nitinet/dblink-core/internal/render"
)

// Renderer implements the SQLite dialect renderer.
// Booleans bind as 0/1 and dates as RFC3339 text.
type Renderer struct {
	render.Base
}

// New creates a new SQLite renderer.
func New() *Renderer {
	return &Renderer{Base: render.Base{
		Dialect: "sqlite",
		Capabilities: render.Capabilities{
			Returning: true,
		},
	}}
}
