// Package mariadb provides the MariaDB dialect renderer for dblink.
package mariadb

import (
	"github.com/nitinet/dblink-core/internal/render"
)

// Renderer implements the MariaDB dialect renderer.
// Placeholders stay as "?" and booleans bind as 0/1.
type Renderer struct {
	render.Base
}

// New creates a new MariaDB renderer.
func New() *Renderer {
	return &Renderer{Base: render.Base{
		Dialect: "mariadb",
		Capabilities: render.Capabilities{
			Returning:  true, // 10.5+
			NativeTime: true,
		},
	}}
}
