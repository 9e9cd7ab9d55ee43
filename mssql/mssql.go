// Package mssql provides the SQL Server dialect renderer for dblink.
package mssql

import (
	"github.com/nitinet/dblink-core/internal/render"
)

// Renderer implements the SQL Server dialect renderer.
type Renderer struct {
	render.Base
}

// New creates a new SQL Server renderer.
func New() *Renderer {
	return &Renderer{Base: render.Base{
		Dialect: "mssql",
		Capabilities: render.Capabilities{
			NumberedParameters: true,
			NativeBoolean:      true,
			NativeTime:         true,
			OffsetFirst:        true,
			BracketIdentifiers: true,
		},
	}}
}

// Placeholder returns @p1, @p2, ...
func (r *Renderer) Placeholder(index int) string {
	return render.NumberedPlaceholder("@p", index)
}

// Limit renders OFFSET/FETCH. SQL Server requires an ORDER BY clause for it.
// The offset is written before the size, so Capabilities.OffsetFirst is set
// and bound arguments are reordered to match.
func (r *Renderer) Limit(size, offset string) string {
	if offset == "" {
		offset = "0"
	}
	return "offset " + offset + " rows fetch next " + size + " rows only"
}

// ReturnColumns always fails: SQL Server places OUTPUT before VALUES.
func (r *Renderer) ReturnColumns(_ []string) (string, error) {
	return "", render.NewUnsupportedFeatureError("mssql", "RETURNING",
		"use OUTPUT INSERTED.<column> in a raw statement")
}
