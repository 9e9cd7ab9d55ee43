package dblink

import "github.com/nitinet/dblink-core/internal/types"

// Command is the kind of statement.
type Command = types.Command

// Re-export command constants for public API.
const (
	CmdSelect = types.Select
	CmdInsert = types.Insert
	CmdUpdate = types.Update
	CmdDelete = types.Delete
)

// JoinKind selects the join keyword between two collections.
type JoinKind = types.JoinKind

// Re-export join kind constants for public API.
const (
	InnerJoin = types.InnerJoin
	LeftJoin  = types.LeftJoin
	RightJoin = types.RightJoin
	OuterJoin = types.OuterJoin
)
