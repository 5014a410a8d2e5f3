// Package mixin provides common column sets for pgqb table declarations.
//
// These helpers are OPTIONAL and provided as convenient starting points.
// Users are encouraged to declare their own column sets tailored to their
// needs.
//
// Available helpers:
//   - CreateTime: Adds a created_at timestamp column
//   - UpdateTime: Adds an updated_at timestamp column
//   - Time: Combines CreateTime and UpdateTime
//   - ID: Adds a UUID primary key with server-side generation
//   - SoftDelete: Adds a deleted_at column for soft deletion
//   - TenantID: Adds a tenant_id column for multi-tenancy
//   - TimeSoftDelete: Combines Time and SoftDelete
//
// Columns bind to exactly one table, so every helper returns fresh values
// on each call. Declare them as package variables next to the table that
// owns them:
//
//	import "github.com/syssam/pgqb/contrib/mixin"
//
//	var (
//	    UserID        = mixin.ID()
//	    UserEmail     = pgqb.NewColumn("email").Type(sqltype.Text).Unique()
//	    UserCreatedAt = mixin.CreateTime()
//	    UserUpdatedAt = mixin.UpdateTime()
//	)
//
//	var User = pgqb.NewTable("User", UserID, UserEmail, UserCreatedAt, UserUpdatedAt)
//
// Custom column sets:
//
// For project-specific needs, define your own helpers:
//
//	func Audit() []*pgqb.Column {
//	    return []*pgqb.Column{
//	        pgqb.NewColumn("created_by").Type(sqltype.Text),
//	        pgqb.NewColumn("updated_by").Type(sqltype.Text),
//	    }
//	}
package mixin

import (
	"github.com/syssam/pgqb"
	"github.com/syssam/pgqb/sqltype"
)

// CreateTime returns a created_at column.
// The server assigns the value at insert time.
//
// Generated column:
//
//	"created_at" TIMESTAMP WITH TIME ZONE DEFAULT now() NOT NULL
func CreateTime() *pgqb.Column {
	return pgqb.NewColumn("created_at").
		Type(sqltype.Timestamp{WithTimeZone: true}).
		Default("now()")
}

// UpdateTime returns an updated_at column.
// PostgreSQL has no ON UPDATE clause, so keeping the value current is up
// to the application's UPDATE statements or a trigger.
//
// Generated column:
//
//	"updated_at" TIMESTAMP WITH TIME ZONE DEFAULT now() NOT NULL
func UpdateTime() *pgqb.Column {
	return pgqb.NewColumn("updated_at").
		Type(sqltype.Timestamp{WithTimeZone: true}).
		Default("now()")
}

// Time combines CreateTime and UpdateTime.
// Provides both created_at and updated_at columns.
//
// This is the most common pair for tracking row timestamps.
func Time() []*pgqb.Column {
	return []*pgqb.Column{
		CreateTime(),
		UpdateTime(),
	}
}

// ID returns a UUID primary key column generated by the server.
//
// Generated column:
//
//	"id" UUID DEFAULT gen_random_uuid()
//
// listed in the table's PRIMARY KEY clause.
//
// For other key shapes, declare your own column:
//
//	pgqb.NewColumn("id").Type(sqltype.BigSerial).Primary()
func ID() *pgqb.Column {
	return pgqb.NewColumn("id").
		Type(sqltype.UUID).
		Primary().
		Default("gen_random_uuid()")
}

// SoftDelete returns a nullable deleted_at column.
// Rows are not physically deleted but marked with a deletion timestamp.
//
// Filter soft-deleted rows out with an IS NULL predicate:
//
//	pgqb.Select(UserID).From(User).Where(UserDeletedAt.Is(nil))
//
// Generated column:
//
//	"deleted_at" TIMESTAMP WITH TIME ZONE
func SoftDelete() *pgqb.Column {
	return pgqb.NewColumn("deleted_at").
		Type(sqltype.Timestamp{WithTimeZone: true}).
		Nullable()
}

// TenantID returns a tenant_id column for multi-tenancy support.
// The column is indexed and rejects empty values, enabling row-level
// tenant isolation when every statement filters on it.
//
// Generated column:
//
//	"tenant_id" TEXT NOT NULL CHECK (tenant_id <> '')
//
// followed by a CREATE INDEX statement after the table.
//
// For different naming conventions, declare your own column:
//
//	pgqb.NewColumn("workspace_id").Type(sqltype.UUID).Indexed()
func TenantID() *pgqb.Column {
	return pgqb.NewColumn("tenant_id").
		Type(sqltype.Text).
		Indexed().
		Check("tenant_id <> ''")
}

// TimeSoftDelete combines Time and SoftDelete.
// Provides created_at, updated_at, and deleted_at columns.
//
// This is useful for tables that need a full audit trail with soft
// deletion.
func TimeSoftDelete() []*pgqb.Column {
	return append(
		Time(),
		SoftDelete(),
	)
}
