package sqltype

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/syssam/pgqb/internal/words"
)

// Enum is a user-defined enumerated type. Its DDL type name derives from
// the declared name by snake-casing and upper-casing, so "TaskType"
// becomes TASK_TYPE.
type Enum struct {
	name   string
	values []string
}

// NewEnum returns an enum type with the given declared name and variant
// values in declaration order.
func NewEnum(name string, values ...string) *Enum {
	return &Enum{name: name, values: append([]string(nil), values...)}
}

// TypeName returns the DDL name of the enum type.
func (e *Enum) TypeName() string {
	return strings.ToUpper(words.Snake(e.name))
}

// DDL returns the enum's type name for use in a column definition.
func (e *Enum) DDL() (string, error) {
	return e.TypeName(), nil
}

// Values returns the variant values in declaration order.
func (e *Enum) Values() []string {
	return append([]string(nil), e.values...)
}

// CreateType returns the CREATE TYPE statement declaring the enum, listing
// variants in declaration order.
func (e *Enum) CreateType() string {
	quoted := make([]string, len(e.values))
	for i, v := range e.values {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s);", e.TypeName(), strings.Join(quoted, ", "))
}

// Value returns the variant carrying the given underlying value, for use
// as a comparison operand or bound parameter. Membership is not checked;
// the database rejects values outside the declared set.
func (e *Enum) Value(s string) EnumValue {
	return EnumValue{value: s}
}

// EnumValue is a single enum variant. It always binds as its underlying
// string, never as inline SQL text.
type EnumValue struct {
	value string
}

// String returns the underlying value.
func (v EnumValue) String() string {
	return v.value
}

// Value implements driver.Valuer so an EnumValue passed to database/sql
// binds as its underlying string.
func (v EnumValue) Value() (driver.Value, error) {
	return v.value, nil
}
