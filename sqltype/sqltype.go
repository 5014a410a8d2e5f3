// Package sqltype models the PostgreSQL scalar types used in column
// declarations and renders each type's DDL fragment.
//
// Simple kinds such as Boolean or BigInt are exported as ready-to-use
// values. Parameterized kinds (Char, VarChar, Numeric, Interval, Time,
// Timestamp) are struct types whose zero-valued fields are omitted from
// the rendered fragment, so Numeric{} renders as a bare NUMERIC while
// Numeric{Precision: 10, Scale: 2} renders as NUMERIC(10, 2).
//
// Reference: https://www.postgresql.org/docs/current/datatype.html
package sqltype

import "fmt"

// Type is implemented by every scalar SQL type. DDL returns the type's
// text fragment as it appears in a column definition.
type Type interface {
	DDL() (string, error)
}

// keyword is a simple type whose DDL fragment is a fixed keyword.
type keyword string

// DDL returns the fixed keyword.
func (k keyword) DDL() (string, error) {
	return string(k), nil
}

// Simple types, one per non-parameterized PostgreSQL scalar kind.
var (
	// BigInt is a signed eight-byte integer.
	BigInt Type = keyword("BIGINT")

	// BigSerial is an auto-incrementing eight-byte integer.
	BigSerial Type = keyword("BIGSERIAL")

	// Bit is a fixed-length bit string.
	Bit Type = keyword("BIT")

	// VarBit is a variable-length bit string.
	VarBit Type = keyword("VARBIT")

	// Boolean is a logical boolean (true/false).
	Boolean Type = keyword("BOOLEAN")

	// Box is a rectangular box on a plane.
	Box Type = keyword("BOX")

	// Bytea is binary data ("byte array").
	Bytea Type = keyword("BYTEA")

	// CIDR is an IPv4 or IPv6 network address.
	CIDR Type = keyword("CIDR")

	// Circle is a circle on a plane.
	Circle Type = keyword("CIRCLE")

	// Date is a calendar date (year, month, day).
	Date Type = keyword("DATE")

	// Double is a double precision floating-point number (8 bytes).
	Double Type = keyword("DOUBLE PRECISION")

	// Inet is an IPv4 or IPv6 host address.
	Inet Type = keyword("INET")

	// Integer is a signed four-byte integer.
	Integer Type = keyword("INTEGER")

	// JSON is textual JSON data.
	JSON Type = keyword("JSON")

	// JSONB is binary JSON data, decomposed.
	JSONB Type = keyword("JSONB")

	// Line is an infinite line on a plane.
	Line Type = keyword("LINE")

	// LSeg is a line segment on a plane.
	LSeg Type = keyword("LSEG")

	// MacAddr is a MAC (Media Access Control) address.
	MacAddr Type = keyword("MACADDR")

	// MacAddr8 is a MAC (Media Access Control) address in EUI-64 format.
	MacAddr8 Type = keyword("MACADDR8")

	// Money is a currency amount.
	Money Type = keyword("MONEY")

	// Path is a geometric path on a plane.
	Path Type = keyword("PATH")

	// PgLSN is a PostgreSQL Log Sequence Number.
	PgLSN Type = keyword("PG_LSN")

	// PgSnapshot is a user-level transaction ID snapshot.
	PgSnapshot Type = keyword("PG_SNAPSHOT")

	// Point is a geometric point on a plane.
	Point Type = keyword("POINT")

	// Polygon is a closed geometric path on a plane.
	Polygon Type = keyword("POLYGON")

	// Real is a single precision floating-point number (4 bytes).
	Real Type = keyword("REAL")

	// SmallInt is a signed two-byte integer.
	SmallInt Type = keyword("SMALLINT")

	// SmallSerial is an auto-incrementing two-byte integer.
	SmallSerial Type = keyword("SMALLSERIAL")

	// Serial is an auto-incrementing four-byte integer.
	Serial Type = keyword("SERIAL")

	// Text is a variable-length character string.
	Text Type = keyword("TEXT")

	// TSQuery is a text search query.
	TSQuery Type = keyword("TSQUERY")

	// TSVector is a text search document.
	TSVector Type = keyword("TSVECTOR")

	// UUID is a universally unique identifier.
	UUID Type = keyword("UUID")

	// XML is XML data.
	XML Type = keyword("XML")
)

// Char is a fixed-length character string. A zero Size renders a bare CHAR.
type Char struct {
	Size int
}

// DDL returns the CHAR fragment.
func (c Char) DDL() (string, error) {
	if c.Size != 0 {
		return fmt.Sprintf("CHAR(%d)", c.Size), nil
	}
	return "CHAR", nil
}

// VarChar is a variable-length character string. A zero Size renders a
// bare VARCHAR.
type VarChar struct {
	Size int
}

// DDL returns the VARCHAR fragment.
func (v VarChar) DDL() (string, error) {
	if v.Size != 0 {
		return fmt.Sprintf("VARCHAR(%d)", v.Size), nil
	}
	return "VARCHAR", nil
}

// Numeric is an exact numeric of selectable precision. Zero-valued fields
// are omitted. Scale requires Precision.
type Numeric struct {
	Precision int
	Scale     int
}

// DDL returns the NUMERIC fragment. A Scale without a Precision is an
// invalid configuration and fails here, at render time.
func (n Numeric) DDL() (string, error) {
	switch {
	case n.Precision != 0 && n.Scale != 0:
		return fmt.Sprintf("NUMERIC(%d, %d)", n.Precision, n.Scale), nil
	case n.Precision != 0:
		return fmt.Sprintf("NUMERIC(%d)", n.Precision), nil
	case n.Scale != 0:
		return "", NewConfigurationError("NUMERIC", "precision must be set if scale is")
	default:
		return "NUMERIC", nil
	}
}

// Interval is a time span. Fields restricts the stored fields (for example
// "DAY TO HOUR") and Precision sets the fractional seconds precision.
// Zero-valued fields are omitted.
type Interval struct {
	Fields    string
	Precision int
}

// DDL returns the INTERVAL fragment.
func (i Interval) DDL() (string, error) {
	s := "INTERVAL"
	if i.Fields != "" {
		s += " " + i.Fields
	}
	if i.Precision != 0 {
		s += fmt.Sprintf("(%d)", i.Precision)
	}
	return s, nil
}

// Time is a time of day. Precision sets the fractional seconds precision
// and is omitted when zero.
type Time struct {
	Precision    int
	WithTimeZone bool
}

// DDL returns the TIME fragment, for example TIME(3) WITH TIME ZONE.
func (t Time) DDL() (string, error) {
	s := "TIME"
	if t.Precision != 0 {
		s += fmt.Sprintf("(%d)", t.Precision)
	}
	if t.WithTimeZone {
		s += " WITH TIME ZONE"
	}
	return s, nil
}

// Timestamp is a date and time. Precision sets the fractional seconds
// precision and is omitted when zero.
type Timestamp struct {
	Precision    int
	WithTimeZone bool
}

// DDL returns the TIMESTAMP fragment.
func (t Timestamp) DDL() (string, error) {
	s := "TIMESTAMP"
	if t.Precision != 0 {
		s += fmt.Sprintf("(%d)", t.Precision)
	}
	if t.WithTimeZone {
		s += " WITH TIME ZONE"
	}
	return s, nil
}
