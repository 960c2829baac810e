package database

import (
	"github.com/huandu/go-sqlbuilder"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// FlavorFor maps a database/sql driver name to its go-sqlbuilder dialect.
func FlavorFor(driverName string) sqlbuilder.Flavor {
	switch driverName {
	case DriverPostgres, "pgx":
		return sqlbuilder.PostgreSQL
	case DriverSQLite, "sqlite3":
		return sqlbuilder.SQLite
	default:
		return sqlbuilder.DefaultFlavor
	}
}

func NewSelectBuilder(flavor sqlbuilder.Flavor) *sqlbuilder.SelectBuilder {
	return flavor.NewSelectBuilder()
}

func NewInsertBuilder(flavor sqlbuilder.Flavor) *sqlbuilder.InsertBuilder {
	return flavor.NewInsertBuilder()
}

func NewUpdateBuilder(flavor sqlbuilder.Flavor) *sqlbuilder.UpdateBuilder {
	return flavor.NewUpdateBuilder()
}

// Struct maps a model's db tags to columns. The dialect is chosen per call
// so one package level Struct serves every driver.
type Struct struct {
	*sqlbuilder.Struct
}

func NewStruct(v any) *Struct {
	return &Struct{sqlbuilder.NewStruct(v)}
}

func (s *Struct) SelectFrom(flavor sqlbuilder.Flavor, table string) *sqlbuilder.SelectBuilder {
	return s.Struct.For(flavor).SelectFrom(table)
}

// MultiInsert builds one INSERT carrying every row of values.
func MultiInsert(flavor sqlbuilder.Flavor, table string, cols []string, rows [][]any) (string, []any) {
	ib := flavor.NewInsertBuilder()
	ib.InsertInto(table).Cols(cols...)
	for _, row := range rows {
		ib.Values(row...)
	}
	return ib.Build()
}
