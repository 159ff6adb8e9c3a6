package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder с PostgreSQL placeholder-ами ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT builder с dollar placeholder-ами
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT builder с dollar placeholder-ами
func Insert(into string) squirrel.InsertBuilder {
	return builder.Insert(into)
}

// Update создает UPDATE builder с dollar placeholder-ами
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE builder с dollar placeholder-ами
func Delete(from string) squirrel.DeleteBuilder {
	return builder.Delete(from)
}
