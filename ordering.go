package datasystem

import (
	"strings"
)

//The ordering catalog is a closed, process-lifetime table mapping the caller
//facing order keys to store columns. Ordering is always pushed to the store,
//never done in process, so the accessor for a field is its column. Null
//measurements follow the store's natural null ordering: first when ascending,
//last when descending.
type OrderDirection string

const (
	OrderAscending  OrderDirection = "ASC"
	OrderDescending OrderDirection = "DESC"
)

const (
	DefaultOrderValue = "timestamp"
	DefaultOrder      = "descending"
)

var orderColumns = map[string]string{
	"timestamp":     "timestamp",
	"humidity":      "humidity",
	"carbondioxide": "carbon_dioxide",
	"lpg":           "lpg",
	"temperature":   "temperature",
	"smoke":         "smoke",
	"light":         "light",
	"motion":        "motion",
}

var orderDirections = map[string]OrderDirection{
	"ascending":  OrderAscending,
	"descending": OrderDescending,
}

//ResolveOrderColumn maps an order key to its column. Unknown or empty keys
//silently reset to the default key rather than failing, callers always get a
//valid, deterministic ordering.
func ResolveOrderColumn(value string) string {
	column, ok := orderColumns[strings.ToLower(value)]
	if !ok {
		return orderColumns[DefaultOrderValue]
	}

	return column
}

//ResolveOrderDirection maps a direction token to a direction, silently
//resetting to descending on unknown input.
func ResolveOrderDirection(order string) OrderDirection {
	direction, ok := orderDirections[strings.ToLower(order)]
	if !ok {
		return orderDirections[DefaultOrder]
	}

	return direction
}
