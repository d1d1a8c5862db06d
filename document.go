package datasystem

import (
	"math"
	"time"
)

//ReadingDocument is the wire representation of a stored reading. Both external
//surfaces serve this shape, so the same stored row is observably identical
//through either one: measurements rounded to six fractional digits, device in
//canonical bare hex form, timestamp in RFC3339 UTC.
type ReadingDocument struct {
	TimeStamp      string   `json:"timeStamp"`
	DeviceId       string   `json:"deviceId"`
	CarbonDioxide  *float64 `json:"carbonDioxide"`
	Humidity       *float64 `json:"humidity"`
	Light          *bool    `json:"light"`
	Lpg            *float64 `json:"lpg"`
	Motion         *bool    `json:"motion"`
	Smoke          *float64 `json:"smoke"`
	Temperature    *float64 `json:"temperature"`
	AdditionalData *string  `json:"additionalData"`
}

//PaginatedResult is the page envelope. PageIndex echoes the (clamped) request,
//TotalPages covers the filtered set, not just this page.
type PaginatedResult struct {
	Items           []ReadingDocument `json:"items"`
	PageIndex       int               `json:"pageIndex"`
	TotalPages      int               `json:"totalPages"`
	HasPreviousPage bool              `json:"hasPreviousPage"`
	HasNextPage     bool              `json:"hasNextPage"`
}

func NewReadingDocument(r Reading) ReadingDocument {
	return ReadingDocument{
		TimeStamp:      r.Timestamp.UTC().Format(time.RFC3339),
		DeviceId:       r.Device,
		CarbonDioxide:  round6(r.CarbonDioxide),
		Humidity:       round6(r.Humidity),
		Light:          r.Light,
		Lpg:            round6(r.Lpg),
		Motion:         r.Motion,
		Smoke:          round6(r.Smoke),
		Temperature:    round6(r.Temperature),
		AdditionalData: r.AdditionalData,
	}
}

func Documents(readings []Reading) []ReadingDocument {
	documents := make([]ReadingDocument, 0, len(readings))
	for _, r := range readings {
		documents = append(documents, NewReadingDocument(r))
	}

	return documents
}

//Rounds to 6 fractional digits so store internal precision does not leak
func round6(v *float64) *float64 {
	if v == nil {
		return nil
	}

	rounded := math.Round(*v*1e6) / 1e6
	return &rounded
}
