package datasystem

import (
	"fmt"
	"time"
)

//ReadingSubmission is the shared ingestion request shape behind both external
//surfaces. Device id and timestamp arrive as text and are validated here, in
//this order: a submission with both missing reports the device error.
type ReadingSubmission struct {
	DeviceId       string   `json:"deviceId"`
	TimeStamp      string   `json:"timeStamp"`
	CarbonDioxide  *float64 `json:"carbonDioxide"`
	Humidity       *float64 `json:"humidity"`
	Light          *bool    `json:"light"`
	Lpg            *float64 `json:"lpg"`
	Motion         *bool    `json:"motion"`
	Smoke          *float64 `json:"smoke"`
	Temperature    *float64 `json:"temperature"`
	AdditionalData *string  `json:"additionalData"`
}

var timestampFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (time.Time, error) {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
}

func (sub ReadingSubmission) reading() (*Reading, error) {
	if sub.DeviceId == "" {
		return nil, Rejection{RejectNoDevice}
	}

	address, err := ParseDeviceAddress(sub.DeviceId)
	if err != nil {
		return nil, Rejection{RejectNoDevice}
	}

	if sub.TimeStamp == "" {
		return nil, Rejection{RejectNoTimestamp}
	}

	timestamp, err := ParseTimestamp(sub.TimeStamp)
	if err != nil {
		return nil, Rejection{RejectNoTimestamp}
	}

	return &Reading{
		Timestamp:      timestamp,
		Device:         address.String(),
		CarbonDioxide:  sub.CarbonDioxide,
		Humidity:       sub.Humidity,
		Light:          sub.Light,
		Lpg:            sub.Lpg,
		Motion:         sub.Motion,
		Smoke:          sub.Smoke,
		Temperature:    sub.Temperature,
		AdditionalData: sub.AdditionalData,
	}, nil
}

//SaveReading gates the submission on the write flag, validates it and persists
//it with the gated authorization as owner. Store failures surface as-is, there
//is no retry and no idempotency.
func (ds *DataSystem) SaveReading(token string, sub ReadingSubmission) (*Reading, error) {
	auth, err := ds.Authorizations.Check(token, FlagWrite)
	if err != nil {
		return nil, err
	}

	r, err := sub.reading()
	if err != nil {
		return nil, err
	}

	r.AuthorizationId = auth.Id

	if err := ds.Readings.Insert(r); err != nil {
		return nil, err
	}

	return r, nil
}

//ReadingPage gates the query on the read flag and runs the paginated read
func (ds *DataSystem) ReadingPage(token string, q PageQuery) (*PaginatedResult, error) {
	if _, err := ds.Authorizations.Check(token, FlagRead); err != nil {
		return nil, err
	}

	return ds.Readings.Page(q)
}

//LatestReadings gates on the read flag and returns the newest-first capped list
func (ds *DataSystem) LatestReadings(token string, deviceId string, count int) ([]ReadingDocument, error) {
	if _, err := ds.Authorizations.Check(token, FlagRead); err != nil {
		return nil, err
	}

	return ds.Readings.Latest(deviceId, count)
}
