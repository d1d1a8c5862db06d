package datasystem

import (
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/airdatahq/datasystem/app"
)

//Reading is one ingested observation. Rows are never mutated after insert and
//keep a reference to the authorization that wrote them.
type Reading struct {
	Id              uint64    `db:"id" json:"id"`
	Timestamp       time.Time `db:"timestamp" json:"timestamp"`
	Device          string    `db:"device" json:"device"`
	CarbonDioxide   *float64  `db:"carbon_dioxide" json:"carbon_dioxide,omitempty"`
	Humidity        *float64  `db:"humidity" json:"humidity,omitempty"`
	Light           *bool     `db:"light" json:"light,omitempty"`
	Lpg             *float64  `db:"lpg" json:"lpg,omitempty"`
	Motion          *bool     `db:"motion" json:"motion,omitempty"`
	Smoke           *float64  `db:"smoke" json:"smoke,omitempty"`
	Temperature     *float64  `db:"temperature" json:"temperature,omitempty"`
	AdditionalData  *string   `db:"additional_data" json:"additional_data,omitempty"`
	AuthorizationId uint64    `db:"authorization_id" json:"-"`
}

//PageQuery is the shared request shape behind both external surfaces. Raw
//caller input stays raw here; normalization happens inside Page.
type PageQuery struct {
	DeviceId   string `schema:"deviceId" json:"deviceId"`
	EntryDate  string `schema:"entryDate" json:"entryDate"`
	PageIndex  int    `schema:"pageIndex" json:"pageIndex"`
	PageSize   int    `schema:"pageSize" json:"pageSize"`
	Order      string `schema:"order" json:"order"`
	OrderValue string `schema:"orderValue" json:"orderValue"`
}

//A device id that does not parse falls back to "no filter" instead of erroring.
//Callers rely on this, same for an unparseable entry date.
func (q PageQuery) filter(sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if q.DeviceId != "" {
		if address, err := ParseDeviceAddress(q.DeviceId); err == nil {
			sb = sb.Where(squirrel.Eq{"device": address.String()})
		}
	}

	if q.EntryDate != "" {
		if entry_date, err := ParseTimestamp(q.EntryDate); err == nil {
			start, end := DayWindow(entry_date)
			sb = sb.Where("timestamp >= ? AND timestamp < ?", start, end)
		}
	}

	return sb
}

//DayWindow returns the half open civil day interval [UTC midnight, next UTC
//midnight) containing t. A reading exactly at the next midnight is excluded.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := t.UTC().Truncate(24 * time.Hour)
	return start, start.Add(24 * time.Hour)
}

type Readings struct {
	db     *app.Database
	paging app.PagingConfig
}

func NewReadings(ds *DataSystem) *Readings {
	return &Readings{ds.Database, ds.Config.PagingDefaults()}
}

//Insert persists a reading. Timestamps are stored normalized to UTC and keep
//their time of day. Duplicate submissions produce duplicate rows, ingestion is
//not idempotent.
func (rs *Readings) Insert(r *Reading) error {
	r.Timestamp = r.Timestamp.UTC()

	return rs.db.Insert(r, "sensor_readings")
}

//Page runs the filtered, ordered, paginated read. Page indices are 1-based and
//clamped to 1, an out of range page size resets to the configured default. The
//total count is computed over the filtered set before the page window is
//applied, and equal sort keys are tie-broken on ascending id so page windows
//are stable across requests.
func (rs *Readings) Page(q PageQuery) (*PaginatedResult, error) {
	if q.PageSize < 1 || q.PageSize > rs.paging.MaxPageSize {
		q.PageSize = rs.paging.DefaultPageSize
	}

	if q.PageIndex < 1 {
		q.PageIndex = 1
	}

	query, args, err := q.filter(squirrel.Select("COUNT(*)").From("sensor_readings")).ToSql()
	if err != nil {
		return nil, err
	}

	rs.db.Logger.WithField("sql", "page").Tracef("Executing %s\n", query)

	var count int
	if err := rs.db.Get(&count, query, args...); err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, ErrNoContent
	}

	total_pages := (count + q.PageSize - 1) / q.PageSize

	order := fmt.Sprintf("%s %s", ResolveOrderColumn(q.OrderValue), ResolveOrderDirection(q.Order))

	query, args, err = q.filter(squirrel.Select("*").From("sensor_readings")).
		OrderBy(order, "id ASC").
		Limit(uint64(q.PageSize)).
		Offset(uint64((q.PageIndex - 1) * q.PageSize)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rs.db.Logger.WithField("sql", "page").Tracef("Executing %s\n", query)

	var readings []Reading
	if err := rs.db.Select(&readings, query, args...); err != nil {
		return nil, err
	}

	return &PaginatedResult{
		Items:           Documents(readings),
		PageIndex:       q.PageIndex,
		TotalPages:      total_pages,
		HasPreviousPage: q.PageIndex > 1,
		HasNextPage:     q.PageIndex < total_pages,
	}, nil
}

//Latest returns the newest readings as a single capped list with no paging
//metadata. An out of range count resets to the configured default.
func (rs *Readings) Latest(deviceId string, count int) ([]ReadingDocument, error) {
	if count < 1 || count > rs.paging.MaxLatestCount {
		count = rs.paging.DefaultLatestCount
	}

	sb := squirrel.Select("*").From("sensor_readings")
	if deviceId != "" {
		if address, err := ParseDeviceAddress(deviceId); err == nil {
			sb = sb.Where(squirrel.Eq{"device": address.String()})
		}
	}

	query, args, err := sb.OrderBy("timestamp DESC", "id DESC").Limit(uint64(count)).ToSql()
	if err != nil {
		return nil, err
	}

	rs.db.Logger.WithField("sql", "latest").Tracef("Executing %s\n", query)

	var readings []Reading
	if err := rs.db.Select(&readings, query, args...); err != nil {
		return nil, err
	}

	if len(readings) == 0 {
		return nil, ErrNoContent
	}

	return Documents(readings), nil
}
