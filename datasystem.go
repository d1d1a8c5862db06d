package datasystem

import (
	"github.com/airdatahq/datasystem/app"
)

const Version = "1.2.0"

var (
	datasystem *DataSystem
)

type DataSystem struct {
	*app.App
	Authorizations *Authorizations
	Readings       *Readings
}

func New() *DataSystem {
	datasystem = &DataSystem{
		App: app.New(),
	}

	datasystem.Authorizations = NewAuthorizations(datasystem)
	datasystem.Readings = NewReadings(datasystem)

	return datasystem
}
