package main

import (
	"encoding/json"
	"flag"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/airdatahq/datasystem"
	datasystem_app "github.com/airdatahq/datasystem/app"
)

var (
	app   *datasystem.DataSystem
	lg    *logrus.Logger
	debug = flag.Bool("debug", false, "Enable debug output")
)

func main() {
	flag.Parse()

	app = datasystem.New()
	lg = app.Logger
	if *debug {
		app.Logger.Level = logrus.DebugLevel
	}

	if err := app.App.CheckAndUpdateDatabase(datasystem.DatabaseStructure); err != nil {
		panic(err)
	}

	app.Use(datasystem_app.Cors())

	app.Get("/info", infoHandler)

	app.Get("/v1/data", dataPageHandler)
	app.Get("/v1/data/latest", dataLatestHandler)
	app.Post("/v1/data", dataSaveHandler)

	app.Handle("/rpc", newRpcServer(app))

	app.Run()
}

func infoHandler(w http.ResponseWriter, r *http.Request) {

	info := struct {
		Version string `json:"version"`
	}{
		Version: datasystem.Version,
	}

	if err := json.NewEncoder(w).Encode(info); err != nil {
		app.HttpInternalError(w, err)
		return

	}

}
