package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/airdatahq/datasystem"
)

type dataPageRequest struct {
	AccessToken string `schema:"accessToken"`
	DeviceId    string `schema:"deviceId"`
	EntryDate   string `schema:"entryDate"`
	PageIndex   int    `schema:"pageIndex"`
	PageSize    int    `schema:"pageSize"`
	Order       string `schema:"order"`
	OrderValue  string `schema:"orderValue"`
}

type dataLatestRequest struct {
	AccessToken string `schema:"accessToken"`
	DeviceId    string `schema:"deviceId"`
	Count       int    `schema:"count"`
}

type dataSaveRequest struct {
	AccessToken string `json:"accessToken"`
	datasystem.ReadingSubmission
}

func dataPageHandler(w http.ResponseWriter, r *http.Request) {
	c := dataPageRequest{}
	if err := schema.NewDecoder().Decode(&c, r.URL.Query()); err != nil {
		app.HttpBadRequest(w, err)
		return
	}

	page, err := app.ReadingPage(c.AccessToken, datasystem.PageQuery{
		DeviceId:   c.DeviceId,
		EntryDate:  c.EntryDate,
		PageIndex:  c.PageIndex,
		PageSize:   c.PageSize,
		Order:      c.Order,
		OrderValue: c.OrderValue,
	})

	switch err {
	case nil:
		app.JsonResponse(w, page)
	case datasystem.ErrUnauthorized:
		app.HttpBadRequest(w, err)
	case datasystem.ErrNoContent:
		app.HttpNoContent(w)
	default:
		app.HttpInternalError(w, err)
	}
}

func dataLatestHandler(w http.ResponseWriter, r *http.Request) {
	c := dataLatestRequest{}
	if err := schema.NewDecoder().Decode(&c, r.URL.Query()); err != nil {
		app.HttpBadRequest(w, err)
		return
	}

	documents, err := app.LatestReadings(c.AccessToken, c.DeviceId, c.Count)

	switch err {
	case nil:
		app.JsonResponse(w, documents)
	case datasystem.ErrUnauthorized:
		app.HttpBadRequest(w, err)
	case datasystem.ErrNoContent:
		app.HttpNoContent(w)
	default:
		app.HttpInternalError(w, err)
	}
}

func dataSaveHandler(w http.ResponseWriter, r *http.Request) {
	var c dataSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		app.HttpBadRequest(w, err)
		return
	}

	reading, err := app.SaveReading(c.AccessToken, c.ReadingSubmission)
	if err != nil {
		if err == datasystem.ErrUnauthorized {
			app.HttpUnauthorized(w, err)
			return
		}

		if datasystem.IsRejection(err) {
			app.HttpBadRequest(w, err)
			return
		}

		lg.WithField("error", err).Error("Error saving reading")
		app.HttpInternalError(w, err)
		return
	}

	app.JsonCreated(w, datasystem.NewReadingDocument(*reading))
}
