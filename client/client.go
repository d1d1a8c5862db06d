package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/cmodk/go-simplehttp"

	"github.com/airdatahq/datasystem"
)

type Client struct {
	*simplehttp.SimpleHttp
}

func New(host string, logger *logrus.Logger) *Client {

	backend := simplehttp.New(host, logger)

	client := Client{&backend}

	return &client
}

func (client *Client) Latest(token string, deviceId string, count int) ([]datasystem.ReadingDocument, error) {

	values := url.Values{}
	values.Set("accessToken", token)
	if deviceId != "" {
		values.Set("deviceId", deviceId)
	}
	if count > 0 {
		values.Set("count", strconv.Itoa(count))
	}

	data, err := client.Get("/v1/data/latest?" + values.Encode())
	if err != nil {
		return nil, err
	}

	if data == "" {
		return nil, datasystem.ErrNoContent
	}

	var documents []datasystem.ReadingDocument
	if err := json.Unmarshal([]byte(data), &documents); err != nil {
		return nil, err
	}

	return documents, nil

}

func (client *Client) Page(token string, q datasystem.PageQuery) (*datasystem.PaginatedResult, error) {

	values := url.Values{}
	values.Set("accessToken", token)
	if q.DeviceId != "" {
		values.Set("deviceId", q.DeviceId)
	}
	if q.EntryDate != "" {
		values.Set("entryDate", q.EntryDate)
	}
	if q.PageIndex > 0 {
		values.Set("pageIndex", strconv.Itoa(q.PageIndex))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Order != "" {
		values.Set("order", q.Order)
	}
	if q.OrderValue != "" {
		values.Set("orderValue", q.OrderValue)
	}

	data, err := client.Get("/v1/data?" + values.Encode())
	if err != nil {
		return nil, err
	}

	if data == "" {
		return nil, datasystem.ErrNoContent
	}

	var page datasystem.PaginatedResult
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, err
	}

	return &page, nil

}

func (client *Client) Save(token string, sub datasystem.ReadingSubmission) (*datasystem.ReadingDocument, error) {

	request := struct {
		AccessToken string `json:"accessToken"`
		datasystem.ReadingSubmission
	}{
		AccessToken:       token,
		ReadingSubmission: sub,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	data, err := client.Post("/v1/data", string(body))
	if err != nil {
		return nil, err
	}

	var document datasystem.ReadingDocument
	if err := json.Unmarshal([]byte(data), &document); err != nil {
		return nil, fmt.Errorf("Bad save response: %s", data)
	}

	return &document, nil

}
