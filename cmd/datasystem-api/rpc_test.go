package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdatahq/datasystem"
)

func newTestService(t *testing.T) (*DataService, sqlmock.Sqlmock) {
	mock := newTestApi(t)
	return &DataService{app}, mock
}

func TestRpcSave(t *testing.T) {
	service, mock := newTestService(t)
	expectAuthorized(mock, writeToken, datasystem.FlagWrite)
	mock.ExpectExec("INSERT INTO sensor_readings (additional_data,authorization_id,carbon_dioxide,device,humidity,id,light,lpg,motion,smoke,temperature,timestamp) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)").
		WithArgs(nil, 3, nil, "A9612CF6BB21", nil, 0, nil, nil, nil, nil, 21.5,
			time.Date(2024, 6, 13, 13, 30, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(7, 1))

	temperature := 21.5
	reply := BasicReply{}
	require.NoError(t, service.Save(nil, &SaveArgs{
		AuthorizationToken: writeToken,
		ReadingSubmission: datasystem.ReadingSubmission{
			DeviceId:    "A9-61-2C-F6-BB-21",
			TimeStamp:   "2024-06-13T15:30:00+02:00",
			Temperature: &temperature,
		},
	}, &reply))

	assert.Equal(t, ResponseOk, reply.ResponseState)
	assert.Equal(t, "values saved to system", reply.ResponseMessage)
}

func TestRpcSaveUnauthorized(t *testing.T) {
	service, mock := newTestService(t)
	expectUnauthorized(mock, writeToken, datasystem.FlagWrite)

	reply := BasicReply{}
	require.NoError(t, service.Save(nil, &SaveArgs{
		AuthorizationToken: writeToken,
		ReadingSubmission: datasystem.ReadingSubmission{
			DeviceId:  "A9-61-2C-F6-BB-21",
			TimeStamp: "2024-06-13T15:30:00Z",
		},
	}, &reply))

	assert.Equal(t, ResponseUnauthorized, reply.ResponseState)
	assert.Equal(t, "unauthorized request", reply.ResponseMessage)
}

func TestRpcSaveRejected(t *testing.T) {
	service, mock := newTestService(t)
	expectAuthorized(mock, writeToken, datasystem.FlagWrite)

	//No device id: the gate passes, the submission is rejected with its reason
	reply := BasicReply{}
	require.NoError(t, service.Save(nil, &SaveArgs{
		AuthorizationToken: writeToken,
		ReadingSubmission: datasystem.ReadingSubmission{
			TimeStamp: "2024-06-13T15:30:00Z",
		},
	}, &reply))

	assert.Equal(t, ResponseInternalError, reply.ResponseState)
	assert.Equal(t, "error: no device-id was provided", reply.ResponseMessage)
}

func TestRpcGetData(t *testing.T) {
	service, mock := newTestService(t)
	expectAuthorized(mock, readToken, datasystem.FlagRead)
	mock.ExpectQuery("SELECT COUNT(*) FROM sensor_readings").
		WillReturnRows(countRows(3))
	mock.ExpectQuery("SELECT * FROM sensor_readings ORDER BY timestamp DESC, id ASC LIMIT 2 OFFSET 2").
		WillReturnRows(readingRows(time.Date(2024, 6, 13, 10, 0, 0, 0, time.UTC)))

	reply := GetDataReply{}
	require.NoError(t, service.GetData(nil, &GetDataArgs{
		AuthorizationToken: readToken,
		PageIndex:          2,
		PageSize:           2,
	}, &reply))

	assert.Equal(t, ResponseOk, reply.ResponseState)
	assert.Equal(t, 2, reply.PageIndex)
	assert.Equal(t, 2, reply.TotalPages)
	assert.True(t, reply.HasPreviousPage)
	assert.False(t, reply.HasNextPage)
	require.Len(t, reply.Items, 1)
	assert.Equal(t, "A9612CF6BB21", reply.Items[0].DeviceId)
}

func TestRpcGetDataUnauthorized(t *testing.T) {
	service, mock := newTestService(t)
	expectUnauthorized(mock, readToken, datasystem.FlagRead)

	reply := GetDataReply{}
	require.NoError(t, service.GetData(nil, &GetDataArgs{AuthorizationToken: readToken}, &reply))

	assert.Equal(t, ResponseUnauthorized, reply.ResponseState)
	assert.Empty(t, reply.Items)
}

func TestRpcGetDataNoContent(t *testing.T) {
	service, mock := newTestService(t)
	expectAuthorized(mock, readToken, datasystem.FlagRead)
	mock.ExpectQuery("SELECT COUNT(*) FROM sensor_readings").
		WillReturnRows(countRows(0))

	//The requested page index comes back unchanged on an empty result
	reply := GetDataReply{}
	require.NoError(t, service.GetData(nil, &GetDataArgs{
		AuthorizationToken: readToken,
		PageIndex:          7,
	}, &reply))

	assert.Equal(t, ResponseNoContent, reply.ResponseState)
	assert.Equal(t, 7, reply.PageIndex)
	assert.Empty(t, reply.Items)
	assert.Equal(t, 0, reply.TotalPages)
}

func TestRpcServer(t *testing.T) {
	mock := newTestApi(t)
	expectUnauthorized(mock, writeToken, datasystem.FlagWrite)

	body := `{"jsonrpc":"2.0","method":"DataService.Save","params":{"authorizationToken":"` +
		writeToken + `","deviceId":"A9-61-2C-F6-BB-21","timeStamp":"2024-06-13T15:30:00Z"},"id":1}`

	request := httptest.NewRequest("POST", "/rpc", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	newRpcServer(app).ServeHTTP(w, request)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Result BasicReply `json:"result"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	assert.Equal(t, ResponseUnauthorized, envelope.Result.ResponseState)
	assert.Equal(t, "unauthorized request", envelope.Result.ResponseMessage)
}
