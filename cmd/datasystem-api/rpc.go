package main

import (
	"fmt"
	"net/http"

	gorilla_rpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"

	"github.com/airdatahq/datasystem"
)

type ResponseState string

const (
	ResponseOk            ResponseState = "ok"
	ResponseUnauthorized  ResponseState = "unauthorized"
	ResponseNoContent     ResponseState = "no_content"
	ResponseInternalError ResponseState = "internal_error"
)

//DataService is the RPC surface. Both methods are thin adapters over the same
//core operations the resource endpoints use, so authorization and pagination
//behave identically on either surface.
type DataService struct {
	ds *datasystem.DataSystem
}

type SaveArgs struct {
	AuthorizationToken string `json:"authorizationToken"`
	datasystem.ReadingSubmission
}

type BasicReply struct {
	ResponseState   ResponseState `json:"responseState"`
	ResponseMessage string        `json:"responseMessage"`
}

func (s *DataService) Save(r *http.Request, args *SaveArgs, reply *BasicReply) error {
	_, err := s.ds.SaveReading(args.AuthorizationToken, args.ReadingSubmission)

	switch {
	case err == nil:
		reply.ResponseState = ResponseOk
		reply.ResponseMessage = "values saved to system"
	case err == datasystem.ErrUnauthorized:
		reply.ResponseState = ResponseUnauthorized
		reply.ResponseMessage = "unauthorized request"
	default:
		reply.ResponseState = ResponseInternalError
		reply.ResponseMessage = fmt.Sprintf("error: %s", err)
	}

	return nil
}

type GetDataArgs struct {
	AuthorizationToken string `json:"authorizationToken"`
	DeviceId           string `json:"deviceId"`
	EntryDate          string `json:"entryDate"`
	PageIndex          int    `json:"pageIndex"`
	PageSize           int    `json:"pageSize"`
	Order              string `json:"order"`
	OrderValue         string `json:"orderValue"`
}

type GetDataReply struct {
	ResponseState   ResponseState                `json:"responseState"`
	Items           []datasystem.ReadingDocument `json:"items"`
	PageIndex       int                          `json:"pageIndex"`
	TotalPages      int                          `json:"totalPages"`
	HasPreviousPage bool                         `json:"hasPreviousPage"`
	HasNextPage     bool                         `json:"hasNextPage"`
}

func (s *DataService) GetData(r *http.Request, args *GetDataArgs, reply *GetDataReply) error {
	page, err := s.ds.ReadingPage(args.AuthorizationToken, datasystem.PageQuery{
		DeviceId:   args.DeviceId,
		EntryDate:  args.EntryDate,
		PageIndex:  args.PageIndex,
		PageSize:   args.PageSize,
		Order:      args.Order,
		OrderValue: args.OrderValue,
	})

	switch err {
	case nil:
		reply.ResponseState = ResponseOk
		reply.Items = page.Items
		reply.PageIndex = page.PageIndex
		reply.TotalPages = page.TotalPages
		reply.HasPreviousPage = page.HasPreviousPage
		reply.HasNextPage = page.HasNextPage
	case datasystem.ErrUnauthorized:
		reply.ResponseState = ResponseUnauthorized
	case datasystem.ErrNoContent:
		reply.ResponseState = ResponseNoContent
		reply.PageIndex = args.PageIndex
	default:
		return err
	}

	return nil
}

func newRpcServer(ds *datasystem.DataSystem) http.Handler {
	server := gorilla_rpc.NewServer()
	server.RegisterCodec(json2.NewCodec(), "application/json")

	if err := server.RegisterService(&DataService{ds}, ""); err != nil {
		panic(err)
	}

	return server
}
