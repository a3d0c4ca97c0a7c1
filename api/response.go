package api

import (
	"github.com/shenzhen-arrom/kitties/errors"
	"github.com/shenzhen-arrom/kitties/kitty"
	"github.com/shenzhen-arrom/kitties/ledger"
)

const (
	codeSuccess = 200
	codeError   = 300
)

type Response struct {
	Code   int         `json:"code"`
	Msg    string      `json:"msg,omitempty"`
	Result interface{} `json:"result,omitempty"`
}

var respErrFormatter = map[error]int{
	kitty.ErrIndexOverflow:        1000,
	kitty.ErrNotOwner:             1001,
	kitty.ErrSameParent:           1002,
	kitty.ErrKittyNotFound:        1003,
	kitty.ErrBuyerIsOwner:         1004,
	kitty.ErrNotForSale:           1005,
	kitty.ErrInsufficientStake:    1006,
	kitty.ErrInsufficientFunds:    1007,
	ledger.ErrBelowMinimum:        1008,
	ledger.ErrInsufficientBalance: 1009,
}

//FormatErrResp format error response
func formatErrResp(err error) Response {
	// default error response
	response := Response{
		Code: codeError,
		Msg:  "request error",
	}

	root := errors.Root(err)
	if errCode, ok := respErrFormatter[root]; ok {
		response.Code = errCode
		response.Msg = root.Error()
	}
	return response
}
