package echoapi

import (
	"encoding/json"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

type (
	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	// AccountResponse is the public view of an Account; the stored password
	// cipher text never leaves the service.
	AccountResponse struct {
		Name     string     `json:"name"`
		Username string     `json:"username"`
		Email    string     `json:"email,omitempty"`
		Role     user.Role  `json:"role"`
		Stage    user.Stage `json:"stage,omitempty"`
		Teacher  string     `json:"teacher,omitempty"`
	}

	// PerformRequest is one dashboard capability invocation; Payload carries
	// the submitted form for recording capabilities.
	PerformRequest struct {
		Capability user.Capability `json:"capability" validate:"required"`
		Payload    json.RawMessage `json:"payload,omitempty"`
	}

	PerformResponse struct {
		Capability user.Capability `json:"capability"`
		Result     interface{}     `json:"result,omitempty"`
	}
)

func (pr *PerformRequest) Validate() error {
	return core.Validate.Struct(pr)
}

func NewAccountResponse(acct user.Account) AccountResponse {
	return AccountResponse{
		Name:     acct.Name,
		Username: acct.Username,
		Email:    acct.Email,
		Role:     acct.Role,
		Stage:    acct.Stage,
		Teacher:  acct.Teacher,
	}
}

func NewAccountResponseList(accts []user.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accts))
	for i, acct := range accts {
		resp[i] = NewAccountResponse(acct)
	}
	return resp
}
