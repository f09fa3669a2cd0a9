package echoapi

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rubiescode/shule/core/user"
)

type accountApi struct {
	svc user.Service
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc user.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/accounts")

	// un-authed endpoints
	// TODO: rate limit `/login` & `/password-reset`
	ag.POST("/signup", api.signup)
	ag.POST("/login", api.login)
	ag.POST("/password-reset", api.resetPassword)

	// admin endpoints
	mg := ag.Group("", jwt, adminMiddleware())
	mg.GET("", api.query)
	mg.DELETE("/:name", api.destroy)
}

// Handlers

func (api *accountApi) signup(ctx echo.Context) error {
	var data user.NewAccount
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAccount")
	}

	acct, err := api.svc.Signup(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, NewAccountResponse(acct))
}

func (api *accountApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}

	ident, err := api.svc.Login(data)
	if err != nil {
		return err
	}

	token, err := GenerateToken(GetIdentityClaims(ident))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *accountApi) resetPassword(ctx echo.Context) error {
	var data user.ResetAccountPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetAccountPassword")
	}

	if err := api.svc.ResetPassword(data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{
		Success: "Password has been reset successfully! Please login with your new password.",
	})
}

func (api *accountApi) query(ctx echo.Context) error {
	accts, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying accounts")
	}
	return ctx.JSON(http.StatusOK, NewAccountResponseList(accts))
}

func (api *accountApi) destroy(ctx echo.Context) error {
	name, err := url.PathUnescape(ctx.Param("name"))
	if err != nil {
		name = ctx.Param("name")
	}
	if err := api.svc.Delete(name); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
