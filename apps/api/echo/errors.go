package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/assessment"
	"github.com/rubiescode/shule/core/attendance"
	"github.com/rubiescode/shule/core/schedule"
	"github.com/rubiescode/shule/core/user"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// httpStatusFor maps domain sentinel errors to HTTP statuses; 0 means the
// error is not a domain sentinel.
func httpStatusFor(err error) int {
	switch err {
	case user.ErrNotFound,
		user.ErrWrongPassword,
		user.ErrIdentityMismatch,
		user.ErrUnknownRole,
		user.ErrNotTeacher,
		user.ErrNotStudent,
		user.ErrAlreadyPaired,
		attendance.ErrNotAssigned,
		assessment.ErrNotAssigned:
		return http.StatusBadRequest
	case user.ErrCapabilityNotAllowed:
		return http.StatusForbidden
	case user.ErrCapabilityNotWired:
		return http.StatusNotImplemented
	case attendance.ErrNoneRecorded,
		assessment.ErrNoneRecorded,
		schedule.ErrNoneScheduled:
		return http.StatusNotFound
	}
	return 0
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if status := httpStatusFor(cause); status != 0 {
			code = status
			message = cause.Error()
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			case validator.ValidationErrors:
				fldErrs := make(map[string]string, len(origErr))
				for _, vErr := range origErr {
					fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
				}
				code = http.StatusBadRequest
				message = fldErrs
			case *core.ValidationError:
				if origErr.Fields != nil {
					fldErrs := make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						fldErrs[fErr.Field] = fErr.Error
					}
					message = fldErrs
				} else {
					message = origErr.Error()
				}
				code = http.StatusBadRequest
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				var acct user.Account
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					acct.Name = claims.Subject
					acct.Username = claims.Username
				}
				logger.Error(msg, errors.Wrap(err, msg), acct)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
