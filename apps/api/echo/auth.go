package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rubiescode/shule/core"
	"github.com/rubiescode/shule/core/user"
)

// appJWTConfig is the default JWT auth middleware config.
var appJWTConfig = middleware.JWTConfig{
	SigningKey:    []byte(core.Conf.SecretKey),
	SigningMethod: middleware.AlgorithmHS256,
	ContextKey:    "accountToken",
	Claims:        &Claims{},
}

// Claims represents the authorization claims transmitted via a JWT; the HTTP
// rendition of a logged-in dashboard session. Subject is the display name.
type Claims struct {
	jwt.StandardClaims
	Username  string     `json:"username,omitempty"`
	Role      user.Role  `json:"role,omitempty"`
	Stage     user.Stage `json:"stage,omitempty"`
	IsStudent bool       `json:"is_student,omitempty"` // -> STUDENT PORTAL
	IsTeacher bool       `json:"is_teacher,omitempty"` // -> TEACHER PORTAL
	IsAdmin   bool       `json:"is_admin,omitempty"`   // -> ADMIN PORTAL
}

func GetIdentityClaims(ident user.Identity) *Claims {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   ident.Name(),
			Audience:  "Dashboard",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username:  ident.Username(),
		Role:      ident.Role(),
		IsStudent: ident.Role() == user.RoleStudent,
		IsTeacher: ident.Role() == user.RoleTeacher,
		IsAdmin:   ident.Role() == user.RoleAdmin,
	}
	if st, ok := ident.(interface{ Stage() user.Stage }); ok {
		claims.Stage = st.Stage()
	}
	return claims
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", err
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextIdentity rebuilds the identity snapshot carried by the token.
func getContextIdentity(ctx echo.Context) (user.Identity, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return nil, err
	}
	switch claims.Role {
	case user.RoleStudent:
		return user.NewStudent(claims.Subject, claims.Username, claims.Stage), nil
	case user.RoleTeacher:
		return user.NewTeacher(claims.Subject, claims.Username), nil
	case user.RoleAdmin:
		return user.NewAdmin(claims.Subject, claims.Username), nil
	default:
		return nil, errUnauthorized
	}
}

// roleMiddleware guards a route group to the given roles.
func roleMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func adminMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(user.RoleAdmin)
}
