package echoapi

import (
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

var (
	// appJWTConfig is the default JWT auth middleware config.
	// ParseTokenFunc keeps parsing on the same jwt-go types GenerateToken
	// signs with; getContextClaims asserts the token it stores.
	appJWTConfig = middleware.JWTConfig{
		SigningKey:    core.Conf.SecretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
	}
	contextUserKey = "user"
)

func init() {
	// Assigned here rather than in the literal above to avoid an
	// initialization cycle (parseToken reads appJWTConfig).
	appJWTConfig.ParseTokenFunc = parseToken
}

// Claims represents the authorization claims transmitted via a JWT.
// Role is a claim valid for the token's lifetime only; it is asserted
// at issuance and not re-checked against the store on every request.
type Claims struct {
	jwt.StandardClaims
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

func (c Claims) UserID() int {
	id, _ := strconv.Atoi(c.Subject)
	return id
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   strconv.Itoa(usr.ID),
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name:    usr.Name,
		Email:   usr.Email,
		Role:    usr.Role,
		IsAdmin: usr.IsAdmin(),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func parseToken(auth string, _ echo.Context) (interface{}, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != appJWTConfig.SigningMethod {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return appJWTConfig.SigningKey, nil
	}

	token, err := jwt.ParseWithClaims(auth, new(Claims), keyFunc)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return token, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting context claims")
	}

	usr, err := svc.GetByID(ctx.Request().Context(), claims.UserID())
	if err != nil {
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(contextUserKey, usr)
	return usr, nil
}
