package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	intconfig "brooksportal/internal/config"
	"brooksportal/internal/http/middleware"
	"brooksportal/internal/services"
	"brooksportal/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStaff  = "staff"
	RoleDriver = "driver"
)

// API holds the wiring every handler needs. Services are built per request
// so the request id travels into the event log.
type API struct {
	Env   intconfig.Env
	Ref   intconfig.Reference
	Store storage.ObjectStore
}

func (a API) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		Ref:       a.Ref,
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) portaloos(c *gin.Context) services.PortalooService {
	return services.PortalooService{
		RequestID: middleware.GetRequestID(c),
	}
}

func (a API) wtn(c *gin.Context) services.WTNService {
	return services.WTNService{
		Store:     a.Store,
		RequestID: middleware.GetRequestID(c),
	}
}

type staffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (a API) Login(c *gin.Context) {
	var req staffLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.Env.AdminUsername)) == 1
	passwordOK := bcrypt.CompareHashAndPassword([]byte(a.Env.AdminPasswordHash), []byte(req.Password)) == nil
	if !usernameOK || !passwordOK {
		RespondError(c, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	a.issueToken(c, req.Username, RoleStaff)
}

type driverLoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /api/auth/driver-login
//
// Drivers share one password and identify by roster name, matching how the
// crews actually sign in on site.
func (a API) DriverLogin(c *gin.Context) {
	var req driverLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	// fail closed when no shared password is configured
	passwordOK := a.Env.DriverPassword != "" &&
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Env.DriverPassword)) == 1
	if !a.Ref.HasDriver(req.Name) || !passwordOK {
		RespondError(c, http.StatusUnauthorized, "invalid driver name or password", nil)
		return
	}

	a.issueToken(c, req.Name, RoleDriver)
}

func (a API) issueToken(c *gin.Context, name, role string) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name": name,
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(a.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": signed,
		"user":  gin.H{"name": name, "role": role},
	})
}

// GET /api/reference
func (a API) ReferenceData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"drivers":         a.Ref.Drivers,
		"payment_methods": a.Ref.PaymentMethods,
		"unit_colours":    a.Ref.UnitColours,
	})
}
