package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/staffpoints/backend/internal/metrics"
	"github.com/staffpoints/backend/internal/model"
	"github.com/staffpoints/backend/internal/service"
)

type Deps struct {
	Auth           *service.AuthService
	Tokens         *service.TokenService
	Credentials    *service.CredentialStore
	Staff          *service.StaffService
	Slips          *service.SlipService
	Metrics        *metrics.Metrics
	Log            logrus.FieldLogger
	AllowedOrigins []string
}

// NewRouter wires every route. Authenticated routes sit behind
// AuthMiddleware; admin routes add RequireRole(admin) after it.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(d.Log, d.Metrics))
	router.Use(CORSMiddleware(d.AllowedOrigins, false))

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)
	router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	authHandler := NewAuthHandler(d.Auth, d.Metrics)
	userHandler := NewUserHandler(d.Credentials)
	slipHandler := NewSlipHandler(d.Staff, d.Slips)

	api := router.Group("/api")
	api.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(d.Tokens, d.Metrics))
	authed.GET("/me", authHandler.Me)
	authed.GET("/staff", slipHandler.ListStaff)
	authed.GET("/slips", slipHandler.ListSlips)
	authed.POST("/slips", slipHandler.CreateSlip)

	admin := authed.Group("")
	admin.Use(RequireRole(model.RoleAdmin, d.Metrics))
	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.DELETE("/users/:username", userHandler.DeleteUser)
	admin.POST("/staff", slipHandler.CreateStaff)
	admin.DELETE("/staff/:name", slipHandler.DeleteStaff)

	return router
}
