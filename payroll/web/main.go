package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"timekeeper.com/timekeeper/config"
	"timekeeper.com/timekeeper/payroll/bootstrap"
	"timekeeper.com/timekeeper/payroll/repository"
	"timekeeper.com/timekeeper/payroll/web/handlers/attendance"
	"timekeeper.com/timekeeper/security"
	"timekeeper.com/timekeeper/web/common"
	"timekeeper.com/timekeeper/web/middlewares"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	jwtSecret, err := cfg.Secret()
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	dm, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	uploadOptions, err := bootstrap.UploadOptions(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	repo := repository.NewPunchRepository(dm)

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/payroll/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	protected.Use(middlewares.RequireRole(security.RoleHR, security.RoleAdmin))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			principal, _ := middlewares.GetPrincipal(c)
			c.JSON(http.StatusOK, common.NewSuccessResponse(principal))
		})
		attendance.Register(protected, repo, uploadOptions)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("not found"))
		}
	})

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("[INFO] listening on %s\n", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
