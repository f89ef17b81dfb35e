package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stafftrack/hr-backend-go/internal/config"
	appHTTP "github.com/stafftrack/hr-backend-go/internal/handler/http"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
	"github.com/stafftrack/hr-backend-go/internal/pkg/jwt"
	"github.com/stafftrack/hr-backend-go/internal/pkg/sse"
	"github.com/stafftrack/hr-backend-go/internal/repository/postgresql"
	authService "github.com/stafftrack/hr-backend-go/internal/service/auth"
	checkinService "github.com/stafftrack/hr-backend-go/internal/service/checkin"
	employeeService "github.com/stafftrack/hr-backend-go/internal/service/employee"
	notificationService "github.com/stafftrack/hr-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	checkInRepo := postgresql.NewCheckInRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	notifService := notificationService.NewNotificationService(notificationRepo, employeeRepo, hub, notificationService.Config{})
	defer notifService.Shutdown()

	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	checkInSvc := checkinService.NewCheckInService(db, checkInRepo, employeeRepo, notifService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, checkInRepo)

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	checkInHandler := appHTTP.NewCheckInHandler(checkInSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifService, jwtService, hub)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.AllowedOrigins,
		authHandler,
		checkInHandler,
		employeeHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
