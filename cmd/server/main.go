package main

import (
	"log"
	"net/http"

	"farmlink/internal/config"
	"farmlink/internal/controllers"
	"farmlink/internal/logger"
	"farmlink/internal/middleware"
	"farmlink/internal/routes"
	"farmlink/internal/store"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	cfg := config.Load()

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	st := store.New(db)
	st.Interests.AllowDuplicates = cfg.AllowDuplicateInterests

	auth := middleware.NewAuth(cfg.JWTSecret)
	hub := controllers.NewTrackingHub()

	r := routes.SetupRouter(routes.Handlers{
		Auth:       &controllers.AuthController{Store: st, Auth: auth},
		Farmer:     &controllers.FarmerController{Store: st},
		User:       &controllers.UserController{Store: st},
		Order:      &controllers.OrderController{Store: st, Hub: hub},
		Interest:   &controllers.InterestController{Store: st},
		Tracking:   &controllers.TrackingController{Store: st, Hub: hub},
		Live:       &controllers.LiveController{Hub: hub, Auth: auth},
		Middleware: auth,
	})

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Printf("🚀 Server running at :%s", cfg.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+cfg.Port, handler))
}
