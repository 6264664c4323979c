package main

import (
	"Recipe-Finder/cmd/config"
	"Recipe-Finder/internal/utils"
	"log"
)

func main() {
	utils.LoadConfig()

	st, err := config.ConnectStore()
	if err != nil {
		log.Fatalf("store connection failed: %v", err)
	}

	app, err := config.NewApp(st)
	if err != nil {
		log.Fatalf("app setup failed: %v", err)
	}

	port := utils.GetConfig("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(":" + port))
}
