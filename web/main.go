package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneDir := flag.String("scenes", "scenes", "Directory of TOML scene files")
	flag.Parse()

	// Optional; a missing .env is fine
	_ = godotenv.Load()

	config := server.Config{
		Port:     *port,
		SceneDir: *sceneDir,
	}
	if s3Config := output.S3ConfigFromEnv(); s3Config.Bucket != "" {
		uploader, err := output.NewS3Uploader(s3Config)
		if err != nil {
			log.Fatalf("S3 setup failed: %v", err)
		}
		config.Uploader = uploader
		log.Printf("Uploads enabled for bucket %s", s3Config.Bucket)
	}
	webServer := server.NewServer(config)

	log.Printf("Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/scenes", *port)

	go func() {
		if err := webServer.Start(); err != nil {
			log.Printf("Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webServer.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
