package main

import (
	"log"

	"github.com/izzy358/wrap-careers/internal/config"
	"github.com/izzy358/wrap-careers/internal/database"
	"github.com/izzy358/wrap-careers/internal/email"
	"github.com/izzy358/wrap-careers/internal/geocode"
	"github.com/izzy358/wrap-careers/internal/handler"
	"github.com/izzy358/wrap-careers/internal/installer"
	"github.com/izzy358/wrap-careers/internal/job"
	"github.com/izzy358/wrap-careers/internal/server"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %+v", err)
	}
	conn, err := database.GetDbConn(
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
	if err != nil {
		log.Fatalf("unable to connect to postgres: %v", err)
	}
	defer database.CloseDbConn(conn)
	emailClient, err := email.NewClient(cfg.EmailAPIKey, cfg.SupportEmail, cfg.NoReplyEmail, cfg.SiteName, cfg.SiteHost, cfg.URLProtocol)
	if err != nil {
		log.Fatalf("unable to connect to sparkpost API: %v", err)
	}
	geocoder := geocode.NewClient(cfg.OpenCageAPIKey, cfg.OpenCageAPIEndpoint)

	svr := server.NewServer(cfg, conn, mux.NewRouter())

	jobRepo := job.NewRepository(conn)
	installerRepo := installer.NewRepository(conn)
	assetRepo := database.NewAssetRepository(conn)

	svr.RegisterRoute("/health", handler.HealthCheckHandler(svr), []string{"GET"})

	// jobs
	svr.RegisterRoute("/api/jobs", handler.ListJobsHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/api/jobs", handler.CreateJobHandler(svr, jobRepo, emailClient), []string{"POST"})
	svr.RegisterRoute("/api/jobs/{slug}", handler.GetJobBySlugHandler(svr, jobRepo), []string{"GET"})
	svr.RegisterRoute("/api/jobs/{slug}", handler.UpdateJobHandler(svr, jobRepo), []string{"PUT"})
	svr.RegisterRoute("/api/jobs/{slug}", handler.DeleteJobHandler(svr, jobRepo), []string{"DELETE"})
	svr.RegisterRoute("/api/jobs/{slug}/apply", handler.ApplyToJobHandler(svr, jobRepo, jobRepo, emailClient), []string{"POST"})

	// installers
	svr.RegisterRoute("/api/installers", handler.ListInstallersHandler(svr, installerRepo), []string{"GET"})
	svr.RegisterRoute("/api/installers", handler.CreateInstallerHandler(svr, installerRepo, emailClient), []string{"POST"})
	svr.RegisterRoute("/api/installers/{slug}", handler.GetInstallerBySlugHandler(svr, installerRepo), []string{"GET"})
	svr.RegisterRoute("/api/installers/{slug}", handler.UpdateInstallerHandler(svr, installerRepo), []string{"PUT"})
	svr.RegisterRoute("/api/installers/{slug}", handler.DeleteInstallerHandler(svr, installerRepo), []string{"DELETE"})

	// media
	svr.RegisterRoute("/api/upload", handler.UploadHandler(svr, assetRepo), []string{"POST"})
	svr.RegisterRoute("/assets/{folder}/{file}", handler.ServeAssetHandler(svr, assetRepo), []string{"GET"})

	// geocoding
	svr.RegisterRoute("/api/geocode", handler.GeocodeHandler(svr, geocoder), []string{"POST"})

	log.Fatal(svr.Run())
}
