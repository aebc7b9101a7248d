package config

import (
	"fmt"
	"os"
	"strings"
)

type Config struct {
	Port                string
	DatabaseUser        string
	DatabasePassword    string
	DatabaseHost        string
	DatabasePort        string
	DatabaseName        string
	DatabaseSSLMode     string
	Env                 string // either prod or dev, will disable https redirect and few other bits
	SiteName            string
	SiteHost            string
	SupportEmail        string // displayed on the site for support queries
	NoReplyEmail        string // used for transactional emails
	EmailAPIKey         string
	SentryDSN           string
	OpenCageAPIKey      string // forward geocoding; the geocode endpoint returns 500 when unset
	OpenCageAPIEndpoint string
	DefaultUploadFolder string
	URLProtocol         string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		return Config{}, fmt.Errorf("PORT cannot be empty")
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, fmt.Errorf("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, fmt.Errorf("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, fmt.Errorf("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, fmt.Errorf("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, fmt.Errorf("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		return Config{}, fmt.Errorf("DATABASE_SSL_MODE cannot be empty")
	}
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		return Config{}, fmt.Errorf("ENV cannot be empty")
	}
	siteName := os.Getenv("SITE_NAME")
	if siteName == "" {
		return Config{}, fmt.Errorf("SITE_NAME cannot be empty")
	}
	siteHost := os.Getenv("SITE_HOST")
	if siteHost == "" {
		return Config{}, fmt.Errorf("SITE_HOST cannot be empty")
	}
	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		return Config{}, fmt.Errorf("SUPPORT_EMAIL cannot be empty")
	}
	noReplyEmail := os.Getenv("NO_REPLY_EMAIL")
	if noReplyEmail == "" {
		return Config{}, fmt.Errorf("NO_REPLY_EMAIL cannot be empty")
	}
	emailAPIKey := os.Getenv("EMAIL_API_KEY")
	if emailAPIKey == "" {
		return Config{}, fmt.Errorf("EMAIL_API_KEY cannot be empty")
	}
	sentryDSN := os.Getenv("SENTRY_DSN")
	openCageAPIKey := os.Getenv("OPENCAGE_API_KEY")
	openCageAPIEndpoint := os.Getenv("OPENCAGE_API_ENDPOINT")
	if openCageAPIEndpoint == "" {
		openCageAPIEndpoint = "https://api.opencagedata.com/geocode/v1/json"
	}
	defaultUploadFolder := os.Getenv("DEFAULT_UPLOAD_FOLDER")
	if defaultUploadFolder == "" {
		defaultUploadFolder = "misc"
	}
	urlProtocol := "http://"
	if !strings.EqualFold(env, "dev") {
		urlProtocol = "https://"
	}

	return Config{
		Port:                port,
		DatabaseUser:        databaseUser,
		DatabasePassword:    databasePassword,
		DatabaseHost:        databaseHost,
		DatabasePort:        databasePort,
		DatabaseName:        databaseName,
		DatabaseSSLMode:     databaseSSLMode,
		Env:                 env,
		SiteName:            siteName,
		SiteHost:            siteHost,
		SupportEmail:        supportEmail,
		NoReplyEmail:        noReplyEmail,
		EmailAPIKey:         emailAPIKey,
		SentryDSN:           sentryDSN,
		OpenCageAPIKey:      openCageAPIKey,
		OpenCageAPIEndpoint: openCageAPIEndpoint,
		DefaultUploadFolder: defaultUploadFolder,
		URLProtocol:         urlProtocol,
	}, nil
}
