package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the app configuration; set once on start up.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		Addr                      string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Config struct {
		Env       string // DEV (local; default), TEST, QA, PROD
		Debug     bool
		TestMode  bool
		AppName   string
		SecretKey string
		Build     string

		// DataDir is where the JSON document collections live.
		DataDir string

		FrontendBaseURL string
		FromEmail       string
		SendgridApiKey  string
		RollbarToken    string

		Server ServerConfig
	}
)

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.FromEmail}
}

func init() {
	vpr := viper.New()

	// defaults
	vpr.SetTypeByDefaultValue(true)
	vpr.SetDefault("debug", true)
	vpr.SetDefault("appName", "Shule")
	vpr.SetDefault("secretKey", "y0u-w1ll-n3v3r-gu3ss-th1s-d3v-k3y-pr0m1s3")
	vpr.SetDefault("dataDir", filepath.Join(Getwd(), "data"))
	vpr.SetDefault("frontendBaseURL", "http://localhost:3000")
	vpr.SetDefault("defaultFromEmail", "noreply@localhost")
	vpr.SetDefault("serverHost", "localhost")
	vpr.SetDefault("serverAddr", ":8000")
	vpr.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	vpr.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	vpr.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	vpr.AutomaticEnv()

	Conf = &Config{
		Env:             env,
		Debug:           vpr.GetBool("debug"),
		TestMode:        env == "TEST",
		AppName:         vpr.GetString("appName"),
		SecretKey:       vpr.GetString("secretKey"),
		Build:           vpr.GetString("build"),
		DataDir:         vpr.GetString("dataDir"),
		FrontendBaseURL: vpr.GetString("frontendBaseURL"),
		FromEmail:       vpr.GetString("defaultFromEmail"),
		SendgridApiKey:  vpr.GetString("sendgridApiKey"),
		RollbarToken:    vpr.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:                      vpr.GetString("serverHost"),
			Addr:                      vpr.GetString("serverAddr"),
			JWTExpirationDelta:        vpr.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: vpr.GetDuration("jwtRefreshExpirationDelta"),
		},
	}
}
