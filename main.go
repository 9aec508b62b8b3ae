package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veriform/consent-api/api"
	"github.com/veriform/consent-api/background"
	"github.com/veriform/consent-api/consent"
	"github.com/veriform/consent-api/schema"
	"github.com/veriform/consent-api/store"
)

func initConfig(file string) {
	viper.SetConfigFile(file)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("consent")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.listen", ":8090")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("consent.freshness_window", 20*time.Second)
	viper.SetDefault("consent.validity_period", 720*time.Hour)
	viper.SetDefault("consent.sweep_schedule", "@hourly")

	if err := viper.ReadInConfig(); err != nil {
		log.WithError(err).Warn("no config file loaded, using environment and defaults")
	}
}

func initLog() {
	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "path to the configuration file")
	flag.Parse()

	initConfig(configFile)
	initLog()

	salt := viper.GetString("consent.salt")
	activeVersion := viper.GetString("consent.active_policy_version")
	if salt == "" || activeVersion == "" {
		log.Fatal("consent.salt and consent.active_policy_version must be configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connURI := viper.GetString("mongo.conn")
	database := viper.GetString("mongo.database")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connURI))
	if err != nil {
		log.WithError(err).Fatal("fail to connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.WithError(err).Fatal("fail to reach mongodb")
	}

	if err := schema.NewMongoDBIndexer(connURI, database).IndexAll(); err != nil {
		log.WithError(err).Fatal("fail to build mongodb indexes")
	}

	mongoStore := store.NewMongoStore(client, database, viper.GetDuration("consent.validity_period"))

	validator := consent.NewValidator(consent.ValidatorConfig{
		Salt:                salt,
		ActivePolicyVersion: activeVersion,
		FreshnessWindow:     viper.GetDuration("consent.freshness_window"),
	})
	service := consent.NewService(validator, mongoStore)

	sweeper := background.NewSweeper(service.Sweep)
	if err := sweeper.Start(viper.GetString("consent.sweep_schedule")); err != nil {
		log.WithError(err).Fatal("fail to schedule consent sweeper")
	}

	server := api.NewServer(service, mongoStore, viper.GetBool("server.trace"))

	go func() {
		if err := server.Run(viper.GetString("server.listen")); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("api server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("fail to shut down api server")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("fail to disconnect mongodb")
	}
}
