package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	pkg "github.com/paperlark/paperlark/pkg/internal"
	"github.com/paperlark/paperlark/pkg/internal/cache"
	"github.com/paperlark/paperlark/pkg/internal/database"
	"github.com/paperlark/paperlark/pkg/internal/http"
	"github.com/paperlark/paperlark/pkg/internal/security"
	"github.com/paperlark/paperlark/pkg/internal/services"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____                       _            _\n|  _ \\ __ _ _ __   ___ _ __| | __ _ _ __| | __\n| |_) / _` | '_ \\ / _ \\ '__| |/ _` | '__| |/ /\n|  __/ (_| | |_) |  __/ |  | | (_| | |  |   <\n|_|   \\__,_| .__/ \\___|_|  |_|\\__,_|_|  |_|\\_\\\n           |_|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Paperlark"), pkg.AppVersion)
	fmt.Printf("The unified content and task backend\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Load token policy; the signing secret is required
	tokens, err := security.NewTokenPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when loading token policy.")
	}

	// Connect to database
	db, err := database.NewGorm()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Set up local cache
	if err := cache.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", func() {
		services.DoAutoDatabaseCleanup(db)
	})
	quartz.Start()

	// Server
	server := http.NewServer(db, tokens)
	go server.Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
	_ = server.Shutdown()
}
