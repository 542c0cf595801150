package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"backoffice/cmd"
	"backoffice/internal/adapters/out/eventlog"
	"backoffice/internal/adapters/out/rabbitmq"
	"backoffice/internal/core/ports"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// app holds what every subcommand needs once the configuration is loaded.
type app struct {
	configFile string
	config     cmd.Config
	logger     *slog.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "backoffice",
		Short: "Delivery back-office dispatch service",
		Long: `backoffice serves the staff dashboard API of the delivery platform: order
assignment and cancellation, rider availability and the read-side projections.`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "config file (default is ./config.yaml)")

	root.AddCommand(
		newServeCommand(a),
		newAssignCommand(a),
		newCancelCommand(a),
		newReconcileCommand(a),
		newMigrateCommand(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := cmd.LoadConfig(viper.New(), a.configFile)
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) openDB() (*gorm.DB, error) {
	db, err := gorm.Open(gorm_postgres.Open(a.config.DB.DSN()), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// wire opens the database and the event publisher and returns the composition
// root with a function releasing both.
func (a *app) wire(ctx context.Context) (cmd.CompositionRoot, func(), error) {
	db, err := a.openDB()
	if err != nil {
		return cmd.CompositionRoot{}, nil, err
	}
	closeDB := func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}

	var publisher ports.EventPublisher
	closePublisher := func() {}
	if a.config.AMQP.URL == "" {
		a.logger.InfoContext(ctx, "amqp.url not set, change events go to the log")
		publisher = eventlog.NewPublisher(a.logger)
	} else {
		client, dialErr := rabbitmq.Dial(a.config.AMQP.URL, a.config.AMQP.Exchange)
		if dialErr != nil {
			closeDB()
			return cmd.CompositionRoot{}, nil, dialErr
		}
		publisher = client.Publisher(a.config.AMQP.Exchange)
		closePublisher = func() {
			if closeErr := client.Close(); closeErr != nil {
				a.logger.WarnContext(ctx, "closing rabbitmq client", "error", closeErr)
			}
		}
	}

	root := cmd.NewCompositionRoot(a.config, db, publisher, a.logger)
	return root, func() {
		closePublisher()
		closeDB()
	}, nil
}
