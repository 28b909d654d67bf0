package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"casse-auctions/internal/accounts"
	bidding "casse-auctions/internal/biddingService"
	"casse-auctions/internal/config"
	"casse-auctions/internal/database"
	"casse-auctions/internal/database/migrations"
	model "casse-auctions/internal/models"
	"casse-auctions/internal/repository"
	"casse-auctions/internal/server"
	"casse-auctions/internal/session"
	"casse-auctions/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "casse-auctions",
	Short: "Vehicle auction server for the scrapyard website",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		version, dirty, err := migrations.Version(db)
		if err != nil {
			return err
		}
		fmt.Printf("Database at version %d (dirty: %t)\n", version, dirty)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(args[0]); err != nil {
			return err
		}
		fmt.Printf("Configuration initialized at %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the TOML config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, migrateCmd, configCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := utils.SetLevel(cfg.Log.Level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase opens the SQLite file and brings its schema up to date
func openDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// serve wires the stores and services and runs the HTTP server until ctx is cancelled
func serve(ctx context.Context, cfg *config.Config) error {
	db, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Sessions.Path), 0755); err != nil {
		return fmt.Errorf("creating sessions directory: %w", err)
	}
	sessions, err := session.NewBoltStore(cfg.Sessions.Path, utils.RealClock{})
	if err != nil {
		return err
	}
	defer sessions.Close()

	repo := repository.NewSQLiteRepo(db)
	biddingSvc := bidding.NewBiddingService(repo, utils.RealClock{})
	accountsSvc := accounts.NewService(accounts.NewUserStore(db), sessions, utils.RealClock{}, cfg.Server.SessionTTL.Duration)

	if err := bootstrap(ctx, cfg.Bootstrap, biddingSvc, accountsSvc); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.SetupRouter(biddingSvc, accountsSvc, server.Options{
		CookieName:   cfg.Server.CookieName,
		CookieSecure: cfg.Server.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		utils.Info("Starting auction server", map[string]any{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		utils.Info("Shutting down auction server", nil)
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.Sessions.PurgeInterval.Duration)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				n, err := accountsSvc.PurgeSessions()
				if err != nil {
					utils.Warn("session purge failed", map[string]any{"error": err.Error()})
					continue
				}
				if n > 0 {
					utils.Info("expired sessions purged", map[string]any{"count": n})
				}
			}
		}
	})

	return g.Wait()
}

// bootstrap creates the configured admin account and, on an empty store, the demo auctions
func bootstrap(ctx context.Context, cfg config.BootstrapConfig, biddingSvc *bidding.BiddingService, accountsSvc *accounts.Service) error {
	if cfg.AdminEmail != "" {
		admin, created, err := accountsSvc.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			utils.Info("admin account created", map[string]any{"user_id": admin.ID, "email": admin.Email})
		}
	}

	if !cfg.SeedDemo {
		return nil
	}
	existing, err := biddingSvc.ListAuctions(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap demo auctions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	return prepopulateAuctions(ctx, biddingSvc)
}

// prepopulateAuctions adds sample vehicles to an empty store
func prepopulateAuctions(ctx context.Context, svc *bidding.BiddingService) error {
	week := 7 * 24 * time.Hour
	auctions := []bidding.NewAuction{
		{
			Vehicle: model.Vehicle{
				Name: "Peugeot 308 SW", Brand: "Peugeot", Model: "308", Year: 2016, Mileage: 142000,
				Description: "Break diesel, choc avant, moteur fonctionnel",
				Images:      []string{"/images/auctions/308-front.jpg", "/images/auctions/308-side.jpg"},
			},
			StartingPrice: 1500,
			EndDate:       time.Now().Add(week),
		},
		{
			Vehicle: model.Vehicle{
				Name: "Renault Clio IV", Brand: "Renault", Model: "Clio", Year: 2014, Mileage: 98000,
				Description: "Essence, boîte manuelle, carrosserie à reprendre",
				Images:      []string{"/images/auctions/clio-front.jpg"},
			},
			StartingPrice: 1200,
			EndDate:       time.Now().Add(2 * week),
		},
		{
			Vehicle: model.Vehicle{
				Name: "Volkswagen Golf VII", Brand: "Volkswagen", Model: "Golf", Year: 2018, Mileage: 76000,
				Description: "Véhicule accidenté, airbags déclenchés, pièces moteur récupérables",
				Images:      []string{"/images/auctions/golf-front.jpg"},
			},
			StartingPrice: 8000,
			EndDate:       time.Now().Add(3 * week),
		},
	}

	for _, a := range auctions {
		created, err := svc.CreateAuction(ctx, a)
		if err != nil {
			return fmt.Errorf("seed auction %s: %w", a.Name, err)
		}
		utils.Info("demo auction created", map[string]any{"auction_id": created.ID, "name": created.Name})
	}
	return nil
}
