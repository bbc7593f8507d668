package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/libhub/library-service/config"
	"github.com/libhub/library-service/internal/handler"
	"github.com/libhub/library-service/internal/repository"
	"github.com/libhub/library-service/internal/server"
	"github.com/libhub/library-service/internal/service"
	"github.com/libhub/library-service/migrations"
	"github.com/libhub/library-service/pkg/auth"
	"github.com/libhub/library-service/pkg/kafka"
	"github.com/libhub/library-service/pkg/logger"
	"github.com/libhub/library-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "library")
	auth.SetKey(cfg.JWT.Secret)

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	repos := repository.New(db, log)

	var producer sarama.SyncProducer
	if cfg.Kafka.Enabled {
		producer, err = kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
	}

	svcs := service.New(repos, producer, log)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svcs.Auth.SeedAdmin(seedCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Error("seed admin", zap.Error(err))
	}
	seedCancel()

	h := handler.New(svcs.Auth, svcs.User, svcs.Book, svcs.Borrow, svcs.Stats, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
