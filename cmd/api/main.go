package main

import (
	"context"
	"log"

	"Campus_Hub/internal/config"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
	"Campus_Hub/internal/repository/redis"
	"Campus_Hub/internal/router"
	"Campus_Hub/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	pkg.SetJWTSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		panic(err)
	}
	if err := mysql.AutoMigrate(); err != nil {
		panic(err)
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		if err := mysql.BootstrapAdmin(cfg.AdminEmail, string(hash)); err != nil {
			panic(err)
		}
	}

	// token 模式必须有 redis；header 模式下 redis 仅用于热门缓存，失败可忽略
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		if cfg.AuthMode == config.AuthModeHeader {
			log.Printf("redis unavailable, cache disabled: %v", err)
		} else {
			panic(err)
		}
	}
	defer redis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 通知投递后台任务
	relayer := service.NewNotificationRelayer(buildSender(cfg))
	go relayer.Run(ctx)

	r := router.InitRouter(cfg)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}

func buildSender(cfg *config.Config) service.Sender {
	switch cfg.NotifySender {
	case config.SenderKafka:
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Printf("kafka producer init err, fallback to log sender: %v", err)
			return service.LogSender
		}
		return service.NewKafkaSender(producer)
	case config.SenderEmail:
		return service.NewEmailSender(pkg.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	}
	return service.LogSender
}
