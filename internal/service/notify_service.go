package service

import (
	"context"
	"log"
	"time"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
)

const maxNotifyRetry = 3

// Sender 单条通知的投递函数，由部署配置决定具体实现
type Sender func(ctx context.Context, row *model.NotificationOutbox) error

// NotificationRelayer 定时扫 outbox 表，把待投递通知交给 sender。
// 投递是尽力而为：失败记重试，绝不反向影响报名事务。
type NotificationRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewNotificationRelayer(sender Sender) *NotificationRelayer {
	return &NotificationRelayer{
		repo:      mysql.NewOutboxRepository(),
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *NotificationRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce 处理一批待投递通知
func (r *NotificationRelayer) DrainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		row := rows[i]
		if err := r.sender(ctx, &row); err != nil {
			if merr := r.repo.MarkRetry(ctx, row.ID, maxNotifyRetry); merr != nil {
				log.Printf("outbox retry mark err: %v", merr)
			}
			continue
		}
		if merr := r.repo.MarkSent(ctx, row.ID); merr != nil {
			log.Printf("outbox sent mark err: %v", merr)
		}
	}
}

// LogSender 默认投递：打印到控制台，邮件/推送的占位实现
func LogSender(ctx context.Context, row *model.NotificationOutbox) error {
	switch row.Channel {
	case model.NotifyChannelEmail:
		log.Printf("[EMAIL] to=%s subj=%s body=%s", row.Recipient, row.Subject, row.Body)
	case model.NotifyChannelPush:
		log.Printf("[PUSH]  to=%s title=%s body=%s", row.Recipient, row.Subject, row.Body)
	default:
		log.Printf("[NOTIFY] channel=%s to=%s subj=%s", row.Channel, row.Recipient, row.Subject)
	}
	return nil
}

// NewKafkaSender 把通知发到 kafka，由下游消费方真正触达用户
func NewKafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, row *model.NotificationOutbox) error {
		return producer.SendJSON(ctx, row.Recipient, map[string]any{
			"channel":   row.Channel,
			"recipient": row.Recipient,
			"subject":   row.Subject,
			"body":      row.Body,
		})
	}
}

// NewEmailSender email 通道走 SMTP 直发（正文在入队时已经是 HTML），
// push 通道退回日志
func NewEmailSender(cfg pkg.SMTPConfig) Sender {
	return func(ctx context.Context, row *model.NotificationOutbox) error {
		if row.Channel != model.NotifyChannelEmail || !cfg.Configured() {
			return LogSender(ctx, row)
		}
		return pkg.SendEmail(cfg, row.Recipient, row.Subject, row.Body)
	}
}
