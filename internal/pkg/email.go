package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人
}

// Configured SMTP 未配置时通知退回日志投递
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != ""
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// RegistrationEmailHTML 报名确认邮件正文
func RegistrationEmailHTML(eventTitle, location string) string {
	return fmt.Sprintf(`<p>您好，</p><p>您已成功报名活动 <b>%s</b>。</p><p>活动地点：%s，请准时参加。</p>`, eventTitle, location)
}
