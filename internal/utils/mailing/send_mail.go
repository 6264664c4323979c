package mailing

import (
	"Recipe-Finder/internal/utils"
	"strconv"

	"gopkg.in/gomail.v2"
)

type (
	MailService interface {
		SendMail(toEmail string, subject string, body string) error
	}

	mailService struct {
		smtpHost     string
		smtpPort     string
		senderName   string
		authEmail    string
		authPassword string
	}
)

func NewMailService() MailService {
	return &mailService{
		smtpHost:     utils.GetConfig("SMTP_HOST"),
		smtpPort:     utils.GetConfig("SMTP_PORT"),
		senderName:   utils.GetConfig("SMTP_SENDER_NAME"),
		authEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		authPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

func (m *mailService) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.authEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.smtpPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.smtpHost,
		port,
		m.authEmail,
		m.authPassword,
	)

	return dialer.DialAndSend(mailer)
}
