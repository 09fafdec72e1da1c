package core

import (
	"errors"
	"log"

	"gopkg.in/gomail.v2"
)

// SendMail delivers a mail over the configured SMTP server. Without a
// configured server it is a no-op returning an error, callers treat mailing
// as best effort.
func SendMail(from string, to []string, subject string, body string, files []string) error {
	if Config.MailServer.SmtpHost == "" || Config.MailServer.SmtpPort == 0 {
		return errors.New("no mail server configured")
	}

	if from == "" {
		from = Config.MailServer.Sender
	}
	if from == "" || len(to) == 0 {
		return errors.New("sender or recipients missing")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	for _, file := range files {
		m.Attach(file)
	}

	d := gomail.NewDialer(Config.MailServer.SmtpHost, Config.MailServer.SmtpPort, Config.MailServer.SmtpUsername, Config.MailServer.SmtpPassword)

	err := d.DialAndSend(m)
	if err != nil {
		log.Print(err)
	}
	return err
}
