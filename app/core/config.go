package core

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentConfig(c *Configuration) {
	if os.Getenv("DATABASE_HOST") != "" {
		c.Database.Host = os.Getenv("DATABASE_HOST")
	}
	if os.Getenv("DATABASE_DATABASE") != "" {
		c.Database.Database = os.Getenv("DATABASE_DATABASE")
	}
	if os.Getenv("DATABASE_USER") != "" {
		c.Database.User = os.Getenv("DATABASE_USER")
	}
	if os.Getenv("DATABASE_PASSWORD") != "" {
		c.Database.Password = os.Getenv("DATABASE_PASSWORD")
	}
	if os.Getenv("DATABASE_PORT") != "" {
		c.Database.Port, _ = strconv.Atoi(os.Getenv("DATABASE_PORT"))
	}
	if os.Getenv("DATABASE_DO_AUTO_MIGRATE") != "" {
		c.Database.DoAutoMigrate, _ = strconv.ParseBool(os.Getenv("DATABASE_DO_AUTO_MIGRATE"))
	}
	if os.Getenv("DATABASE_DEBUG") != "" {
		c.Database.Debug, _ = strconv.ParseBool(os.Getenv("DATABASE_DEBUG"))
	}

	if os.Getenv("SERVER_HOSTNAME") != "" {
		c.Server.Hostname = os.Getenv("SERVER_HOSTNAME")
	}
	if os.Getenv("SERVER_INTERNAL_PORT") != "" {
		c.Server.InternalPort, _ = strconv.Atoi(os.Getenv("SERVER_INTERNAL_PORT"))
	}
	if os.Getenv("SERVER_TMP_PATH") != "" {
		c.Server.TmpPath = os.Getenv("SERVER_TMP_PATH")
	}

	if os.Getenv("MAIL_SMTP_HOST") != "" {
		c.MailServer.SmtpHost = os.Getenv("MAIL_SMTP_HOST")
	}
	if os.Getenv("MAIL_SMTP_PORT") != "" {
		c.MailServer.SmtpPort, _ = strconv.Atoi(os.Getenv("MAIL_SMTP_PORT"))
	}
	if os.Getenv("MAIL_SMTP_USERNAME") != "" {
		c.MailServer.SmtpUsername = os.Getenv("MAIL_SMTP_USERNAME")
	}
	if os.Getenv("MAIL_SMTP_PASSWORD") != "" {
		c.MailServer.SmtpPassword = os.Getenv("MAIL_SMTP_PASSWORD")
	}
	if os.Getenv("MAIL_SENDER") != "" {
		c.MailServer.Sender = os.Getenv("MAIL_SENDER")
	}
	if os.Getenv("MAIL_IMPORT_RECIPIENTS") != "" {
		c.MailServer.ImportRecipients = strings.Split(os.Getenv("MAIL_IMPORT_RECIPIENTS"), ",")
	}
}
