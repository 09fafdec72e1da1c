package core

type Configuration struct {
	Database   ConfigurationDatabase   `json:"database"`
	Server     ConfigurationServer     `json:"server"`
	MailServer ConfigurationMailServer `json:"mail_server"`
}

type ConfigurationDatabase struct {
	Host          string `json:"host"`
	Database      string `json:"database"`
	User          string `json:"user"`
	Password      string `json:"password"`
	Port          int    `json:"port"`
	DoAutoMigrate bool   `json:"do_auto_migrate"`
	Debug         bool   `json:"debug"`
}

type ConfigurationServer struct {
	Hostname     string `json:"hostname"`
	InternalPort int    `json:"internal_port"`
	WithSSL      bool   `json:"with_ssl"`
	SSLCertFile  string `json:"ssl_cert_file"`
	SSLKeyFile   string `json:"ssl_key_file"`
	TmpPath      string `json:"tmp_path"`
}

type ConfigurationMailServer struct {
	SmtpHost         string   `json:"smtp_host"`
	SmtpPort         int      `json:"smtp_port"`
	SmtpUsername     string   `json:"smtp_username"`
	SmtpPassword     string   `json:"smtp_password"`
	Sender           string   `json:"sender"`
	ImportRecipients []string `json:"import_recipients"`
}
