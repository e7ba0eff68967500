package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// 64 hex chars (32 bytes) for the credential vault.
	EncryptionKey string

	// RabbitMQ job dispatch. Empty RabbitURL means the API server runs
	// import jobs in-process instead of publishing them.
	RabbitURL   string
	RabbitQueue string

	ImportErrorCap int

	OpenAIBaseURL    string
	AnthropicBaseURL string
}

func Load() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":7025"
	}

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = "sqlite"
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		switch driver {
		case "mysql":
			dsn = "app:apppass@tcp(127.0.0.1:3306)/chat_archive?charset=utf8mb4&parseTime=true&loc=Local"
		default:
			dsn = "file:chat_archive.db?_pragma=foreign_keys(1)"
		}
	}

	key := os.Getenv("ENCRYPTION_KEY")
	if key == "" {
		// dev only, rotate in any real deployment
		key = strings.Repeat("42", 32)
	}

	queue := os.Getenv("RABBIT_QUEUE")
	if queue == "" {
		queue = "import_jobs"
	}

	errorCap := 10
	if v := os.Getenv("IMPORT_ERROR_CAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			errorCap = n
		}
	}

	return Config{
		HTTPAddr:         addr,
		DBDriver:         driver,
		DBDSN:            dsn,
		EncryptionKey:    key,
		RabbitURL:        os.Getenv("RABBIT_URL"),
		RabbitQueue:      queue,
		ImportErrorCap:   errorCap,
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
	}
}
