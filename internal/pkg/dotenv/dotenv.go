package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Load подгружает .env, если он есть, и применяет флаг -port поверх WEBHOOK_PORT.
// Отсутствие файла не ошибка: в контейнере переменные приходят из окружения.
func Load() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var portFlag string
	flag.StringVar(&portFlag, "port", "", "HTTP port (overrides WEBHOOK_PORT environment variable)")
	flag.Parse()

	if portFlag != "" {
		if err := os.Setenv("WEBHOOK_PORT", portFlag); err != nil {
			return fmt.Errorf("failed to set WEBHOOK_PORT environment variable: %w", err)
		}
	}
	return nil
}
