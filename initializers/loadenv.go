package initializers

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file into the process environment. A missing
// file is reported to the caller, who may treat it as non-fatal when
// the environment is provided externally.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("no .env file found: %w", err)
	}
	log.Println("[LoadEnv] Environment loaded from .env")
	return nil
}
