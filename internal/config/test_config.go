package config

import (
	"github.com/joho/godotenv"
)

// LoadTestConfig loads the database settings of the integration test database.
// TEST_DB_* variables are read from the environment or a .env file and fall back
// to a local MySQL with database learnledger_test.
func LoadTestConfig() (*Config, error) {
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Host = stringEnv("TEST_DB_HOST", "localhost")

	port, err := intEnv("TEST_DB_PORT", 3306)
	if err != nil {
		return nil, err
	}
	cfg.Database.Port = port

	cfg.Database.User = stringEnv("TEST_DB_USER", "root")
	cfg.Database.Password = stringEnv("TEST_DB_PASSWORD", "password")
	cfg.Database.DBName = stringEnv("TEST_DB_NAME", "learnledger_test")
	cfg.Logging.Level = "debug"

	return cfg, nil
}
