package config

// Драйверы хранилища учетных данных и индекса документов.
const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// StorageConfig выбирает хранилище и каталог файлов библиотеки.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"SCANNER_STORAGE_DRIVER" env-default:"redis"`
	Root   string `yaml:"root" env:"SCANNER_STORAGE_ROOT" env-default:"./data"`
}
