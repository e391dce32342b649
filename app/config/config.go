package config

import (
	"flag"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"walletapp/app/storage/database"
	"walletapp/pkg/log"
)

const (
	defaultConfigPath = "./configs/config.yaml"

	defaultRestAddr        = ":8000"
	defaultMigrationsTable = "walletapp_schema_migrations"
	defaultFeeName         = "Fee"
	defaultAccessoryIcon   = "contact"
)

// Asset describes one displayable asset of the current account.
type Asset struct {
	Code   string `mapstructure:"code"`
	Digits int32  `mapstructure:"digits"`
}

type Assets struct {
	Known         []Asset `mapstructure:"known"`
	DefaultDigits int32   `mapstructure:"defaultDigits"`
}

func (a *Assets) Validate() error {
	if len(a.Known) == 0 {
		return errors.New("you must provide at least one known asset in a config")
	}

	for _, asset := range a.Known {
		if asset.Code == "" {
			return errors.New("you must provide a code for every known asset in a config")
		}
	}

	return nil
}

// WalletCore points at the remote service that actually executes transfers.
type WalletCore struct {
	BasePath string `mapstructure:"basePath"`
	ApiKey   string `mapstructure:"apiKey"`
}

func (w *WalletCore) Validate() error {
	if w.BasePath == "" {
		return errors.New("you must provide base path for the wallet core service")
	}

	if w.ApiKey == "" {
		return errors.New("you must provide api key for the wallet core service")
	}

	return nil
}

// Notifications points at the service that knows the push-permission
// status of every client.
type Notifications struct {
	BasePath string `mapstructure:"basePath"`
	ApiKey   string `mapstructure:"apiKey"`
}

func (n *Notifications) Validate() error {
	if n.BasePath == "" {
		return errors.New("you must provide base path for the notification service")
	}

	if n.ApiKey == "" {
		return errors.New("you must provide api key for the notification service")
	}

	return nil
}

type Secrets struct {
	API   string `mapstructure:"api"`
	Token string `mapstructure:"token"`
}

func (s *Secrets) Validate() error {
	if s.API == "" || s.Token == "" {
		return errors.New("you must provide secrets in a config")
	}
	return nil
}

// FeeDisplay holds the localized names for the fee row.
type FeeDisplay struct {
	DefaultName string            `mapstructure:"defaultName"`
	Names       map[string]string `mapstructure:"names"`
}

type Config struct {
	RestAddr      string          `mapstructure:"restAddr"`
	Assets        Assets          `mapstructure:"assets"`
	WalletCore    WalletCore      `mapstructure:"walletCore"`
	Notifications Notifications   `mapstructure:"notifications"`
	Secrets       Secrets         `mapstructure:"secrets"`
	FeeDisplay    FeeDisplay      `mapstructure:"feeDisplay"`
	AccessoryIcon string          `mapstructure:"accessoryIcon"`
	Database      database.Config `mapstructure:"database"`
	Logging       log.Config      `mapstructure:"log"`
}

func Parse() (*Config, error) {
	configPath := flag.String("config", defaultConfigPath, "configuration file path")
	flag.Parse()

	// set reasonable defaults
	viper.SetDefault("restAddr", defaultRestAddr)
	viper.SetDefault("database.migrationsTable", defaultMigrationsTable)
	viper.SetDefault("feeDisplay.defaultName", defaultFeeName)
	viper.SetDefault("accessoryIcon", defaultAccessoryIcon)

	// read a config file
	viper.SetConfigFile(*configPath)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to read a file")
	}

	// unmarshal to a config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal a config")
	}

	// ensure the asset registry is valid
	if err := cfg.Assets.Validate(); err != nil {
		return nil, err
	}

	// ensure sidecar services are provided
	if err := cfg.WalletCore.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Notifications.Validate(); err != nil {
		return nil, err
	}

	// ensure secrets are provided
	if err := cfg.Secrets.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
