package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	domainerrors "dentist/internal/domain/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultTableName          = "dentist"
	defaultJWTTTL             = 72 * time.Hour
	defaultBcryptCost         = 10
	defaultMaxAttempts        = 1

	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Host               string `json:"host" yaml:"host"`
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Store StoreConfig `json:"store" yaml:"store"`

	DynamoDB DynamoDBConfig `json:"dynamoDB" yaml:"dynamoDB" mapstructure:"dynamoDB"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth AuthConfig `json:"auth" yaml:"auth"`

	Metrics struct {
		Enabled bool `json:"enabled" yaml:"enabled"`
	} `json:"metrics" yaml:"metrics"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StoreConfig selects the credential store backend.
type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"`
}

// DynamoDBConfig describes the single-table DynamoDB store.
type DynamoDBConfig struct {
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Table           string `json:"table" yaml:"table"`
	TablePrefix     string `json:"tablePrefix" yaml:"tablePrefix"`
	AccessKeyID     string `json:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"`
	MaxAttempts     int    `json:"maxAttempts" yaml:"maxAttempts"`
	CreateTable     bool   `json:"createTable" yaml:"createTable"`
}

// TableName is the physical table name: prefix followed by the base name.
func (c DynamoDBConfig) TableName() string {
	return c.TablePrefix + c.Table
}

// JWTConfig configures session token signing.
type JWTConfig struct {
	Secret string        `json:"secret" yaml:"secret"`
	TTL    time.Duration `json:"ttl" yaml:"ttl"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost       int  `json:"bcryptCost" yaml:"bcryptCost"`
	EnforceAdminRole bool `json:"enforceAdminRole" yaml:"enforceAdminRole"`
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + strconv.Itoa(c.HTTP.Port)
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, domainerrors.ErrConfigNotFound.WithRaw(map[string]any{"name": currEnv + ".yaml"})
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Example: DYNAMODB_TABLEPREFIX -> dynamoDB.tablePrefix
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	if err := checkNumericEnv("HTTP_PORT", "DYNAMODB_MAXATTEMPTS", "AUTH_BCRYPTCOST"); err != nil {
		return nil, err
	}

	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyLegacyEnv(cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Env.ServiceName == "" {
		c.Env.ServiceName = "dentist"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverDynamoDB
	}
	if c.DynamoDB.Table == "" {
		c.DynamoDB.Table = defaultTableName
	}
	if c.DynamoDB.MaxAttempts <= 0 {
		c.DynamoDB.MaxAttempts = defaultMaxAttempts
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = defaultJWTTTL
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = defaultBcryptCost
	}
}

// Validate reports the first missing or malformed setting as a CONFIG_ERROR.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 {
		return domainerrors.ErrConfigNotFound.WithRaw(map[string]any{"name": "http.port"})
	}
	if c.JWT.Secret == "" {
		return domainerrors.ErrConfigNotFound.WithRaw(map[string]any{"name": "jwt.secret"})
	}

	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverDynamoDB:
		if c.DynamoDB.Region == "" {
			return domainerrors.ErrConfigNotFound.WithRaw(map[string]any{"name": "dynamoDB.region"})
		}
	default:
		return domainerrors.ErrConfigNotFound.WithRaw(map[string]any{"name": "store.driver", "value": c.Store.Driver})
	}

	return nil
}

// legacyEnv maps the flat variable names used by earlier deployments onto
// config fields that canonicalizeEnvKey cannot reach.
var legacyEnv = map[string]func(*Config, string){
	"DYNAMODB_PREFIX_TABLE": func(c *Config, v string) { c.DynamoDB.TablePrefix = v },
	"DYNAMODB_ACCESS_KEY_ID": func(c *Config, v string) { c.DynamoDB.AccessKeyID = v },
	"DYNAMODB_SECRET_ACCESS_KEY": func(c *Config, v string) {
		c.DynamoDB.SecretAccessKey = v
	},
}

func applyLegacyEnv(cfg *Config) {
	for name, set := range legacyEnv {
		if v, ok := os.LookupEnv(name); ok {
			set(cfg, v)
		}
	}
}

func checkNumericEnv(names ...string) error {
	for _, name := range names {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return domainerrors.ErrConfigNotNumber.WithRaw(map[string]any{"name": name, "value": v})
		}
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
