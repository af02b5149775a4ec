// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gaucho-cli/gaucho"
	"github.com/gaucho-cli/gaucho/internal/util"
)

const (
	ConfigFileName  = "settings"
	ConfigDirectory = ".config/gaucho"
	StateDirectory  = ".local/state/gaucho"

	DefaultAccessKey = "userid"
	DefaultSecretKey = "password"
)

const (
	KeyURL       = "url"
	KeyAccessKey = "access_key"
	KeySecretKey = "secret_key"
	KeySSLVerify = "ssl_verify"
	KeyLogLevel  = "log.level"
	KeyLogFile   = "log.file"
	KeyVerbose   = "verbose"
)

// Settings is resolved once at startup. Nothing downstream reads the
// environment.
type Settings struct {
	URL        string
	AccessKey  string
	SecretKey  string
	SSLVerify  bool
	CABundle   string
	RootCAs    *x509.CertPool
	LogLevel   slog.Level
	LogFile    string
	ConfigFile string
}

func ConfigDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirectory)
}

func StateDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, StateDirectory)
}

func DefaultLogFile() string {
	return filepath.Join(StateDir(), "log", "client.log")
}

// RegisterFlags adds the connection flags shared by every command.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("url", "", "Rancher API endpoint (env RANCHER_URL, CATTLE_URL)")
	flags.String("access-key", "", "API access key (env RANCHER_ACCESS_KEY, CATTLE_ACCESS_KEY)")
	flags.String("secret-key", "", "API secret key (env RANCHER_SECRET_KEY, CATTLE_SECRET_KEY)")
	flags.String("config", "", fmt.Sprintf("Configuration file (default $HOME/%s/%s.yaml)", ConfigDirectory, ConfigFileName))
	flags.Bool("verbose", false, "Show debug output on the console")
}

// Load merges, from strongest to weakest, changed flags, the environment, the
// configuration file and the built in defaults.
func Load(flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()

	v.SetDefault(KeyURL, gaucho.DefaultHost)
	v.SetDefault(KeyAccessKey, DefaultAccessKey)
	v.SetDefault(KeySecretKey, DefaultSecretKey)
	v.SetDefault(KeySSLVerify, "true")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, DefaultLogFile())

	// The first variable that is set wins, so RANCHER_* beats CATTLE_*.
	bindings := map[string][]string{
		KeyURL:       {"RANCHER_URL", "CATTLE_URL"},
		KeyAccessKey: {"RANCHER_ACCESS_KEY", "CATTLE_ACCESS_KEY"},
		KeySecretKey: {"RANCHER_SECRET_KEY", "CATTLE_SECRET_KEY"},
		KeySSLVerify: {"SSL_VERIFY"},
		KeyLogLevel:  {"GAUCHO_LOG_LEVEL"},
		KeyLogFile:   {"GAUCHO_LOG_FILE"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Settings{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	configFile := ""
	if flags != nil {
		for key, name := range map[string]string{
			KeyURL:       "url",
			KeyAccessKey: "access-key",
			KeySecretKey: "secret-key",
			KeyVerbose:   "verbose",
		} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Settings{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
		configFile, _ = flags.GetString("config")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Settings{}, fmt.Errorf("invalid log level %q: %w", v.GetString(KeyLogLevel), err)
	}
	if v.GetBool(KeyVerbose) {
		level = slog.LevelDebug
	}

	url := strings.TrimSpace(v.GetString(KeyURL))
	if url == "" {
		url = gaucho.DefaultHost
	}

	sslVerify := v.GetString(KeySSLVerify)
	bundle := ParseCABundle(sslVerify)
	roots, err := LoadRootCAs(bundle)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		URL:        url,
		AccessKey:  v.GetString(KeyAccessKey),
		SecretKey:  v.GetString(KeySecretKey),
		SSLVerify:  ParseSSLVerify(sslVerify),
		CABundle:   bundle,
		RootCAs:    roots,
		LogLevel:   level,
		LogFile:    util.ExpandHomePath(v.GetString(KeyLogFile)),
		ConfigFile: v.ConfigFileUsed(),
	}, nil
}

// ParseSSLVerify only turns verification off for "false", in any case.
func ParseSSLVerify(value string) bool {
	return !strings.EqualFold(strings.TrimSpace(value), "false")
}

// ParseCABundle returns the path SSL_VERIFY names when it points at an
// existing file, and "" otherwise.
func ParseCABundle(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "false") || strings.EqualFold(value, "true") {
		return ""
	}

	path := util.ExpandHomePath(value)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}

// LoadRootCAs reads a PEM bundle. An empty path keeps the system roots.
func LoadRootCAs(path string) (*x509.CertPool, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA bundle %s: %w", path, err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("no PEM certificates found in CA bundle %s", path)
	}
	return pool, nil
}
