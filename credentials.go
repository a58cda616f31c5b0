package duckdns

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Environment variables consulted when the corresponding command-line value
// is absent.
const (
	EnvDomains = "DUCKDNS_DOMAINS"
	EnvToken   = "DUCKDNS_TOKEN"
	EnvIP      = "DUCKDNS_IP"
)

var (
	ErrDomainsMissing = errors.New("Domains not provided")
	ErrTokenMissing   = errors.New("Token not provided")
)

// Credentials is the resolved {domains, token, ip} tuple used for one update
// attempt. It is created once per run and never modified afterwards.
type Credentials struct {
	Domains []string
	Token   string
	// IP may be empty,
	// in which case Duck DNS detects the caller's apparent address.
	IP string
}

// configFile mirrors the recognized fields of config.json.
type configFile struct {
	Domains string `json:"domains"`
	Token   string `json:"token"`
	IP      string `json:"ip"`
}

// ResolveCredentials gathers domains, token, and IP from three ranked
// sources: explicit values win, then environment variables, then fields of
// the config file at configPath.
// Each field picks its winning source independently.
//
// A missing config file contributes no values.
// An unreadable or malformed config file is logged as an Error and likewise
// contributes no values; resolution continues with the other sources.
// ResolveCredentials performs no network I/O and holds no state between
// calls: identical inputs resolve to identical credentials.
func ResolveCredentials(domains, token, ip, configPath string, logger *Logger) (Credentials, error) {
	if logger == nil {
		logger = discard
	}
	file := readConfigFile(configPath, logger)

	resolved := Credentials{
		Domains: splitDomains(firstNonEmpty(domains, os.Getenv(EnvDomains), file.Domains)),
		Token:   firstNonEmpty(token, os.Getenv(EnvToken), file.Token),
		IP:      firstNonEmpty(ip, os.Getenv(EnvIP), file.IP),
	}

	if len(resolved.Domains) == 0 {
		return Credentials{}, ErrDomainsMissing
	}
	if resolved.Token == "" {
		return Credentials{}, ErrTokenMissing
	}
	return resolved, nil
}

// DefaultConfigPath returns the default config.json location,
// beside the executable.
func DefaultConfigPath() string {
	return besideExecutable("config.json")
}

// DefaultLogPath returns the default log file location,
// beside the executable.
func DefaultLogPath() string {
	return besideExecutable("duckdns.log")
}

func besideExecutable(name string) string {
	exe, err := os.Executable()
	if err != nil {
		// fall back to the working directory
		return name
	}
	return filepath.Join(filepath.Dir(exe), name)
}

func readConfigFile(path string, logger *Logger) configFile {
	var cf configFile
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cf
	}
	if err != nil {
		logger.Error("Could not read config file %q: %s", path, err)
		return cf
	}
	if err := json.Unmarshal(data, &cf); err != nil {
		logger.Error("Could not parse config file %q: %s", path, err)
		return configFile{}
	}
	return cf
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitDomains(s string) (domains []string) {
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}
	return domains
}
