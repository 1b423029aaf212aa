package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// env returns a Lookup backed by a map.
func env(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8000)
	}
	if cfg.Parse.MaxInputSize != 32<<20 {
		t.Errorf("Parse.MaxInputSize = %d, want %d", cfg.Parse.MaxInputSize, 32<<20)
	}
	if cfg.Parse.MaxConcurrent != 8 {
		t.Errorf("Parse.MaxConcurrent = %d, want %d", cfg.Parse.MaxConcurrent, 8)
	}
	if cfg.Parse.MaxWaitTime != 10*time.Second {
		t.Errorf("Parse.MaxWaitTime = %v, want 10s", cfg.Parse.MaxWaitTime)
	}
	if !cfg.Parse.EnableSpreadsheet || !cfg.Parse.ExposeInternalErrors {
		t.Errorf("Parse flags = %+v, want both true", cfg.Parse)
	}
	wantOrigins := []string{"http://localhost:3000", "http://localhost:8000"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, wantOrigins) {
		t.Errorf("CORS.AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, wantOrigins)
	}
	if cfg.Security.TrustedProxies != nil {
		t.Errorf("Security.TrustedProxies = %v, want nil", cfg.Security.TrustedProxies)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"SERVER_PORT":              "9090",
		"PARSE_MAX_CONCURRENT":     "2",
		"PARSE_ENABLE_SPREADSHEET": "false",
		"LOG_LEVEL":                "debug",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Parse.MaxConcurrent != 2 {
		t.Errorf("Parse.MaxConcurrent = %d, want %d", cfg.Parse.MaxConcurrent, 2)
	}
	if cfg.Parse.EnableSpreadsheet {
		t.Error("Parse.EnableSpreadsheet = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"PORT": "7000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7000)
	}

	// Primary name wins
	cfg, err = LoadFrom(env(map[string]string{"PORT": "7000", "SERVER_PORT": "7001"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7001)
	}
}

func TestLoad_BlankUsesDefault(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{"SERVER_HOST": "   "}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{name: "bad integer", vars: map[string]string{"SERVER_PORT": "eighty"}, want: "SERVER_PORT"},
		{name: "bad duration", vars: map[string]string{"PARSE_MAX_WAIT_TIME": "10"}, want: "PARSE_MAX_WAIT_TIME"},
		{name: "bad boolean", vars: map[string]string{"PARSE_ENABLE_SPREADSHEET": "maybe"}, want: "PARSE_ENABLE_SPREADSHEET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(env(tt.vars))
			if err == nil {
				t.Fatal("LoadFrom() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %s", err, tt.want)
			}
		})
	}
}

func TestLoad_Duration(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"SERVER_READ_TIMEOUT": "45s",
		"PARSE_MAX_WAIT_TIME": "1m30s",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Parse.MaxWaitTime != 90*time.Second {
		t.Errorf("Parse.MaxWaitTime = %v, want %v", cfg.Parse.MaxWaitTime, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12,,192.168.0.0/16",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if !reflect.DeepEqual(cfg.Security.TrustedProxies, expected) {
		t.Errorf("TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, expected)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "invalid port",
			mutate: func(c *Config) { c.Server.Port = 70000 },
			want:   "SERVER_PORT",
		},
		{
			name:   "zero input size",
			mutate: func(c *Config) { c.Parse.MaxInputSize = 0 },
			want:   "PARSE_MAX_INPUT_SIZE",
		},
		{
			name:   "zero concurrency",
			mutate: func(c *Config) { c.Parse.MaxConcurrent = 0 },
			want:   "PARSE_MAX_CONCURRENT",
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(c *Config) {
				c.CORS.AllowedOrigins = []string{"*"}
				c.CORS.AllowCredentials = true
			},
			want: "CORS_ALLOWED_ORIGINS",
		},
		{
			name:   "invalid log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			want:   "LOG_LEVEL",
		},
		{
			name:   "invalid log format",
			mutate: func(c *Config) { c.Logging.Format = "xml" },
			want:   "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(env(nil))
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg, _ := LoadFrom(env(nil))
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") || !strings.Contains(err.Error(), "LOG_FORMAT") {
		t.Errorf("error should list both failures: %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"0.0.0.0", 8000, "0.0.0.0:8000"},
		{"localhost", 3000, "localhost:3000"},
		{"", 9000, ":9000"},
	}

	for _, tt := range tests {
		cfg := ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg, _ := LoadFrom(env(nil))
	s := cfg.String()

	for _, want := range []string{"Port: 8000", "MaxConcurrent: 8", "http://localhost:3000"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
