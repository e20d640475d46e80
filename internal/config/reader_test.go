package config

import "testing"

func TestEnvReader_Read(t *testing.T) {
	t.Setenv("ENV", EnvDev)
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("STORAGE_SEED", "true")

	cfg, err := NewEnvReader().Read()
	if err != nil {
		t.Fatalf("Read() err=%v, want nil", err)
	}
	if cfg.Storage.Driver != StorageMemory {
		t.Fatalf("Storage.Driver=%q, want %q", cfg.Storage.Driver, StorageMemory)
	}
	if !cfg.Storage.Seed {
		t.Fatal("Storage.Seed=false, want true")
	}
	if cfg.HTTP.Port != "8080" {
		t.Fatalf("HTTP.Port=%q, want 8080", cfg.HTTP.Port)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:     EnvProd,
			Storage: StorageConfig{Driver: StoragePostgres},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown env", func(c *Config) { c.Env = "staging" }, true},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, true},
		{"admin without password", func(c *Config) { c.Admin.Email = "a@example.com" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err=%v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
