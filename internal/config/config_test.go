package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "complete config",
			cfg:  Config{Port: "3000", DatabaseURL: "postgres://localhost/firesignal", JWTSecret: "secret"},
		},
		{
			name:    "missing database url",
			cfg:     Config{Port: "3000", JWTSecret: "secret"},
			wantErr: true,
		},
		{
			name:    "missing jwt secret",
			cfg:     Config{Port: "3000", DatabaseURL: "postgres://localhost/firesignal"},
			wantErr: true,
		},
		{
			name: "redis optional",
			cfg:  Config{Port: "3000", DatabaseURL: "postgres://localhost/firesignal", JWTSecret: "secret", RedisAddr: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultsPort(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/firesignal")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("default port = %s, want 3000", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}
