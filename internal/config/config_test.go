package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SUBMIT_RATE_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port default = %q", cfg.Port)
	}
	if cfg.SubmitRateLimit != "30-M" {
		t.Fatalf("rate limit default = %q", cfg.SubmitRateLimit)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("database url should default empty, got %q", cfg.DatabaseURL)
	}
}

func TestHTTPAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9090":  ":9090",
		":7070": ":7070",
	}
	for port, want := range cases {
		c := &Config{Port: port}
		if got := c.HTTPAddr(); got != want {
			t.Fatalf("HTTPAddr(%q) = %q, want %q", port, got, want)
		}
	}
}
