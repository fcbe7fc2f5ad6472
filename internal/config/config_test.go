package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	c := Config{}
	c.HTTP.Port = 8080
	c.ApplyDefaults()
	return c
}

func TestApplyDefaults(t *testing.T) {
	c := validConfig()

	if c.Database.Driver != "bolt" {
		t.Errorf("default driver = %q, want bolt", c.Database.Driver)
	}
	if c.Database.Path != "data/assistant.db" {
		t.Errorf("default path = %q", c.Database.Path)
	}
	if c.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("default embedding model = %q", c.Embedding.Model)
	}
	if c.Chat.Model != "gpt-4o" {
		t.Errorf("default chat model = %q", c.Chat.Model)
	}
	if c.Chat.Temperature != 0.9 {
		t.Errorf("default temperature = %v", c.Chat.Temperature)
	}
	if c.Cart.TTLHours != 72 {
		t.Errorf("default cart TTL = %d", c.Cart.TTLHours)
	}
	if c.HTTP.RateLimitRPS != 5 || c.HTTP.RateLimitBurst != 20 {
		t.Errorf("default rate limit = %v/%d", c.HTTP.RateLimitRPS, c.HTTP.RateLimitBurst)
	}
	if c.Store.KeyPrefix != "assistant:" {
		t.Errorf("default key prefix = %q", c.Store.KeyPrefix)
	}
}

func TestValidate(t *testing.T) {
	c := validConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	bad := validConfig()
	bad.HTTP.Port = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	bad = validConfig()
	bad.Database.Driver = "cassandra"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}

	bad = validConfig()
	bad.Database.Driver = "redis"
	bad.Database.Addrs = nil
	if err := bad.Validate(); err == nil {
		t.Error("expected error for redis driver without addrs")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_ASSISTANT_KEY", "sekrit")

	in := []byte("api_key: ${TEST_ASSISTANT_KEY}\nmodel: ${TEST_ASSISTANT_MODEL:-gpt-4o}\nempty: ${TEST_ASSISTANT_UNSET}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "api_key: sekrit") {
		t.Errorf("env var not expanded: %q", out)
	}
	if !strings.Contains(out, "model: gpt-4o") {
		t.Errorf("default not applied: %q", out)
	}
	if !strings.Contains(out, "empty: \n") && !strings.HasSuffix(out, "empty: ") {
		t.Errorf("unset var should expand to empty: %q", out)
	}
}
