package database

import (
	"testing"

	"go-storefront-admin/config"
)

func TestDSN(t *testing.T) {
	if got := DSN(config.PostgresConfig{URL: "postgres://u:p@db/x"}); got != "postgres://u:p@db/x" {
		t.Fatalf("DSN with URL = %q", got)
	}
	got := DSN(config.PostgresConfig{Host: "db", Port: "5433", User: "admin", Password: "pw", DBName: "console"})
	want := "host=db user=admin password=pw dbname=console port=5433 sslmode=disable TimeZone=UTC"
	if got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
