package dbutil

import (
	"testing"
)

func TestBuildURL(t *testing.T) {
	cases := []struct {
		driver, port, tlsParam string
		want                   string
	}{
		{"mysql", "3306", "skip-verify", "mysql://reader:secret@db:3306/lsst?parseTime=true&tls=skip-verify"},
		{"mariadb", "", "tiercerontls", "mariadb://reader:secret@db/lsst?parseTime=true&tls=tiercerontls"},
		{"sqlserver", "", "skip-verify", "sqlserver://reader:secret@db:1433/lsst?TrustServerCertificate=true&encrypt=true"},
		{"sqlserver", "1500", "tiercerontls", "sqlserver://reader:secret@db:1500/lsst?encrypt=true"},
	}
	for _, c := range cases {
		got, err := BuildURL(c.driver, "reader", "secret", "db", c.port, "lsst", c.tlsParam)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != c.want {
			t.Fatalf("BuildURL(%s) = %s, want %s", c.driver, got, c.want)
		}
	}

	if _, err := BuildURL("postgres", "reader", "secret", "db", "", "lsst", ""); err == nil {
		t.Fatalf("Expected error for unsupported driver")
	}
}
