package validator

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	//mysql and mssql go libraries
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"

	"github.com/trimble-oss/trcphotometry/pkg/core"
	eUtils "github.com/trimble-oss/trcphotometry/pkg/utils"
)

var sourceURLRegex = regexp.MustCompile(`(?i)(?:jdbc:(mysql|sqlserver|mariadb))://([\w\-\.]+)(?::(\d{0,5}))?(?:/|.*;DatabaseName=)(\w+)(.*certName=([\w\.\-/]+)|.*).*`)

// Heartbeat validates the database connection
func Heartbeat(conn *sql.DB) (bool, error) {
	// Open doesn't open a connection. Validate DSN data:
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ParseURL splits a jdbc style source url into driver, server, port, dbname
// and certName. Only mysql, mariadb and sqlserver are supported.
func ParseURL(config *core.CoreConfig, url string) (string, string, string, string, string, error) {
	m := sourceURLRegex.FindStringSubmatch(url)
	if m == nil {
		err := errors.New("incorrect URL format")
		eUtils.LogErrorObject(config, err, false)
		return "", "", "", "", "", err
	}
	certName := ""
	if len(m) >= 7 {
		certName = m[6]
	}
	return m[1], m[2], m[3], m[4], certName, nil
}
