package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// ToDriverDSN converts mariadb:// and mysql:// URLs into the go-sql-driver
// DSN form when driver is mysql. Every other input is returned unchanged.
func ToDriverDSN(driver, dsn string) (string, error) {
	if driver != "mysql" {
		return dsn, nil
	}
	if !strings.HasPrefix(dsn, "mariadb://") && !strings.HasPrefix(dsn, "mysql://") {
		return dsn, nil
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}

	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	name := strings.TrimPrefix(u.Path, "/")
	if user == "" || u.Host == "" || name == "" {
		return "", fmt.Errorf("incomplete dsn: user, host and database are required")
	}

	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.InterpolateParams = true
	return cfg.FormatDSN(), nil
}
