package config

import (
	"fmt"
	"strings"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

// DSNValue returns a MySQL DSN, either the configured one verbatim or one
// assembled from the host/port/user fields.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}

	loc := time.Local
	if v := strings.TrimSpace(c.Loc); v != "" && !strings.EqualFold(v, defaultDBLoc) {
		if parsed, err := time.LoadLocation(v); err == nil {
			loc = parsed
		}
	}

	conf := mysqlDriver.NewConfig()
	conf.User = user
	conf.Passwd = c.Password
	conf.Net = "tcp"
	conf.Addr = fmt.Sprintf("%s:%d", host, port)
	conf.DBName = name
	conf.ParseTime = true
	conf.Loc = loc
	conf.Params = map[string]string{"charset": charset}
	return conf.FormatDSN()
}
