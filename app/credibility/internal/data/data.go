package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/conf"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var schemas = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS analysis_results (
			id SERIAL PRIMARY KEY,
			url TEXT,
			title TEXT,
			content_snippet TEXT,
			credibility_score INTEGER NOT NULL,
			breakdown JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_analysis_results_created_at ON analysis_results (created_at DESC, id DESC);
	`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS analysis_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT,
			title TEXT,
			content_snippet TEXT,
			credibility_score INTEGER NOT NULL,
			breakdown TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analysis_results_created_at ON analysis_results (created_at DESC, id DESC);
	`,
}

// Data 持有数据库连接
type Data struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// NewData 打开数据库、初始化表结构，按需写入示例数据
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	if c == nil || c.Database == nil {
		return nil, nil, fmt.Errorf("data.database is not configured")
	}
	d, err := Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}

	helper := log.NewHelper(logger)
	if c.Seed {
		if err := d.seed(context.Background(), helper); err != nil {
			d.db.Close()
			return nil, nil, fmt.Errorf("failed to seed analysis_results: %w", err)
		}
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		d.db.Close()
	}
	return d, cleanup, nil
}

// Open 打开并初始化数据库，供 CLI 与测试直接使用
func Open(driver, source string) (*Data, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite 单写者，避免 database is locked
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init analysis_results table: %w", err)
	}

	return &Data{db: db, driver: driver, now: time.Now}, nil
}

// Close 关闭数据库连接
func (d *Data) Close() error {
	return d.db.Close()
}

// rebind 把 ? 占位符转换为 postgres 的 $n
func (d *Data) rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
