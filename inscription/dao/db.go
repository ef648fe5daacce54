package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/btcsuite/btclog"
	"github.com/go-sql-driver/mysql"
	"github.com/inscription-c/pins/constants"
	"github.com/inscription-c/pins/inscription/log"
	"github.com/pkg/errors"
	gormMysqlDriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB embeds gorm.DB with the job queries of this package.
type DB struct {
	*gorm.DB
}

// DBOptions holds the connection settings of the job database.
type DBOptions struct {
	addr     string
	user     string
	password string
	dbName   string

	log               btclog.Logger
	autoMigrateTables []interface{}
}

type DBOption func(*DBOptions)

func WithAddr(addr string) DBOption {
	return func(o *DBOptions) {
		o.addr = addr
	}
}

func WithUser(user string) DBOption {
	return func(o *DBOptions) {
		o.user = user
	}
}

func WithPassword(password string) DBOption {
	return func(o *DBOptions) {
		o.password = password
	}
}

func WithDBName(dbName string) DBOption {
	return func(o *DBOptions) {
		o.dbName = dbName
	}
}

func WithLogger(log btclog.Logger) DBOption {
	return func(o *DBOptions) {
		o.log = log
	}
}

// WithAutoMigrateTables sets the tables created or altered on open.
func WithAutoMigrateTables(tables ...interface{}) DBOption {
	return func(o *DBOptions) {
		o.autoMigrateTables = tables
	}
}

// Transaction runs fn inside a database transaction.
func (d *DB) Transaction(fn func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&DB{DB: tx})
	})
}

// dsn formats the driver DSN for dbName, which may be empty to connect
// without selecting a database.
func (o *DBOptions) dsn(dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = o.user
	cfg.Passwd = o.password
	cfg.Net = "tcp"
	cfg.Addr = o.addr
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// NewDB connects to the server, creates the database when missing and
// migrates the configured tables.
func NewDB(opts ...DBOption) (*DB, error) {
	options := &DBOptions{
		addr:   "127.0.0.1:3306",
		user:   constants.DefaultDBUser,
		dbName: constants.DefaultDBName,
		log:    log.Gorm,
	}
	for _, opt := range opts {
		opt(options)
	}

	db, err := gorm.Open(gormMysqlDriver.Open(options.dsn("")), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}
	createDb := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`;", options.dbName)
	if err = db.Exec(createDb).Error; err != nil {
		return nil, errors.Wrap(err, "gorm create database")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	db, err = gorm.Open(gormMysqlDriver.Open(options.dsn(options.dbName)), &gorm.Config{
		Logger: &GormLogger{Logger: options.log},
	})
	if err != nil {
		return nil, errors.Wrap(err, "gorm open")
	}
	if err := db.AutoMigrate(options.autoMigrateTables...); err != nil {
		return nil, errors.Wrap(err, "gorm migrate")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "gorm db")
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	return &DB{DB: db}, nil
}

// GormLogger routes gorm output to a btclog subsystem logger.
type GormLogger struct {
	btclog.Logger
}

func (g *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	switch level {
	case logger.Silent:
		g.Logger.SetLevel(btclog.LevelOff)
	case logger.Error:
		g.Logger.SetLevel(btclog.LevelError)
	case logger.Warn:
		g.Logger.SetLevel(btclog.LevelWarn)
	case logger.Info:
		g.Logger.SetLevel(btclog.LevelInfo)
	}
	return g
}

func (g *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Infof(msg, data...)
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Warnf(msg, data...)
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	g.Logger.Errorf(msg, data...)
}

// Trace logs every statement at trace level, and failed ones as errors.
func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	sqlInfo := struct {
		Elapsed int64  `json:"elapsed_ms"`
		Rows    int64  `json:"rows"`
		Err     string `json:"err,omitempty"`
		Sql     string `json:"sql"`
	}{
		Elapsed: time.Since(begin).Milliseconds(),
		Rows:    rows,
		Sql:     sql,
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sqlInfo.Err = err.Error()
		sqlInfoByte, _ := json.Marshal(sqlInfo)
		g.Logger.Error(string(sqlInfoByte))
		return
	}
	sqlInfoByte, _ := json.Marshal(sqlInfo)
	g.Logger.Trace(string(sqlInfoByte))
}
