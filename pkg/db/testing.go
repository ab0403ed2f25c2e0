package db

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// NewTest returns an isolated in-memory SQLite database. Every call gets its
// own named shared-cache database so concurrent connections of one test see
// the same data while tests stay independent.
func NewTest() (*gorm.DB, error) {
	name := fmt.Sprintf("file:chefetoile_test_%d?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", testDBSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(name), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}
