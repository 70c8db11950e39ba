package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	// models are kept in migration order, parents first
	models []any
	tables map[string]any
}

// NewDb opens a shared in-memory SQLite database and migrates the given models once per process.
func NewDb(models ...any) *Db {
	if db == nil {
		once.Do(
			func() {
				db = open(models)
			},
		)
	}

	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// a single connection keeps every query on the same in-memory database
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		tables: make(map[string]any, len(models)),
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) init() error {
	if err := d.DbConn.AutoMigrate(d.models...); err != nil {
		return err
	}

	for _, model := range d.models {
		stmt := &gorm.Statement{DB: d.DbConn}
		if err := stmt.Parse(model); err != nil {
			return err
		}
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
		d.tables[stmt.Schema.Table] = model
	}

	return nil
}

// ClearDB removes every row, children first.
func (d *Db) ClearDB() error {
	for i := len(d.models) - 1; i >= 0; i-- {
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(d.models[i]).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[table]
	return model, ok
}
