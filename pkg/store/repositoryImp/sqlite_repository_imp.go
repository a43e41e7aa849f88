package repositoryImp

import (
	"errors"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"farm/entities"
	"farm/pkg/store/repository"
)

type sqliteRepo struct {
	db   *gorm.DB
	path string
}

// NewSQLite keeps every collection as one row of collection_docs.
// path is the database file and is only used to place backups.
func NewSQLite(db *gorm.DB, path string) repository.Backend {
	return &sqliteRepo{db: db, path: path}
}

func (r *sqliteRepo) Read(name string) ([]byte, error) {
	var doc entities.CollectionDoc
	if err := r.db.Where("name = ?", name).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotExist
		}
		return nil, err
	}
	return []byte(doc.Payload), nil
}

func (r *sqliteRepo) Write(name string, data []byte) error {
	doc := entities.CollectionDoc{Name: name, Payload: string(data)}
	return r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error
}

func (r *sqliteRepo) Remove(name string) error {
	return r.db.Where("name = ?", name).Delete(&entities.CollectionDoc{}).Error
}

// Backup writes a consistent copy next to the database file with VACUUM INTO.
func (r *sqliteRepo) Backup(stamp string) (string, error) {
	ext := filepath.Ext(r.path)
	dst := strings.TrimSuffix(r.path, ext) + "_backup_" + stamp + ext
	if err := r.db.Exec("VACUUM INTO ?", dst).Error; err != nil {
		return "", err
	}
	return dst, nil
}

func (r *sqliteRepo) Ping() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
