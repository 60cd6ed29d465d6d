package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

// AllergyProfile 資料表 allergy_profiles
type AllergyProfile struct {
	ID        uint     `gorm:"primaryKey"`
	UserID    string   `gorm:"uniqueIndex;size:128;not null"`
	Allergies []string `gorm:"serializer:json;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostgresStore gorm 儲存
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore 連線並自動建立資料表
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&AllergyProfile{}); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Get 取得過敏清單
func (s *PostgresStore) Get(ctx context.Context, userID string) ([]string, error) {
	var p AllergyProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", normalizeUserID(userID)).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load allergy profile: %w", err)
	}
	return common.NormalizeList(p.Allergies), nil
}

// Put 以 upsert 覆寫過敏清單
func (s *PostgresStore) Put(ctx context.Context, userID string, allergies []string) ([]string, error) {
	id := normalizeUserID(userID)
	if id == "" {
		return nil, common.NewValidationError("user id is required")
	}
	p := AllergyProfile{UserID: id, Allergies: common.NormalizeList(allergies)}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"allergies", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save allergy profile: %w", err)
	}
	return p.Allergies, nil
}

// Close 關閉連線池
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewStore 依設定選擇儲存，未設定 DSN 時使用記憶體
func NewStore(cfg *config.Config) (Store, error) {
	if cfg.Database.DSN == "" {
		common.LogInfo("過敏清單使用記憶體儲存")
		return NewMemoryStore(), nil
	}
	store, err := NewPostgresStore(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	common.LogInfo("過敏清單使用 PostgreSQL 儲存", zap.String("dsn", common.MaskSecret(cfg.Database.DSN)))
	return store, nil
}
