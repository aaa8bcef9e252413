// Package repository はデータアクセス層の実装を提供する。
package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"encrypted-config-value/internal/domain"
)

// StoredKeyModel はgorm用のモデル定義。
type StoredKeyModel struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	WrappedKey []byte    `gorm:"type:blob;not null"`
	CreatedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"type:datetime;not null;autoUpdateTime"`
}

// TableName はテーブル名を返す。
func (StoredKeyModel) TableName() string {
	return "stored_keys"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *StoredKeyModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *StoredKeyModel) toDomain() *domain.StoredKey {
	return &domain.StoredKey{
		ID:         m.ID,
		Name:       m.Name,
		WrappedKey: m.WrappedKey,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// StoredKeyRepository はKMSでラップされた鍵テキストの永続化を提供する。
type StoredKeyRepository struct {
	db *gorm.DB
}

// NewStoredKeyRepository は新しいStoredKeyRepositoryを生成する。
func NewStoredKeyRepository(db *gorm.DB) *StoredKeyRepository {
	return &StoredKeyRepository{db: db}
}

// ExistsByName は指定された名前の鍵が存在するか確認する。
func (r *StoredKeyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&StoredKeyModel{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to count keys by name",
			"operation", "exists_by_name",
			"name", name,
			"error", err,
		)
		return false, err
	}
	return count > 0, nil
}

// Create は新しい鍵を保存する。
func (r *StoredKeyRepository) Create(ctx context.Context, key *domain.StoredKey) error {
	model := &StoredKeyModel{
		ID:         key.ID,
		Name:       key.Name,
		WrappedKey: key.WrappedKey,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create key",
			"operation", "create",
			"name", key.Name,
			"error", err,
		)
		return err
	}
	// gormで設定された値をドメインエンティティに反映
	key.ID = model.ID
	key.CreatedAt = model.CreatedAt
	key.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByName は指定された名前の鍵を取得する。存在しない場合は nil, nil を返す。
func (r *StoredKeyRepository) FindByName(ctx context.Context, name string) (*domain.StoredKey, error) {
	var model StoredKeyModel
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find key",
			"operation", "find_by_name",
			"name", name,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}
