package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/gradable-block-service/internal/cache"
	"github.com/SAP-F-2025/gradable-block-service/internal/models"
	"github.com/SAP-F-2025/gradable-block-service/internal/repositories"
)

type BlockPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewBlockPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.BlockRepository {
	return &BlockPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (b *BlockPostgreSQL) Create(ctx context.Context, tx *gorm.DB, block *models.Block) error {
	db := b.helpers.getDB(tx)
	return b.helpers.mapError("create block", db.WithContext(ctx).Create(block).Error)
}

func (b *BlockPostgreSQL) GetByLocation(ctx context.Context, tx *gorm.DB, location string) (*models.Block, error) {
	db := b.helpers.getDB(tx)

	// Reads inside a transaction must see uncommitted writes
	if tx != nil {
		var block models.Block
		if err := db.WithContext(ctx).Where("location = ?", location).First(&block).Error; err != nil {
			return nil, b.helpers.mapError("get block", err)
		}
		return &block, nil
	}

	var block models.Block
	err := b.cacheManager.Block.CacheOrExecute(ctx, cache.BlockKey(location), &block, cache.BlockCacheConfig.TTL, func() (interface{}, error) {
		var dbBlock models.Block
		if err := db.WithContext(ctx).Where("location = ?", location).First(&dbBlock).Error; err != nil {
			return nil, b.helpers.mapError("get block", err)
		}
		return &dbBlock, nil
	})
	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (b *BlockPostgreSQL) UpdateSettings(ctx context.Context, tx *gorm.DB, block *models.Block) error {
	db := b.helpers.getDB(tx)

	// A map is used so nil fields are written as NULL
	result := db.WithContext(ctx).
		Model(&models.Block{}).
		Where("location = ?", block.Location).
		Updates(map[string]interface{}{
			"display_name": block.DisplayName,
			"description":  block.Description,
			"weight":       block.Weight,
			"attempts":     block.Attempts,
		})
	if result.Error != nil {
		return b.helpers.mapError("update block settings", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateBlockCache(ctx, b.cacheManager, block.Location)
	return nil
}
