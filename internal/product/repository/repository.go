package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/market/internal/product/domain"
)

// favCountColumn derives _count.favs at read time
const favCountColumn = "(SELECT COUNT(*) FROM favs WHERE favs.product_id = products.id) AS fav_count"

// withFavCount selects product columns plus the fav tally
func withFavCount(db *gorm.DB) *gorm.DB {
	return db.Select("products.*, " + favCountColumn)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Fav{}, &domain.Purchase{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID loads the product with its seller and fav count
func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Scopes(withFavCount).
		Preload("User").
		First(&product, "products.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindPage returns products in ascending id order so appends never shift earlier pages
func (r *GormProductRepository) FindPage(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	products := make([]domain.Product, 0, limit)
	err := r.db.WithContext(ctx).
		Scopes(withFavCount).
		Order("products.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// FindRelated matches other products whose name contains any word of product's name
func (r *GormProductRepository) FindRelated(ctx context.Context, product *domain.Product, limit int) ([]domain.Product, error) {
	related := make([]domain.Product, 0, limit)

	terms := strings.Fields(product.Name)
	if len(terms) == 0 {
		return related, nil
	}

	var (
		clauses []string
		args    []any
	)
	for _, term := range terms {
		clauses = append(clauses, `products.name LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
	}

	err := r.db.WithContext(ctx).
		Scopes(withFavCount).
		Where("products.id <> ?", product.ID).
		Where("("+strings.Join(clauses, " OR ")+")", args...).
		Order("products.id ASC").
		Limit(limit).
		Find(&related).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}
	return related, nil
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) IsLiked(ctx context.Context, productID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Fav{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check fav: %w", err)
	}
	return count > 0, nil
}

// ToggleFav runs find-then-create/delete in one transaction. A fav inserted
// by a racing toggle after the lookup is left in place and reported as liked.
func (r *GormProductRepository) ToggleFav(ctx context.Context, productID, userID uint) (bool, error) {
	var liked bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Product{}).Where("id = ?", productID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrProductNotFound
		}

		var fav domain.Fav
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).Take(&fav).Error
		switch {
		case err == nil:
			liked = false
			return tx.Delete(&fav).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			liked = true
			return tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&domain.Fav{UserID: userID, ProductID: productID}).Error
		default:
			return err
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return false, err
		}
		return false, fmt.Errorf("failed to toggle fav: %w", err)
	}
	return liked, nil
}

func (r *GormProductRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// ListRecords returns the newest records first, each with its product and fav count
func (r *GormProductRepository) ListRecords(ctx context.Context, kind domain.RecordKind, userID uint) ([]domain.Record, error) {
	db := r.db.WithContext(ctx)
	records := make([]domain.Record, 0)

	switch kind {
	case domain.RecordPurchases, domain.RecordSales:
		var purchases []domain.Purchase
		q := db.Model(&domain.Purchase{}).Select("purchases.*")
		if kind == domain.RecordPurchases {
			q = q.Where("purchases.user_id = ?", userID)
		} else {
			q = q.Joins("JOIN products ON products.id = purchases.product_id").
				Where("products.user_id = ?", userID)
		}
		err := q.Preload("Product", withFavCount).
			Order("purchases.id DESC").
			Find(&purchases).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", kind, err)
		}
		for _, p := range purchases {
			records = append(records, toRecord(p.ID, p.CreatedAt, p.Product))
		}

	case domain.RecordFavs:
		var favs []domain.Fav
		err := db.Where("user_id = ?", userID).
			Preload("Product", withFavCount).
			Order("id DESC").
			Find(&favs).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list favs: %w", err)
		}
		for _, f := range favs {
			records = append(records, toRecord(f.ID, f.CreatedAt, f.Product))
		}

	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", domain.ErrInvalidInput, kind)
	}

	return records, nil
}

func toRecord(id uint, createdAt time.Time, product *domain.Product) domain.Record {
	rec := domain.Record{ID: id, CreatedAt: createdAt}
	if product != nil {
		rec.Product = *product
	}
	return rec
}
