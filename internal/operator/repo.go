package operator

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, o *Operator) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return db.Create(o).Error
}

func (r *Repo) FindByUsername(ctx context.Context, username string) (*Operator, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var o Operator
	if err := db.Where("username = ?", username).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Operator, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var o Operator
	if err := db.Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]Operator, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := db.Model(&Operator{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var operators []Operator
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&operators).Error; err != nil {
		return nil, 0, err
	}
	return operators, total, nil
}
