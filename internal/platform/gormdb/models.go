package gormdb

import "github.com/phrazzld/worldbench/internal/domain"

// worldRow maps the world table. The id is assigned by the seed data, never
// by the database.
type worldRow struct {
	ID           int32 `gorm:"column:id;primaryKey;autoIncrement:false"`
	RandomNumber int32 `gorm:"column:randomnumber;not null"`
}

func (worldRow) TableName() string { return "world" }

func (r worldRow) toDomain() *domain.World {
	return &domain.World{ID: r.ID, RandomNumber: r.RandomNumber}
}

type fortuneRow struct {
	ID      int32  `gorm:"column:id;primaryKey;autoIncrement:false"`
	Message string `gorm:"column:message;size:2048;not null"`
}

func (fortuneRow) TableName() string { return "fortune" }

func (r fortuneRow) toDomain() *domain.Fortune {
	return &domain.Fortune{ID: r.ID, Message: r.Message}
}
