package patient

import (
	"context"
	"time"
)

// Repository — хранилище пациентов для онлайн-операций. Все методы
// фильтруют по владельцу.
type Repository interface {
	List(ctx context.Context, userID int) ([]Patient, error)
	Get(ctx context.Context, userID int, id int64) (*Patient, error)
	Create(ctx context.Context, userID int, f *Fields) (int64, error)
	Update(ctx context.Context, userID int, id int64, f *Fields, notNewerThan time.Time) error
	Delete(ctx context.Context, userID int, id int64) error
}
