package consultation

import (
	"context"
	"time"
)

// Repository — хранилище консультаций для онлайн-операций.
type Repository interface {
	List(ctx context.Context, userID int, patientID int64) ([]Consultation, error)
	Get(ctx context.Context, userID int, id int64) (*Consultation, error)
	Create(ctx context.Context, userID int, f *Fields) (int64, error)
	Update(ctx context.Context, userID int, id int64, f *Fields, notNewerThan time.Time) error
	Delete(ctx context.Context, userID int, id int64) error
}
