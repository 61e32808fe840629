package ports

import (
	"context"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
)

// RecordStore is the persistence contract shared by the local and cloud
// variants. Save replaces by id or appends, stamping UpdatedAt (and
// CreatedAt on first save). Delete of an absent id succeeds.
type RecordStore interface {
	List(ctx context.Context) ([]entities.WorkRecord, error)
	Save(ctx context.Context, record *entities.WorkRecord) error
	Delete(ctx context.Context, id string) error
}

// LocalRecordStore adds the raw read the migration bridge needs: the
// collection as persisted, without the first-use seeding List performs.
type LocalRecordStore interface {
	RecordStore
	Existing(ctx context.Context) ([]entities.WorkRecord, error)
}

// Unsubscribe releases a subscription's channel resources. Calling it more
// than once is safe; it stops further deliveries but does not cancel
// in-flight store calls.
type Unsubscribe func()

// CloudRecordStore extends the store contract with the push-based refresh
// channel and the bulk operations only the remote table supports.
//
// Subscribe delivers one full fetch immediately, then a fresh full
// collection after every table change; the notification payload is ignored.
// Channel failures reach onError as entities.ErrChannelError wraps and
// degrade to delayed updates rather than stopping the store. Save and
// Delete are fire-and-forget with respect to subscribers: success means
// durability, the subscribed view catches up via the channel.
type CloudRecordStore interface {
	RecordStore
	Subscribe(ctx context.Context, onData func([]entities.WorkRecord), onError func(error)) Unsubscribe
	SaveAll(ctx context.Context, records []entities.WorkRecord) error
	DeleteByOwner(ctx context.Context, developerName string) error
	IsConfigured() bool
}

// RecordFilter narrows the admin view. A zero Month means all time; an
// empty Developers set means no owner restriction.
type RecordFilter struct {
	Month      string
	Developers []string
}
