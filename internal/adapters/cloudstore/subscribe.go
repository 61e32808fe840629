package cloudstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/ports"
)

const (
	listenMinInterval = time.Second
	listenMaxInterval = time.Minute
	listenPingPeriod  = 90 * time.Second
)

// Subscribe delivers one immediate full fetch, then listens on the
// work_records notification topic and re-fetches the complete collection on
// every event. The payload is ignored: any change means "refetch". This
// trades efficiency for correctness simplicity and avoids local/remote
// divergence.
//
// Channel problems reach onError wrapped in entities.ErrChannelError and do
// not stop the subscription; the view degrades to stale-until-next-event.
// The returned Unsubscribe is idempotent and releases the listener without
// cancelling in-flight fetches.
func (s *Store) Subscribe(ctx context.Context, onData func([]entities.WorkRecord), onError func(error)) ports.Unsubscribe {
	if !s.IsConfigured() {
		onError(entities.ErrNotConfigured)
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() { close(done) })
	}

	refetch := func() {
		records, err := s.List(ctx)
		if err != nil {
			onError(err)
			return
		}
		select {
		case <-done:
		default:
			onData(records)
		}
	}

	listener := pq.NewListener(s.db.DSN(), listenMinInterval, listenMaxInterval,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				onError(fmt.Errorf("%w: %v", entities.ErrChannelError, err))
			}
			if event == pq.ListenerEventReconnected {
				s.logger.Infow("Change notification channel reconnected")
			}
		})

	go func() {
		defer listener.Close()

		// Initial delivery before (and regardless of) channel setup.
		refetch()

		if err := listener.Listen(NotifyChannel); err != nil {
			onError(fmt.Errorf("%w: %v", entities.ErrChannelError, err))
			<-done
			return
		}

		for {
			select {
			case <-done:
				return
			case <-listener.Notify:
				// Insert, update or delete alike: refetch everything.
				refetch()
			case <-time.After(listenPingPeriod):
				go listener.Ping()
			}
		}
	}()

	return unsubscribe
}
