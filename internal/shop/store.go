// Package shop owns the root session state and the dispatch loop. The
// state machines stay pure; everything effectful (serialization, clock,
// id generation, logging, metrics, subscriber fan-out) lives here.
package shop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/cartflow/internal/cart"
	"github.com/angelmondragon/cartflow/internal/orders"
	"github.com/angelmondragon/cartflow/internal/products"
	"github.com/angelmondragon/cartflow/pkg/logger"
	"github.com/angelmondragon/cartflow/pkg/metrics"
)

// RootState aggregates the session state machines. Every value handed out
// by the store is a deep snapshot; holders can never reach back into the
// live state.
type RootState struct {
	Cart    cart.State
	Catalog products.CatalogState
	Orders  orders.LogState
}

// NewRootState returns the initial session state.
func NewRootState() RootState {
	return RootState{
		Cart:    cart.NewState(),
		Catalog: products.NewCatalogState(),
		Orders:  orders.NewLogState(),
	}
}

// Clone returns a deep copy of the snapshot.
func (s RootState) Clone() RootState {
	return RootState{
		Cart:    s.Cart.Clone(),
		Catalog: s.Catalog.Clone(),
		Orders:  s.Orders.Clone(),
	}
}

// Subscriber observes post-transition snapshots. Subscriber errors are
// logged and never fail the dispatch that triggered them.
type Subscriber func(RootState) error

// Options wires the store's collaborators.
type Options struct {
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	NewID   func() uuid.UUID
	Now     func() time.Time
	Catalog []products.Product
}

// Store serializes event application over the root state. Producers may
// dispatch from any goroutine; transitions are applied one at a time in
// lock order, so the machines only ever see one in-flight call.
type Store struct {
	mu    sync.Mutex
	state RootState
	subs  []Subscriber

	log     *logger.Logger
	metrics *metrics.StoreMetrics
	newID   func() uuid.UUID
	now     func() time.Time
}

// New builds a store, optionally seeded with an initial catalog.
func New(opts Options) (*Store, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	state := NewRootState()
	if len(opts.Catalog) > 0 {
		catalog, err := products.Transition(state.Catalog, products.ReplaceAll{Products: opts.Catalog})
		if err != nil {
			return nil, fmt.Errorf("seeding catalog: %w", err)
		}
		state.Catalog = catalog
	}

	return &Store{
		state:   state,
		log:     opts.Logger,
		metrics: opts.Metrics,
		newID:   opts.NewID,
		now:     opts.Now,
	}, nil
}

// State returns the current snapshot.
func (s *Store) State() RootState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers an observer for post-transition snapshots.
func (s *Store) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

// Dispatch applies one event atomically and returns the resulting
// snapshot. On error the previous state is kept and returned.
func (s *Store) Dispatch(ctx context.Context, event any) (RootState, error) {
	kind := kindOf(event)
	ctx = s.log.WithEventKind(ctx, kind)

	s.mu.Lock()
	ordersBefore := s.state.Orders.Count()
	next, err := s.apply(s.state, event)
	if err != nil {
		snapshot := s.state.Clone()
		s.mu.Unlock()
		s.metrics.ObserveTransition(kind, "error")
		s.log.Error(ctx, "transition rejected", err)
		return snapshot, err
	}
	s.state = next
	snapshot := next.Clone()
	subs := make([]Subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.metrics.ObserveTransition(kind, "ok")
	if snapshot.Orders.Count() > ordersBefore {
		s.metrics.IncOrderPlaced()
	}
	// Gauge precision is best-effort; exact amounts stay decimal inside
	// the state.
	total, _ := snapshot.Cart.TotalAmount.Float64()
	s.metrics.SetCartGauges(snapshot.Cart.Lines(), total)

	s.notify(ctx, snapshot, subs)
	s.log.Debug(ctx, "event applied")
	return snapshot, nil
}

// apply routes one event to the machines that recognize it. Concrete
// cases go before the interface cases so cascades and order placement
// take their dedicated paths.
func (s *Store) apply(state RootState, event any) (RootState, error) {
	switch ev := event.(type) {
	case products.DeleteProduct:
		catalog, err := products.Transition(state.Catalog, ev)
		if err != nil {
			return state, err
		}
		cartState, err := cart.Transition(state.Cart, cart.ProductDeleted{ProductID: ev.ProductID})
		if err != nil {
			return state, err
		}
		state.Catalog = catalog
		state.Cart = cartState
		return state, nil

	case cart.PlaceOrder:
		log, err := orders.Place(state.Orders, state.Cart, s.newID(), s.now())
		if err != nil {
			return state, err
		}
		cartState, err := cart.Transition(state.Cart, ev)
		if err != nil {
			return state, err
		}
		state.Orders = log
		state.Cart = cartState
		return state, nil

	case products.Event:
		catalog, err := products.Transition(state.Catalog, ev)
		if err != nil {
			return state, err
		}
		state.Catalog = catalog
		return state, nil

	case cart.Event:
		cartState, err := cart.Transition(state.Cart, ev)
		if err != nil {
			return state, err
		}
		state.Cart = cartState
		return state, nil

	default:
		return state, nil
	}
}

func (s *Store) notify(ctx context.Context, snapshot RootState, subs []Subscriber) {
	var errs error
	for _, sub := range subs {
		errs = multierr.Append(errs, sub(snapshot))
	}
	if errs != nil {
		s.log.Error(ctx, "subscriber errors", errs)
	}
}

func kindOf(event any) string {
	if typed, ok := event.(interface{ Kind() string }); ok {
		return typed.Kind()
	}
	return "unknown"
}
