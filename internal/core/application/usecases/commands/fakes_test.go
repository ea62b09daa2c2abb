package commands_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"devis/internal/core/application/usecases/commands"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

var testNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustActor(kind quote.ActorKind) quote.Actor {
	actor, err := quote.NewActor(kernel.NewUUID(), kind)
	if err != nil {
		panic(err)
	}
	return actor
}

func ptr[T any](v T) *T { return &v }

// memoryStore is an in-memory database. Each unit of work works on a copy
// and publishes it on commit, so a rolled back transition leaves no trace.
type memoryStore struct {
	mu        sync.Mutex
	requests  map[kernel.UUID]quote.RequestState
	sequences map[string]int64

	// conflicts makes the next commits fail as if another writer won the race.
	conflicts int
	commits   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		requests:  map[kernel.UUID]quote.RequestState{},
		sequences: map[string]int64{},
	}
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) request(id kernel.UUID) quote.RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[id]
}

func (s *memoryStore) put(req *quote.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID()] = req.State()
}

type memoryUoW struct {
	store     *memoryStore
	requests  map[kernel.UUID]quote.RequestState
	sequences map[string]int64
	active    bool
}

func (u *memoryUoW) Begin(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.requests = maps.Clone(u.store.requests)
	u.sequences = maps.Clone(u.store.sequences)
	u.active = true
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if !u.active {
		return errors.New("no transaction")
	}
	u.active = false
	if u.store.conflicts > 0 {
		u.store.conflicts--
		return errs.NewConcurrencyConflictError("quote_requests", errors.New("serialization failure"))
	}
	u.store.requests = u.requests
	u.store.sequences = u.sequences
	u.store.commits++
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.active = false
	return nil
}

func (u *memoryUoW) QuoteRepository() ports.QuoteRepository       { return memoryQuotes{u} }
func (u *memoryUoW) SequenceRepository() ports.SequenceRepository { return memorySequences{u} }

type memoryQuotes struct{ uow *memoryUoW }

func (r memoryQuotes) Add(_ context.Context, req *quote.Request) error {
	if _, ok := r.uow.requests[req.ID()]; ok {
		return errs.NewConcurrencyConflictError("quote_requests", errors.New("duplicate id"))
	}
	r.uow.requests[req.ID()] = req.State()
	return nil
}

func (r memoryQuotes) Update(_ context.Context, req *quote.Request) error {
	if _, ok := r.uow.requests[req.ID()]; !ok {
		return errs.NewObjectNotFoundError("quoteRequestId", req.ID().String())
	}
	r.uow.requests[req.ID()] = req.State()
	return nil
}

func (r memoryQuotes) Get(_ context.Context, id kernel.UUID) (*quote.Request, error) {
	state, ok := r.uow.requests[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("quoteRequestId", id.String())
	}
	return quote.RestoreRequest(state)
}

func (r memoryQuotes) GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Request, error) {
	return r.Get(ctx, id)
}

func (r memoryQuotes) ListStaleSent(_ context.Context, before time.Time, limit int) ([]kernel.UUID, error) {
	var stale []quote.RequestState
	for _, s := range r.uow.requests {
		if s.Status == quote.QuoteSent && s.UpdatedAt.Before(before) {
			stale = append(stale, s)
		}
	}
	slices.SortFunc(stale, func(a, b quote.RequestState) int { return a.UpdatedAt.Compare(b.UpdatedAt) })

	ids := make([]kernel.UUID, 0, len(stale))
	for _, s := range stale {
		if len(ids) == limit {
			break
		}
		ids = append(ids, s.ID)
	}
	return ids, nil
}

type memorySequences struct{ uow *memoryUoW }

func (r memorySequences) Next(_ context.Context, key string, year int) (int64, error) {
	k := fmt.Sprintf("%s/%d", key, year)
	r.uow.sequences[k]++
	return r.uow.sequences[k], nil
}

// staticCatalog resolves the products it was built with.
type staticCatalog map[kernel.UUID]ports.Product

func newCatalog(products ...ports.Product) staticCatalog {
	c := staticCatalog{}
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}

func (c staticCatalog) Resolve(_ context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.Product, error) {
	found := map[kernel.UUID]ports.Product{}
	for _, id := range ids {
		if p, ok := c[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func tire(price string) ports.Product {
	return ports.Product{
		ID:    kernel.NewUUID(),
		Name:  "Primacy 4",
		Brand: "Michelin",
		Size:  quote.TireSize{Width: "205", Profile: "55", Diameter: "R16"},
		Price: kernel.MustMoney(price),
	}
}

type recordingCart struct {
	mu      sync.Mutex
	cleared []kernel.UUID
	err     error

	// onClear runs after the cart is cleared, e.g. to cancel the caller.
	onClear func()
}

func (c *recordingCart) Clear(_ context.Context, clientID kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, clientID)
	if c.onClear != nil {
		c.onClear()
	}
	return c.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error

	// ctxErrs and deadlines describe the context each message was sent with.
	ctxErrs   []error
	deadlines []bool
}

func (n *recordingNotifier) Notify(ctx context.Context, msg notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
	_, ok := ctx.Deadline()
	n.deadlines = append(n.deadlines, ok)
	return n.err
}

func (n *recordingNotifier) kinds() []notification.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]notification.Kind, 0, len(n.sent))
	for _, msg := range n.sent {
		kinds = append(kinds, msg.Kind())
	}
	return kinds
}

func (n *recordingNotifier) last() notification.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[len(n.sent)-1]
}

// memoryObjects is an object store keeping documents in a map.
type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes []string
}

const objectsBaseURL = "https://cdn.example.test/"

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: map[string][]byte{}}
}

func (s *memoryObjects) Upload(_ context.Context, data []byte, path, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return objectsBaseURL + path, nil
}

func (s *memoryObjects) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	s.deletes = append(s.deletes, path)
	return nil
}

func (s *memoryObjects) PathFromURL(url string) (string, bool) {
	return strings.CutPrefix(url, objectsBaseURL)
}

func (s *memoryObjects) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.objects))
}

// failingUploads is an object store that refuses every upload.
type failingUploads struct{ *memoryObjects }

func (failingUploads) Upload(context.Context, []byte, string, string) (string, error) {
	return "", errors.New("bucket unreachable")
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, ports.DocumentPayload) ([]byte, error) {
	return nil, errors.New("renderer timed out")
}

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, payload ports.DocumentPayload) ([]byte, error) {
	return fmt.Appendf(nil, "%%PDF-1.7 %v", payload["quote"]), nil
}

type directory map[kernel.UUID]ports.Identity

func (d directory) Identity(_ context.Context, id kernel.UUID) (*ports.Identity, error) {
	identity, ok := d[id]
	if !ok {
		return nil, nil
	}
	return &identity, nil
}

func (d directory) Addresses(context.Context, kernel.UUID) ([]ports.Address, error) {
	return []ports.Address{{Line1: "12 rue des Lilas", PostalCode: "69003", City: "Lyon", Country: "FR", IsDefault: true}}, nil
}
