package teams

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domain "github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/logging"
	"github.com/preston-bernstein/teams-api/internal/metrics"
)

// Operation names used in logs and metrics.
const (
	OpList   = "list"
	OpStats  = "stats"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// SaveHook runs after every successful save with a copy of the new document.
type SaveHook func(ctx context.Context, doc domain.Document)

// Service is the team store: it owns the load, validate, mutate and save
// cycle and is the only writer of the document.
type Service struct {
	mu        sync.RWMutex
	store     Store
	logger    *slog.Logger
	recorder  *metrics.Recorder
	origin    int64
	afterSave SaveHook
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for mutations and storage faults.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(s *Service) { s.recorder = rec }
}

// WithIDOrigin sets the first id minted for an empty document.
func WithIDOrigin(origin int64) Option {
	return func(s *Service) {
		if origin > 0 {
			s.origin = origin
		}
	}
}

// WithSaveHook registers fn to run after each successful save.
func WithSaveHook(fn SaveHook) Option {
	return func(s *Service) { s.afterSave = fn }
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, origin: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one page of teams in document order.
func (s *Service) List(ctx context.Context, page int) (p domain.Page, err error) {
	defer s.observe(OpList, time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Paginate(doc.Teams, page), nil
}

// Stats returns the team count overall and per league.
func (s *Service) Stats(ctx context.Context) (st domain.Stats, err error) {
	defer s.observe(OpStats, time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.load(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Summarize(doc.Teams), nil
}

// Create validates in and appends a new team with a freshly minted id.
func (s *Service) Create(ctx context.Context, in domain.Input) (team domain.Team, err error) {
	defer s.observe(OpCreate, time.Now(), &err)

	draft := in.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return domain.Team{}, err
	}
	if errs := draft.Validate(doc.Teams); errs != nil {
		return domain.Team{}, &domain.ValidationError{Errors: errs}
	}

	team = draft.NewTeam(doc.Mint())
	doc.Teams = append(doc.Teams, team)
	if err := s.save(ctx, doc); err != nil {
		return domain.Team{}, err
	}

	logging.Info(s.logger, "team created",
		logging.FieldTeamID, team.ID.String(),
		logging.FieldCount, len(doc.Teams),
	)
	return team, nil
}

// Update replaces the editable attributes of the team with the given id.
// A missing team is reported before any validation runs.
func (s *Service) Update(ctx context.Context, id domain.ID, in domain.Input) (team domain.Team, err error) {
	defer s.observe(OpUpdate, time.Now(), &err)

	draft := in.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return domain.Team{}, err
	}
	idx := doc.Index(id)
	if idx < 0 {
		return domain.Team{}, &domain.NotFoundError{ID: id}
	}
	if errs := draft.ValidateFor(id, doc.Teams); errs != nil {
		return domain.Team{}, &domain.ValidationError{Errors: errs}
	}

	doc.Teams[idx].Apply(draft)
	if err := s.save(ctx, doc); err != nil {
		return domain.Team{}, err
	}

	logging.Info(s.logger, "team updated", logging.FieldTeamID, id.String())
	return doc.Teams[idx], nil
}

// Delete removes the team with the given id and returns that id.
func (s *Service) Delete(ctx context.Context, id domain.ID) (deleted domain.ID, err error) {
	defer s.observe(OpDelete, time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	idx := doc.Index(id)
	if idx < 0 {
		return "", &domain.NotFoundError{ID: id}
	}

	deleted = doc.Teams[idx].ID
	doc.Teams = append(doc.Teams[:idx:idx], doc.Teams[idx+1:]...)
	if err := s.save(ctx, doc); err != nil {
		return "", err
	}

	logging.Info(s.logger, "team deleted",
		logging.FieldTeamID, deleted.String(),
		logging.FieldCount, len(doc.Teams),
	)
	return deleted, nil
}

// Ready reports whether the document can currently be loaded.
func (s *Service) Ready(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.load(ctx)
	return err
}

func (s *Service) load(ctx context.Context) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	doc, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNoDocument) {
		return domain.NewDocument(s.origin), nil
	}
	if err != nil {
		return domain.Document{}, domain.NewStorageError(domain.OpLoad, err)
	}
	if doc.Teams == nil {
		doc.Teams = []domain.Team{}
	}
	doc.RepairNextID(s.origin)
	return doc, nil
}

func (s *Service) save(ctx context.Context, doc domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return domain.NewStorageError(domain.OpSave, err)
	}
	if s.afterSave != nil {
		s.afterSave(ctx, doc.Clone())
	}
	return nil
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	err := *errp
	outcome := outcomeOf(err)
	s.recorder.RecordStoreOperation(op, outcome, time.Since(start))

	switch outcome {
	case metrics.OutcomeInvalid:
		ve, _ := domain.AsValidationError(err)
		s.recorder.RecordValidationFailure(op, ve.Fields())
		logging.Info(s.logger, "team rejected",
			logging.FieldOperation, op,
			logging.FieldFields, ve.Fields(),
		)
	case metrics.OutcomeError:
		logging.Error(s.logger, "team store operation failed", err,
			logging.FieldOperation, op,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case domain.IsNotFound(err):
		return metrics.OutcomeNotFound
	default:
		if _, ok := domain.AsValidationError(err); ok {
			return metrics.OutcomeInvalid
		}
		return metrics.OutcomeError
	}
}
