package teams

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domain "github.com/preston-bernstein/teams-api/internal/domain/teams"
	"github.com/preston-bernstein/teams-api/internal/metrics"
)

// docStore keeps the document in memory and counts saves.
type docStore struct {
	mu    sync.Mutex
	doc   *domain.Document
	saves int
}

func (s *docStore) Load(context.Context) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return domain.Document{}, domain.ErrNoDocument
	}
	return s.doc.Clone(), nil
}

func (s *docStore) Save(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := doc.Clone()
	s.doc = &cp
	s.saves++
	return nil
}

func input(name string) domain.Input {
	return domain.Input{
		Name:    domain.Text(name),
		League:  "Premier League",
		Country: "England",
		Founded: domain.YearOf(1892),
		Stadium: "Anfield",
	}
}

func seeded(t *testing.T, names ...string) (*Service, *docStore) {
	t.Helper()
	store := &docStore{}
	svc := NewService(store)
	for _, n := range names {
		_, err := svc.Create(context.Background(), input(n))
		require.NoError(t, err)
	}
	return svc, store
}

func TestCreateMintsSequentialIDs(t *testing.T) {
	r := require.New(t)
	svc, store := seeded(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, input("Liverpool"))
	r.NoError(err)
	r.Equal(domain.ID("1"), first.ID)

	second, err := svc.Create(ctx, input("Everton"))
	r.NoError(err)
	r.Equal(domain.ID("2"), second.ID)
	r.Equal(int64(3), store.doc.NextID)
	r.Equal(2, store.saves)
}

func TestCreateHonoursIDOrigin(t *testing.T) {
	svc := NewService(&docStore{}, WithIDOrigin(100))
	team, err := svc.Create(context.Background(), input("Liverpool"))
	require.NoError(t, err)
	require.Equal(t, domain.ID("100"), team.ID)
}

func TestCreateRejectsDuplicateNameAnyCase(t *testing.T) {
	r := require.New(t)
	svc, store := seeded(t, "Liverpool")

	_, err := svc.Create(context.Background(), input("  LIVERPOOL "))
	ve, ok := domain.AsValidationError(err)
	r.True(ok, "expected validation error, got %v", err)
	r.Equal(domain.MsgNameTaken, ve.Errors[domain.FieldName])

	stats, err := svc.Stats(context.Background())
	r.NoError(err)
	r.Equal(1, stats.TotalCount)
	r.Equal(1, store.saves)
}

func TestCreateFoundedBoundary(t *testing.T) {
	r := require.New(t)
	svc, _ := seeded(t)

	in := input("Old Club")
	in.Founded = domain.YearOf(1700)
	_, err := svc.Create(context.Background(), in)
	ve, ok := domain.AsValidationError(err)
	r.True(ok)
	r.Equal(domain.FieldErrors{domain.FieldFounded: domain.MsgFoundedTooEarly}, ve.Errors)

	in.Founded = domain.YearOf(1701)
	_, err = svc.Create(context.Background(), in)
	r.NoError(err)
}

func TestCreateReportsAllViolations(t *testing.T) {
	svc, store := seeded(t)
	_, err := svc.Create(context.Background(), domain.Input{})
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Errors, 5)
	require.Nil(t, store.doc, "rejected write must not save")
}

func TestUpdatePreservesIDAndOrder(t *testing.T) {
	r := require.New(t)
	svc, store := seeded(t, "Liverpool", "Everton", "Chelsea")

	in := input("Everton FC")
	in.Stadium = "Goodison Park"
	team, err := svc.Update(context.Background(), "2", in)
	r.NoError(err)
	r.Equal(domain.ID("2"), team.ID)
	r.Equal("Everton FC", team.Name)
	r.Equal("Goodison Park", store.doc.Teams[1].Stadium)
	r.Equal("Chelsea", store.doc.Teams[2].Name)
}

func TestUpdateKeepsOwnName(t *testing.T) {
	svc, _ := seeded(t, "Liverpool")
	_, err := svc.Update(context.Background(), "1", input("liverpool"))
	require.NoError(t, err)
}

func TestUpdateRejectsAnotherTeamsName(t *testing.T) {
	svc, _ := seeded(t, "Liverpool", "Everton")
	_, err := svc.Update(context.Background(), "2", input("Liverpool"))
	ve, ok := domain.AsValidationError(err)
	require.True(t, ok)
	require.Equal(t, domain.MsgNameTaken, ve.Errors[domain.FieldName])
}

func TestUpdateMissingTeamSkipsValidation(t *testing.T) {
	svc, _ := seeded(t, "Liverpool")
	_, err := svc.Update(context.Background(), "99", domain.Input{})
	require.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
	_, isValidation := domain.AsValidationError(err)
	require.False(t, isValidation)
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	r := require.New(t)
	svc, _ := seeded(t, "Liverpool", "Everton", "Chelsea")
	ctx := context.Background()

	id, err := svc.Delete(ctx, "2")
	r.NoError(err)
	r.Equal(domain.ID("2"), id)

	page, err := svc.List(ctx, 1)
	r.NoError(err)
	r.Equal(2, page.TotalCount)
	r.Equal("Liverpool", page.Items[0].Name)
	r.Equal("Chelsea", page.Items[1].Name)

	_, err = svc.Delete(ctx, "2")
	r.True(domain.IsNotFound(err))
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	svc, _ := seeded(t, "Liverpool", "Everton")
	ctx := context.Background()
	_, err := svc.Delete(ctx, "2")
	require.NoError(t, err)
	team, err := svc.Create(ctx, input("Chelsea"))
	require.NoError(t, err)
	require.Equal(t, domain.ID("3"), team.ID)
}

func TestListPaginates(t *testing.T) {
	r := require.New(t)
	names := make([]string, 0, 12)
	for i := 1; i <= 12; i++ {
		names = append(names, fmt.Sprintf("Club %02d", i))
	}
	svc, _ := seeded(t, names...)

	page, err := svc.List(context.Background(), 2)
	r.NoError(err)
	r.Equal(12, page.TotalCount)
	r.Equal(2, page.Page)
	r.Equal(domain.PageSize, page.PageSize)
	r.Len(page.Items, 2)
	r.Equal("Club 11", page.Items[0].Name)

	page, err = svc.List(context.Background(), -4)
	r.NoError(err)
	r.Equal(1, page.Page)
	r.Len(page.Items, 10)

	page, err = svc.List(context.Background(), 5)
	r.NoError(err)
	r.Empty(page.Items)
	r.NotNil(page.Items)
}

func TestListOnEmptyStore(t *testing.T) {
	svc := NewService(&docStore{})
	page, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 0, page.TotalCount)
	require.NotNil(t, page.Items)
}

func TestStatsGroupsByLeague(t *testing.T) {
	r := require.New(t)
	svc, _ := seeded(t, "Liverpool", "Everton")
	in := input("Celtic")
	in.League = "Scottish Premiership"
	_, err := svc.Create(context.Background(), in)
	r.NoError(err)

	stats, err := svc.Stats(context.Background())
	r.NoError(err)
	r.Equal(3, stats.TotalCount)
	r.Equal(map[string]int{"Premier League": 2, "Scottish Premiership": 1}, stats.TeamsPerLeague)
}

func TestLoadRepairsStaleCounter(t *testing.T) {
	doc, err := domain.DecodeDocument([]byte(`{"teams":[{"id":7,"name":"A","league":"L","country":"C","founded":1900,"stadium":"S"}],"nextId":2}`))
	require.NoError(t, err)
	store := &docStore{doc: &doc}
	svc := NewService(store)

	team, err := svc.Create(context.Background(), input("Liverpool"))
	require.NoError(t, err)
	require.Equal(t, domain.ID("8"), team.ID)
}

func TestUpdateMatchesNumericStoredID(t *testing.T) {
	doc, err := domain.DecodeDocument([]byte(`{"teams":[{"id":7,"name":"A","league":"L","country":"C","founded":1900,"stadium":"S","colour":"red"}],"nextId":8}`))
	require.NoError(t, err)
	store := &docStore{doc: &doc}
	svc := NewService(store)

	_, err = svc.Update(context.Background(), domain.ParseID("7"), input("Liverpool"))
	require.NoError(t, err)

	raw, err := domain.EncodeDocument(*store.doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"teams":[{"id":7,"name":"Liverpool","league":"Premier League","country":"England","founded":1892,"stadium":"Anfield","colour":"red"}],"nextId":8}`, string(raw))
}

func TestSaveFailureDiscardsMutation(t *testing.T) {
	r := require.New(t)
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	boom := errors.New("disk full")

	store.EXPECT().Load(gomock.Any()).Return(domain.NewDocument(1), nil).Times(2)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(boom)

	rec := metrics.NewRecorder()
	svc := NewService(store, WithRecorder(rec))

	_, err := svc.Create(context.Background(), input("Liverpool"))
	r.True(domain.IsStorage(err))
	r.ErrorIs(err, boom)

	stats, err := svc.Stats(context.Background())
	r.NoError(err)
	r.Equal(0, stats.TotalCount)
	r.Equal(1, rec.Operation(OpCreate).Failures)
}

func TestLoadFailureIsStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(domain.Document{}, errors.New("unreadable"))

	svc := NewService(store)
	_, err := svc.List(context.Background(), 1)
	require.True(t, domain.IsStorage(err))
}

func TestCancelledContextSkipsSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Times(0)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewService(store).Create(ctx, input("Liverpool"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSaveHookReceivesDocument(t *testing.T) {
	var got []domain.Document
	svc := NewService(&docStore{}, WithSaveHook(func(_ context.Context, doc domain.Document) {
		got = append(got, doc)
	}))
	_, err := svc.Create(context.Background(), input("Liverpool"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), domain.Input{})
	require.Error(t, err)

	require.Len(t, got, 1)
	require.Equal(t, "Liverpool", got[0].Teams[0].Name)
}

func TestRecorderCountsOutcomes(t *testing.T) {
	r := require.New(t)
	rec := metrics.NewRecorder()
	svc := NewService(&docStore{}, WithRecorder(rec))
	ctx := context.Background()

	_, _ = svc.Create(ctx, input("Liverpool"))
	_, _ = svc.Create(ctx, input("Liverpool"))
	_, _ = svc.Delete(ctx, "42")

	r.Equal(1, rec.Operation(OpCreate).Outcomes[metrics.OutcomeOK])
	r.Equal(1, rec.Operation(OpCreate).Outcomes[metrics.OutcomeInvalid])
	r.Equal(1, rec.Operation(OpDelete).Outcomes[metrics.OutcomeNotFound])
	r.Equal(1, rec.ValidationFailures(domain.FieldName))
}

func TestConcurrentCreatesSerialize(t *testing.T) {
	svc, store := seeded(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, input("Same Name"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	accepted := 0
	for err := range errs {
		if err == nil {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)
	require.Len(t, store.doc.Teams, 1)
}

func TestReady(t *testing.T) {
	require.NoError(t, NewService(&docStore{}).Ready(context.Background()))

	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	store.EXPECT().Load(gomock.Any()).Return(domain.Document{}, errors.New("down"))
	require.Error(t, NewService(store).Ready(context.Background()))
}
