package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/catalog"
	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type published struct {
	room  string
	event string
	data  interface{}
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (p *fakePublisher) Publish(room, event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, published{room: room, event: event, data: data})
}

func (p *fakePublisher) events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.msgs))
	for i, m := range p.msgs {
		out[i] = m.event
	}
	return out
}

type fakeOutboxRepo struct {
	mu      sync.Mutex
	drafts  []domain.OutboxDraft
	failing bool
}

func (r *fakeOutboxRepo) Insert(_ context.Context, _ repository.DBTX, d domain.OutboxDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errors.New("db down")
	}
	r.drafts = append(r.drafts, d)
	return nil
}

func (r *fakeOutboxRepo) FetchUnpublishedRows(context.Context, repository.DBTX, int) ([]repository.OutboxRow, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkPublished(context.Context, repository.DBTX, []int64) error { return nil }

func (r *fakeOutboxRepo) PurgePublished(context.Context, repository.DBTX, time.Time) (int64, error) {
	return 0, nil
}

func (r *fakeOutboxRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

func selectedEFT() domain.RawGame {
	return domain.RawGame{
		Name:           "eft",
		SelectedBranch: "default",
		IsSelected:     true,
		Branches:       []domain.RawBranch{{Name: "default"}},
	}
}

func TestHubNotifier_FollowsCatalogOrder(t *testing.T) {
	pub := &fakePublisher{}
	c := catalog.New(testLogger())
	_, err := c.Subscribe(NewHubNotifier(pub, testLogger()))
	require.NoError(t, err)

	c.ApplySnapshot([]domain.RawGame{selectedEFT()}, false, catalog.NewView("ru"))

	assert.Equal(t, []string{
		EventGameLoader,
		EventSelectedGameUpdated,
		EventSelectedBranchChanged,
		EventGameUpdated,
		EventLanguageRedraw,
	}, pub.events())

	for _, m := range pub.msgs {
		assert.Equal(t, RoomUI, m.room)
	}
	assert.Equal(t, map[string]string{"game": "eft"}, pub.msgs[0].data)
	assert.Equal(t, map[string]string{"language": "ru"}, pub.msgs[4].data)

	change, ok := pub.msgs[1].data.(SelectedGameChange)
	require.True(t, ok)
	assert.True(t, change.ForceRedraw)
	assert.Equal(t, "eft", change.New.Name)
}

func TestHubNotifier_EmptyBranchList(t *testing.T) {
	pub := &fakePublisher{}
	NewHubNotifier(pub, testLogger()).OnSelectedBranchChange(nil)

	require.Len(t, pub.msgs, 1)
	body, err := json.Marshal(pub.msgs[0].data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"branches":[]}`, string(body))
}

func TestOutboxNotifier_WritesQueuedEvents(t *testing.T) {
	repo := &fakeOutboxRepo{}
	n := NewOutboxNotifier(nil, repo, testLogger(), 16)

	c := catalog.New(testLogger())
	_, err := c.Subscribe(n)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	c.ApplySnapshot([]domain.RawGame{selectedEFT()}, false, catalog.NewView("en"))

	assert.Eventually(t, func() bool { return repo.count() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	types := make([]domain.EventType, 0, 3)
	for _, d := range repo.drafts {
		types = append(types, d.EventType)
	}
	assert.Equal(t, []domain.EventType{
		domain.EventGameSelected,
		domain.EventGameUpdated,
		domain.EventLanguageRedrawn,
	}, types)
	assert.Equal(t, int64(3), n.Written())
}

func TestOutboxNotifier_DropsWhenFull(t *testing.T) {
	repo := &fakeOutboxRepo{}
	n := NewOutboxNotifier(nil, repo, testLogger(), 1)

	g := domain.NewGame(selectedEFT())
	n.OnGameUpdated(domain.Game{}, g)
	n.OnGameUpdated(domain.Game{}, g)
	n.OnGameUpdated(domain.Game{}, g)

	assert.Equal(t, int64(2), n.Dropped())
}

func TestOutboxNotifier_FlushesOnShutdown(t *testing.T) {
	repo := &fakeOutboxRepo{}
	n := NewOutboxNotifier(nil, repo, testLogger(), 8)

	n.RedrawLanguage("de")
	n.RedrawLanguage("fr")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Run(ctx)

	assert.Equal(t, 2, repo.count())
}

func TestOutboxNotifier_WriteFailureIsNotFatal(t *testing.T) {
	repo := &fakeOutboxRepo{failing: true}
	n := NewOutboxNotifier(nil, repo, testLogger(), 8)

	n.RedrawLanguage("de")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() { n.Run(ctx) })
	assert.Zero(t, n.Written())
}
