//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/bsglauncher/webui/internal/repository"
	"github.com/bsglauncher/webui/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Snapshot Repository Tests ---

func TestSnapshotRepository_SaveLatestPrune(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 4; i++ {
		games := testutil.SampleGames()[:1]
		games[0].GameEdition = []string{"standard", "left", "prepare", "edge"}[i]
		require.NoError(t, env.Snapshots.Save(ctx, env.Pool, repository.SourcePoll, games, base.Add(time.Duration(i)*time.Second)))
	}

	latest, err := env.Snapshots.Latest(ctx, env.Pool)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, repository.SourcePoll, latest.Source)
	require.Len(t, latest.Games, 1)
	assert.Equal(t, "edge", latest.Games[0].GameEdition)
	assert.Len(t, latest.Games[0].Branches, 2)

	pruned, err := env.Snapshots.Prune(ctx, env.Pool, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)
	assert.Equal(t, 2, testutil.CountSnapshots(t, env, repository.SourcePoll))

	latest, err = env.Snapshots.Latest(ctx, env.Pool)
	require.NoError(t, err)
	assert.Equal(t, "edge", latest.Games[0].GameEdition)
}

func TestSnapshotRepository_LatestEmpty(t *testing.T) {
	env := testutil.NewTestEnv(t)

	latest, err := env.Snapshots.Latest(context.Background(), env.Pool)
	require.NoError(t, err)
	assert.Nil(t, latest)
}

// --- Settings Repository Tests ---

func TestSettingsRepository_Upsert(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	stored, err := env.Settings.Load(ctx, env.Pool)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, env.Settings.Save(ctx, env.Pool, domain.Settings{Language: "ru", SelectedGame: "eft"}))
	require.NoError(t, env.Settings.Save(ctx, env.Pool, domain.Settings{Language: "de", SelectedGame: "arena"}))

	stored, err = env.Settings.Load(ctx, env.Pool)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "de", stored.Language)
	assert.Equal(t, "arena", stored.SelectedGame)
}

// --- Outbox Repository Tests ---

func TestOutboxRepository_InsertFetchMark(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	repo := repository.NewOutboxRepository()

	now := time.Now().UTC()
	for _, name := range []string{"eft", "arena"} {
		draft, err := domain.NewOutboxDraft(domain.AggregateGame, name, domain.EventGameUpdated,
			map[string]string{"name": name}, now)
		require.NoError(t, err)
		require.NoError(t, repo.Insert(ctx, env.Pool, draft))
	}

	rows, err := repo.FetchUnpublishedRows(ctx, env.Pool, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "eft", rows[0].AggregateID)
	assert.Equal(t, "arena", rows[1].AggregateID)
	assert.Less(t, rows[0].SeqID, rows[1].SeqID)

	require.NoError(t, repo.MarkPublished(ctx, env.Pool, []int64{rows[0].SeqID}))

	rows, err = repo.FetchUnpublishedRows(ctx, env.Pool, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "arena", rows[0].AggregateID)
}

// --- Host Push Tests ---

func TestHostPush_AppliesAndPersists(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PushSnapshot(testutil.SampleGames(), false, "push-1")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var result struct {
		Games   int  `json:"games"`
		Changed int  `json:"changed"`
		Force   bool `json:"force"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, 2, result.Games)
	assert.Equal(t, 2, result.Changed)
	assert.False(t, result.Force)

	assert.Equal(t, 1, testutil.CountSnapshots(t, env, repository.SourcePush))

	resp = env.GET("/games/selected")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var selected domain.Game
	testutil.DecodeJSON(t, resp, &selected)
	assert.Equal(t, "eft", selected.Name)
	assert.Equal(t, "live", selected.SelectedBranchName)

	// game.updated plus game.selected for the selected game.
	require.Eventually(t, func() bool {
		return testutil.CountOutboxEvents(t, env, "eft") >= 2
	}, 5*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool {
		return testutil.CountOutboxEvents(t, env, "arena") >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestHostPush_UnchangedSnapshotIsSkipped(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PushSnapshot(testutil.SampleGames(), false, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = env.PushSnapshot(testutil.SampleGames(), false, "")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var result struct {
		Changed int `json:"changed"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, 0, result.Changed)
	assert.Equal(t, 2, testutil.CountSnapshots(t, env, repository.SourcePush))
}

func TestHostPush_RepeatedIdempotencyKey(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PushSnapshot(testutil.SampleGames(), false, "same-key")
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = env.PushSnapshot(testutil.SampleGames(), true, "same-key")
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertErrorCode(t, resp, "CONFLICT")
}

func TestHostPush_RequiresHostToken(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/host/snapshot", []domain.RawGame{}, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
	assert.Equal(t, 0, testutil.CountSnapshots(t, env, repository.SourcePush))
}

// --- Poller Tests ---

func TestPoller_PollStoresSnapshot(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Host.SetGames(testutil.SampleGames())

	changed, err := env.Poller.Poll(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, 1, testutil.CountSnapshots(t, env, repository.SourcePoll))
	assert.Equal(t, "eft", env.Catalog.SelectedGameName())
}

func TestPoller_HostDownKeepsCatalog(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.Host.SetGames(testutil.SampleGames())

	_, err := env.Poller.Poll(context.Background(), false)
	require.NoError(t, err)

	env.Host.SetFailing(true)
	_, err = env.Poller.Poll(context.Background(), false)
	require.Error(t, err)
	assert.Len(t, env.Catalog.Games(), 2)
	assert.Equal(t, 1, testutil.CountSnapshots(t, env, repository.SourcePoll))
}

// --- Settings API Tests ---

func TestSettings_SetLanguagePersists(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.PUT("/settings/language", map[string]string{"language": "DE"})
	testutil.AssertStatus(t, resp, http.StatusOK)
	var settings domain.Settings
	testutil.DecodeJSON(t, resp, &settings)
	assert.Equal(t, "de", settings.Language)

	stored, err := env.Settings.Load(context.Background(), env.Pool)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "de", stored.Language)

	require.Eventually(t, func() bool {
		return testutil.CountOutboxEvents(t, env, "language") >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestSiteConfig_DiscountLabelFromHost(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/site-config/eft/discount-label")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var label struct {
		Game  string `json:"game"`
		Label string `json:"label"`
		Shown bool   `json:"shown"`
	}
	testutil.DecodeJSON(t, resp, &label)
	assert.Equal(t, "eft", label.Game)
	assert.Equal(t, "-20%", label.Label)
	assert.True(t, label.Shown)
}

func TestHealth_ReportsDatabase(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/health")
	testutil.AssertStatus(t, resp, http.StatusOK)
	resp.Body.Close()
}

func TestOutboxRepository_PurgePublished(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	repo := repository.NewOutboxRepository()

	draft, err := domain.NewOutboxDraft(domain.AggregateSettings, "language", domain.EventLanguageRedrawn,
		map[string]string{"language": "en"}, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Insert(ctx, env.Pool, draft))

	rows, err := repo.FetchUnpublishedRows(ctx, env.Pool, 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	purged, err := repo.PurgePublished(ctx, env.Pool, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, purged, "unpublished rows are never purged")

	require.NoError(t, repo.MarkPublished(ctx, env.Pool, []int64{rows[0].SeqID}))
	purged, err = repo.PurgePublished(ctx, env.Pool, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Zero(t, testutil.CountOutboxEvents(t, env, "language"))
}
