package conversation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xYup1terx/routine-builder/internal/conversation"
	"github.com/xYup1terx/routine-builder/internal/domain"
	"github.com/xYup1terx/routine-builder/internal/repository"
	"github.com/xYup1terx/routine-builder/internal/testutil"
)

const testDirective = "You are a routine assistant."

func newTestStore(t *testing.T) (*conversation.Store, repository.StateRepo) {
	t.Helper()
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	return conversation.NewStore(repo, testDirective), repo
}

func TestStore_StartsWithSystemDirective(t *testing.T) {
	store, _ := newTestStore(t)
	msgs := store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, testDirective, msgs[0].Content)
}

func TestStore_AppendRequiresRoleAndContent(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Append(domain.Message{Role: domain.RoleUser}))
	assert.Error(t, store.Append(domain.Message{Content: "hi"}))
	assert.NoError(t, store.Append(domain.Message{Role: domain.RoleUser, Content: "hi"}))
}

func TestStore_AppendAssignsID(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Append(domain.Message{Role: domain.RoleUser, Content: "hi"}))
	msgs := store.Messages()
	assert.NotEmpty(t, msgs[1].ID)
}

func TestStore_SnapshotExcludesSystemAndInternal(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Append(domain.Message{Role: domain.RoleUser, Content: "hello"}))
	require.NoError(t, store.Append(domain.Message{
		Role:       domain.RoleUser,
		Content:    "please generate a routine",
		Visibility: domain.VisibilityInternal,
	}))
	require.NoError(t, store.Append(domain.Message{Role: domain.RoleAssistant, Content: "hi there"}))

	snap := store.PersistedSnapshot()
	require.Len(t, snap, 2)
	for _, m := range snap {
		assert.NotEqual(t, domain.RoleSystem, m.Role)
		assert.False(t, m.Internal())
	}
}

func TestStore_RestoreRoundTripPreservesVisibleLog(t *testing.T) {
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := conversation.NewStore(repo, testDirective)
	require.NoError(t, first.Append(domain.Message{Role: domain.RoleUser, Content: "what spf should I use?"}))
	require.NoError(t, first.Append(domain.Message{
		Role:    domain.RoleAssistant,
		Content: "Try an SPF 50.",
		Meta:    &domain.MessageMeta{HighlightedProducts: []string{"UV Defender"}},
	}))
	require.NoError(t, first.Persist(ctx))

	second := conversation.NewStore(repo, testDirective)
	restored, err := second.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)

	// Visible projections are identical across the reload.
	assert.Equal(t, first.VisibleForRender(), second.VisibleForRender())

	// The default system directive was re-prepended.
	msgs := second.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
	assert.Equal(t, testDirective, msgs[0].Content)

	// Highlight meta survived.
	last := msgs[len(msgs)-1]
	require.NotNil(t, last.Meta)
	assert.Equal(t, []string{"UV Defender"}, last.Meta.HighlightedProducts)
}

func TestStore_RestoreNoPriorSession(t *testing.T) {
	store, _ := newTestStore(t)
	restored, err := store.Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, restored)

	// Store is usable after a failed restore.
	msgs := store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
}

func TestStore_RestoreMalformedSnapshot(t *testing.T) {
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, repository.KeyMessagesHistory, "{not json"))

	store := conversation.NewStore(repo, testDirective)
	restored, err := store.Restore(ctx)
	assert.False(t, restored)
	assert.Error(t, err, "parse failure is reported for logging but not fatal")

	msgs := store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleSystem, msgs[0].Role)
}

func TestStore_RestoreFiltersStoredInternalInstructions(t *testing.T) {
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	// A snapshot containing an untagged generation prompt, as an older
	// build might have written.
	raw := `[
		{"role":"user","content":"hello"},
		{"role":"user","content":"Please generate a routine {\"products\": []}"},
		{"role":"assistant","content":"hi"}
	]`
	require.NoError(t, repo.Set(ctx, repository.KeyMessagesHistory, raw))

	store := conversation.NewStore(repo, testDirective)
	restored, err := store.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)

	visible := store.VisibleForRender()
	require.Len(t, visible, 2)
	assert.Equal(t, "hello", visible[0].Content)
	assert.Equal(t, "hi", visible[1].Content)
}

func TestStore_RestoreEmptySnapshotMeansFresh(t *testing.T) {
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, repository.KeyMessagesHistory, "[]"))

	store := conversation.NewStore(repo, testDirective)
	restored, err := store.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestStore_PersistNeverWritesSystemOrInternal(t *testing.T) {
	repo := repository.NewSQLiteStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	store := conversation.NewStore(repo, testDirective)
	require.NoError(t, store.Append(domain.Message{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.Append(domain.Message{
		Role:       domain.RoleUser,
		Content:    "internal directive",
		Visibility: domain.VisibilityInternal,
	}))
	require.NoError(t, store.Persist(ctx))

	raw, err := repo.Get(ctx, repository.KeyMessagesHistory)
	require.NoError(t, err)
	assert.NotContains(t, raw, "system")
	assert.NotContains(t, raw, "internal directive")
}

func TestStore_Clear(t *testing.T) {
	store, repo := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Append(domain.Message{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, store.Persist(ctx))

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, store.VisibleForRender())

	_, err := repo.Get(ctx, repository.KeyMessagesHistory)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
