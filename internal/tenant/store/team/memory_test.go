package team

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pulse "teampulse/internal/models"
	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
)

func TestInMemoryTeamStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()

	core := &models.Team{TenantID: 1, Name: "Core", Managers: []int{2, 3}, Questions: pulse.QuestionSet{"mood": pulse.Label("How are you?")}}
	other := &models.Team{TenantID: 2, Name: "Elsewhere"}
	ops := &models.Team{TenantID: 1, Name: "Ops", Managers: []int{3}}
	for _, team := range []*models.Team{core, other, ops} {
		require.NoError(t, store.Create(ctx, team))
	}
	assert.Equal(t, []int{1, 2, 3}, []int{core.ID, other.ID, ops.ID})

	t.Run("lookups are tenant scoped", func(t *testing.T) {
		_, err := store.FindByTenantAndID(ctx, 1, other.ID)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		found, err := store.FindByTenantAndID(ctx, 1, core.ID)
		require.NoError(t, err)
		assert.Equal(t, "How are you?", found.Questions["mood"].Text())
	})

	t.Run("list is ordered and copied", func(t *testing.T) {
		teams, err := store.ListByTenant(ctx, 1)
		require.NoError(t, err)
		require.Len(t, teams, 2)
		assert.Equal(t, "Core", teams[0].Name)
		teams[0].Managers[0] = 99

		again, err := store.FindByTenantAndID(ctx, 1, core.ID)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, again.Managers)
	})

	t.Run("remove manager", func(t *testing.T) {
		require.NoError(t, store.RemoveManager(ctx, 3))
		found, err := store.FindByTenantAndID(ctx, 1, ops.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Managers)
	})

	t.Run("update and delete", func(t *testing.T) {
		core.Name = "Platform"
		require.NoError(t, store.Update(ctx, core))
		found, err := store.FindByTenantAndID(ctx, 1, core.ID)
		require.NoError(t, err)
		assert.Equal(t, "Platform", found.Name)

		assert.ErrorIs(t, store.Delete(ctx, 2, core.ID), sentinel.ErrNotFound)
		require.NoError(t, store.Delete(ctx, 1, core.ID))
		assert.ErrorIs(t, store.Update(ctx, core), sentinel.ErrNotFound)
	})
}
