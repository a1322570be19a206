package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"dashformance/leads-api/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func TestLeadsService_Create(t *testing.T) {
	store := newMemStore()
	svc := newTestLeadsService(store)
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		lead, err := svc.Create(ctx, dto.LeadInput{
			CompanyName: "  Construtora Azul  ",
			Email:       strPtr("  "),
			WebsiteURL:  strPtr("https://azul.com.br"),
		})
		require.NoError(t, err)

		assert.NotEmpty(t, lead.ID)
		assert.Equal(t, "Construtora Azul", lead.CompanyName)
		assert.Equal(t, dto.StatusNew, lead.Status)
		assert.Nil(t, lead.Email)
		assert.True(t, strings.HasPrefix(*lead.CNPJ, "MANUAL-"))
		assert.Equal(t, 8, lead.Score)
	})

	t.Run("duplicate cnpj conflicts", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.LeadInput{CompanyName: "A", CNPJ: "12345678000199"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, dto.LeadInput{CompanyName: "B", CNPJ: "12345678000199"})
		assert.ErrorIs(t, err, dto.ErrLeadConflict)
	})
}

func TestLeadsService_CreateMany(t *testing.T) {
	deleted := baseTime
	trashed := storedLead(baseTime, func(l *dto.Lead) {
		l.CNPJ = strPtr("99999999000100")
		l.CompanyName = "Old name"
		l.DeletedAt = &deleted
	})
	store := newMemStore(trashed)
	svc := newTestLeadsService(store)

	count, err := svc.CreateMany(context.Background(), []dto.LeadInput{
		{CompanyName: "Fresh", CNPJ: "11111111000100"},
		{CompanyName: "Revived", CNPJ: "99999999000100"},
		{CompanyName: "Fresh again", CNPJ: "11111111000100"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	require.Len(t, store.upserts, 1)
	assert.Len(t, store.upserts[0], 2)
	assert.Equal(t, "Fresh", store.byCNPJ("11111111000100").CompanyName)

	revived := store.byCNPJ("99999999000100")
	assert.Equal(t, "Revived", revived.CompanyName)
	assert.Equal(t, trashed.ID, revived.ID)
	assert.Nil(t, revived.DeletedAt)

	count, err = svc.CreateMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLeadsService_FindAll(t *testing.T) {
	deleted := baseTime
	store := newMemStore(
		storedLead(baseTime.Add(-4*time.Hour), func(l *dto.Lead) { l.Owner = strPtr("joao") }),
		storedLead(baseTime.Add(-3*time.Hour), func(l *dto.Lead) { l.Owner = strPtr("vitor") }),
		storedLead(baseTime.Add(-2*time.Hour)),
		storedLead(baseTime.Add(-1*time.Hour), func(l *dto.Lead) { l.Owner = strPtr("") }),
		storedLead(baseTime, func(l *dto.Lead) { l.DeletedAt = &deleted }),
	)
	svc := newTestLeadsService(store)

	resp, err := svc.FindAll(context.Background(), 1, 3)
	require.NoError(t, err)

	assert.Len(t, resp.Data, 3)
	assert.True(t, resp.Data[0].DateAdded.After(resp.Data[1].DateAdded))
	assert.Equal(t, 4, resp.Meta.Total)
	assert.Equal(t, map[string]int{"joao": 1, "vitor": 1}, resp.Meta.OwnerTotals)
	assert.Equal(t, 2, resp.Meta.UnassignedTotal)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 2, resp.Meta.LastPage)

	resp, err = svc.FindAll(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Meta.LastPage)
}

func TestLeadsService_Update(t *testing.T) {
	lead := storedLead(baseTime)
	store := newMemStore(lead)
	svc := newTestLeadsService(store)
	ctx := context.Background()

	t.Run("recomputes score", func(t *testing.T) {
		updated, err := svc.Update(ctx, lead.ID, map[string]interface{}{
			"website_url":    "https://site.com",
			"render_quality": "GOOD",
			"id":             "ignored",
		})
		require.NoError(t, err)
		assert.Equal(t, 23, updated.Score)
		assert.Equal(t, lead.ID, updated.ID)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := svc.Update(ctx, lead.ID, map[string]interface{}{"status": "DONE"})
		var verr *dto.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Fields[0].Field)
	})

	t.Run("empty patch returns current lead", func(t *testing.T) {
		current, err := svc.Update(ctx, lead.ID, map[string]interface{}{"unknown": 1})
		require.NoError(t, err)
		assert.Equal(t, lead.ID, current.ID)
	})

	t.Run("unknown lead", func(t *testing.T) {
		_, err := svc.Update(ctx, "missing", map[string]interface{}{"status": dto.StatusWon})
		assert.ErrorIs(t, err, dto.ErrLeadNotFound)
	})
}

func TestLeadsService_UpdateMany(t *testing.T) {
	a := storedLead(baseTime, func(l *dto.Lead) { l.InstagramURL = strPtr("@a") })
	b := storedLead(baseTime)
	store := newMemStore(a, b)
	svc := newTestLeadsService(store)
	ctx := context.Background()

	count, err := svc.UpdateMany(ctx, []string{a.ID, b.ID}, map[string]interface{}{"status": dto.StatusContacted})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, store.bulkPatches, 1)

	count, err = svc.UpdateMany(ctx, []string{a.ID, b.ID}, map[string]interface{}{"website_url": "https://x.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, store.bulkPatches, 1)

	gotA, _ := store.GetLead(ctx, a.ID)
	gotB, _ := store.GetLead(ctx, b.ID)
	assert.Equal(t, 13, gotA.Score)
	assert.Equal(t, 8, gotB.Score)
	assert.Equal(t, dto.StatusContacted, gotB.Status)
}

func TestLeadsService_SoftDelete(t *testing.T) {
	a := storedLead(baseTime)
	b := storedLead(baseTime)
	store := newMemStore(a, b)
	svc := newTestLeadsService(store)
	svc.now = func() time.Time { return baseTime }
	ctx := context.Background()

	removed, err := svc.Remove(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, removed.DeletedAt)
	assert.True(t, removed.DeletedAt.Equal(baseTime))

	trashed, err := svc.FindAllTrashed(ctx)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	assert.Equal(t, a.ID, trashed[0].ID)

	restored, err := svc.Restore(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	count, err := svc.RemoveMany(ctx, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, store.activeCount())

	count, err = svc.RestoreMany(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, store.activeCount())

	trashed, err = svc.FindAllTrashed(ctx)
	require.NoError(t, err)
	assert.NotNil(t, trashed)
	assert.Empty(t, trashed)
}

func TestLeadsService_DisqualifyAndHardDelete(t *testing.T) {
	lead := storedLead(baseTime)
	store := newMemStore(lead)
	svc := newTestLeadsService(store)
	ctx := context.Background()

	disqualified, err := svc.Disqualify(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusDisqualified, disqualified.Status)

	require.NoError(t, svc.HardDelete(ctx, lead.ID))
	_, err = svc.FindOne(ctx, lead.ID)
	assert.ErrorIs(t, err, dto.ErrLeadNotFound)
	assert.ErrorIs(t, svc.HardDelete(ctx, lead.ID), dto.ErrLeadNotFound)
}

func TestLeadsService_CleanupDuplicates(t *testing.T) {
	emailOnly := storedLead(baseTime, func(l *dto.Lead) { l.Email = strPtr("dup@corp.com") })
	emailAndPhone := storedLead(baseTime, func(l *dto.Lead) {
		l.Email = strPtr(" DUP@corp.com")
		l.Phone = strPtr("(81) 3000-0001")
	})
	machineNotes := storedLead(baseTime, func(l *dto.Lead) {
		l.Email = strPtr("noted@corp.com")
		l.Notes = strPtr("Deep Discovery (Page 2)")
	})
	operatorNotes := storedLead(baseTime, func(l *dto.Lead) {
		l.Email = strPtr("noted@corp.com")
		l.Notes = strPtr("Ligar segunda")
	})
	phoneFirst := storedLead(baseTime, func(l *dto.Lead) { l.Phone = strPtr("21 99999-0000") })
	phoneSecond := storedLead(baseTime, func(l *dto.Lead) { l.Phone = strPtr("2199999-0000") })
	shortPhone := storedLead(baseTime, func(l *dto.Lead) { l.Phone = strPtr("1234") })
	shortPhoneToo := storedLead(baseTime, func(l *dto.Lead) { l.Phone = strPtr("1234") })

	store := newMemStore(emailOnly, emailAndPhone, machineNotes, operatorNotes, phoneFirst, phoneSecond, shortPhone, shortPhoneToo)
	svc := newTestLeadsService(store)
	ctx := context.Background()

	result, err := svc.CleanupDuplicates(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.DeletedCount)
	assert.ElementsMatch(t, []string{emailOnly.ID, machineNotes.ID, phoneSecond.ID}, result.IDs)
	assert.Equal(t, 5, store.activeCount())

	again, err := svc.CleanupDuplicates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.DeletedCount)
	assert.NotNil(t, again.IDs)
	assert.Empty(t, again.IDs)
}

func TestLeadsService_CleanupDuplicates_AllNotedSurvive(t *testing.T) {
	a := storedLead(baseTime, func(l *dto.Lead) {
		l.Phone = strPtr("11 3333-3333")
		l.Notes = strPtr("cliente antigo")
	})
	b := storedLead(baseTime, func(l *dto.Lead) {
		l.Phone = strPtr("1133333333")
		l.Notes = strPtr("retornar em junho")
	})
	store := newMemStore(a, b)
	svc := newTestLeadsService(store)

	result, err := svc.CleanupDuplicates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.DeletedCount)
	assert.Equal(t, 2, store.activeCount())
}

func TestLeadsService_DivideLeads(t *testing.T) {
	setup := func() (*memStore, *LeadsService) {
		store := newMemStore(
			storedLead(baseTime),
			storedLead(baseTime),
			storedLead(baseTime, func(l *dto.Lead) { l.Owner = strPtr("") }),
			storedLead(baseTime),
			storedLead(baseTime),
			storedLead(baseTime, func(l *dto.Lead) { l.Owner = strPtr("joao") }),
			storedLead(baseTime, func(l *dto.Lead) { l.Owner = strPtr("vitor") }),
		)
		svc := newTestLeadsService(store)
		svc.intN = func(n int) int { return n - 1 }
		return store, svc
	}
	ctx := context.Background()

	t.Run("splits unassigned leads", func(t *testing.T) {
		store, svc := setup()

		result, err := svc.DivideLeads(ctx, 2, "")
		require.NoError(t, err)

		assert.Equal(t, &dto.DivideResult{
			PrimaryOwner:   "joao",
			PrimaryCount:   2,
			SecondaryOwner: "vitor",
			SecondaryCount: 3,
			Total:          5,
		}, result)

		joao := "joao"
		vitor := "vitor"
		n, _ := store.CountActiveLeads(ctx, dto.LeadFilter{Owner: &joao})
		assert.Equal(t, 3, n)
		n, _ = store.CountActiveLeads(ctx, dto.LeadFilter{Owner: &vitor})
		assert.Equal(t, 4, n)
		n, _ = store.CountActiveLeads(ctx, dto.LeadFilter{Unassigned: true})
		assert.Equal(t, 0, n)
	})

	t.Run("count above total assigns everything to primary", func(t *testing.T) {
		store, svc := setup()

		result, err := svc.DivideLeads(ctx, 50, ScopeAll)
		require.NoError(t, err)
		assert.Equal(t, 7, result.PrimaryCount)
		assert.Equal(t, 0, result.SecondaryCount)
		assert.Len(t, store.bulkPatches, 1)
	})

	t.Run("owner scope", func(t *testing.T) {
		_, svc := setup()

		result, err := svc.DivideLeads(ctx, 0, "vitor")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.Equal(t, 1, result.SecondaryCount)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, svc := setup()
		var verr *dto.ValidationError

		_, err := svc.DivideLeads(ctx, -1, "")
		assert.ErrorAs(t, err, &verr)

		_, err = svc.DivideLeads(ctx, 1, "maria")
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sourceOwner", verr.Fields[0].Field)
	})
}

func TestLeadsService_Shuffle(t *testing.T) {
	svc := newTestLeadsService(newMemStore())
	svc.intN = func(int) int { return 0 }

	ids := []string{"a", "b", "c", "d"}
	svc.shuffle(ids)

	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, ids)
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids)
}
