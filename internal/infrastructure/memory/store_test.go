package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/infrastructure/memory"
)

func testDocument(id string) *entity.Document {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &entity.Document{
		ID:         id,
		Kind:       entity.KindQuotation,
		Number:     "QUO-2026-001",
		CustomerID: "cust-1",
		Status:     entity.StatusDraft,
		Total:      decimal.NewFromInt(100),
		IssueDate:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRun_CommitsOnSuccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(repos lifecycle.Repos) error {
		return repos.Documents.Create(testDocument("doc-1"))
	})
	require.NoError(t, err)

	err = store.Run(ctx, func(repos lifecycle.Repos) error {
		doc, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		require.NotNil(t, doc)
		assert.Equal(t, "QUO-2026-001", doc.Number)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_DiscardsAllWritesOnError(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, func(repos lifecycle.Repos) error {
		require.NoError(t, repos.Documents.Create(testDocument("doc-1")))
		require.NoError(t, repos.Customers.Create(&entity.Customer{ID: "cust-1", Name: "Acme"}))
		if _, err := repos.Sequences.Next(entity.KindQuotation, 2026); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.Run(ctx, func(repos lifecycle.Repos) error {
		doc, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		assert.Nil(t, doc, "aborted create must not be visible")

		c, err := repos.Customers.GetByID("cust-1")
		require.NoError(t, err)
		assert.Nil(t, c)

		// The sequence draw rolled back too: the next draw is 1 again.
		seq, err := repos.Sequences.Next(entity.KindQuotation, 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_StagedWritesVisibleWithinTransaction(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(repos lifecycle.Repos) error {
		require.NoError(t, repos.Documents.Create(testDocument("doc-1")))

		doc, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		require.NotNil(t, doc, "a transaction must read its own writes")

		doc.Status = entity.StatusSent
		require.NoError(t, repos.Documents.Update(doc))

		again, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusSent, again.Status)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_ReadsReturnCopies(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		return repos.Documents.Create(testDocument("doc-1"))
	}))

	// Mutating a read result without calling Update must not leak into
	// the store.
	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		doc, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		doc.Status = entity.StatusCancelled
		return nil
	}))

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		doc, err := repos.Documents.GetByID(entity.KindQuotation, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusDraft, doc.Status)
		return nil
	}))
}

func TestSequences_MonotonicPerKindAndYear(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var drawn []int
	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		for i := 0; i < 3; i++ {
			seq, err := repos.Sequences.Next(entity.KindQuotation, 2026)
			if err != nil {
				return err
			}
			drawn = append(drawn, seq)
		}
		return nil
	}))
	assert.Equal(t, []int{1, 2, 3}, drawn)

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		// Other kinds and other years start fresh.
		seq, err := repos.Sequences.Next(entity.KindInvoice, 2026)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)

		seq, err = repos.Sequences.Next(entity.KindQuotation, 2027)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)

		// Committed draws carry over.
		seq, err = repos.Sequences.Next(entity.KindQuotation, 2026)
		require.NoError(t, err)
		assert.Equal(t, 4, seq)
		return err
	}))
}

func TestRun_DuplicateCreateRejected(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		return repos.Documents.Create(testDocument("doc-1"))
	}))

	err := store.Run(ctx, func(repos lifecycle.Repos) error {
		return repos.Documents.Create(testDocument("doc-1"))
	})
	assert.Error(t, err)
}

func TestRun_CancelledContextRejected(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Run(ctx, func(lifecycle.Repos) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListByKind_PreservesInsertionOrderAndFiltersStatus(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		first := testDocument("doc-1")
		second := testDocument("doc-2")
		second.Number = "QUO-2026-002"
		second.Status = entity.StatusSent
		if err := repos.Documents.Create(first); err != nil {
			return err
		}
		return repos.Documents.Create(second)
	}))

	require.NoError(t, store.Run(ctx, func(repos lifecycle.Repos) error {
		all, err := repos.Documents.ListByKind(entity.KindQuotation, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "doc-1", all[0].ID)
		assert.Equal(t, "doc-2", all[1].ID)

		sent, err := repos.Documents.ListByKind(entity.KindQuotation, entity.StatusSent)
		require.NoError(t, err)
		require.Len(t, sent, 1)
		assert.Equal(t, "doc-2", sent[0].ID)
		return nil
	}))
}
