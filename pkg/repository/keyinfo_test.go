package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mweegram/tickful/pkg/domain/interfaces"
	"github.com/mweegram/tickful/pkg/domain/model"
	"github.com/mweegram/tickful/pkg/domain/types"
)

func runKeyInfoRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and GetByTicketValue round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.KeyInfo().Create(ctx, &model.KeyInfo{
			TicketID: 1,
			Value:    "198.51.100.7",
			Tag:      "source address",
		})
		if err != nil {
			t.Fatalf("failed to create key info: %v", err)
		}
		if created.ID == 0 {
			t.Error("expected non-zero ID")
		}

		got, err := repo.KeyInfo().GetByTicketValue(ctx, 1, "198.51.100.7")
		if err != nil {
			t.Fatalf("failed to get key info: %v", err)
		}
		if got.Tag != "source address" {
			t.Errorf("expected tag %q, got %q", "source address", got.Tag)
		}
	})

	t.Run("GetByTicketValue is scoped to the ticket", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.KeyInfo().Create(ctx, &model.KeyInfo{TicketID: 1, Value: "evil.example.com"}); err != nil {
			t.Fatalf("failed to create key info: %v", err)
		}

		if _, err := repo.KeyInfo().GetByTicketValue(ctx, 2, "evil.example.com"); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound for other ticket, got %v", err)
		}
	})

	t.Run("Update rewrites the tag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.KeyInfo().Create(ctx, &model.KeyInfo{TicketID: 1, Value: "user@corp.example", Tag: "old tag"})
		if err != nil {
			t.Fatalf("failed to create key info: %v", err)
		}

		created.Tag = model.AutoExtractedTag
		if _, err := repo.KeyInfo().Update(ctx, created); err != nil {
			t.Fatalf("failed to update key info: %v", err)
		}

		got, err := repo.KeyInfo().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get key info: %v", err)
		}
		if got.Tag != model.AutoExtractedTag {
			t.Errorf("expected tag %q, got %q", model.AutoExtractedTag, got.Tag)
		}
	})

	t.Run("Delete removes the record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.KeyInfo().Create(ctx, &model.KeyInfo{TicketID: 1, Value: "transient"})
		if err != nil {
			t.Fatalf("failed to create key info: %v", err)
		}

		if err := repo.KeyInfo().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete key info: %v", err)
		}
		if _, err := repo.KeyInfo().Get(ctx, created.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("ListByValue finds occurrences across tickets", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		records := []*model.KeyInfo{
			{TicketID: 1, Value: "198.51.100.7"},
			{TicketID: 2, Value: "198.51.100.7"},
			{TicketID: 3, Value: "203.0.113.9"},
		}
		for _, k := range records {
			if _, err := repo.KeyInfo().Create(ctx, k); err != nil {
				t.Fatalf("failed to create key info: %v", err)
			}
		}

		got, err := repo.KeyInfo().ListByValue(ctx, "198.51.100.7")
		if err != nil {
			t.Fatalf("failed to list key info: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 occurrences, got %d", len(got))
		}
	})

	t.Run("SearchValueTag matches either field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		records := []*model.KeyInfo{
			{TicketID: 1, Value: "mallory@evil.example", Tag: "sender"},
			{TicketID: 2, Value: "10.0.0.5", Tag: "mallory's host"},
			{TicketID: 3, Value: "10.0.0.6", Tag: "unrelated"},
		}
		for _, k := range records {
			if _, err := repo.KeyInfo().Create(ctx, k); err != nil {
				t.Fatalf("failed to create key info: %v", err)
			}
		}

		got, err := repo.KeyInfo().SearchValueTag(ctx, "mallory")
		if err != nil {
			t.Fatalf("failed to search key info: %v", err)
		}
		if len(got) != 2 {
			t.Errorf("expected 2 records, got %d", len(got))
		}
	})
}

func runRelationshipRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Exists checks both endpoint orderings", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if _, err := repo.Relationship().Create(ctx, &model.Relationship{TicketOne: 1, TicketTwo: 2}); err != nil {
			t.Fatalf("failed to create relationship: %v", err)
		}

		for _, pair := range [][2]types.TicketID{{1, 2}, {2, 1}} {
			exists, err := repo.Relationship().Exists(ctx, pair[0], pair[1])
			if err != nil {
				t.Fatalf("failed to check existence: %v", err)
			}
			if !exists {
				t.Errorf("expected pair (%d,%d) to exist", pair[0], pair[1])
			}
		}

		exists, err := repo.Relationship().Exists(ctx, 1, 3)
		if err != nil {
			t.Fatalf("failed to check existence: %v", err)
		}
		if exists {
			t.Error("expected unlinked pair to be absent")
		}
	})

	t.Run("ListByTicket returns links from either side", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		pairs := []*model.Relationship{
			{TicketOne: 5, TicketTwo: 6},
			{TicketOne: 7, TicketTwo: 5},
			{TicketOne: 8, TicketTwo: 9},
		}
		for _, rel := range pairs {
			if _, err := repo.Relationship().Create(ctx, rel); err != nil {
				t.Fatalf("failed to create relationship: %v", err)
			}
		}

		got, err := repo.Relationship().ListByTicket(ctx, 5)
		if err != nil {
			t.Fatalf("failed to list relationships: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 relationships, got %d", len(got))
		}
		for _, rel := range got {
			if _, ok := rel.Other(5); !ok {
				t.Errorf("expected ticket 5 to be an endpoint of relationship %d", rel.ID)
			}
		}
	})

	t.Run("Delete removes a link", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Relationship().Create(ctx, &model.Relationship{TicketOne: 1, TicketTwo: 2})
		if err != nil {
			t.Fatalf("failed to create relationship: %v", err)
		}

		if err := repo.Relationship().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete relationship: %v", err)
		}

		exists, err := repo.Relationship().Exists(ctx, 1, 2)
		if err != nil {
			t.Fatalf("failed to check existence: %v", err)
		}
		if exists {
			t.Error("expected pair to be absent after delete")
		}
		if err := repo.Relationship().Delete(ctx, created.ID); !errors.Is(err, interfaces.ErrNotFound) {
			t.Errorf("expected ErrNotFound on double delete, got %v", err)
		}
	})
}

func TestMemoryKeyInfoRepository(t *testing.T) {
	runKeyInfoRepositoryTest(t, newMemoryRepository)
}

func TestSQLiteKeyInfoRepository(t *testing.T) {
	runKeyInfoRepositoryTest(t, newSQLiteRepository)
}

func TestMemoryRelationshipRepository(t *testing.T) {
	runRelationshipRepositoryTest(t, newMemoryRepository)
}

func TestSQLiteRelationshipRepository(t *testing.T) {
	runRelationshipRepositoryTest(t, newSQLiteRepository)
}
