package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"promptmarket-server/internal/dto"
	"promptmarket-server/internal/models"
)

func TestCreatePromptValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	owner := createUser(t, db, "alice", models.PlanFree)

	_, err := svc.Create(owner.ID, &dto.CreatePromptRequest{Content: "body"})
	if !errors.Is(err, ErrTitleContentRequired) {
		t.Errorf("missing title: got %v, want ErrTitleContentRequired", err)
	}
	_, err = svc.Create(owner.ID, &dto.CreatePromptRequest{Title: "t"})
	if !errors.Is(err, ErrTitleContentRequired) {
		t.Errorf("missing content: got %v, want ErrTitleContentRequired", err)
	}
}

func TestFreePlanQuota(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	owner := createUser(t, db, "alice", models.PlanFree)

	for i := 0; i < FreePlanPromptLimit; i++ {
		if _, err := svc.Create(owner.ID, &dto.CreatePromptRequest{
			Title: "prompt", Content: "body",
		}); err != nil {
			t.Fatalf("create %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Create(owner.ID, &dto.CreatePromptRequest{Title: "fifth", Content: "body"})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("fifth create on free plan: got %v, want ErrQuotaExceeded", err)
	}

	// Upgrading away from free lifts the cap immediately.
	if err := db.Model(owner).Update("plan", models.PlanPro).Error; err != nil {
		t.Fatalf("plan upgrade failed: %v", err)
	}
	if _, err := svc.Create(owner.ID, &dto.CreatePromptRequest{
		Title: "fifth", Content: "body",
	}); err != nil {
		t.Fatalf("create after upgrade failed: %v", err)
	}
}

func TestQuotaIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	alice := createUser(t, db, "alice", models.PlanFree)
	bob := createUser(t, db, "bob", models.PlanFree)

	for i := 0; i < FreePlanPromptLimit; i++ {
		if _, err := svc.Create(bob.ID, &dto.CreatePromptRequest{
			Title: "prompt", Content: "body",
		}); err != nil {
			t.Fatalf("bob create %d failed: %v", i+1, err)
		}
	}

	if _, err := svc.Create(alice.ID, &dto.CreatePromptRequest{
		Title: "mine", Content: "body",
	}); err != nil {
		t.Errorf("alice's first create should not hit bob's quota: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	owner := createUser(t, db, "alice", models.PlanPro)

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"oldest", "middle", "newest"} {
		p := models.Prompt{
			UserID:    owner.ID,
			Title:     title,
			Content:   "body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&p).Error; err != nil {
			t.Fatalf("seed prompt failed: %v", err)
		}
	}

	prompts, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(prompts) != 3 {
		t.Fatalf("got %d prompts, want 3", len(prompts))
	}
	if prompts[0].Title != "newest" || prompts[2].Title != "oldest" {
		t.Errorf("list order wrong: %s, %s, %s", prompts[0].Title, prompts[1].Title, prompts[2].Title)
	}
	if prompts[0].User.Username != "alice" {
		t.Errorf("owner should be preloaded, got %q", prompts[0].User.Username)
	}
}

func TestUpdateOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	owner := createUser(t, db, "alice", models.PlanPro)
	other := createUser(t, db, "bob", models.PlanPro)

	prompt, err := svc.Create(owner.ID, &dto.CreatePromptRequest{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTitle := "renamed"
	if _, err := svc.Update(prompt.ID, other.ID, &dto.UpdatePromptRequest{Title: &newTitle}); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner update: got %v, want ErrNotOwner", err)
	}

	updated, err := svc.Update(prompt.ID, owner.ID, &dto.UpdatePromptRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "renamed" || updated.Content != "c" {
		t.Errorf("patch applied wrong: title=%q content=%q", updated.Title, updated.Content)
	}
}

func TestDeleteCascadesEntitlements(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)
	purchases := NewPurchaseService(db)
	owner := createUser(t, db, "alice", models.PlanPro)
	buyer := createUser(t, db, "bob", models.PlanFree)

	prompt, err := svc.Create(owner.ID, &dto.CreatePromptRequest{
		Title: "t", Content: "c", IsPremium: true, Price: 500,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := purchases.Buy(buyer.ID, prompt.ID); err != nil {
		t.Fatalf("buy failed: %v", err)
	}

	if err := svc.Delete(prompt.ID, buyer.ID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("non-owner delete: got %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(prompt.ID, owner.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	var purchaseCount, saleCount int64
	db.Model(&models.Purchase{}).Where("prompt_id = ?", prompt.ID).Count(&purchaseCount)
	db.Model(&models.Sale{}).Where("prompt_id = ?", prompt.ID).Count(&saleCount)
	if purchaseCount != 0 || saleCount != 0 {
		t.Errorf("cascade left %d purchases and %d sales behind", purchaseCount, saleCount)
	}

	if err := svc.Delete(prompt.ID, owner.ID); !errors.Is(err, ErrPromptNotFound) {
		t.Errorf("double delete: got %v, want ErrPromptNotFound", err)
	}
}

func TestGetNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewPromptService(db)

	if _, err := svc.Get(uuid.New()); !errors.Is(err, ErrPromptNotFound) {
		t.Errorf("missing prompt: got %v, want ErrPromptNotFound", err)
	}
}
