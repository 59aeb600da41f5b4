package repo

import (
	"context"
	"errors"
	"testing"

	"selectiq/internal/apperr"
	"selectiq/internal/domain"
	"selectiq/internal/testutil"
)

func TestOfferCreateGetRoundTrip(t *testing.T) {
	r := NewOfferRepo(testutil.NewGateway(t))
	ctx := context.Background()

	in := domain.JobOffer{Title: "  Backend Engineer ", Company: "Acme", Description: "Go services"}
	if err := r.Create(ctx, &in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("create did not assign an id")
	}
	if !in.IsActive {
		t.Fatal("is_active must default to true")
	}

	got, err := r.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Backend Engineer" || got.Company != "Acme" || got.Description != "Go services" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestOfferCreateValidation(t *testing.T) {
	r := NewOfferRepo(testutil.NewGateway(t))

	err := r.Create(context.Background(), &domain.JobOffer{Title: "  ", Company: "", Description: "x"})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(ae.Fields) != 2 {
		t.Fatalf("fields = %v, want title and company", ae.Fields)
	}
}

func TestOfferListActiveExcludesDeactivated(t *testing.T) {
	r := NewOfferRepo(testutil.NewGateway(t))
	ctx := context.Background()

	a := domain.JobOffer{Title: "First", Company: "c", Description: "d"}
	b := domain.JobOffer{Title: "Second", Company: "c", Description: "d"}
	for _, o := range []*domain.JobOffer{&a, &b} {
		if err := r.Create(ctx, o); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	inactive := false
	if _, err := r.Update(ctx, a.ID, domain.OfferPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	offers, err := r.ListActive(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != b.ID {
		t.Fatalf("list = %+v, want only the second offer", offers)
	}
}

func TestOfferUpdateNeverInserts(t *testing.T) {
	r := NewOfferRepo(testutil.NewGateway(t))

	title := "ghost"
	_, err := r.Update(context.Background(), 999, domain.OfferPatch{Title: &title})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestOfferDeleteMissing(t *testing.T) {
	r := NewOfferRepo(testutil.NewGateway(t))
	if err := r.Delete(context.Background(), 42); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
