package app_test

import (
	"context"
	"fmt"
	"testing"

	"restock-agent/internal/ai"
	"restock-agent/internal/app"
	"restock-agent/internal/core"
)

// fakeSessions serves a single canned session and records state transitions.
type fakeSessions struct {
	core.SessionService
	session *core.RestockSession
	drafts  []core.EmailDraft
	sent    bool
}

func (f *fakeSessions) Get(ctx context.Context, userID, sessionID int) (*core.RestockSession, error) {
	if f.session == nil || f.session.ID != sessionID {
		return nil, fmt.Errorf("session %d not found", sessionID)
	}
	return f.session, nil
}

func (f *fakeSessions) MarkSent(ctx context.Context, userID, sessionID int) error {
	f.sent = true
	return nil
}

func (f *fakeSessions) SaveEmailDraft(ctx context.Context, sessionID, supplierID int, email core.OrderEmail, model string, generationMs int64) (*core.EmailDraft, error) {
	d := core.EmailDraft{SessionID: sessionID, SupplierID: supplierID, Subject: email.Subject, Body: email.Body, Model: model}
	f.drafts = append(f.drafts, d)
	return &d, nil
}

type fakeUsers struct {
	core.UserService
}

func (f *fakeUsers) GetByID(ctx context.Context, userID int) (*core.User, error) {
	return &core.User{ID: userID, StoreName: "Corner Market", OwnerName: "Pat Owner"}, nil
}

// fakeMailer succeeds unless the supplier name is in failFor.
type fakeMailer struct {
	failFor map[string]bool
	calls   int
}

func (f *fakeMailer) GenerateOrderEmail(ctx context.Context, req ai.OrderEmailRequest) (*core.OrderEmail, error) {
	f.calls++
	if f.failFor[req.SupplierName] {
		return nil, fmt.Errorf("model unavailable")
	}
	return &core.OrderEmail{
		Subject:    fmt.Sprintf("Restock order from %s", req.StoreName),
		Body:       fmt.Sprintf("Order for %s", req.SupplierName),
		Confidence: 0.9,
	}, nil
}

func (f *fakeMailer) Model() string { return "test-model" }

func draftSession(items []core.SessionItem) *core.RestockSession {
	return &core.RestockSession{ID: 1, UserID: 1, Status: core.SessionStatusDraft, Items: items}
}

func sessionItem(supplierID int, name, email, product string, qty int) core.SessionItem {
	return core.SessionItem{
		SupplierID:    supplierID,
		SupplierName:  name,
		SupplierEmail: email,
		ProductName:   product,
		Quantity:      qty,
	}
}

func TestDispatchSession_PartialFailure(t *testing.T) {
	sessions := &fakeSessions{session: draftSession([]core.SessionItem{
		sessionItem(1, "Acme", "orders@acme.com", "Cola", 24),
		sessionItem(2, "NoMail Co", "", "Milk", 12),
		sessionItem(3, "Flaky Inc", "sales@flaky.com", "Bread", 6),
	})}
	mailer := &fakeMailer{failFor: map[string]bool{"Flaky Inc": true}}
	svc := app.NewAppService(&fakeUsers{}, nil, nil, sessions, mailer)

	result, err := svc.DispatchSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("DispatchSession failed: %v", err)
	}

	if result.Generated != 1 || result.Failed != 2 {
		t.Errorf("generated/failed = %d/%d, want 1/2", result.Generated, result.Failed)
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected 3 per-supplier results, got %d", len(result.Results))
	}

	// The invalid-email supplier is skipped without a model call.
	if mailer.calls != 2 {
		t.Errorf("mailer called %d times, want 2", mailer.calls)
	}
	if result.Results[1].Error == "" || result.Results[1].Email != nil {
		t.Errorf("expected error-only result for supplier without email: %+v", result.Results[1])
	}
	if result.Results[0].Email == nil {
		t.Errorf("expected generated email for Acme: %+v", result.Results[0])
	}

	// One success is enough to finish the session, and the draft is persisted.
	if !sessions.sent {
		t.Errorf("session was not marked sent")
	}
	if result.Status != core.SessionStatusSent {
		t.Errorf("result status = %s, want sent", result.Status)
	}
	if len(sessions.drafts) != 1 || sessions.drafts[0].SupplierID != 1 {
		t.Errorf("expected one persisted draft for supplier 1, got %+v", sessions.drafts)
	}
}

func TestDispatchSession_AllFailures(t *testing.T) {
	sessions := &fakeSessions{session: draftSession([]core.SessionItem{
		sessionItem(1, "Flaky Inc", "sales@flaky.com", "Bread", 6),
	})}
	mailer := &fakeMailer{failFor: map[string]bool{"Flaky Inc": true}}
	svc := app.NewAppService(&fakeUsers{}, nil, nil, sessions, mailer)

	result, err := svc.DispatchSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("DispatchSession failed: %v", err)
	}

	// Nothing generated: the session stays a draft for a retry.
	if sessions.sent {
		t.Errorf("session marked sent despite zero generated emails")
	}
	if result.Status != core.SessionStatusDraft {
		t.Errorf("result status = %s, want draft", result.Status)
	}
}

func TestDispatchSession_Rejections(t *testing.T) {
	mailer := &fakeMailer{}

	// Empty session.
	empty := &fakeSessions{session: draftSession(nil)}
	svc := app.NewAppService(&fakeUsers{}, nil, nil, empty, mailer)
	if _, err := svc.DispatchSession(context.Background(), 1, 1); err == nil {
		t.Errorf("expected error for empty session, got nil")
	}

	// Already sent session.
	sent := draftSession([]core.SessionItem{sessionItem(1, "Acme", "orders@acme.com", "Cola", 24)})
	sent.Status = core.SessionStatusSent
	svc = app.NewAppService(&fakeUsers{}, nil, nil, &fakeSessions{session: sent}, mailer)
	if _, err := svc.DispatchSession(context.Background(), 1, 1); err == nil {
		t.Errorf("expected error for sent session, got nil")
	}
	if mailer.calls != 0 {
		t.Errorf("mailer called %d times for rejected dispatches", mailer.calls)
	}
}

func TestDispatchSession_GroupsItemsPerSupplier(t *testing.T) {
	sessions := &fakeSessions{session: draftSession([]core.SessionItem{
		sessionItem(1, "Acme", "orders@acme.com", "Cola", 24),
		sessionItem(2, "Fresh Farms", "orders@freshfarms.com", "Milk", 12),
		sessionItem(1, "Acme", "orders@acme.com", "Lemonade", 6),
	})}
	mailer := &fakeMailer{}
	svc := app.NewAppService(&fakeUsers{}, nil, nil, sessions, mailer)

	result, err := svc.DispatchSession(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("DispatchSession failed: %v", err)
	}

	// Three items across two suppliers means exactly two emails.
	if mailer.calls != 2 {
		t.Errorf("mailer called %d times, want 2", mailer.calls)
	}
	if result.Generated != 2 || result.Failed != 0 {
		t.Errorf("generated/failed = %d/%d, want 2/0", result.Generated, result.Failed)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := app.NewAppService(&fakeUsers{}, nil, nil, &fakeSessions{}, &fakeMailer{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  app.RegisterRequest
	}{
		{"missing store name", app.RegisterRequest{Email: "a@b.com", Password: "longenough"}},
		{"bad email", app.RegisterRequest{StoreName: "Store", Email: "@test.com", Password: "longenough"}},
		{"short password", app.RegisterRequest{StoreName: "Store", Email: "a@b.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.req); err == nil {
				t.Errorf("expected error, got nil")
			}
		})
	}
}

func TestGetUserData_UnknownType(t *testing.T) {
	svc := app.NewAppService(&fakeUsers{}, nil, nil, &fakeSessions{}, &fakeMailer{})
	if _, err := svc.GetUserData(context.Background(), app.UserDataRequest{UserID: 1, DataType: "bogus"}); err == nil {
		t.Errorf("expected error for unknown dataType, got nil")
	}
}
