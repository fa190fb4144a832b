package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restock-agent/internal/ai"
	"restock-agent/internal/core"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type appService struct {
	users     core.UserService
	suppliers core.SupplierService
	products  core.ProductService
	sessions  core.SessionService
	mailer    ai.MailerService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	users core.UserService,
	suppliers core.SupplierService,
	products core.ProductService,
	sessions core.SessionService,
	mailer ai.MailerService,
) ApplicationService {
	return &appService{
		users:     users,
		suppliers: suppliers,
		products:  products,
		sessions:  sessions,
		mailer:    mailer,
	}
}

// Register creates a new store owner account.
func (s *appService) Register(ctx context.Context, req RegisterRequest) (*UserResult, error) {
	if strings.TrimSpace(req.StoreName) == "" {
		return nil, fmt.Errorf("store name is required")
	}
	if !core.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("invalid email address %q", req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, core.UserInput{
		Email:        req.Email,
		StoreName:    strings.TrimSpace(req.StoreName),
		OwnerName:    strings.TrimSpace(req.OwnerName),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}
	return &UserResult{User: user}, nil
}

// AuthenticateUser verifies credentials and returns a session on success.
func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &UserSession{UserID: user.ID, Email: user.Email, StoreName: user.StoreName}, nil
}

// GetUser returns a user profile by ID.
func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: user}, nil
}

// ReconcileSupplier resolves a supplier name to a stable identifier.
func (s *appService) ReconcileSupplier(ctx context.Context, req ReconcileSupplierRequest) (*SupplierResult, error) {
	if req.Email != "" && !core.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("invalid supplier email %q", req.Email)
	}
	supplier, err := s.suppliers.Reconcile(ctx, req.UserID, req.Name, req.Email)
	if err != nil {
		return nil, err
	}
	return &SupplierResult{Supplier: supplier}, nil
}

// CreateSupplier inserts a new supplier record.
func (s *appService) CreateSupplier(ctx context.Context, req SupplierRequest) (*SupplierResult, error) {
	if req.Email != "" && !core.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("invalid supplier email %q", req.Email)
	}
	supplier, err := s.suppliers.Create(ctx, req.UserID, core.SupplierInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &SupplierResult{Supplier: supplier}, nil
}

// ListSuppliers returns all suppliers owned by the user.
func (s *appService) ListSuppliers(ctx context.Context, userID int) (*SuppliersResult, error) {
	suppliers, err := s.suppliers.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SuppliersResult{Suppliers: suppliers}, nil
}

// UpdateSupplier replaces the editable fields of a supplier.
func (s *appService) UpdateSupplier(ctx context.Context, supplierID int, req SupplierRequest) (*SupplierResult, error) {
	if req.Email != "" && !core.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("invalid supplier email %q", req.Email)
	}
	supplier, err := s.suppliers.Update(ctx, req.UserID, supplierID, core.SupplierInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &SupplierResult{Supplier: supplier}, nil
}

// DeleteSupplier removes a supplier owned by the user.
func (s *appService) DeleteSupplier(ctx context.Context, userID, supplierID int) error {
	return s.suppliers.Delete(ctx, userID, supplierID)
}

// ReconcileProduct resolves a product name to a stable identifier.
func (s *appService) ReconcileProduct(ctx context.Context, req ReconcileProductRequest) (*ProductResult, error) {
	product, err := s.products.Reconcile(ctx, req.UserID, req.Name, req.DefaultSupplierID)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

// CreateProduct inserts a new product record.
func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error) {
	product, err := s.products.Create(ctx, req.UserID, core.ProductInput{
		Name:              req.Name,
		DefaultQuantity:   req.DefaultQuantity,
		DefaultSupplierID: req.DefaultSupplierID,
	})
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

// ListProducts returns all products owned by the user.
func (s *appService) ListProducts(ctx context.Context, userID int) (*ProductsResult, error) {
	products, err := s.products.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ProductsResult{Products: products}, nil
}

// DeleteProduct removes a product owned by the user.
func (s *appService) DeleteProduct(ctx context.Context, userID, productID int) error {
	return s.products.Delete(ctx, userID, productID)
}

// CreateSession opens a new draft restock session.
func (s *appService) CreateSession(ctx context.Context, userID int) (*SessionResult, error) {
	sess, err := s.sessions.Create(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Session: sess}, nil
}

// GetSession returns a session with items, groups, and summary.
func (s *appService) GetSession(ctx context.Context, userID, sessionID int) (*SessionResult, error) {
	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionResult{
		Session: sess,
		Summary: core.Summarize(sess.Items),
		Groups:  core.GroupBySupplier(sess.Items),
	}, nil
}

// ListSessions partitions the user's sessions by lifecycle state.
func (s *appService) ListSessions(ctx context.Context, userID int, includeFinished bool) (*SessionsResult, error) {
	sessions, err := s.sessions.List(ctx, userID, includeFinished)
	if err != nil {
		return nil, err
	}
	result := &SessionsResult{}
	for _, sess := range sessions {
		if sess.Status == core.SessionStatusSent {
			result.Finished = append(result.Finished, sess)
		} else {
			result.Unfinished = append(result.Unfinished, sess)
		}
	}
	return result, nil
}

// AddSessionItem appends a line item to a draft session.
func (s *appService) AddSessionItem(ctx context.Context, req AddItemRequest) (*SessionItemResult, error) {
	item, err := s.sessions.AddItem(ctx, req.UserID, req.SessionID, core.SessionItemInput{
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &SessionItemResult{Item: item}, nil
}

// RemoveSessionItem deletes a line item from a draft session.
func (s *appService) RemoveSessionItem(ctx context.Context, userID, sessionID, itemID int) error {
	return s.sessions.RemoveItem(ctx, userID, sessionID, itemID)
}

// GetSessionSummary returns the derived counters for a session.
func (s *appService) GetSessionSummary(ctx context.Context, userID, sessionID int) (*core.SessionSummary, error) {
	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	summary := core.Summarize(sess.Items)
	return &summary, nil
}

// GenerateOrderEmail drafts a single supplier order email outside a session.
func (s *appService) GenerateOrderEmail(ctx context.Context, req GenerateEmailRequest) (*EmailResult, error) {
	if strings.TrimSpace(req.SupplierName) == "" {
		return nil, fmt.Errorf("supplier name is required")
	}
	if !core.IsValidEmail(req.SupplierEmail) {
		return nil, fmt.Errorf("invalid supplier email %q", req.SupplierEmail)
	}
	if len(req.Products) == 0 {
		return nil, fmt.Errorf("at least one product is required")
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	products := make([]ai.OrderEmailProduct, len(req.Products))
	for i, p := range req.Products {
		if p.Quantity <= 0 {
			return nil, fmt.Errorf("product %q: quantity must be positive", p.Name)
		}
		products[i] = ai.OrderEmailProduct{Name: p.Name, Quantity: p.Quantity}
	}

	start := time.Now()
	email, err := s.mailer.GenerateOrderEmail(ctx, ai.OrderEmailRequest{
		SupplierName:  req.SupplierName,
		SupplierEmail: req.SupplierEmail,
		StoreName:     user.StoreName,
		OwnerName:     user.OwnerName,
		Products:      products,
		Urgency:       req.Urgency,
		Tone:          req.Tone,
	})
	if err != nil {
		return nil, err
	}

	return &EmailResult{
		Subject:      email.Subject,
		Body:         email.Body,
		Confidence:   email.Confidence,
		GenerationMs: time.Since(start).Milliseconds(),
		Model:        s.mailer.Model(),
	}, nil
}

// DispatchSession generates one order email per supplier group. Each
// generation call is independent: a failure is recorded on that supplier's
// result and the loop moves on. The session transitions to sent only when at
// least one email was produced.
func (s *appService) DispatchSession(ctx context.Context, userID, sessionID int) (*DispatchResult, error) {
	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == core.SessionStatusSent {
		return nil, fmt.Errorf("session %d has already been sent", sessionID)
	}
	if len(sess.Items) == 0 {
		return nil, fmt.Errorf("session %d has no items to dispatch", sessionID)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	groups := core.GroupBySupplier(sess.Items)
	result := &DispatchResult{SessionID: sessionID, Status: sess.Status}

	for _, g := range groups {
		r := SupplierEmailResult{
			SupplierID:    g.SupplierID,
			SupplierName:  g.SupplierName,
			SupplierEmail: g.SupplierEmail,
		}

		if !core.IsValidEmail(g.SupplierEmail) {
			r.Error = fmt.Sprintf("supplier %q has no valid email address", g.SupplierName)
			result.Failed++
			result.Results = append(result.Results, r)
			continue
		}

		products := make([]ai.OrderEmailProduct, len(g.Items))
		for i, it := range g.Items {
			products[i] = ai.OrderEmailProduct{Name: it.ProductName, Quantity: it.Quantity}
		}

		start := time.Now()
		email, err := s.mailer.GenerateOrderEmail(ctx, ai.OrderEmailRequest{
			SupplierName:  g.SupplierName,
			SupplierEmail: g.SupplierEmail,
			StoreName:     user.StoreName,
			OwnerName:     user.OwnerName,
			Products:      products,
		})
		if err != nil {
			r.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, r)
			continue
		}
		generationMs := time.Since(start).Milliseconds()

		if _, err := s.sessions.SaveEmailDraft(ctx, sessionID, g.SupplierID, *email, s.mailer.Model(), generationMs); err != nil {
			r.Error = err.Error()
			result.Failed++
			result.Results = append(result.Results, r)
			continue
		}

		r.Email = &EmailResult{
			Subject:      email.Subject,
			Body:         email.Body,
			Confidence:   email.Confidence,
			GenerationMs: generationMs,
			Model:        s.mailer.Model(),
		}
		result.Generated++
		result.Results = append(result.Results, r)
	}

	if result.Generated > 0 {
		if err := s.sessions.MarkSent(ctx, userID, sessionID); err != nil {
			return nil, err
		}
		result.Status = core.SessionStatusSent
	}

	return result, nil
}

// ListSessionEmails returns the persisted email drafts for a session.
func (s *appService) ListSessionEmails(ctx context.Context, userID, sessionID int) (*SessionEmailsResult, error) {
	drafts, err := s.sessions.ListEmailDrafts(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionEmailsResult{Drafts: drafts}, nil
}

// GetUserData returns the user's data for the requested dataType.
func (s *appService) GetUserData(ctx context.Context, req UserDataRequest) (*UserDataResult, error) {
	result := &UserDataResult{}

	wantSessions := req.DataType == "sessions" || req.DataType == "all"
	wantProducts := req.DataType == "products" || req.DataType == "all"
	wantSuppliers := req.DataType == "suppliers" || req.DataType == "all"
	if !wantSessions && !wantProducts && !wantSuppliers {
		return nil, fmt.Errorf("unknown dataType %q (want sessions, products, suppliers, or all)", req.DataType)
	}

	if wantSessions {
		partition, err := s.ListSessions(ctx, req.UserID, req.IncludeFinished)
		if err != nil {
			return nil, err
		}
		result.Unfinished = partition.Unfinished
		result.Finished = partition.Finished
	}
	if wantProducts {
		products, err := s.products.List(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		result.Products = products
	}
	if wantSuppliers {
		suppliers, err := s.suppliers.List(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		result.Suppliers = suppliers
	}
	if req.DataType == "all" {
		user, err := s.users.GetByID(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		result.Profile = user
	}

	return result, nil
}
