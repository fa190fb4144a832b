package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type sessionService struct {
	pool *pgxpool.Pool
}

// NewSessionService constructs a SessionService backed by PostgreSQL.
func NewSessionService(pool *pgxpool.Pool) SessionService {
	return &sessionService{pool: pool}
}

// Create opens a new draft session for the user.
func (s *sessionService) Create(ctx context.Context, userID int) (*RestockSession, error) {
	sess := &RestockSession{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO restock_sessions (user_id, status)
		VALUES ($1, 'draft')
		RETURNING id, user_id, status, created_at, sent_at`,
		userID,
	).Scan(&sess.ID, &sess.UserID, &sess.Status, &sess.CreatedAt, &sess.SentAt)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get returns a session with its ordered item list, scoped to the user.
func (s *sessionService) Get(ctx context.Context, userID, sessionID int) (*RestockSession, error) {
	sess := &RestockSession{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, status, created_at, sent_at
		FROM restock_sessions
		WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(&sess.ID, &sess.UserID, &sess.Status, &sess.CreatedAt, &sess.SentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %d not found", sessionID)
		}
		return nil, fmt.Errorf("get session %d: %w", sessionID, err)
	}

	items, err := s.fetchItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Items = items
	sess.ItemCount = len(items)
	for _, it := range items {
		sess.TotalQuantity += it.Quantity
	}
	return sess, nil
}

// List returns the user's sessions, newest first, with derived counters.
func (s *sessionService) List(ctx context.Context, userID int, includeFinished bool) ([]RestockSession, error) {
	query := `
		SELECT rs.id, rs.user_id, rs.status, rs.created_at, rs.sent_at,
		       COUNT(si.id), COALESCE(SUM(si.quantity), 0)
		FROM restock_sessions rs
		LEFT JOIN session_items si ON si.session_id = rs.id
		WHERE rs.user_id = $1`
	if !includeFinished {
		query += " AND rs.status = 'draft'"
	}
	query += `
		GROUP BY rs.id
		ORDER BY rs.created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []RestockSession
	for rows.Next() {
		var sess RestockSession
		if err := rows.Scan(&sess.ID, &sess.UserID, &sess.Status, &sess.CreatedAt, &sess.SentAt,
			&sess.ItemCount, &sess.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// AddItem appends a line item to a draft session inside one transaction, so
// the status check and the insert cannot interleave with a dispatch.
func (s *sessionService) AddItem(ctx context.Context, userID, sessionID int, input SessionItemInput) (*SessionItem, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", input.Quantity)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status SessionStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM restock_sessions WHERE id = $1 AND user_id = $2 FOR UPDATE",
		sessionID, userID,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("session %d not found", sessionID)
		}
		return nil, fmt.Errorf("fetch session %d: %w", sessionID, err)
	}
	if status != SessionStatusDraft {
		return nil, fmt.Errorf("session %d is %s; items can only be added to a draft", sessionID, status)
	}

	// The product and supplier must belong to the session's owner.
	var productOK bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND user_id = $2)",
		input.ProductID, userID,
	).Scan(&productOK); err != nil {
		return nil, fmt.Errorf("validate product: %w", err)
	}
	if !productOK {
		return nil, fmt.Errorf("product %d not found for user %d", input.ProductID, userID)
	}

	var supplierOK bool
	if err := tx.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1 AND user_id = $2)",
		input.SupplierID, userID,
	).Scan(&supplierOK); err != nil {
		return nil, fmt.Errorf("validate supplier: %w", err)
	}
	if !supplierOK {
		return nil, fmt.Errorf("supplier %d not found for user %d", input.SupplierID, userID)
	}

	var toNotes *string
	if input.Notes != "" {
		toNotes = &input.Notes
	}

	var itemID int
	if err := tx.QueryRow(ctx, `
		INSERT INTO session_items (session_id, product_id, supplier_id, quantity, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		sessionID, input.ProductID, input.SupplierID, input.Quantity, toNotes,
	).Scan(&itemID); err != nil {
		return nil, fmt.Errorf("insert session item: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit session item: %w", err)
	}

	return s.getItem(ctx, itemID)
}

// RemoveItem deletes a line item from a draft session.
func (s *sessionService) RemoveItem(ctx context.Context, userID, sessionID, itemID int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status SessionStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM restock_sessions WHERE id = $1 AND user_id = $2 FOR UPDATE",
		sessionID, userID,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("session %d not found", sessionID)
		}
		return fmt.Errorf("fetch session %d: %w", sessionID, err)
	}
	if status != SessionStatusDraft {
		return fmt.Errorf("session %d is %s; items can only be removed from a draft", sessionID, status)
	}

	tag, err := tx.Exec(ctx,
		"DELETE FROM session_items WHERE id = $1 AND session_id = $2",
		itemID, sessionID,
	)
	if err != nil {
		return fmt.Errorf("delete session item %d: %w", itemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d not found on session %d", itemID, sessionID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit item removal: %w", err)
	}
	return nil
}

// MarkSent transitions a draft session to sent. The row is locked for the
// status check so two concurrent dispatches cannot both pass it.
func (s *sessionService) MarkSent(ctx context.Context, userID, sessionID int) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status SessionStatus
	if err := tx.QueryRow(ctx,
		"SELECT status FROM restock_sessions WHERE id = $1 AND user_id = $2 FOR UPDATE",
		sessionID, userID,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("session %d not found", sessionID)
		}
		return fmt.Errorf("fetch session %d: %w", sessionID, err)
	}
	if status == SessionStatusSent {
		return fmt.Errorf("session %d has already been sent", sessionID)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE restock_sessions SET status = 'sent', sent_at = now() WHERE id = $1",
		sessionID,
	); err != nil {
		return fmt.Errorf("mark session %d sent: %w", sessionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit session send: %w", err)
	}
	return nil
}

// SaveEmailDraft persists a generated order email against a session.
func (s *sessionService) SaveEmailDraft(ctx context.Context, sessionID, supplierID int, email OrderEmail, model string, generationMs int64) (*EmailDraft, error) {
	d := &EmailDraft{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO email_drafts (session_id, supplier_id, subject, body, confidence, model, generation_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, session_id, supplier_id, subject, body, confidence, model, generation_ms, created_at`,
		sessionID, supplierID, email.Subject, email.Body, email.Confidence, model, generationMs,
	).Scan(&d.ID, &d.SessionID, &d.SupplierID, &d.Subject, &d.Body,
		&d.Confidence, &d.Model, &d.GenerationMs, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save email draft for session %d: %w", sessionID, err)
	}
	return d, nil
}

// ListEmailDrafts returns the generated emails for a session, newest first.
func (s *sessionService) ListEmailDrafts(ctx context.Context, userID, sessionID int) ([]EmailDraft, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.id, d.session_id, d.supplier_id, sup.name, d.subject, d.body,
		       d.confidence, d.model, d.generation_ms, d.created_at
		FROM email_drafts d
		JOIN restock_sessions rs ON rs.id = d.session_id
		JOIN suppliers sup ON sup.id = d.supplier_id
		WHERE d.session_id = $1 AND rs.user_id = $2
		ORDER BY d.created_at DESC, d.id DESC`,
		sessionID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list email drafts for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var drafts []EmailDraft
	for rows.Next() {
		var d EmailDraft
		if err := rows.Scan(&d.ID, &d.SessionID, &d.SupplierID, &d.SupplierName,
			&d.Subject, &d.Body, &d.Confidence, &d.Model, &d.GenerationMs, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan email draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// fetchItems returns a session's line items in insertion order with the
// product and supplier fields needed for grouping and email generation.
func (s *sessionService) fetchItems(ctx context.Context, sessionID int) ([]SessionItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT si.id, si.session_id, si.product_id, p.name,
		       si.supplier_id, sup.name, sup.email,
		       si.quantity, si.notes, si.created_at
		FROM session_items si
		JOIN products p ON p.id = si.product_id
		JOIN suppliers sup ON sup.id = si.supplier_id
		WHERE si.session_id = $1
		ORDER BY si.id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch items for session %d: %w", sessionID, err)
	}
	defer rows.Close()

	var items []SessionItem
	for rows.Next() {
		var it SessionItem
		if err := rows.Scan(&it.ID, &it.SessionID, &it.ProductID, &it.ProductName,
			&it.SupplierID, &it.SupplierName, &it.SupplierEmail,
			&it.Quantity, &it.Notes, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session item: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

// getItem returns a single line item with denormalized names.
func (s *sessionService) getItem(ctx context.Context, itemID int) (*SessionItem, error) {
	it := &SessionItem{}
	err := s.pool.QueryRow(ctx, `
		SELECT si.id, si.session_id, si.product_id, p.name,
		       si.supplier_id, sup.name, sup.email,
		       si.quantity, si.notes, si.created_at
		FROM session_items si
		JOIN products p ON p.id = si.product_id
		JOIN suppliers sup ON sup.id = si.supplier_id
		WHERE si.id = $1`,
		itemID,
	).Scan(&it.ID, &it.SessionID, &it.ProductID, &it.ProductName,
		&it.SupplierID, &it.SupplierName, &it.SupplierEmail,
		&it.Quantity, &it.Notes, &it.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get session item %d: %w", itemID, err)
	}
	return it, nil
}
