package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/mkowalik/copydesk/internal/domain/errors"
	"github.com/mkowalik/copydesk/internal/domain/model"
	"github.com/mkowalik/copydesk/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool used by the storage. Declared as an
// interface so tests can substitute a pgxmock pool.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type attachmentRepository struct {
	storage *Storage
}

type paymentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Attachments() repository.AttachmentRepository {
	return &attachmentRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            verified BOOLEAN NOT NULL DEFAULT FALSE,
            balance NUMERIC(12,2) NOT NULL DEFAULT 0,
            total_spent NUMERIC(12,2) NOT NULL DEFAULT 0,
            company_name TEXT NOT NULL DEFAULT '',
            tax_id TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            postal_code TEXT NOT NULL DEFAULT '',
            city TEXT NOT NULL DEFAULT '',
            building_no TEXT NOT NULL DEFAULT '',
            notify_order_updates BOOLEAN NOT NULL DEFAULT TRUE,
            notify_marketing BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS order_number_seq`,
		`CREATE SEQUENCE IF NOT EXISTS item_number_seq`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            number BIGINT UNIQUE NOT NULL,
            total_price NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            declared_delivery_date TIMESTAMPTZ NOT NULL,
            actual_delivery_date TIMESTAMPTZ,
            invoice_ref TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            number BIGINT UNIQUE NOT NULL,
            topic TEXT NOT NULL,
            length INT NOT NULL,
            price NUMERIC(12,2) NOT NULL,
            content_type TEXT NOT NULL,
            language TEXT NOT NULL,
            guidelines TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS attachments (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            kind TEXT NOT NULL,
            source TEXT NOT NULL,
            filename TEXT NOT NULL,
            url TEXT NOT NULL,
            on_completion BOOLEAN NOT NULL DEFAULT FALSE,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_attachments_slot
            ON attachments(order_id, kind)
            WHERE source = 'staff' AND kind IN ('pdf', 'docx', 'image')`,
		`CREATE TABLE IF NOT EXISTS payments (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            order_id BIGINT REFERENCES orders(id),
            kind TEXT NOT NULL,
            status TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            paid_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            discount NUMERIC(12,2) NOT NULL DEFAULT 0,
            session_id TEXT UNIQUE NOT NULL,
            processor_ref TEXT,
            invoice_id TEXT,
            fail_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_items_order ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_attachments_order ON attachments(order_id, uploaded_at)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_pending ON payments(created_at) WHERE status = 'pending'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

const userColumns = `id, email, password_hash, role, verified, balance, total_spent,
        company_name, tax_id, address, postal_code, city, building_no,
        notify_order_updates, notify_marketing, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Verified, &u.Balance, &u.TotalSpent,
		&u.Billing.CompanyName, &u.Billing.TaxID, &u.Billing.Address, &u.Billing.PostalCode,
		&u.Billing.City, &u.Billing.BuildingNo,
		&u.Notifications.OrderUpdates, &u.Notifications.Marketing, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3)
                   RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Email = email
	u.PasswordHash = passwordHash
	u.Role = role
	u.Balance = decimal.Zero
	u.TotalSpent = decimal.Zero
	u.Notifications = model.NotificationPrefs{OrderUpdates: true}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateBillingProfile(ctx context.Context, userID int64, profile model.BillingProfile) error {
	const query = `UPDATE users SET company_name=$1, tax_id=$2, address=$3, postal_code=$4,
                   city=$5, building_no=$6 WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query, profile.CompanyName, profile.TaxID, profile.Address,
		profile.PostalCode, profile.City, profile.BuildingNo, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateNotificationPrefs(ctx context.Context, userID int64, prefs model.NotificationPrefs) error {
	const query = `UPDATE users SET notify_order_updates=$1, notify_marketing=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, prefs.OrderUpdates, prefs.Marketing, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, number, total_price, status, payment_status,
        declared_delivery_date, actual_delivery_date, invoice_ref, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Number, &o.TotalPrice, &o.Status, &o.PaymentStatus,
		&o.DeclaredDeliveryDate, &o.ActualDeliveryDate, &o.InvoiceRef, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, userID int64, items []model.OrderItem, total decimal.Decimal, declaredDeliveryDate time.Time) (*model.Order, error) {
	order := &model.Order{
		UserID:               userID,
		TotalPrice:           total,
		Status:               model.OrderStatusPending,
		PaymentStatus:        model.PaymentStatusPending,
		DeclaredDeliveryDate: declaredDeliveryDate,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, number, total_price, status, payment_status, declared_delivery_date)
                             VALUES ($1, nextval('order_number_seq'), $2, $3, $4, $5)
                             RETURNING id, number, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder, userID, total, order.Status, order.PaymentStatus, declaredDeliveryDate).
			Scan(&order.ID, &order.Number, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, number, topic, length, price, content_type, language, guidelines)
                            VALUES ($1, nextval('item_number_seq'), $2, $3, $4, $5, $6, $7)
                            RETURNING id, number`
		for _, item := range items {
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.Topic, item.Length, item.Price,
				item.ContentType, item.Language, item.Guidelines).Scan(&item.ID, &item.Number); err != nil {
				return err
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrConflict
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, err
	}

	const itemsQuery = `SELECT id, order_id, number, topic, length, price, content_type, language, guidelines
                        FROM order_items WHERE order_id=$1 ORDER BY number`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Number, &item.Topic, &item.Length,
			&item.Price, &item.ContentType, &item.Language, &item.Guidelines); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Number, &o.TotalPrice, &o.Status, &o.PaymentStatus,
			&o.DeclaredDeliveryDate, &o.ActualDeliveryDate, &o.InvoiceRef, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

func (r *orderRepository) Transition(ctx context.Context, orderID int64, from []model.OrderStatus, to model.OrderStatus, actualDeliveryDate *time.Time) error {
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	const query = `UPDATE orders
                   SET status=$1,
                       actual_delivery_date=COALESCE($2, actual_delivery_date),
                       updated_at=NOW()
                   WHERE id=$3 AND status = ANY($4)`
	tag, err := r.storage.pool.Exec(ctx, query, to, actualDeliveryDate, orderID, allowed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = r.storage.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return domainErrors.ErrInvalidState
}

func (r *orderRepository) SetInvoiceRef(ctx context.Context, orderID int64, invoiceRef string) error {
	const query = `UPDATE orders SET invoice_ref=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, invoiceRef, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- AttachmentRepository implementation ---

func (r *attachmentRepository) RecordDelivery(ctx context.Context, orderID int64, kind model.AttachmentKind, filename, url string) (*model.Attachment, error) {
	attachment := &model.Attachment{
		OrderID:  orderID,
		Kind:     kind,
		Source:   model.AttachmentSourceStaff,
		Filename: filename,
		URL:      url,
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status model.OrderStatus
		err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1 FOR UPDATE`, orderID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if status == model.OrderStatusCancelled {
			return domainErrors.ErrInvalidState
		}
		attachment.OnCompletion = status == model.OrderStatusCompleted

		if kind.Singular() {
			const upsert = `INSERT INTO attachments (order_id, kind, source, filename, url, on_completion)
                            VALUES ($1, $2, 'staff', $3, $4, $5)
                            ON CONFLICT (order_id, kind) WHERE source = 'staff' AND kind IN ('pdf', 'docx', 'image')
                            DO UPDATE SET filename=EXCLUDED.filename, url=EXCLUDED.url,
                                          on_completion=EXCLUDED.on_completion, uploaded_at=NOW()
                            RETURNING id, uploaded_at`
			return tx.QueryRow(ctx, upsert, orderID, kind, filename, url, attachment.OnCompletion).
				Scan(&attachment.ID, &attachment.UploadedAt)
		}

		const insert = `INSERT INTO attachments (order_id, kind, source, filename, url, on_completion)
                        VALUES ($1, $2, 'staff', $3, $4, $5)
                        RETURNING id, uploaded_at`
		return tx.QueryRow(ctx, insert, orderID, kind, filename, url, attachment.OnCompletion).
			Scan(&attachment.ID, &attachment.UploadedAt)
	})
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

func (r *attachmentRepository) RecordCustomerUpload(ctx context.Context, orderID int64, filename, url string) (*model.Attachment, error) {
	attachment := &model.Attachment{
		OrderID:  orderID,
		Kind:     model.AttachmentKindOther,
		Source:   model.AttachmentSourceCustomer,
		Filename: filename,
		URL:      url,
	}

	const insert = `INSERT INTO attachments (order_id, kind, source, filename, url)
                    VALUES ($1, $2, 'customer', $3, $4)
                    RETURNING id, uploaded_at`
	err := r.storage.pool.QueryRow(ctx, insert, orderID, attachment.Kind, filename, url).
		Scan(&attachment.ID, &attachment.UploadedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return attachment, nil
}

func (r *attachmentRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Attachment, error) {
	const query = `SELECT id, order_id, kind, source, filename, url, on_completion, uploaded_at
                   FROM attachments WHERE order_id=$1 ORDER BY uploaded_at`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Attachment
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.OrderID, &a.Kind, &a.Source, &a.Filename, &a.URL,
			&a.OnCompletion, &a.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PaymentRepository implementation ---

const paymentColumns = `id, user_id, order_id, kind, status, amount, paid_amount, discount,
        session_id, processor_ref, invoice_id, fail_reason, created_at, updated_at`

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.OrderID, &p.Kind, &p.Status, &p.Amount, &p.PaidAmount,
		&p.Discount, &p.SessionID, &p.ProcessorRef, &p.InvoiceID, &p.FailReason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, userID int64, orderID *int64, kind model.PaymentKind, amount decimal.Decimal, sessionID string) (*model.Payment, error) {
	const query = `INSERT INTO payments (user_id, order_id, kind, status, amount, session_id)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING id, created_at, updated_at`
	payment := &model.Payment{
		UserID:    userID,
		OrderID:   orderID,
		Kind:      kind,
		Status:    model.PaymentStatePending,
		Amount:    amount,
		SessionID: sessionID,
	}
	err := r.storage.pool.QueryRow(ctx, query, userID, orderID, kind, payment.Status, amount, sessionID).
		Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *paymentRepository) GetBySession(ctx context.Context, sessionID string) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE session_id=$1`
	return scanPayment(r.storage.pool.QueryRow(ctx, query, sessionID))
}

func (r *paymentRepository) listPayments(ctx context.Context, query string, args ...any) ([]model.Payment, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.OrderID, &p.Kind, &p.Status, &p.Amount, &p.PaidAmount,
			&p.Discount, &p.SessionID, &p.ProcessorRef, &p.InvoiceID, &p.FailReason, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 ORDER BY created_at DESC`
	return r.listPayments(ctx, query, userID)
}

func (r *paymentRepository) ListPending(ctx context.Context, limit int) ([]model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE status='pending' ORDER BY created_at LIMIT $1`
	return r.listPayments(ctx, query, limit)
}

func (r *paymentRepository) Complete(ctx context.Context, paymentID int64, paidAmount decimal.Decimal, processorRef string) (*model.Payment, error) {
	var payment *model.Payment

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lock = `SELECT id, user_id, order_id, kind, status, amount, processor_ref
                      FROM payments WHERE id=$1 FOR UPDATE`
		var (
			p       model.Payment
			prevRef *string
		)
		err := tx.QueryRow(ctx, lock, paymentID).
			Scan(&p.ID, &p.UserID, &p.OrderID, &p.Kind, &p.Status, &p.Amount, &prevRef)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		switch p.Status {
		case model.PaymentStateCompleted:
			if prevRef != nil && *prevRef == processorRef {
				payment = &p
				return nil
			}
			return domainErrors.ErrDuplicateSettlement
		case model.PaymentStateFailed:
			return domainErrors.ErrInvalidState
		}

		discount := p.Amount.Sub(paidAmount)
		if discount.IsNegative() {
			discount = decimal.Zero
		}

		const update = `UPDATE payments
                        SET status=$1, paid_amount=$2, discount=$3, processor_ref=$4, updated_at=NOW()
                        WHERE id=$5`
		if _, err := tx.Exec(ctx, update, model.PaymentStateCompleted, paidAmount, discount, processorRef, p.ID); err != nil {
			return err
		}

		switch p.Kind {
		case model.PaymentKindTopUp:
			if _, err := tx.Exec(ctx, `UPDATE users SET balance = balance + $1 WHERE id=$2`, paidAmount, p.UserID); err != nil {
				return err
			}
		case model.PaymentKindOrderPayment:
			if _, err := tx.Exec(ctx, `UPDATE orders SET payment_status=$1, updated_at=NOW() WHERE id=$2`,
				model.PaymentStatusPaid, *p.OrderID); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `UPDATE users SET total_spent = total_spent + $1 WHERE id=$2`, paidAmount, p.UserID); err != nil {
				return err
			}
		}

		p.Status = model.PaymentStateCompleted
		p.PaidAmount = paidAmount
		p.Discount = discount
		p.ProcessorRef = &processorRef
		payment = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepository) Fail(ctx context.Context, paymentID int64, reason string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var status model.PaymentState
		err := tx.QueryRow(ctx, `SELECT status FROM payments WHERE id=$1 FOR UPDATE`, paymentID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		switch status {
		case model.PaymentStateFailed:
			return nil
		case model.PaymentStateCompleted:
			return domainErrors.ErrInvalidState
		}

		const update = `UPDATE payments SET status=$1, fail_reason=$2, updated_at=NOW() WHERE id=$3`
		_, err = tx.Exec(ctx, update, model.PaymentStateFailed, reason, paymentID)
		return err
	})
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Pool exposes raw connection pool for advanced use.
func (s *Storage) Pool() Pool {
	return s.pool
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
