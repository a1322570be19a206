package handlers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dashformance/leads-api/internal/dto"
	"dashformance/leads-api/internal/normalize"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// selectColumns is the column order scanned by scanLead
var selectColumns = []string{
	"id", "company_name", "trade_name", "cnpj", "phone", "email", "instagram_url",
	"website_url", "render_quality", "decision_maker", "extra_info", "status",
	"priority", "score", "source", "notes", "owner", "uf", "city",
	"first_contact_date", "last_contact_date", "next_followup_date", "date_added",
	`"deletedAt"`,
}

// PostgresHandler stores leads directly in PostgreSQL through the pgx driver
type PostgresHandler struct {
	db    *sql.DB
	table string
	cols  string
	log   *logrus.Entry
}

// NewPostgresHandler opens a pooled connection and verifies it with a ping
func NewPostgresHandler(ctx context.Context, dsn, table string, logger *logrus.Logger) (*PostgresHandler, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required")
	}
	if table == "" {
		table = "leads"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", dto.ErrDatabaseUnavailable, err)
	}

	log := logger.WithField("component", "PostgresHandler")
	log.WithField("table", table).Info("[PostgresHandler] Connected")

	return newPostgresHandler(db, table, log), nil
}

func newPostgresHandler(db *sql.DB, table string, log *logrus.Entry) *PostgresHandler {
	return &PostgresHandler{
		db:    db,
		table: pgx.Identifier{table}.Sanitize(),
		cols:  strings.Join(selectColumns, ", "),
		log:   log,
	}
}

// Close releases the connection pool
func (h *PostgresHandler) Close() error {
	return h.db.Close()
}

// CreateLead inserts one lead
func (h *PostgresHandler) CreateLead(ctx context.Context, lead *dto.Lead) (*dto.Lead, error) {
	args, err := leadArgs(lead)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s", h.table, h.cols, placeholders(1, len(selectColumns)), h.cols)

	created, err := scanLead(h.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return created, nil
}

// UpsertLeadsByCNPJ inserts or refreshes leads keyed by cnpj in one transaction
func (h *PostgresHandler) UpsertLeadsByCNPJ(ctx context.Context, leads []dto.Lead) (int, error) {
	if len(leads) == 0 {
		return 0, nil
	}

	sets := make([]string, 0, len(refreshColumns)+1)
	for _, col := range refreshColumns {
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	sets = append(sets, `"deletedAt" = NULL`)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (cnpj) DO UPDATE SET %s",
		h.table, h.cols, placeholders(1, len(selectColumns)), strings.Join(sets, ", "))

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, mapPgError(err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, mapPgError(err)
	}
	defer stmt.Close()

	for i := range leads {
		lead := leads[i]
		lead.DeletedAt = nil
		args, err := leadArgs(&lead)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, mapPgError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, mapPgError(err)
	}
	h.log.WithField("rows", len(leads)).Debug("[PostgresHandler] Upsert by cnpj committed")
	return len(leads), nil
}

// GetLead returns a lead by id
func (h *PostgresHandler) GetLead(ctx context.Context, id string) (*dto.Lead, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", h.cols, h.table)
	lead, err := scanLead(h.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapPgError(err)
	}
	return lead, nil
}

// ListLeads pages active leads, newest first
func (h *PostgresHandler) ListLeads(ctx context.Context, offset, limit int) ([]dto.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "deletedAt" IS NULL ORDER BY date_added DESC, id LIMIT $1 OFFSET $2`, h.cols, h.table)
	return h.queryLeads(ctx, query, limit, offset)
}

// ListActiveLeads returns every active lead, oldest first
func (h *PostgresHandler) ListActiveLeads(ctx context.Context) ([]dto.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "deletedAt" IS NULL ORDER BY date_added ASC, id`, h.cols, h.table)
	return h.queryLeads(ctx, query)
}

// ListActiveLeadIDs returns the ids of active leads matching filter, oldest first
func (h *PostgresHandler) ListActiveLeadIDs(ctx context.Context, filter dto.LeadFilter) ([]string, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`SELECT id FROM %s WHERE "deletedAt" IS NULL%s ORDER BY date_added ASC, id`, h.table, where)
	return h.queryStrings(ctx, query, args...)
}

// CountActiveLeads counts active leads matching filter
func (h *PostgresHandler) CountActiveLeads(ctx context.Context, filter dto.LeadFilter) (int, error) {
	where, args := filterClause(filter)
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE "deletedAt" IS NULL%s`, h.table, where)

	var count int
	if err := h.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, mapPgError(err)
	}
	return count, nil
}

// ListTrashedLeads returns soft-deleted leads, most recently deleted first
func (h *PostgresHandler) ListTrashedLeads(ctx context.Context) ([]dto.Lead, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE "deletedAt" IS NOT NULL ORDER BY "deletedAt" DESC`, h.cols, h.table)
	return h.queryLeads(ctx, query)
}

// UpdateLead patches one lead and returns it
func (h *PostgresHandler) UpdateLead(ctx context.Context, id string, patch dto.LeadPatch) (*dto.Lead, error) {
	set, args, err := setClause(patch, 2)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $1 RETURNING %s", h.table, set, h.cols)

	lead, err := scanLead(h.db.QueryRowContext(ctx, query, append([]interface{}{id}, args...)...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return lead, nil
}

// UpdateLeads applies the same patch to many leads
func (h *PostgresHandler) UpdateLeads(ctx context.Context, ids []string, patch dto.LeadPatch) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	set, args, err := setClause(patch, 2)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ANY($1)", h.table, set)

	res, err := h.db.ExecContext(ctx, query, append([]interface{}{ids}, args...)...)
	if err != nil {
		return 0, mapPgError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapPgError(err)
	}
	return int(n), nil
}

// SetLeadsDeleted soft-deletes or restores many leads
func (h *PostgresHandler) SetLeadsDeleted(ctx context.Context, ids []string, deletedAt *time.Time) (int, error) {
	var value interface{}
	if deletedAt != nil {
		value = deletedAt.UTC()
	}
	return h.UpdateLeads(ctx, ids, dto.LeadPatch{"deletedAt": value})
}

// HardDeleteLead removes a lead row
func (h *PostgresHandler) HardDeleteLead(ctx context.Context, id string) error {
	res, err := h.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", h.table), id)
	if err != nil {
		return mapPgError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapPgError(err)
	}
	if n == 0 {
		return dto.ErrLeadNotFound
	}
	return nil
}

// ExistingCNPJs returns which of cnpjs belong to active leads
func (h *PostgresHandler) ExistingCNPJs(ctx context.Context, cnpjs []string) (map[string]struct{}, error) {
	query := fmt.Sprintf(`SELECT cnpj FROM %s WHERE "deletedAt" IS NULL AND cnpj = ANY($1)`, h.table)
	found, err := h.queryStrings(ctx, query, cnpjs)
	if err != nil {
		return nil, err
	}
	return toSet(found), nil
}

// ExistingEmails returns which of the normalized emails belong to active leads
func (h *PostgresHandler) ExistingEmails(ctx context.Context, emails []string) (map[string]struct{}, error) {
	keys := make([]string, 0, len(emails))
	for _, email := range emails {
		keys = append(keys, normalize.Email(email))
	}
	query := fmt.Sprintf(`SELECT DISTINCT lower(trim(email)) FROM %s WHERE "deletedAt" IS NULL AND lower(trim(email)) = ANY($1)`, h.table)
	found, err := h.queryStrings(ctx, query, keys)
	if err != nil {
		return nil, err
	}
	return toSet(found), nil
}

// ActivePhones returns the phone of every active lead that has one
func (h *PostgresHandler) ActivePhones(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT phone FROM %s WHERE "deletedAt" IS NULL AND phone IS NOT NULL`, h.table)
	return h.queryStrings(ctx, query)
}

func (h *PostgresHandler) queryLeads(ctx context.Context, query string, args ...interface{}) ([]dto.Lead, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	leads := []dto.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, mapPgError(err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return leads, nil
}

func (h *PostgresHandler) queryStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, mapPgError(err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return values, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*dto.Lead, error) {
	var lead dto.Lead
	var extra []byte
	err := row.Scan(
		&lead.ID, &lead.CompanyName, &lead.TradeName, &lead.CNPJ, &lead.Phone, &lead.Email,
		&lead.InstagramURL, &lead.WebsiteURL, &lead.RenderQuality, &lead.DecisionMaker,
		&extra, &lead.Status, &lead.Priority, &lead.Score, &lead.Source, &lead.Notes,
		&lead.Owner, &lead.UF, &lead.City, &lead.FirstContactDate, &lead.LastContactDate,
		&lead.NextFollowupDate, &lead.DateAdded, &lead.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.ExtraInfo = map[string]interface{}{}
	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &lead.ExtraInfo); err != nil {
			return nil, fmt.Errorf("failed to decode extra_info of %s: %w", lead.ID, err)
		}
	}
	return &lead, nil
}

// leadArgs returns the values of lead in selectColumns order
func leadArgs(lead *dto.Lead) ([]interface{}, error) {
	extra, err := jsonArg(lead.ExtraInfo)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		lead.ID, lead.CompanyName, lead.TradeName, lead.CNPJ, lead.Phone, lead.Email,
		lead.InstagramURL, lead.WebsiteURL, lead.RenderQuality, lead.DecisionMaker,
		extra, lead.Status, lead.Priority, lead.Score, lead.Source, lead.Notes,
		lead.Owner, lead.UF, lead.City, lead.FirstContactDate, lead.LastContactDate,
		lead.NextFollowupDate, lead.DateAdded, lead.DeletedAt,
	}, nil
}

// setClause renders patch as "col = $n" pairs numbered from first, in a stable order
func setClause(patch dto.LeadPatch, first int) (string, []interface{}, error) {
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("empty patch")
	}
	if err := checkPatch(patch); err != nil {
		return "", nil, err
	}

	columns := make([]string, 0, len(patch))
	for column := range patch {
		columns = append(columns, column)
	}
	slices.Sort(columns)

	sets := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, column := range columns {
		value := patch[column]
		if column == "extra_info" && value != nil {
			encoded, err := jsonArg(value)
			if err != nil {
				return "", nil, err
			}
			value = encoded
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", pgx.Identifier{column}.Sanitize(), first+i))
		args = append(args, value)
	}
	return strings.Join(sets, ", "), args, nil
}

func filterClause(filter dto.LeadFilter) (string, []interface{}) {
	switch {
	case filter.Owner != nil:
		return " AND owner = $1", []interface{}{*filter.Owner}
	case filter.Unassigned:
		return " AND (owner IS NULL OR owner = '')", nil
	}
	return "", nil
}

func placeholders(first, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", first+i)
	}
	return strings.Join(parts, ", ")
}

func jsonArg(v interface{}) (string, error) {
	if v == nil {
		return "{}", nil
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode extra_info: %w", err)
	}
	return string(encoded), nil
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// mapPgError translates driver failures into store errors
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return dto.ErrLeadNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%w: %s", dto.ErrLeadConflict, pgErr.Detail)
		case strings.HasPrefix(pgErr.Code, "08"), pgErr.Code == "57P01", pgErr.Code == "53300":
			return fmt.Errorf("%w: %s", dto.ErrDatabaseUnavailable, pgErr.Message)
		}
		return fmt.Errorf("postgres error %s: %s", pgErr.Code, pgErr.Message)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", dto.ErrDatabaseUnavailable, err)
	}
	return err
}
