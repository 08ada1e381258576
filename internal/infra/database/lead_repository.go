package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const leadColumns = `id, name, company, email, phone, status, owner, owner_avatar, created_date, updated_date`

// Queries are written with "?" and rebound once for the driver's placeholder
// style, so values always travel as bound parameters.
const (
	leadsSelectByID = `SELECT ` + leadColumns + ` FROM leads WHERE id = ?`

	leadsInsert = `INSERT INTO leads (name, company, email, phone, status, owner, owner_avatar)
VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`

	leadsUpdate = `UPDATE leads
SET name = ?, company = ?, email = ?, phone = ?, status = ?, owner = ?, owner_avatar = ?, updated_date = CURRENT_TIMESTAMP
WHERE id = ?`

	leadsDelete = `DELETE FROM leads WHERE id = ?`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type LeadRepository struct {
	DB *sqlx.DB

	selectByID string
	insert     string
	update     string
	delete     string
}

func NewLeadRepository(db *sqlx.DB) *LeadRepository {
	return &LeadRepository{
		DB:         db,
		selectByID: db.Rebind(leadsSelectByID),
		insert:     db.Rebind(leadsInsert),
		update:     db.Rebind(leadsUpdate),
		delete:     db.Rebind(leadsDelete),
	}
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	query, args := buildListQuery(filter)

	leads := []entity.Lead{}
	if err := r.DB.SelectContext(ctx, &leads, r.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// buildListQuery returns the List statement with "?" placeholders.
func buildListQuery(filter entity.LeadFilter) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	if filter.Search != "" {
		where = append(where, `(name LIKE ? ESCAPE '\' OR company LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\')`)
		term := "%" + likeEscaper.Replace(filter.Search) + "%"
		args = append(args, term, term, term)
	}

	if filter.HasStatus() {
		where = append(where, `status = ?`)
		args = append(args, filter.Status)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + leadColumns + ` FROM leads`)
	if len(where) > 0 {
		b.WriteString(` WHERE `)
		b.WriteString(strings.Join(where, ` AND `))
	}
	b.WriteString(` ORDER BY created_date DESC, id DESC`)

	return b.String(), args
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	var lead entity.Lead

	err := r.DB.GetContext(ctx, &lead, r.selectByID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find lead %d: %w", id, err)
	}
	return &lead, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) (int64, error) {
	var id int64

	err := r.DB.QueryRowxContext(ctx, r.insert,
		lead.Name,
		lead.Company,
		lead.Email,
		lead.Phone,
		lead.Status,
		lead.Owner,
		lead.OwnerAvatar,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", classify(err))
	}

	return id, nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.update,
		lead.Name,
		lead.Company,
		lead.Email,
		lead.Phone,
		lead.Status,
		lead.Owner,
		lead.OwnerAvatar,
		lead.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update lead %d: %w", lead.ID, classify(err))
	}
	return affected(res)
}

func (r *LeadRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, r.delete, id)
	if err != nil {
		return false, fmt.Errorf("delete lead %d: %w", id, classify(err))
	}
	return affected(res)
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
