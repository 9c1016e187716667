package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/store"
)

// CompaniesRepository provides persistence helpers for production companies
// and the follow ledger.
type CompaniesRepository struct {
	pool *pgxpool.Pool
}

const companyColumns = `
    c.id,
    c.name,
    c.about,
    c.photo_url,
    c.location,
    c.owner_id,
    (SELECT COUNT(*) FROM followed_companies f WHERE f.company_id = c.id),
    c.created_at,
    c.updated_at
`

// CompanyCreateParams bundles the fields required to create a company.
type CompanyCreateParams struct {
	Name     string
	About    string
	PhotoURL *string
	Location string
	OwnerID  int64
}

// Create inserts a new company row and returns the stored entity.
func (r *CompaniesRepository) Create(ctx context.Context, params CompanyCreateParams) (domain.Company, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
        INSERT INTO companies (name, about, photo_url, location, owner_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id
    `, params.Name, params.About, params.PhotoURL, params.Location, params.OwnerID).Scan(&id)
	if err != nil {
		return domain.Company{}, err
	}
	return r.GetByID(ctx, id)
}

// GetByID fetches a live company with its follower count.
func (r *CompaniesRepository) GetByID(ctx context.Context, id int64) (domain.Company, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM companies c WHERE c.id = $1 AND c.deleted_at IS NULL
    `, companyColumns)
	company, err := scanCompany(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Company{}, ErrNotFound
		}
		return domain.Company{}, err
	}
	return company, nil
}

// Update persists the mutable company fields.
func (r *CompaniesRepository) Update(ctx context.Context, company domain.Company) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE companies
        SET name = $2, about = $3, photo_url = $4, location = $5, updated_at = now()
        WHERE id = $1 AND deleted_at IS NULL
    `, company.ID, company.Name, company.About, company.PhotoURL, company.Location)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a company as deleted without removing the row.
func (r *CompaniesRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE companies SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns live companies. When followerID is non-zero only companies
// that user follows are returned.
func (r *CompaniesRepository) List(ctx context.Context, followerID int64, skip, limit int) ([]domain.Company, error) {
	if limit <= 0 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}
	if skip < 0 {
		skip = 0
	}

	var (
		query string
		args  []interface{}
	)
	if followerID != 0 {
		query = fmt.Sprintf(`
            SELECT %s FROM companies c
            JOIN followed_companies fc ON fc.company_id = c.id AND fc.user_id = $1
            WHERE c.deleted_at IS NULL
            ORDER BY c.created_at DESC, c.id DESC
            LIMIT $2 OFFSET $3
        `, companyColumns)
		args = []interface{}{followerID, limit, skip}
	} else {
		query = fmt.Sprintf(`
            SELECT %s FROM companies c
            WHERE c.deleted_at IS NULL
            ORDER BY c.created_at DESC, c.id DESC
            LIMIT $1 OFFSET $2
        `, companyColumns)
		args = []interface{}{limit, skip}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// IsFollowing reports whether the user currently follows the company.
func (r *CompaniesRepository) IsFollowing(ctx context.Context, userID, companyID int64) (bool, error) {
	var following bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM followed_companies WHERE user_id = $1 AND company_id = $2
        )
    `, userID, companyID).Scan(&following)
	return following, err
}

// ToggleFollow flips the user's follow relationship with a company. The
// client asserts the follow state it believes is current; a mismatch means
// the client is stale and the toggle is rejected with a conflict. The check
// and the flip run in one transaction holding a lock on the company row.
func (r *CompaniesRepository) ToggleFollow(ctx context.Context, userID, companyID int64, assertedFollowed bool) (string, error) {
	var message string

	err := store.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
            SELECT id FROM companies WHERE id = $1 AND deleted_at IS NULL FOR UPDATE
        `, companyID).Scan(&id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock company: %w", err)
		}

		var following bool
		if err := tx.QueryRow(ctx, `
            SELECT EXISTS (
                SELECT 1 FROM followed_companies WHERE user_id = $1 AND company_id = $2
            )
        `, userID, companyID).Scan(&following); err != nil {
			return fmt.Errorf("fetch follow state: %w", err)
		}

		if following != assertedFollowed {
			return apperr.Conflict("Following state is out of date")
		}

		if following {
			if _, err := tx.Exec(ctx, `
                DELETE FROM followed_companies WHERE user_id = $1 AND company_id = $2
            `, userID, companyID); err != nil {
				return fmt.Errorf("unfollow: %w", err)
			}
			message = "Unfollowed company successfully!"
		} else {
			if _, err := tx.Exec(ctx, `
                INSERT INTO followed_companies (user_id, company_id) VALUES ($1, $2)
            `, userID, companyID); err != nil {
				return fmt.Errorf("follow: %w", err)
			}
			message = "Followed company successfully!"
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

func scanCompany(row pgx.Row) (domain.Company, error) {
	var company domain.Company
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.About,
		&company.PhotoURL,
		&company.Location,
		&company.OwnerID,
		&company.Followers,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	return company, err
}
