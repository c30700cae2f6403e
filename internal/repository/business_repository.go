package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/crowdmap/crowd-heatmap/internal/database"
	"github.com/crowdmap/crowd-heatmap/internal/models"
)

const businessColumns = `id, name, email, phone, business_type, crowd_intensity,
	latitude, longitude, created_at`

// BusinessRepository handles database operations for business profiles
type BusinessRepository struct {
	db *sql.DB
}

// NewBusinessRepository creates a new business profile repository
func NewBusinessRepository(db *sql.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

// Create inserts p and fills in its ID. A zero CreatedAt is set to now.
func (r *BusinessRepository) Create(ctx context.Context, p *models.BusinessProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	query := `
		INSERT INTO business_profiles (
			name, email, phone, business_type, crowd_intensity,
			latitude, longitude, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Email,
		p.Phone,
		p.BusinessType,
		string(p.CrowdIntensity),
		nullFloat(p.Latitude),
		nullFloat(p.Longitude),
		p.CreatedAt.Unix(),
	)
	if err != nil {
		return eris.Wrap(err, "failed to create business profile")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return eris.Wrap(err, "failed to get last insert id")
	}

	p.ID = id
	return nil
}

// GetByID retrieves a business profile by ID. Returns nil, nil when absent.
func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*models.BusinessProfile, error) {
	query := `SELECT ` + businessColumns + ` FROM business_profiles WHERE id = ?`

	p, err := scanBusiness(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "failed to get business profile")
	}
	return p, nil
}

// List retrieves business profiles with filtering and pagination, newest first
func (r *BusinessRepository) List(ctx context.Context, filter models.BusinessProfileFilter) ([]models.BusinessProfile, int64, error) {
	var conditions []string
	var args []interface{}

	// Add filters
	if filter.Intensity != "" {
		conditions = append(conditions, "crowd_intensity = ?")
		args = append(args, filter.Intensity)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		conditions = append(conditions,
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(business_type) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	if filter.Since > 0 {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, filter.Since)
	}
	if filter.Until > 0 {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, filter.Until)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Add pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query := `SELECT ` + businessColumns + ` FROM business_profiles` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	pageArgs := append(append([]interface{}{}, args...), filter.PageSize, offset)

	// Count and page share one snapshot so total matches the rows returned
	var total int64
	profiles := []models.BusinessProfile{}
	err := database.Transaction(ctx, r.db, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM business_profiles"+where, args...).Scan(&total); err != nil {
			return eris.Wrap(err, "failed to count business profiles")
		}

		rows, err := tx.QueryContext(ctx, query, pageArgs...)
		if err != nil {
			return eris.Wrap(err, "failed to query business profiles")
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanBusiness(rows)
			if err != nil {
				return eris.Wrap(err, "failed to scan business profile")
			}
			profiles = append(profiles, *p)
		}
		if err := rows.Err(); err != nil {
			return eris.Wrap(err, "failed to iterate business profiles")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// Delete removes a business profile. Reports whether a row was deleted.
func (r *BusinessRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM business_profiles WHERE id = ?", id)
	if err != nil {
		return false, eris.Wrap(err, "failed to delete business profile")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, eris.Wrap(err, "failed to get affected rows")
	}
	return n > 0, nil
}

// CountByIntensity counts business profiles per preferred crowd intensity
func (r *BusinessRepository) CountByIntensity(ctx context.Context) (*models.IntensitySummary, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT crowd_intensity, COUNT(*) FROM business_profiles GROUP BY crowd_intensity")
	if err != nil {
		return nil, eris.Wrap(err, "failed to count business profiles by intensity")
	}
	defer rows.Close()

	summary := &models.IntensitySummary{}
	for rows.Next() {
		var level string
		var n int64
		if err := rows.Scan(&level, &n); err != nil {
			return nil, eris.Wrap(err, "failed to scan intensity count")
		}
		switch models.IntensityLevel(level) {
		case models.IntensityHigh:
			summary.High = n
		case models.IntensityMedium:
			summary.Medium = n
		case models.IntensityLow:
			summary.Low = n
		}
		summary.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "failed to iterate intensity counts")
	}

	return summary, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*models.BusinessProfile, error) {
	var p models.BusinessProfile
	var level string
	var lat, lon sql.NullFloat64
	var createdAt int64

	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.BusinessType, &level,
		&lat, &lon, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	p.CrowdIntensity = models.IntensityLevel(level)
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lon.Valid {
		p.Longitude = &lon.Float64
	}
	p.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &p, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// escapeLike escapes LIKE wildcards so search text matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
