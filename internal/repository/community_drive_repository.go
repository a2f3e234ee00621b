package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrDriveNotFound = errors.New("community drive not found")

type CommunityDriveRepo struct{ db *sql.DB }

func NewCommunityDriveRepo(db *sql.DB) *CommunityDriveRepo { return &CommunityDriveRepo{db: db} }

const driveCols = `id, owner_id, title, description, drive_type, location,
	starts_at, ends_at, participant_goal, is_active, created_at, updated_at`

func scanDrive(scan func(dest ...any) error) (*model.CommunityDrive, error) {
	var d model.CommunityDrive
	err := scan(&d.ID, &d.OwnerID, &d.Title, &d.Description, &d.DriveType, &d.Location,
		&d.StartsAt, &d.EndsAt, &d.ParticipantGoal, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *CommunityDriveRepo) Create(ctx context.Context, d *model.CommunityDrive) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO community_drives (owner_id, title, description, drive_type, location,
		   starts_at, ends_at, participant_goal)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.OwnerID, d.Title, d.Description, d.DriveType, d.Location,
		d.StartsAt.UTC(), d.EndsAt.UTC(), d.ParticipantGoal)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	got, err := r.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *got
	return nil
}

func (r *CommunityDriveRepo) GetByID(ctx context.Context, id uint64) (*model.CommunityDrive, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+driveCols+" FROM community_drives WHERE id = ?", id)
	d, err := scanDrive(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDriveNotFound
	}
	return d, err
}

func (r *CommunityDriveRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]*model.CommunityDrive, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+driveCols+" FROM community_drives WHERE owner_id = ? ORDER BY starts_at DESC", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.CommunityDrive
	for rows.Next() {
		d, err := scanDrive(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListUpcoming returns active drives that have not ended yet, soonest first.
func (r *CommunityDriveRepo) ListUpcoming(ctx context.Context, driveType string, limit, offset int) ([]*model.CommunityDrive, int64, error) {
	cond := "is_active = TRUE AND ends_at >= NOW()"
	args := []any{}
	if driveType != "" {
		cond += " AND drive_type = ?"
		args = append(args, driveType)
	}
	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM community_drives WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+driveCols+" FROM community_drives WHERE "+cond+" ORDER BY starts_at ASC LIMIT ? OFFSET ?",
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out := make([]*model.CommunityDrive, 0, limit)
	for rows.Next() {
		d, err := scanDrive(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	return out, total, rows.Err()
}

func (r *CommunityDriveRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM community_drives WHERE id = ?", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrDriveNotFound
	}
	return owner, err
}

func (r *CommunityDriveRepo) UpdateByIDAndOwner(ctx context.Context, d *model.CommunityDrive, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, d.ID)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE community_drives SET title=?, description=?, drive_type=?, location=?,
		   starts_at=?, ends_at=?, participant_goal=?, updated_at=CURRENT_TIMESTAMP
		 WHERE id=? AND owner_id=?`,
		d.Title, d.Description, d.DriveType, d.Location,
		d.StartsAt.UTC(), d.EndsAt.UTC(), d.ParticipantGoal, d.ID, ownerID)
	return err
}

func (r *CommunityDriveRepo) SetActive(ctx context.Context, id, ownerID uint64, active bool) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE community_drives SET is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND owner_id=?",
		active, id, ownerID)
	return err
}
