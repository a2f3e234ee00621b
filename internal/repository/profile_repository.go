// This file implements the profile row lifecycle: lazy creation/repair on
// first authenticated need, the completion-wizard update and partial edits.
// The repair path is idempotent: running it any number of times leaves
// exactly one row per identity and never clobbers wizard-written fields.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/givebridge/givebridge/internal/model"
)

// ErrProfileNotFound is returned when no profile row exists for an id.
var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct{ db *sql.DB }

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

const profileCols = `user_id, email, role, display_name, bio, location, phone, website,
	blood_type, organization_name, organization_type, registration_number, mission,
	founded_year, staff_count, volunteer_count, areas_of_focus, social_media,
	is_verified, profile_completed, created_at, updated_at`

func scanProfile(row *sql.Row) (*model.Profile, error) {
	var (
		p            model.Profile
		focus, socig sql.NullString
	)
	err := row.Scan(&p.UserID, &p.Email, &p.Role, &p.DisplayName, &p.Bio, &p.Location,
		&p.Phone, &p.Website, &p.BloodType, &p.OrganizationName, &p.OrganizationType,
		&p.RegistrationNo, &p.Mission, &p.FoundedYear, &p.StaffCount, &p.VolunteerCount,
		&focus, &socig, &p.IsVerified, &p.ProfileCompleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if focus.Valid && focus.String != "" {
		_ = json.Unmarshal([]byte(focus.String), &p.AreasOfFocus)
	}
	if socig.Valid && socig.String != "" {
		_ = json.Unmarshal([]byte(socig.String), &p.SocialMedia)
	}
	return &p, nil
}

// GetByID fetches a profile by the shared identity id.
func (r *ProfileRepo) GetByID(ctx context.Context, userID uint64) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+profileCols+" FROM profiles WHERE user_id = ?", userID)
	return scanProfile(row)
}

// Ensure guarantees exactly one profile row exists for the identity and
// returns it. The sequence is:
//
//  1. fetch by id - the common case after first sign-in;
//  2. adopt a row carrying the same email under a different id - covers a
//     previously abandoned signup re-registered under the same address;
//  3. upsert keyed on the primary key - concurrent first sign-ins collapse
//     into one row instead of racing a check-then-insert.
//
// Fields other than those passed here are never altered on an existing row.
func (r *ProfileRepo) Ensure(ctx context.Context, userID uint64, email, role, displayName string) (*model.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if p, err := r.GetByID(ctx, userID); err == nil {
		return p, nil
	} else if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	// Same email under a different id: rebind the orphaned row to the
	// current identity instead of inserting a duplicate.
	res, err := r.db.ExecContext(ctx,
		"UPDATE profiles SET user_id = ? WHERE email = ? AND user_id <> ?",
		userID, email, userID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return r.GetByID(ctx, userID)
	}

	if !model.ValidRole(role) {
		role = model.RoleIndividual
	}
	// PK upsert: if another request inserted the row between the checks
	// above and here, this degenerates into a no-op.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, email, role, display_name, profile_completed)
		 VALUES (?,?,?,?,FALSE)
		 ON DUPLICATE KEY UPDATE user_id = user_id`,
		userID, email, role, displayName)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}

// IsCompleted reports the profile_completed flag for an identity.
func (r *ProfileRepo) IsCompleted(ctx context.Context, userID uint64) (bool, error) {
	var done bool
	err := r.db.QueryRowContext(ctx,
		"SELECT profile_completed FROM profiles WHERE user_id = ?", userID).Scan(&done)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrProfileNotFound
	}
	return done, err
}

// RequireCompleted is the content-creation gate: it returns
// ErrProfileIncomplete unless the identity has a completed profile. A
// missing row counts as incomplete rather than not-found; both block
// posting the same way.
func (r *ProfileRepo) RequireCompleted(ctx context.Context, userID uint64) error {
	done, err := r.IsCompleted(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return ErrProfileIncomplete
	}
	if err != nil {
		return err
	}
	if !done {
		return ErrProfileIncomplete
	}
	return nil
}

// WizardUpdate carries every field the completion wizard can collect. The
// handler validates the role-specific subset before calling Complete.
type WizardUpdate struct {
	DisplayName      string
	Bio              string
	Location         string
	Phone            string
	Website          string
	BloodType        string
	OrganizationName string
	OrganizationType string
	RegistrationNo   string
	Mission          string
	FoundedYear      int
	StaffCount       int
	VolunteerCount   int
	AreasOfFocus     []string
	SocialMedia      map[string]string
}

// Complete merges all wizard fields in a single UPDATE and flips
// profile_completed. An already-completed profile returns ErrConflict so
// the wizard's re-entrant guard has a distinct signal. The role column is
// deliberately absent from the SET list: role is immutable.
func (r *ProfileRepo) Complete(ctx context.Context, userID uint64, w WizardUpdate) error {
	done, err := r.IsCompleted(ctx, userID)
	if err != nil {
		return err
	}
	if done {
		return ErrConflict
	}

	focus, err := json.Marshal(w.AreasOfFocus)
	if err != nil {
		return err
	}
	social, err := json.Marshal(dropBlank(w.SocialMedia))
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET display_name=?, bio=?, location=?, phone=?, website=?,
		   blood_type=?, organization_name=?, organization_type=?, registration_number=?,
		   mission=?, founded_year=?, staff_count=?, volunteer_count=?,
		   areas_of_focus=?, social_media=?, profile_completed=TRUE,
		   updated_at=CURRENT_TIMESTAMP
		 WHERE user_id=? AND profile_completed=FALSE`,
		w.DisplayName, w.Bio, w.Location, w.Phone, w.Website,
		w.BloodType, w.OrganizationName, w.OrganizationType, w.RegistrationNo,
		w.Mission, w.FoundedYear, w.StaffCount, w.VolunteerCount,
		string(focus), string(social), userID)
	if err != nil {
		return err
	}
	// The flag is part of the WHERE clause, so a lost race with a concurrent
	// completion shows up here as zero rows.
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// ProfileEdit carries the fields the profile-edit page may change after
// completion. Nil pointers leave the column untouched.
type ProfileEdit struct {
	DisplayName *string
	Bio         *string
	Location    *string
	Phone       *string
	Website     *string
	BloodType   *string
	Mission     *string
	SocialMedia map[string]string // replaces the stored map when non-nil
}

// Update applies a partial edit to an existing profile. role, is_verified
// and profile_completed are not reachable from here.
func (r *ProfileRepo) Update(ctx context.Context, userID uint64, e ProfileEdit) error {
	sets := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, strings.TrimSpace(*v))
		}
	}
	add("display_name", e.DisplayName)
	add("bio", e.Bio)
	add("location", e.Location)
	add("phone", e.Phone)
	add("website", e.Website)
	add("blood_type", e.BloodType)
	add("mission", e.Mission)
	if e.SocialMedia != nil {
		b, err := json.Marshal(dropBlank(e.SocialMedia))
		if err != nil {
			return err
		}
		sets = append(sets, "social_media=?")
		args = append(args, string(b))
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at=CURRENT_TIMESTAMP")
	args = append(args, userID)
	res, err := r.db.ExecContext(ctx,
		"UPDATE profiles SET "+strings.Join(sets, ", ")+" WHERE user_id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// dropBlank removes entries whose platform or URL is blank before the map
// is persisted.
func dropBlank(m map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
