package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileColNames = []string{
	"user_id", "email", "role", "display_name", "bio", "location", "phone", "website",
	"blood_type", "organization_name", "organization_type", "registration_number", "mission",
	"founded_year", "staff_count", "volunteer_count", "areas_of_focus", "social_media",
	"is_verified", "profile_completed", "created_at", "updated_at",
}

func profileRow(userID uint64, email, role string, completed bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(profileColNames).AddRow(
		userID, email, role, "Jo", "", "", "", "",
		"", "", "", "", "",
		0, 0, 0, `["health","education"]`, `{"twitter":"https://x.com/jo"}`,
		false, completed, now, now,
	)
}

func TestProfileEnsureReturnsExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs(uint64(7)).
		WillReturnRows(profileRow(7, "jo@example.org", "INDIVIDUAL", false))

	p, err := repo.Ensure(context.Background(), 7, "JO@example.org", "INDIVIDUAL", "Jo")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.UserID)
	assert.Equal(t, []string{"health", "education"}, p.AreasOfFocus)
	assert.Equal(t, "https://x.com/jo", p.SocialMedia["twitter"])
	// No adopt, no insert: the existing row short-circuits the repair.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileEnsureAdoptsOrphanByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE profiles SET user_id").
		WithArgs(uint64(7), "jo@example.org", uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs(uint64(7)).
		WillReturnRows(profileRow(7, "jo@example.org", "INDIVIDUAL", true))

	p, err := repo.Ensure(context.Background(), 7, " Jo@Example.org ", "INDIVIDUAL", "Jo")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.UserID)
	assert.True(t, p.ProfileCompleted, "adoption must keep wizard-written fields")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileEnsureInsertsWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs(uint64(9)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE profiles SET user_id").
		WithArgs(uint64(9), "new@example.org", uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(uint64(9), "new@example.org", "NGO", "Helping Hands").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WithArgs(uint64(9)).
		WillReturnRows(profileRow(9, "new@example.org", "NGO", false))

	p, err := repo.Ensure(context.Background(), 9, "new@example.org", "NGO", "Helping Hands")
	require.NoError(t, err)
	assert.Equal(t, "NGO", p.Role)
	assert.False(t, p.ProfileCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileEnsureFallsBackToIndividualRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE profiles SET user_id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO profiles").
		WithArgs(uint64(3), "x@example.org", "INDIVIDUAL", "").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(profileRow(3, "x@example.org", "INDIVIDUAL", false))

	_, err = repo.Ensure(context.Background(), 3, "x@example.org", "SUPERADMIN", "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCompleteRejectsSecondRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(true))

	err = repo.Complete(context.Background(), 7, WizardUpdate{DisplayName: "Jo", Location: "Berlin"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCompleteLostRaceReturnsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(false))
	// Another request completed the wizard between the check and the update.
	mock.ExpectExec("UPDATE profiles SET display_name").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Complete(context.Background(), 7, WizardUpdate{DisplayName: "Jo", Location: "Berlin"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCompletePersistsWizardFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(false))
	// Focus areas keep their submitted order; blank social entries are
	// dropped before the map is stored.
	mock.ExpectExec("UPDATE profiles SET display_name").
		WithArgs(
			"Helping Hands", "", "Oslo", "", "",
			"", "Helping Hands e.V.", "charity", "NGO-4711",
			"Shelter and schooling for displaced families.", 2011, 0, 0,
			`["education","health"]`, `{"twitter":"https://x.com/helpinghands"}`, uint64(7),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Complete(context.Background(), 7, WizardUpdate{
		DisplayName:      "Helping Hands",
		Location:         "Oslo",
		OrganizationName: "Helping Hands e.V.",
		OrganizationType: "charity",
		RegistrationNo:   "NGO-4711",
		Mission:          "Shelter and schooling for displaced families.",
		FoundedYear:      2011,
		AreasOfFocus:     []string{"education", "health"},
		SocialMedia: map[string]string{
			"twitter":  "https://x.com/helpinghands",
			"facebook": "  ",
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireCompletedPassesCompletedProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(true))

	require.NoError(t, repo.RequireCompleted(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireCompletedBlocksIncompleteAndMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(false))
	err = repo.RequireCompleted(context.Background(), 7)
	assert.ErrorIs(t, err, ErrProfileIncomplete)

	// A never-repaired identity blocks the same way as an incomplete one.
	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WillReturnError(sql.ErrNoRows)
	err = repo.RequireCompleted(context.Background(), 8)
	assert.ErrorIs(t, err, ErrProfileIncomplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateNoFieldsIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewProfileRepo(db)

	// An empty edit never reaches the database.
	err = repo.Update(context.Background(), 7, ProfileEdit{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDropBlankFiltersEmptyEntries(t *testing.T) {
	in := map[string]string{
		"twitter":  "https://x.com/jo",
		"facebook": "  ",
		"":         "https://nowhere",
		" insta ":  " https://instagram.com/jo ",
	}
	out := dropBlank(in)
	assert.Equal(t, map[string]string{
		"twitter": "https://x.com/jo",
		"insta":   "https://instagram.com/jo",
	}, out)
}
