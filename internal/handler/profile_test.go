package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/givebridge/givebridge/internal/repository"
)

func TestValidateWizardIndividual(t *testing.T) {
	problems := validateWizard("INDIVIDUAL", &wizardReq{DisplayName: "Jo", Location: "Berlin"})
	assert.Empty(t, problems)

	problems = validateWizard("INDIVIDUAL", &wizardReq{DisplayName: "  ", Location: ""})
	assert.Contains(t, problems, "display_name")
	assert.Contains(t, problems, "location")
	// Individual accounts never trip the organization checks.
	assert.NotContains(t, problems, "organization_name")
}

func TestValidateWizardNGORequiresRegistration(t *testing.T) {
	req := &wizardReq{
		DisplayName:      "Helping Hands",
		Location:         "Nairobi",
		OrganizationName: "Helping Hands e.V.",
		OrganizationType: "charity",
		FoundedYear:      2008,
		Mission:          "Food security for all",
		AreasOfFocus:     []string{" food ", ""},
	}
	problems := validateWizard("NGO", req)
	assert.Equal(t, map[string]string{
		"registration_number": "registration number is required",
	}, problems)

	req.RegistrationNo = "VR-2008-113"
	assert.Empty(t, validateWizard("NGO", req))

	// ORGANIZATION shares the branch minus the registration number.
	req.RegistrationNo = ""
	assert.Empty(t, validateWizard("ORGANIZATION", req))
}

func TestValidateWizardFoundedYearBounds(t *testing.T) {
	req := &wizardReq{
		DisplayName:      "Org",
		Location:         "Lima",
		OrganizationName: "Org",
		OrganizationType: "foundation",
		Mission:          "m",
		AreasOfFocus:     []string{"water"},
	}
	for _, year := range []int{0, 1799, time.Now().UTC().Year() + 1} {
		req.FoundedYear = year
		problems := validateWizard("ORGANIZATION", req)
		assert.Contains(t, problems, "founded_year", "year %d must be rejected", year)
	}
}

func TestTrimTagsKeepsOrderAndDuplicates(t *testing.T) {
	got := trimTags([]string{" health ", "", "education", "health", "   "})
	assert.Equal(t, []string{"health", "education", "health"}, got)
}

func newProfileContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/v1/my/profile", reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))
	c.Set("email", "jo@example.org")
	c.Set("role", "INDIVIDUAL")
	return c, rec
}

var handlerProfileCols = []string{
	"user_id", "email", "role", "display_name", "bio", "location", "phone", "website",
	"blood_type", "organization_name", "organization_type", "registration_number", "mission",
	"founded_year", "staff_count", "volunteer_count", "areas_of_focus", "social_media",
	"is_verified", "profile_completed", "created_at", "updated_at",
}

func handlerProfileRow(completed bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(handlerProfileCols).AddRow(
		7, "jo@example.org", "INDIVIDUAL", "Jo", "", "Berlin", "", "",
		"", "", "", "", "",
		0, 0, 0, "[]", "{}",
		false, completed, now, now,
	)
}

func TestGetMineReturnsEnsuredProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewProfileHandler(repository.NewProfileRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(false))

	c, rec := newProfileContext(t, http.MethodGet, "")
	require.NoError(t, h.GetMine(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jo@example.org"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteAlreadyCompletedConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewProfileHandler(repository.NewProfileRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(true))

	c, rec := newProfileContext(t, http.MethodPost, `{"display_name":"Jo","location":"Berlin"}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	// No wizard update may run once the flag is set.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteValidWizardPersists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewProfileHandler(repository.NewProfileRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(false))
	mock.ExpectQuery("SELECT profile_completed FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"profile_completed"}).AddRow(false))
	mock.ExpectExec("UPDATE profiles SET display_name").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The response re-reads the row so the client sees the flipped flag.
	completedRow := sqlmock.NewRows(handlerProfileCols).AddRow(
		7, "jo@example.org", "INDIVIDUAL", "Jo", "", "Berlin", "", "",
		"", "", "", "", "",
		0, 0, 0, `["health"]`, "{}",
		false, true, time.Now().UTC(), time.Now().UTC(),
	)
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(completedRow)

	body := `{"display_name":"Jo","location":"Berlin","areas_of_focus":["health"]}`
	c, rec := newProfileContext(t, http.MethodPost, body)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profile_completed":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRejectsInvalidWizard(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewProfileHandler(repository.NewProfileRepo(db))

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id").
		WillReturnRows(handlerProfileRow(false))

	c, rec := newProfileContext(t, http.MethodPost, `{"display_name":"","location":""}`)
	require.NoError(t, h.Complete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "display_name")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBlankDisplayNameRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := NewProfileHandler(repository.NewProfileRepo(db))

	c, rec := newProfileContext(t, http.MethodPut, `{"display_name":"   "}`)
	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
