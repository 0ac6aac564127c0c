package dashboard

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/report"
)

func dashConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for _, sub := range []string{report.CSVDir, report.ImageDir, report.HTMLDir} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}
	// Seed a few artifacts the pages should pick up.
	for _, name := range []string{
		"team_wl_pie_2023_24.png",
		"team_points_line_2023_24.png",
		"player_hist_pts_cam_thomas.png",
		"player_box_cam_thomas.png",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, report.ImageDir, name), []byte("png"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, report.CSVDir, "player_means_cam_thomas.csv"), []byte("a,b\n1,2\n"), 0o644))

	return &config.Config{
		TeamName:       "Brooklyn Nets",
		Players:        []config.Player{{ID: 1630560, Name: "Cam Thomas"}},
		ReportsDir:     dir,
		TeamDashPort:   "8050",
		PlayerDashPort: "8051",
	}
}

func TestTeamPageListsCharts(t *testing.T) {
	cfg := dashConfig(t)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	rec := httptest.NewRecorder()
	teamPage(cfg, log.WithField("t", "test"))(rec, httptest.NewRequest("GET", "/", nil))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "Brooklyn Nets Dashboard")
	assert.Contains(t, body, "team_wl_pie_2023_24.png")
	assert.Contains(t, body, "team_points_line_2023_24.png")
}

func TestPlayerPageListsArtifacts(t *testing.T) {
	cfg := dashConfig(t)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	rec := httptest.NewRecorder()
	playerPage(cfg, log.WithField("t", "test"))(rec, httptest.NewRequest("GET", "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "Cam Thomas")
	assert.Contains(t, body, "player_hist_pts_cam_thomas.png")
	assert.Contains(t, body, "player_means_cam_thomas.csv")
}

func TestAssetRoutesServeReports(t *testing.T) {
	cfg := dashConfig(t)
	router := mux.NewRouter()
	assetRoutes(router, cfg.ReportsDir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/assets/csv/player_means_cam_thomas.csv", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a,b")
}

func TestRecoveryMiddleware(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware(log.WithField("t", "test")))
	router.HandleFunc("/boom", func(http.ResponseWriter, *http.Request) { panic("nope") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPlayerSlugMatchesReportNaming(t *testing.T) {
	assert.Equal(t, "dangelo_russell", playerSlug("D'Angelo Russell"))
	assert.True(t, containsSlug("player_box_cam_thomas.png", "cam_thomas"))
	assert.False(t, containsSlug("player_box_cam_thomas.png", "cameron_johnson"))
	assert.True(t, strings.HasPrefix("player_hist_pts_cam_thomas.png", "player_hist_"))
}
