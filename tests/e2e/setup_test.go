//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docker/docker/client"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	teamModel "github.com/festy23/team_service/internal/team/model"
)

// E2ETestSuite contains test infrastructure
type E2ETestSuite struct {
	suite.Suite
	ctx              context.Context
	pgContainer      *postgres.PostgresContainer
	db               *gorm.DB
	appContainer     testcontainers.Container
	baseURL          string
	httpClient       *http.Client
	connectionString string
}

// SetupSuite runs once before all tests
func (s *E2ETestSuite) SetupSuite() {
	s.ctx = context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(s.ctx,
		"postgres:12-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(s.T(), err, "failed to start PostgreSQL container")
	s.pgContainer = pgContainer

	// Get connection string
	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "failed to get connection string")
	s.connectionString = connStr

	// Connect to database (for test assertions only)
	// Migrations are applied by the application container on startup.
	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "failed to connect to database")
	s.db = db

	// Get PostgreSQL container's internal IP address for inter-container
	// communication; the mapped host/port only works from the test host.
	containerName, err := pgContainer.Name(s.ctx)
	require.NoError(s.T(), err, "failed to get PostgreSQL container name")

	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	require.NoError(s.T(), err, "failed to create Docker client")
	defer dockerClient.Close()

	containerNameClean := strings.TrimPrefix(containerName, "/")
	containerInfo, err := dockerClient.ContainerInspect(s.ctx, containerNameClean)
	require.NoError(s.T(), err, "failed to inspect PostgreSQL container")

	var dbHost string
	var dbPort = "5432"
	if len(containerInfo.NetworkSettings.Networks) > 0 {
		for _, network := range containerInfo.NetworkSettings.Networks {
			dbHost = network.IPAddress
			break
		}
	}
	if dbHost == "" {
		dbHost = containerNameClean
	}

	// Start application container from a pre-built image
	appContainer, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "team-service-e2e:test",
			ExposedPorts: []string{"8080/tcp"},
			Env: map[string]string{
				"DB_HOST":                dbHost,
				"DB_PORT":                dbPort,
				"DB_USER":                "testuser",
				"DB_PASSWORD":            "testpass",
				"DB_NAME":                "testdb",
				"DB_SSLMODE":             "disable",
				"DB_TIMEZONE":            "UTC",
				"DB_RETRY_MAX_ATTEMPTS":  "5",
				"DB_RETRY_INITIAL_DELAY": "1s",
				"DB_RETRY_MAX_DELAY":     "30s",
				"DB_RETRY_MULTIPLIER":    "2.0",
				"SERVER_HOST":            "",
				"SERVER_PORT":            ":8080",
				"SERVER_READ_TIMEOUT":    "10s",
				"SERVER_WRITE_TIMEOUT":   "10s",
				"SERVER_IDLE_TIMEOUT":    "120s",
				"GIN_MODE":               "release",
				"LOG_LEVEL":              "info",
				"LOG_FORMAT":             "json",
				"LOG_OUTPUT":             "stdout",
				"RUN_MIGRATIONS":         "true",
				"MIGRATIONS_PATH":        "migrations",
			},
			WaitingFor: wait.ForHTTP("/health").
				WithPort("8080/tcp").
				WithStartupTimeout(120 * time.Second).
				WithPollInterval(2 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err, "failed to start application container")
	s.appContainer = appContainer

	host, err := appContainer.Host(s.ctx)
	require.NoError(s.T(), err, "failed to get container host")

	port, err := appContainer.MappedPort(s.ctx, "8080")
	require.NoError(s.T(), err, "failed to get container port")

	s.baseURL = fmt.Sprintf("http://%s:%s", host, port.Port())
	s.httpClient = &http.Client{
		Timeout: 30 * time.Second,
	}

	s.waitForApp()
	s.logConfiguration()
	s.verifyMigrations()
}

// TearDownSuite runs once after all tests
func (s *E2ETestSuite) TearDownSuite() {
	if s.appContainer != nil {
		_ = s.appContainer.Terminate(s.ctx)
	}
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

// SetupTest runs before each test
func (s *E2ETestSuite) SetupTest() {
	s.cleanDatabase()
}

// cleanDatabase truncates all tables
func (s *E2ETestSuite) cleanDatabase() {
	s.db.Exec("TRUNCATE TABLE team_invitations CASCADE")
	s.db.Exec("TRUNCATE TABLE team_members CASCADE")
	s.db.Exec("TRUNCATE TABLE teams CASCADE")
}

// waitForApp waits for the application to be ready
func (s *E2ETestSuite) waitForApp() {
	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := s.httpClient.Get(s.baseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(1 * time.Second)
	}
	s.T().Fatal("application did not become ready in time")
}

// Helper methods for HTTP requests

// doRequest performs an HTTP request as the given actor and returns the response
func (s *E2ETestSuite) doRequest(method, path, actor string, body io.Reader) (*http.Response, []byte) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	require.NoError(s.T(), err, "failed to create request")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != "" {
		req.Header.Set("X-User-ID", actor)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err, "failed to read response body")
	resp.Body.Close()

	return resp, respBody
}

// doRequestNoFail performs an HTTP request and returns the response with error.
// Safe to use in goroutines as it doesn't call require/assert.
func (s *E2ETestSuite) doRequestNoFail(method, path, actor string, body io.Reader) (*http.Response, []byte, error) {
	req, err := http.NewRequest(method, s.baseURL+path, body)
	if err != nil {
		return nil, nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor != "" {
		req.Header.Set("X-User-ID", actor)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return resp, nil, err
	}

	return resp, respBody, nil
}

// createTeam creates a team via HTTP API as the given actor
func (s *E2ETestSuite) createTeam(actor string, req *teamModel.CreateTeamRequest) (*http.Response, *teamModel.TeamResponse) {
	bodyBytes, _ := json.Marshal(req)
	resp, respBody := s.doRequest("POST", "/teams", actor, strings.NewReader(string(bodyBytes)))

	if resp.StatusCode != http.StatusCreated {
		s.T().Logf("failed to create team: status=%d request=%s response=%s",
			resp.StatusCode, string(bodyBytes), string(respBody))
		appLogs := s.getAppLogs()
		if appLogs != "" {
			s.T().Logf("application logs:\n%s", appLogs)
		}
		return resp, nil
	}

	var teamResp teamModel.TeamResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &teamResp), "failed to unmarshal team response")
	return resp, &teamResp
}

// getTeam fetches a team via HTTP API
func (s *E2ETestSuite) getTeam(actor, teamID string) (*http.Response, *teamModel.TeamResponse) {
	resp, respBody := s.doRequest("GET", "/teams/"+teamID, actor, nil)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	var teamResp teamModel.TeamResponse
	require.NoError(s.T(), json.Unmarshal(respBody, &teamResp), "failed to unmarshal team response")
	return resp, &teamResp
}

// addMember adds a member to a team via HTTP API
func (s *E2ETestSuite) addMember(actor, teamID string, req *teamModel.AddMemberRequest) (*http.Response, []byte) {
	bodyBytes, _ := json.Marshal(req)
	return s.doRequest("POST", "/teams/"+teamID+"/members", actor, strings.NewReader(string(bodyBytes)))
}

// changeRole changes a member's role via HTTP API
func (s *E2ETestSuite) changeRole(actor, teamID, userID, role string) (*http.Response, []byte) {
	bodyBytes, _ := json.Marshal(&teamModel.ChangeRoleRequest{Role: role})
	return s.doRequest("PUT", "/teams/"+teamID+"/members/"+userID+"/role", actor, strings.NewReader(string(bodyBytes)))
}

// inviteUser sends an invitation via HTTP API
func (s *E2ETestSuite) inviteUser(actor, teamID string, req *teamModel.InviteRequest) (*http.Response, *teamModel.InvitationResponse) {
	bodyBytes, _ := json.Marshal(req)
	resp, respBody := s.doRequest("POST", "/teams/"+teamID+"/invitations", actor, strings.NewReader(string(bodyBytes)))
	if resp.StatusCode != http.StatusCreated {
		return resp, nil
	}

	var envelope struct {
		Invitation teamModel.InvitationResponse `json:"invitation"`
	}
	require.NoError(s.T(), json.Unmarshal(respBody, &envelope), "failed to unmarshal invitation response")
	return resp, &envelope.Invitation
}

// respondInvitation accepts or declines the actor's pending invitation
func (s *E2ETestSuite) respondInvitation(actor, teamID string, accept bool) (*http.Response, []byte) {
	bodyBytes, _ := json.Marshal(&teamModel.RespondInvitationRequest{UserID: actor, Accept: &accept})
	return s.doRequest("POST", "/teams/"+teamID+"/invitations/respond", actor, strings.NewReader(string(bodyBytes)))
}

// parseErrorResponse parses error response
func (s *E2ETestSuite) parseErrorResponse(respBody []byte) (string, string) {
	var errResp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	err := json.Unmarshal(respBody, &errResp)
	require.NoError(s.T(), err, "failed to unmarshal error response")
	return errResp.Error.Code, errResp.Error.Message
}

// Assertion helpers

// verifyMigrations checks if database migrations were applied successfully
func (s *E2ETestSuite) verifyMigrations() {
	tables := []string{"teams", "team_members", "team_invitations"}

	allExist := true
	for _, table := range tables {
		var exists bool
		err := s.db.Raw(`
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public'
				AND table_name = ?
			)`, table).Scan(&exists).Error

		if err != nil {
			s.T().Logf("failed to check if table %s exists: %v", table, err)
			allExist = false
			continue
		}

		if !exists {
			s.T().Logf("table %s does NOT exist - migrations may not have been applied", table)
			allExist = false
		}
	}

	if !allExist {
		appLogs := s.getAppLogs()
		if appLogs != "" {
			s.T().Logf("application logs (migration-related):")
			lines := strings.Split(appLogs, "\n")
			for _, line := range lines {
				if strings.Contains(strings.ToLower(line), "migration") ||
					strings.Contains(strings.ToLower(line), "error") ||
					strings.Contains(strings.ToLower(line), "fatal") {
					s.T().Logf("  %s", line)
				}
			}
		}
		s.T().Fatal("database migrations were not applied")
	}
}

// logConfiguration logs important configuration values for debugging
func (s *E2ETestSuite) logConfiguration() {
	s.T().Logf("=== E2E Test Configuration ===")
	s.T().Logf("Application URL: %s", s.baseURL)
	s.T().Logf("Database connection: %s", s.connectionString)
	if s.appContainer != nil {
		host, _ := s.appContainer.Host(s.ctx)
		port, _ := s.appContainer.MappedPort(s.ctx, "8080")
		s.T().Logf("Container Host: %s, Port: %s", host, port.Port())
	}
	if s.pgContainer != nil {
		pgHost, _ := s.pgContainer.Host(s.ctx)
		pgPort, _ := s.pgContainer.MappedPort(s.ctx, "5432")
		s.T().Logf("PostgreSQL Host: %s, Port: %s", pgHost, pgPort.Port())
	}
	s.T().Logf("=============================")
}

// getAppLogs retrieves application container logs
func (s *E2ETestSuite) getAppLogs() string {
	if s.appContainer == nil {
		return ""
	}

	logs, err := s.appContainer.Logs(s.ctx)
	if err != nil {
		return fmt.Sprintf("Failed to get logs: %v", err)
	}
	defer logs.Close()

	logBytes, err := io.ReadAll(logs)
	if err != nil {
		return fmt.Sprintf("Failed to read logs: %v", err)
	}

	return string(logBytes)
}
