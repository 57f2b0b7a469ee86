package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/model"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
	lastID       int64
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the reference data server is running$`, s.theServerIsRunning)
	sc.Step(`^a user "([^"]*)" exists with password "([^"]*)" and role "([^"]*)"$`, s.aUserExists)

	// Authentication steps
	sc.Step(`^I register with username "([^"]*)" and password "([^"]*)"$`, s.iRegister)
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogIn)
	sc.Step(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, s.iAmLoggedIn)
	sc.Step(`^I am not authenticated$`, s.iAmNotAuthenticated)
	sc.Step(`^I should receive a bearer token$`, s.iShouldReceiveABearerToken)

	// Request steps
	sc.Step(`^I send a (GET|DELETE) request to "([^"]*)"$`, s.iSendARequest)
	sc.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain "([^"]*)"$`, s.theResponseShouldContain)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)
	sc.Step(`^I remember the id of the created record$`, s.iRememberTheCreatedID)

	// Database assertions
	sc.Step(`^user "([^"]*)" should exist$`, s.userShouldExist)
	sc.Step(`^user "([^"]*)" should have role "([^"]*)"$`, s.userShouldHaveRole)
}

// Background steps

func (s *StepsContext) theServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) aUserExists(username, password, role string) error {
	provider := identity.NewGormProvider(s.tc.DB)

	if err := provider.EnsureRole(role); err != nil {
		return err
	}

	user := &model.User{Username: username, Role: role}
	if err := provider.CreateUser(user, password); err != nil {
		if err == identity.ErrUserExists {
			existing, lookupErr := provider.VerifyCredential(username, password)
			if lookupErr != nil {
				return fmt.Errorf("user %s exists with a different password", username)
			}
			user = existing
		} else {
			return err
		}
	}

	return provider.AssignRole(user.ID, role)
}

// Authentication steps

func (s *StepsContext) iRegister(username, password string) error {
	body := fmt.Sprintf(`{"username": %q, "password": %q}`, username, password)
	return s.doRequest("POST", "/user/register", strings.NewReader(body), false)
}

func (s *StepsContext) iLogIn(username, password string) error {
	body := fmt.Sprintf(`{"username": %q, "password": %q}`, username, password)
	if err := s.doRequest("POST", "/login/login", strings.NewReader(body), false); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var loginResp struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &loginResp); err == nil {
			s.authToken = loginResp.Token
		}
	}
	return nil
}

func (s *StepsContext) iAmLoggedIn(username, password string) error {
	if err := s.iLogIn(username, password); err != nil {
		return err
	}
	if s.authToken == "" {
		return fmt.Errorf("login as %s failed: %s", username, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iAmNotAuthenticated() error {
	s.authToken = ""
	return nil
}

func (s *StepsContext) iShouldReceiveABearerToken() error {
	var loginResp struct {
		Token     string `json:"token"`
		Type      string `json:"type"`
		ExpiresAt string `json:"expires_at"`
	}
	if err := json.Unmarshal(s.responseBody, &loginResp); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	if loginResp.Token == "" {
		return fmt.Errorf("missing 'token' field in response")
	}
	if loginResp.Type != "Bearer" {
		return fmt.Errorf("expected token type Bearer, got %q", loginResp.Type)
	}
	if loginResp.ExpiresAt == "" {
		return fmt.Errorf("missing 'expires_at' field in response")
	}
	return nil
}

// Request steps

func (s *StepsContext) iSendARequest(method, path string) error {
	return s.doRequest(method, path, nil, true)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.doRequest(method, path, strings.NewReader(body.Content), true)
}

func (s *StepsContext) doRequest(method, path string, body io.Reader, authorized bool) error {
	// "{id}" in a path refers to the most recently created record
	path = strings.ReplaceAll(path, "{id}", fmt.Sprintf("%d", s.lastID))

	req, err := http.NewRequest(method, s.tc.ServerURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized && s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldContain(expected string) error {
	if !bytes.Contains(s.responseBody, []byte(expected)) {
		return fmt.Errorf("expected body to contain %q, got %q", expected, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(unexpected string) error {
	if bytes.Contains(s.responseBody, []byte(unexpected)) {
		return fmt.Errorf("expected body not to contain %q, got %q", unexpected, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) iRememberTheCreatedID() error {
	var record struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(s.responseBody, &record); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if record.ID == 0 {
		return fmt.Errorf("no id in response: %s", string(s.responseBody))
	}
	s.lastID = record.ID
	return nil
}

// Database assertions

func (s *StepsContext) userShouldExist(username string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %s does not exist", username)
	}
	return nil
}

func (s *StepsContext) userShouldHaveRole(username, role string) error {
	var count int64
	err := s.tc.DB.Raw(`
		SELECT COUNT(*)
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE u.username = ? AND r.name = ?
	`, username, role).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %s does not have role %s", username, role)
	}
	return nil
}
