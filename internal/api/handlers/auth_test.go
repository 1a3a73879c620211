package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/chateo-backend/internal/api/handlers"
	"github.com/dom/chateo-backend/internal/service"
	"github.com/dom/chateo-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func getWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func postWithCookie(t *testing.T, url string, cookie *http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestOnboardingFlow_NewUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const phone = "+12125551234"

	// Request a code
	resp := postJSON(t, ts.APIURL("/auth/request-code"), handlers.RequestCodeRequest{PhoneNumber: phone})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result testutil.ResultResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.True(t, result.Success)

	code := ts.Sender.LastCode(t)

	// Verify it; a new phone gets no session yet
	resp = postJSON(t, ts.APIURL("/auth/verify-code"), handlers.VerifyCodeRequest{PhoneNumber: phone, Code: code})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	testutil.AssertJSONResponse(t, resp, &result)
	assert.True(t, result.Success)
	require.NotNil(t, result.ExistingUser)
	assert.False(t, *result.ExistingUser)
	assert.Nil(t, testutil.SessionCookie(resp, service.SessionCookieName))

	// Create the profile; this issues the session
	resp = postJSON(t, ts.APIURL("/auth/profile"), handlers.CreateProfileRequest{
		PhoneNumber: phone,
		FirstName:   "John",
	})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	testutil.AssertJSONResponse(t, resp, &result)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.UserID)

	cookie := testutil.SessionCookie(resp, service.SessionCookieName)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)

	// The cookie authenticates /auth/me
	resp = getWithCookie(t, ts.APIURL("/auth/me"), cookie)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var me handlers.UserResponse
	testutil.AssertJSONResponse(t, resp, &me)
	assert.Equal(t, result.UserID, me.ID)
	assert.Equal(t, "John", me.FirstName)
	assert.Equal(t, "OFFLINE", me.OnlineStatus)
}

func TestOnboardingFlow_ExistingUser(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const phone = "+12125551234"

	user := testutil.NewUserBuilder().
		WithPhoneNumber(phone).
		WithFirstName("Jane").
		Build(t, ts.DB.DB)

	resp := postJSON(t, ts.APIURL("/auth/request-code"), handlers.RequestCodeRequest{PhoneNumber: phone})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	code := ts.Sender.LastCode(t)

	// An existing account is signed in directly from verification
	resp = postJSON(t, ts.APIURL("/auth/verify-code"), handlers.VerifyCodeRequest{PhoneNumber: phone, Code: code})
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var result testutil.ResultResponse
	testutil.AssertJSONResponse(t, resp, &result)
	require.NotNil(t, result.ExistingUser)
	assert.True(t, *result.ExistingUser)

	cookie := testutil.SessionCookie(resp, service.SessionCookieName)
	require.NotNil(t, cookie)

	resp = getWithCookie(t, ts.APIURL("/auth/me"), cookie)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var me handlers.UserResponse
	testutil.AssertJSONResponse(t, resp, &me)
	assert.Equal(t, user.ID.String(), me.ID)
	assert.Equal(t, "Jane", me.FirstName)
}

func TestRequestCode_RateLimited(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const phone = "+12125551234"

	for i := 0; i < 5; i++ {
		resp := postJSON(t, ts.APIURL("/auth/request-code"), handlers.RequestCodeRequest{PhoneNumber: phone})
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	}

	resp := postJSON(t, ts.APIURL("/auth/request-code"), handlers.RequestCodeRequest{PhoneNumber: phone})
	testutil.AssertErrorResult(t, resp, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
	assert.Equal(t, 5, ts.Sender.Count())

	// Resend shares the same quota
	resp = postJSON(t, ts.APIURL("/auth/resend-code"), handlers.RequestCodeRequest{PhoneNumber: phone})
	testutil.AssertErrorResult(t, resp, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
}

func TestVerifyCode_ErrorResponses(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const phone = "+12125551234"

	tests := []struct {
		name       string
		body       handlers.VerifyCodeRequest
		wantStatus int
		wantError  string
	}{
		{
			"bad phone",
			handlers.VerifyCodeRequest{PhoneNumber: "12125551234", Code: "123456"},
			http.StatusBadRequest,
			"Invalid phone number.",
		},
		{
			"bad code format",
			handlers.VerifyCodeRequest{PhoneNumber: phone, Code: "12ab"},
			http.StatusBadRequest,
			"Code must be 6 digits.",
		},
		{
			"no pending attempt",
			handlers.VerifyCodeRequest{PhoneNumber: phone, Code: "123456"},
			http.StatusBadRequest,
			"Invalid or expired code.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/verify-code"), tt.body)
			testutil.AssertErrorResult(t, resp, tt.wantStatus, tt.wantError)
		})
	}

	t.Run("wrong code", func(t *testing.T) {
		testutil.NewVerificationBuilder().
			WithPhoneNumber(phone).
			WithCode("111111").
			Build(t, ts.DB.DB)

		resp := postJSON(t, ts.APIURL("/auth/verify-code"), handlers.VerifyCodeRequest{PhoneNumber: phone, Code: "999999"})
		testutil.AssertErrorResult(t, resp, http.StatusBadRequest, "Invalid or expired code.")
	})
}

func TestCreateProfile_ErrorResponses(t *testing.T) {
	ts := testutil.NewTestServer(t)

	const verifiedPhone = "+12125551234"
	testutil.NewVerificationBuilder().WithPhoneNumber(verifiedPhone).Verified().Build(t, ts.DB.DB)

	tests := []struct {
		name       string
		body       handlers.CreateProfileRequest
		wantStatus int
		wantError  string
	}{
		{
			"unverified phone",
			handlers.CreateProfileRequest{PhoneNumber: "+12125559999", FirstName: "John"},
			http.StatusBadRequest,
			"Phone number not verified.",
		},
		{
			"missing first name",
			handlers.CreateProfileRequest{PhoneNumber: verifiedPhone, FirstName: ""},
			http.StatusBadRequest,
			"First name is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, ts.APIURL("/auth/profile"), tt.body)
			testutil.AssertErrorResult(t, resp, tt.wantStatus, tt.wantError)
		})
	}

	t.Run("duplicate account", func(t *testing.T) {
		resp := postJSON(t, ts.APIURL("/auth/profile"), handlers.CreateProfileRequest{
			PhoneNumber: verifiedPhone,
			FirstName:   "John",
		})
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		resp = postJSON(t, ts.APIURL("/auth/profile"), handlers.CreateProfileRequest{
			PhoneNumber: verifiedPhone,
			FirstName:   "John",
		})
		testutil.AssertErrorResult(t, resp, http.StatusConflict, "Account already exists.")
	})
}

func TestRequestCode_MalformedJSON(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Post(ts.APIURL("/auth/request-code"), "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	testutil.AssertErrorResult(t, resp, http.StatusBadRequest, "Invalid input.")
}

func TestProtectedRoutes_RequireSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	paths := []string{"/auth/me", "/users"}
	for _, path := range paths {
		resp := getWithCookie(t, ts.APIURL(path), nil)
		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	}

	// A garbage cookie is rejected the same way
	resp := getWithCookie(t, ts.APIURL("/auth/me"), &http.Cookie{Name: service.SessionCookieName, Value: "garbage"})
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
}

func TestLogout_ClearsCookie(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	token, err := ts.Services.Session.CreateToken(user.ID)
	require.NoError(t, err)

	cookie := &http.Cookie{Name: service.SessionCookieName, Value: token}

	resp := postWithCookie(t, ts.APIURL("/auth/logout"), cookie)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	cleared := testutil.SessionCookie(resp, service.SessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestListUsers(t *testing.T) {
	ts := testutil.NewTestServer(t)

	me := testutil.NewUserBuilder().WithFirstName("Me").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithFirstName("Bob").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithFirstName("Alice").WithLastName("Smith").Build(t, ts.DB.DB)

	token, err := ts.Services.Session.CreateToken(me.ID)
	require.NoError(t, err)
	cookie := &http.Cookie{Name: service.SessionCookieName, Value: token}

	resp := getWithCookie(t, ts.APIURL("/users"), cookie)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var users []handlers.UserResponse
	testutil.AssertJSONResponse(t, resp, &users)

	// Ordered by first name, requester excluded
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].FirstName)
	assert.Equal(t, "Bob", users[1].FirstName)
	for _, u := range users {
		assert.NotEqual(t, me.ID.String(), u.ID, fmt.Sprintf("user %s should be excluded", me.ID))
	}
}
