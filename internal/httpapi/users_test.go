package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freya-systems/freya-dashboard/internal/model"
)

func validCreateUserPayload() map[string]any {
	return map[string]any{
		"firstName": "Hana",
		"lastName":  "Kobayashi",
		"email":     "hana@example.com",
		"username":  "hana.k",
		"password":  "secret-9",
		"role":      model.RoleMember,
	}
}

func TestUsersCreateForwardsCreatorContext(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/users/create", validCreateUserPayload())

	require.Equal(t, http.StatusOK, recorder.Code)

	requests := harness.stub.requests("/customerCreateUser")
	require.Len(t, requests, 1)
	require.Equal(t, "hana.k", requests[0]["username"])
	require.Equal(t, "tenant_a", requests[0]["dbName"])
	require.Equal(t, "admin", requests[0]["creatorRole"])
}

func TestUsersCreateRejectsInvalidFields(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	payload := validCreateUserPayload()
	payload["email"] = "not-an-email"
	recorder := harness.postJSON(t, "/api/users/create", payload)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_fields", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerCreateUser"))
}

func TestUsersCreateRejectsShortPassword(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	payload := validCreateUserPayload()
	payload["password"] = "abc"
	recorder := harness.postJSON(t, "/api/users/create", payload)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "invalid_fields", decodeBody(t, recorder)["error"])
}

func TestUsersCreateRejectsUnknownRole(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	payload := validCreateUserPayload()
	payload["role"] = "superadmin"
	recorder := harness.postJSON(t, "/api/users/create", payload)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "unknown_role", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerCreateUser"))
}

func TestUsersCreateAcceptsForemanRole(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	payload := validCreateUserPayload()
	payload["role"] = model.RoleForeman
	recorder := harness.postJSON(t, "/api/users/create", payload)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestUsersCreateDuplicateUsernameConflicts(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respondStatus("/customerCreateUser", http.StatusBadRequest, map[string]string{
		"error": "Username already exists",
	})

	recorder := harness.postJSON(t, "/api/users/create", validCreateUserPayload())

	require.Equal(t, http.StatusConflict, recorder.Code)
	require.Equal(t, "username_taken", decodeBody(t, recorder)["error"])
}

func TestUsersUpdateTargetsUsersCollection(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerUpdateRecord", map[string]any{"modifiedCount": 1})

	recorder := harness.postJSON(t, "/api/users/update", map[string]any{
		"recordId": "user-1",
		"fields":   map[string]string{"firstName": "Hanako"},
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	requests := harness.stub.requests("/customerUpdateRecord")
	require.Len(t, requests, 1)
	require.Equal(t, "users", requests[0]["collectionName"])
	require.Equal(t, "user-1", requests[0]["recordId"])
}

func TestUsersUpdateRejectsUnknownRoleChange(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/users/update", map[string]any{
		"recordId": "user-1",
		"fields":   map[string]string{"role": "superadmin"},
	})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Equal(t, "unknown_role", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerUpdateRecord"))
}

func TestUsersDelete(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())
	harness.stub.respond("/customerDeleteUser", map[string]any{"deletedCount": 1})

	recorder := harness.postJSON(t, "/api/users/delete", map[string]any{"recordId": "user-1"})

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, harness.stub.requestCount("/customerDeleteUser"))
}

func TestUsersResetPasswordValidation(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	shortRecorder := harness.postJSON(t, "/api/users/reset-password", map[string]any{
		"userId":          "user-1",
		"newPassword":     "abc",
		"confirmPassword": "abc",
	})
	require.Equal(t, http.StatusBadRequest, shortRecorder.Code)
	require.Equal(t, "password_too_short", decodeBody(t, shortRecorder)["error"])

	mismatchRecorder := harness.postJSON(t, "/api/users/reset-password", map[string]any{
		"userId":          "user-1",
		"newPassword":     "secret-9",
		"confirmPassword": "secret-8",
	})
	require.Equal(t, http.StatusBadRequest, mismatchRecorder.Code)
	require.Equal(t, "password_mismatch", decodeBody(t, mismatchRecorder)["error"])

	require.Zero(t, harness.stub.requestCount("/customerResetUserPassword"))
}

func TestUsersResetPasswordForwardsRequest(t *testing.T) {
	harness := newHandlerHarness(t, adminSession())

	recorder := harness.postJSON(t, "/api/users/reset-password", map[string]any{
		"userId":          "user-1",
		"newPassword":     "secret-9",
		"confirmPassword": "secret-9",
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	requests := harness.stub.requests("/customerResetUserPassword")
	require.Len(t, requests, 1)
	require.Equal(t, "user-1", requests[0]["userId"])
	require.Equal(t, "secret-9", requests[0]["newPassword"])
	require.Equal(t, "tanaka", requests[0]["username"])
}

func TestUsersRoutesForbiddenForSupervisor(t *testing.T) {
	harness := newHandlerHarness(t, supervisorSession())

	recorder := harness.postJSON(t, "/api/users/create", validCreateUserPayload())

	require.Equal(t, http.StatusForbidden, recorder.Code)
	require.Equal(t, "forbidden", decodeBody(t, recorder)["error"])
	require.Zero(t, harness.stub.requestCount("/customerCreateUser"))
}
