package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/clinic-admin/internal/credential"
	"github.com/aanand-mishra/clinic-admin/internal/storage/sqlite"
	"github.com/aanand-mishra/clinic-admin/internal/types"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) (*httptest.Server, *sqlite.SQLite) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "clinic.db"))
	require.NoError(t, err)
	require.NoError(t, credential.Seed(context.Background(), store, "admin", "password"))

	srv := httptest.NewServer(New(store, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv, store
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	code, raw := do(t, srv, http.MethodPost, "/api/login", `{"username":"admin","password":"password"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.NotContains(t, string(raw), "password")

	code, raw = do(t, srv, http.MethodPost, "/api/login", `{"username":"wronguser","password":"wrongpass"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid username or password", decode[envelope](t, raw).Error)

	code, _ = do(t, srv, http.MethodPost, "/api/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRegisterAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	code, raw := do(t, srv, http.MethodPost, "/api/patients",
		`{"name":"John Doe","age":"30","gender":"Male","contact":"1234567890"}`)
	require.Equal(t, http.StatusCreated, code, string(raw))
	env := decode[envelope](t, raw)
	assert.Equal(t, "Patient John Doe registered successfully", env.Message)
	created := decode[types.Patient](t, env.Data)
	assert.Equal(t, 30, created.Age)

	code, raw = do(t, srv, http.MethodPost, "/api/patients", `{"age":"40"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Name is required", decode[envelope](t, raw).Error)

	code, raw = do(t, srv, http.MethodGet, "/api/patients", "")
	require.Equal(t, http.StatusOK, code)
	list := decode[[]types.Patient](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "John Doe", list[0].Name)

	code, _ = do(t, srv, http.MethodPost, "/api/patients", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRegister_AgeAcceptsAnyJSONType(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		body string
		want int
	}{
		{body: `{"name":"Ann","age":30}`, want: 30},
		{body: `{"name":"Bob","age":true}`, want: 0},
		{body: `{"name":"Cy","age":null}`, want: 0},
		{body: `{"name":"Di","age":{"years":5}}`, want: 0},
	}
	for _, c := range cases {
		code, raw := do(t, srv, http.MethodPost, "/api/patients", c.body)
		require.Equal(t, http.StatusCreated, code, "%s: %s", c.body, raw)
		p := decode[types.Patient](t, decode[envelope](t, raw).Data)
		assert.Equal(t, c.want, p.Age, c.body)
	}
}

func TestGetByID(t *testing.T) {
	srv, store := newTestServer(t)
	p, err := store.CreatePatient(context.Background(), types.Patient{Name: "Ann"})
	require.NoError(t, err)

	code, raw := do(t, srv, http.MethodGet, "/api/patients/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, p, decode[types.Patient](t, raw))

	code, _ = do(t, srv, http.MethodGet, "/api/patients/2", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodGet, "/api/patients/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearch(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	p, err := store.CreatePatient(ctx, types.Patient{Name: "John Doe"})
	require.NoError(t, err)

	type result struct {
		Patient *types.Patient `json:"patient"`
	}

	code, raw := do(t, srv, http.MethodPost, "/api/patients/search", `{"query":" 1 "}`)
	require.Equal(t, http.StatusOK, code)
	got := decode[result](t, raw)
	require.NotNil(t, got.Patient)
	assert.Equal(t, p.ID, got.Patient.ID)

	code, raw = do(t, srv, http.MethodPost, "/api/patients/search", `{"query":"John Doe"}`)
	require.Equal(t, http.StatusOK, code)
	got = decode[result](t, raw)
	require.NotNil(t, got.Patient)
	assert.Equal(t, p.ID, got.Patient.ID)

	code, raw = do(t, srv, http.MethodPost, "/api/patients/search", `{"query":"Nobody"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, decode[result](t, raw).Patient)
}

func TestUpdateContact(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	p, err := store.CreatePatient(ctx, types.Patient{Name: "Ann", Age: 30, Gender: "Female", Contact: "111"})
	require.NoError(t, err)

	type update struct {
		Patient types.Patient `json:"patient"`
		Created bool          `json:"created"`
	}

	code, raw := do(t, srv, http.MethodPut, "/api/patients/1/contact", `{"contact":"222"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	res := decode[update](t, decode[envelope](t, raw).Data)
	assert.False(t, res.Created)
	assert.Equal(t, p.ID, res.Patient.ID)
	assert.Equal(t, "222", res.Patient.Contact)

	code, raw = do(t, srv, http.MethodPut, "/api/patients/50/contact", `{"contact":"333"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	res = decode[update](t, decode[envelope](t, raw).Data)
	assert.True(t, res.Created)
	assert.Equal(t, "Patient50", res.Patient.Name)
	assert.Equal(t, "Unknown", res.Patient.Gender)
	assert.NotEqual(t, int64(50), res.Patient.ID)

	code, raw = do(t, srv, http.MethodPut, "/api/patients/60/contact", `{"contact":"444","age":41}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	res = decode[update](t, decode[envelope](t, raw).Data)
	assert.True(t, res.Created)
	assert.Equal(t, 41, res.Patient.Age)

	code, raw = do(t, srv, http.MethodPut, "/api/patients/70/contact", `{"contact":"555","age":true}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	res = decode[update](t, decode[envelope](t, raw).Data)
	assert.True(t, res.Created)
	assert.Equal(t, 0, res.Patient.Age)
}

func TestUpdateContact_IDBeyondInt64Creates(t *testing.T) {
	srv, _ := newTestServer(t)

	type update struct {
		Patient types.Patient `json:"patient"`
		Created bool          `json:"created"`
	}

	code, raw := do(t, srv, http.MethodPut, "/api/patients/99999999999999999999/contact", `{"contact":"777"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	res := decode[update](t, decode[envelope](t, raw).Data)
	assert.True(t, res.Created)
	assert.Equal(t, "Patient99999999999999999999", res.Patient.Name)
	assert.Equal(t, "777", res.Patient.Contact)
	assert.Positive(t, res.Patient.ID)

	code, _ = do(t, srv, http.MethodPut, "/api/patients/abc/contact", `{"contact":"777"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDelete(t *testing.T) {
	srv, store := newTestServer(t)
	_, err := store.CreatePatient(context.Background(), types.Patient{Name: "Ann"})
	require.NoError(t, err)

	code, raw := do(t, srv, http.MethodDelete, "/api/patients/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Patient record deleted successfully", decode[envelope](t, raw).Message)

	code, _ = do(t, srv, http.MethodDelete, "/api/patients/1", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBookAppointment(t *testing.T) {
	srv, _ := newTestServer(t)
	body := `{"doctor_name":"Dr. Smith","time_slot":"10:00 AM","patient_name":"John Doe"}`

	code, raw := do(t, srv, http.MethodPost, "/api/appointments", body)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Appointment confirmed", decode[envelope](t, raw).Message)

	code, raw = do(t, srv, http.MethodPost, "/api/appointments", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Slot not available", decode[envelope](t, raw).Error)

	code, raw = do(t, srv, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]types.Appointment](t, raw), 1)
}

func TestGenerateBill(t *testing.T) {
	srv, _ := newTestServer(t)

	type bill struct {
		Total   int    `json:"total"`
		Message string `json:"message"`
	}

	cases := []struct {
		body    string
		total   int
		message string
	}{
		{body: `{"services":["consultation","lab_tests"]}`, total: 2000, message: "total amount: 2000"},
		{body: `{"services":["consultation"]}`, total: 500, message: "total amount: 500"},
		{body: `{"services":[]}`, total: 0, message: "No service selected"},
		{body: ``, total: 0, message: "No service selected"},
	}
	for _, c := range cases {
		code, raw := do(t, srv, http.MethodPost, "/api/bills", c.body)
		require.Equal(t, http.StatusOK, code, c.body)
		got := decode[bill](t, raw)
		assert.Equal(t, c.total, got.Total, c.body)
		assert.Equal(t, c.message, got.Message, c.body)
	}

	code, _ := do(t, srv, http.MethodPost, "/api/bills", `{"services":["x-ray"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
}
