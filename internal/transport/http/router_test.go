package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-contacts-api/internal/config"
	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
	"github.com/pribylovaa/go-contacts-api/mocks"
)

// Сквозные тесты REST-поверхности: реальный роутер + сервис, хранилище и
// внешние зависимости замоканы.

func testCfg() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret: "router-secret",
			TokenTTL:  30 * time.Minute,
			Issuer:    "contacts-api",
		},
		Timeouts: config.TimeoutConfig{
			Service: 5 * time.Second,
			Mail:    time.Second,
		},
	}
}

type testEnv struct {
	router  stdhttp.Handler
	storage *mocks.MockStorage
	avatars *mocks.MockAvatars
	mailer  *mocks.MockMailer
}

func newTestEnv(t *testing.T) (*testEnv, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := &testEnv{
		storage: mocks.NewMockStorage(ctrl),
		avatars: mocks.NewMockAvatars(ctrl),
		mailer:  mocks.NewMockMailer(ctrl),
	}

	svc := service.New(env.storage, env.avatars, env.mailer, testCfg())
	env.router = NewRouter(svc, Options{
		BasePath: "/api",
		TempDir:  t.TempDir(),
	})

	return env, ctrl
}

func mustBcrypt(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func doJSON(t *testing.T, router stdhttp.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// loginUser прогоняет login через HTTP и возвращает выпущенный токен
// вместе с записью пользователя, в которой токен уже сохранён.
func loginUser(t *testing.T, env *testEnv, email, pw string) (string, *models.User) {
	t.Helper()

	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: mustBcrypt(t, pw),
		Subscription: models.SubscriptionStarter,
		Verify:       true,
	}

	env.storage.EXPECT().UserByEmail(gomock.Any(), email).Return(u, nil)

	var issued string
	env.storage.EXPECT().UpdateUserToken(gomock.Any(), u.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, token *string) error {
			issued = *token
			return nil
		})

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": pw})
	require.Equal(t, stdhttp.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email        string `json:"email"`
			Subscription string `json:"subscription"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, issued, resp.Token)
	require.Equal(t, email, resp.User.Email)

	u.Token = &issued
	return issued, u
}

// expectAuth настраивает разрешение идентичности по токену для одного запроса.
func expectAuth(env *testEnv, u *models.User) {
	env.storage.EXPECT().UserByID(gomock.Any(), u.ID).Return(u, nil)
}

func TestRegister_Created(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	email := "new@example.com"
	env.storage.EXPECT().UserByEmail(gomock.Any(), email).Return(nil, storage.ErrNotFound)
	env.storage.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(nil)
	env.mailer.EXPECT().SendVerificationEmail(gomock.Any(), email, gomock.Any()).Return(nil)

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, stdhttp.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		User struct {
			Email        string `json:"email"`
			Subscription string `json:"subscription"`
			AvatarURL    string `json:"avatarURL"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, email, resp.User.Email)
	require.Equal(t, "starter", resp.User.Subscription)
	require.Contains(t, resp.User.AvatarURL, "gravatar.com")

	// Хэш пароля и токены наружу не уходят.
	require.NotContains(t, rr.Body.String(), "password")
	require.NotContains(t, rr.Body.String(), "token")
}

func TestRegister_DuplicateEmail_Conflict(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	email := "taken@example.com"
	env.storage.EXPECT().UserByEmail(gomock.Any(), email).
		Return(&models.User{ID: uuid.New(), Email: email}, nil)

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "secret1"})
	require.Equal(t, stdhttp.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), "email in use")
}

func TestRegister_MalformedBody(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(stdhttp.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email": "x@y.z", "bogus": true}`))
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
}

func TestLogin_InvalidCredentials_SameMessage(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	// Неизвестный e-mail.
	env.storage.EXPECT().UserByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, storage.ErrNotFound)
	rr1 := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ghost@example.com", "password": "secret1"})

	// Неверный пароль.
	u := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustBcrypt(t, "right-one"),
		Verify:       true,
	}
	env.storage.EXPECT().UserByEmail(gomock.Any(), u.Email).Return(u, nil)
	rr2 := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/login", "",
		map[string]string{"email": u.Email, "password": "wrong-one"})

	require.Equal(t, stdhttp.StatusUnauthorized, rr1.Code)
	require.Equal(t, stdhttp.StatusUnauthorized, rr2.Code)
	// Тело ответа неразличимо для обоих случаев.
	require.JSONEq(t, rr1.Body.String(), rr2.Body.String())
}

func TestLogin_UnverifiedEmail_Unauthorized(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	u := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustBcrypt(t, "secret1"),
		Verify:       false,
	}
	env.storage.EXPECT().UserByEmail(gomock.Any(), u.Email).Return(u, nil)

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/login", "",
		map[string]string{"email": u.Email, "password": "secret1"})
	require.Equal(t, stdhttp.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), "email is not verified")
}

func TestVerifyEmail_Link(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token := uuid.NewString()
	u := &models.User{ID: uuid.New(), VerificationToken: &token}

	env.storage.EXPECT().UserByVerificationToken(gomock.Any(), token).Return(u, nil)
	env.storage.EXPECT().MarkUserVerified(gomock.Any(), u.ID).Return(nil)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/auth/verify/"+token, "", nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Verification successful")
}

func TestVerifyEmail_UnknownToken_NotFound(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.storage.EXPECT().UserByVerificationToken(gomock.Any(), "bogus").
		Return(nil, storage.ErrNotFound)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/auth/verify/bogus", "", nil)
	require.Equal(t, stdhttp.StatusNotFound, rr.Code)
}

func TestResendVerify_OK(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token := uuid.NewString()
	u := &models.User{
		ID:                uuid.New(),
		Email:             "user@example.com",
		VerificationToken: &token,
	}
	env.storage.EXPECT().UserByEmail(gomock.Any(), u.Email).Return(u, nil)
	env.mailer.EXPECT().SendVerificationEmail(gomock.Any(), u.Email, token).Return(nil)

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/verify", "",
		map[string]string{"email": u.Email})
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Verification email sent")
}

func TestProtected_NoToken_Unauthorized(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	for _, tc := range []struct{ method, target string }{
		{stdhttp.MethodGet, "/api/contacts"},
		{stdhttp.MethodPost, "/api/auth/logout"},
		{stdhttp.MethodGet, "/api/auth/current"},
	} {
		rr := doJSON(t, env.router, tc.method, tc.target, "", nil)
		require.Equal(t, stdhttp.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.target)
	}
}

func TestCurrent_ReturnsIdentity(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/auth/current", token, nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)

	var resp struct {
		Email        string `json:"email"`
		Subscription string `json:"subscription"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, u.Email, resp.Email)
	require.Equal(t, "starter", resp.Subscription)
}

func TestLogout_RevokesSession(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().UpdateUserToken(gomock.Any(), u.ID, gomock.Nil()).Return(nil)

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, stdhttp.StatusNoContent, rr.Code)

	// Тот же токен после logout: в записи пользователя его больше нет.
	revoked := *u
	revoked.Token = nil
	env.storage.EXPECT().UserByID(gomock.Any(), u.ID).Return(&revoked, nil)

	rr = doJSON(t, env.router, stdhttp.MethodGet, "/api/auth/current", token, nil)
	require.Equal(t, stdhttp.StatusUnauthorized, rr.Code)
}

func TestUpdateSubscription_OK(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	updated := *u
	updated.Subscription = models.SubscriptionPro

	expectAuth(env, u)
	env.storage.EXPECT().UpdateUserSubscription(gomock.Any(), u.ID, models.SubscriptionPro).
		Return(&updated, nil)

	rr := doJSON(t, env.router, stdhttp.MethodPatch, "/api/auth/subscription", token,
		map[string]string{"subscription": "pro"})
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"subscription":"pro"`)
}

func TestUpdateSubscription_InvalidTier(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodPatch, "/api/auth/subscription", token,
		map[string]string{"subscription": "platinum"})
	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
}

func TestUpdateAvatar_Multipart(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	wantURL := "/avatars/" + u.ID.String() + "_1.png"
	expectAuth(env, u)
	env.avatars.EXPECT().
		SaveAvatar(gomock.Any(), u.ID, gomock.Any(), "me.png").
		Return(wantURL, nil)
	env.storage.EXPECT().UpdateUserAvatarURL(gomock.Any(), u.ID, wantURL).Return(nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(stdhttp.MethodPatch, "/api/auth/avatars", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, stdhttp.StatusOK, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), wantURL)
}

func TestUpdateAvatar_NoFile(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("not-avatar", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(stdhttp.MethodPatch, "/api/auth/avatars", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "avatar file is required")
}

func TestContacts_List_DefaultsAndFilter(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().
		ListContacts(gomock.Any(), u.ID, gomock.Nil(), uint64(20), uint64(0)).
		Return([]models.Contact{
			{ID: 1, Name: "Alice", Email: "a@b.c", Phone: "1", OwnerID: u.ID},
			{ID: 2, Name: "Bob", Email: "b@b.c", Phone: "2", Favorite: true, OwnerID: u.ID},
		}, nil)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 2)
	// owner_id в ответ не попадает.
	require.NotContains(t, rr.Body.String(), u.ID.String())

	// Фильтр favorite + пагинация.
	fav := true
	expectAuth(env, u)
	env.storage.EXPECT().
		ListContacts(gomock.Any(), u.ID, &fav, uint64(5), uint64(5)).
		Return([]models.Contact{}, nil)

	rr = doJSON(t, env.router, stdhttp.MethodGet, "/api/contacts?page=2&limit=5&favorite=true", token, nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.JSONEq(t, "[]", rr.Body.String())
}

func TestContacts_List_BadPagination(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	for _, target := range []string{
		"/api/contacts?page=0",
		"/api/contacts?page=abc",
		"/api/contacts?limit=0",
		"/api/contacts?limit=101",
		"/api/contacts?page=8589934593&limit=2147483648",
		"/api/contacts?favorite=maybe",
	} {
		expectAuth(env, u)
		rr := doJSON(t, env.router, stdhttp.MethodGet, target, token, nil)
		require.Equal(t, stdhttp.StatusBadRequest, rr.Code, target)
	}
}

func TestContacts_Create(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().SaveContact(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *models.Contact) (*models.Contact, error) {
			require.Equal(t, u.ID, c.OwnerID)
			out := *c
			out.ID = 10
			return &out, nil
		})

	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/contacts", token,
		map[string]any{"name": "Alice", "email": "a@b.c", "phone": "+1", "favorite": true})
	require.Equal(t, stdhttp.StatusCreated, rr.Code)
	require.Contains(t, rr.Body.String(), `"id":10`)
}

func TestContacts_Create_MissingField(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodPost, "/api/contacts", token,
		map[string]any{"name": "Alice", "email": "a@b.c"})
	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
}

func TestContacts_GetByID(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().ContactByID(gomock.Any(), u.ID, int64(7)).
		Return(&models.Contact{ID: 7, Name: "Alice", Email: "a@b.c", Phone: "1", OwnerID: u.ID}, nil)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/contacts/7", token, nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"id":7`)
}

// Нечисловой id — 404, как и несуществующий: формат наружу не различаем.
func TestContacts_GetByID_NonNumeric(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/contacts/abc", token, nil)
	require.Equal(t, stdhttp.StatusNotFound, rr.Code)
}

func TestContacts_Update(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().
		UpdateContact(gomock.Any(), u.ID, int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ int64, upd storage.ContactUpdate) (*models.Contact, error) {
			require.NotNil(t, upd.Name)
			require.Equal(t, "Renamed", *upd.Name)
			require.Nil(t, upd.Email)
			return &models.Contact{ID: 7, Name: "Renamed", Email: "a@b.c", Phone: "1", OwnerID: u.ID}, nil
		})

	rr := doJSON(t, env.router, stdhttp.MethodPut, "/api/contacts/7", token,
		map[string]any{"name": "Renamed"})
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Renamed")
}

func TestContacts_Update_EmptyBody(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodPut, "/api/contacts/7", token, map[string]any{})
	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
	require.Contains(t, rr.Body.String(), "body must have at least one field")
}

func TestContacts_Favorite(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	fav := true
	env.storage.EXPECT().
		UpdateContact(gomock.Any(), u.ID, int64(7), storage.ContactUpdate{Favorite: &fav}).
		Return(&models.Contact{ID: 7, Favorite: true, OwnerID: u.ID}, nil)

	rr := doJSON(t, env.router, stdhttp.MethodPatch, "/api/contacts/7/favorite", token,
		map[string]any{"favorite": true})
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"favorite":true`)
}

func TestContacts_Favorite_MissingFlag(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	rr := doJSON(t, env.router, stdhttp.MethodPatch, "/api/contacts/7/favorite", token,
		map[string]any{})
	require.Equal(t, stdhttp.StatusBadRequest, rr.Code)
}

func TestContacts_Delete_ReturnsSnapshot(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().DeleteContact(gomock.Any(), u.ID, int64(7)).
		Return(&models.Contact{ID: 7, Name: "Gone", Email: "g@b.c", Phone: "1", OwnerID: u.ID}, nil)

	rr := doJSON(t, env.router, stdhttp.MethodDelete, "/api/contacts/7", token, nil)
	require.Equal(t, stdhttp.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Gone")
}

// Чужой контакт неотличим от несуществующего: хранилище отвечает ErrNotFound.
func TestContacts_ForeignContact_NotFound(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	token, u := loginUser(t, env, "user@example.com", "secret1")

	expectAuth(env, u)
	env.storage.EXPECT().ContactByID(gomock.Any(), u.ID, int64(99)).
		Return(nil, storage.ErrNotFound)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/contacts/99", token, nil)
	require.Equal(t, stdhttp.StatusNotFound, rr.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	env, ctrl := newTestEnv(t)
	defer ctrl.Finish()

	env.storage.EXPECT().UserByVerificationToken(gomock.Any(), "none").
		Return(nil, storage.ErrNotFound)

	rr := doJSON(t, env.router, stdhttp.MethodGet, "/api/auth/verify/none", "", nil)
	require.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}
