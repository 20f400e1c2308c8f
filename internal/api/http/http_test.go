package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/catalog"
	"github.com/jekabolt/edupath/internal/dependency/mocks"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/locale"
	"github.com/jekabolt/edupath/internal/realtime"
	"github.com/jekabolt/edupath/internal/store"
)

const heroFallback = "https://cdn.example.com/hero.jpg"

type testEnv struct {
	srv     *Server
	auth    *auth.Server
	locales *locale.Catalog
	files   *mocks.FileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	hub := realtime.New(nil)
	t.Cleanup(hub.Close)

	db, err := store.New(ctx, store.Config{
		Driver:             store.DriverSQLite,
		DSN:                fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		Automigrate:        true,
		MaxOpenConnections: 1,
	}, hub)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	as, err := auth.New(&auth.Config{
		JWTSecret:                "a-test-secret-of-32-characters!!",
		JWTTTL:                   time.Hour,
		PasswordHasherIterations: 1000,
	}, db)
	require.NoError(t, err)
	t.Cleanup(as.Close)

	locales, err := locale.LoadEmbedded()
	require.NoError(t, err)
	docs, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	files := &mocks.FileStore{}
	srv, err := New(&Config{}, Deps{
		Repo:          db,
		Auth:          as,
		Locales:       locales,
		DefaultLocale: locale.Arabic,
		Publisher:     feed.NewPublisher(db.Announcements(), files),
		Gallery:       gallery.New(&gallery.Config{HeroFallbackURL: heroFallback}, db.InstitutionImages(), files),
		Documents:     docs,
		Changes:       hub,
	})
	require.NoError(t, err)
	return &testEnv{srv: srv, auth: as, locales: locales, files: files}
}

type envelope struct {
	Data   json.RawMessage   `json:"data"`
	Notice *notice           `json:"notice"`
	Errors map[string]string `json:"errors"`
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string, header ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (e *testEnv) msg(t *testing.T, code locale.Code, key string) string {
	t.Helper()
	m, ok := e.locales.Lookup(code, key)
	require.True(t, ok, key)
	return m
}

func (e *testEnv) signup(t *testing.T, email string) string {
	t.Helper()
	rec, env := e.do(t, http.MethodPost, "/api/auth/signup", form.SignupRequest{
		Email:         email,
		Password:      "testPassword",
		FullName:      "Amina Test",
		TrainingField: "digital",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sv sessionView
	require.NoError(t, json.Unmarshal(env.Data, &sv))
	require.NotEmpty(t, sv.Token)
	return sv.Token
}

func (e *testEnv) loginAs(t *testing.T, email, role string) string {
	t.Helper()
	_, err := e.auth.AddUser(context.Background(), &form.AddUserRequest{
		Email:    email,
		Password: "testPassword",
		Role:     role,
	})
	require.NoError(t, err)
	rec, env := e.do(t, http.MethodPost, "/api/auth/login", form.LoginRequest{
		Email:    email,
		Password: "testPassword",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sv sessionView
	require.NoError(t, json.Unmarshal(env.Data, &sv))
	return sv.Token
}

func TestLocaleResolution(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodGet, "/api/locale?messages=false", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v localeView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, locale.Arabic, v.Lang)
	assert.Equal(t, locale.RTL, v.Dir)
	assert.Len(t, v.Available, len(locale.Codes))
	assert.Nil(t, v.Messages)
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))

	rec, env = e.do(t, http.MethodGet, "/api/locale", nil, "", "Accept-Language", "fr-FR,fr;q=0.9")
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, locale.French, v.Lang)
	assert.Equal(t, locale.LTR, v.Dir)
	assert.Equal(t, e.msg(t, locale.French, "home"), v.Messages["home"])
	assert.Equal(t, "fr", rec.Header().Get("Content-Language"))

	rec, _ = e.do(t, http.MethodGet, "/api/locale?lang=en", nil, "", "Accept-Language", "fr")
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	var saved *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == locale.CookieName {
			saved = c
		}
	}
	require.NotNil(t, saved)
	assert.Equal(t, "en", saved.Value)

	// the cookie wins over Accept-Language
	rec, _ = e.do(t, http.MethodGet, "/api/locale", nil, "", "Accept-Language", "fr", "Cookie", locale.CookieName+"=en")
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
}

func TestSetLocale(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodPut, "/api/locale", form.SetLocaleRequest{Locale: "de"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Notice)
	assert.Equal(t, noticeError, env.Notice.Kind)
	assert.Equal(t, e.msg(t, locale.Arabic, "notice.unsupportedLocale"), env.Notice.Message)

	rec, env = e.do(t, http.MethodPut, "/api/locale", form.SetLocaleRequest{Locale: "fr"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Notice)
	assert.Equal(t, e.msg(t, locale.French, "notice.localeChanged"), env.Notice.Message)
}

func TestLocaleKeptOnProfile(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "locale@example.com")

	rec, _ := e.do(t, http.MethodPut, "/api/locale", form.SetLocaleRequest{Locale: "en"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	// no cookie, the profile remembers
	rec, env := e.do(t, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", rec.Header().Get("Content-Language"))
	var pv profileView
	require.NoError(t, json.Unmarshal(env.Data, &pv))
	assert.Equal(t, "en", pv.PreferredLocale)
	assert.Equal(t, "Amina Test", pv.FullName)
	assert.Equal(t, "digital", pv.TrainingField)

	rec, env = e.do(t, http.MethodPut, "/api/profile", form.UpdateProfileRequest{FullName: "Amina B", TrainingField: "sante"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &pv))
	assert.Equal(t, "Amina B", pv.FullName)
	assert.Equal(t, "sante", pv.TrainingField)
	assert.Equal(t, "en", pv.PreferredLocale)

	rec, env = e.do(t, http.MethodPut, "/api/profile", form.UpdateProfileRequest{FullName: "Amina B", TrainingField: "astronomy"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "training_field")
}

func TestPagesRenderDocumentAttributes(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="ar" dir="rtl">`)
	assert.Contains(t, body, heroFallback)
	assert.Contains(t, body, e.msg(t, locale.Arabic, "home"))

	rec, _ = e.do(t, http.MethodGet, "/?lang=fr", nil, "")
	assert.Contains(t, rec.Body.String(), `<html lang="fr" dir="ltr">`)
}

func TestHomeShowsLatestToMembersOnly(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "home@example.com")

	rec, _ := e.do(t, http.MethodPost, "/api/announcements", form.PublishAnnouncementRequest{Title: "SecretExamDate", Content: "Monday"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = e.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "SecretExamDate")

	rec, _ = e.do(t, http.MethodGet, "/", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SecretExamDate")
}

func TestPageAccess(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodGet, "/library", nil, "")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth?next=%2Flibrary", rec.Header().Get("Location"))

	trainee := e.signup(t, "trainee@example.com")
	rec, _ = e.do(t, http.MethodGet, "/library", nil, trainee)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = e.do(t, http.MethodGet, "/admin", nil, trainee)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	admin := e.loginAs(t, "admin@example.com", "admin")
	rec, _ = e.do(t, http.MethodGet, "/admin", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)

	rec, _ := e.do(t, http.MethodGet, "/no-such-page?lang=en", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), e.msg(t, locale.English, "notFoundMessage"))

	rec, env := e.do(t, http.MethodGet, "/api/no-such-route", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Notice)
	assert.Equal(t, e.msg(t, locale.Arabic, "notice.notFound"), env.Notice.Message)
}

func navKeys(t *testing.T, env envelope) []string {
	t.Helper()
	var items []navItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}

func TestNavigation(t *testing.T) {
	e := newTestEnv(t)

	_, env := e.do(t, http.MethodGet, "/api/navigation", nil, "")
	assert.Equal(t, []string{"home", "login"}, navKeys(t, env))

	trainee := e.signup(t, "nav@example.com")
	_, env = e.do(t, http.MethodGet, "/api/navigation", nil, trainee)
	keys := navKeys(t, env)
	assert.Contains(t, keys, "library")
	assert.NotContains(t, keys, "login")
	assert.NotContains(t, keys, "admin")

	admin := e.loginAs(t, "nav-admin@example.com", "admin")
	_, env = e.do(t, http.MethodGet, "/api/navigation", nil, admin)
	assert.Contains(t, navKeys(t, env), "admin")
}

func TestPublishAndList(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodPost, "/api/announcements", form.PublishAnnouncementRequest{Title: "Exam", Content: "Monday"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Notice)

	token := e.signup(t, "publisher@example.com")

	rec, env = e.do(t, http.MethodPost, "/api/announcements", form.PublishAnnouncementRequest{Title: " ", Content: "Monday"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "title")
	require.NotNil(t, env.Notice)
	assert.Equal(t, e.msg(t, locale.Arabic, "notice.validation"), env.Notice.Message)

	rec, env = e.do(t, http.MethodPost, "/api/announcements?lang=en", form.PublishAnnouncementRequest{Title: "Exam", Content: "Monday"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, env.Notice)
	assert.Equal(t, noticeSuccess, env.Notice.Kind)
	assert.Equal(t, e.msg(t, locale.English, "notice.published"), env.Notice.Message)
	var created announcementView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.Id)
	assert.NotEmpty(t, created.Date)

	rec, env = e.do(t, http.MethodGet, "/api/announcements", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var lv listView
	require.NoError(t, json.Unmarshal(env.Data, &lv))
	assert.Equal(t, 1, lv.Count)
	require.Len(t, lv.Sections, 1)
	require.Len(t, lv.Sections[0].Items, 1)
	assert.Equal(t, created.Id, lv.Sections[0].Items[0].Id)

	rec, env = e.do(t, http.MethodGet, "/api/announcements/latest", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var latest latestView
	require.NoError(t, json.Unmarshal(env.Data, &latest))
	require.NotNil(t, latest.Item)
	assert.Equal(t, "Exam", latest.Item.Title)

	rec, _ = e.do(t, http.MethodDelete, "/api/announcements/"+created.Id, nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	staff := e.loginAs(t, "staff@example.com", "staff")
	rec, _ = e.do(t, http.MethodDelete, "/api/announcements/"+created.Id, nil, staff)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = e.do(t, http.MethodGet, "/api/announcements/latest", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &latest))
	assert.Nil(t, latest.Item)
}

func multipartBody(t *testing.T, fields map[string]string, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (e *testEnv) postMultipart(t *testing.T, path, token string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestPublishWithImage(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "images@example.com")

	e.files.On("UploadImage", mock.Anything, mock.MatchedBy(func(up *entity.Upload) bool {
		return up.FileName == "exam.png" && string(up.Content) == "png-bytes"
	}), feed.ImageFolder, mock.Anything).Return(&entity.StoredObject{
		Key:    "announcements/exam.png",
		URL:    "https://cdn.example.com/announcements/exam.png",
		Width:  640,
		Height: 480,
	}, nil).Once()

	body, ct := multipartBody(t, map[string]string{"title": "Exam", "content": "Monday"}, "exam.png", []byte("png-bytes"))
	rec, env := e.postMultipart(t, "/api/announcements", token, body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created announcementView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "https://cdn.example.com/announcements/exam.png", created.ImageURL)
	assert.Equal(t, 640, created.Width)
	e.files.AssertExpectations(t)
}

func TestPublishUploadFailure(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "broken@example.com")

	e.files.On("UploadImage", mock.Anything, mock.Anything, feed.ImageFolder, mock.Anything).
		Return(nil, fmt.Errorf("s3 unavailable")).Once()

	body, ct := multipartBody(t, map[string]string{"title": "Exam", "content": "Monday"}, "exam.png", []byte("png-bytes"))
	rec, env := e.postMultipart(t, "/api/announcements", token, body, ct)
	assert.Equal(t, gerr.HTTPStatus(gerr.ErrUploadFailed), rec.Code)
	require.NotNil(t, env.Notice)
	assert.Equal(t, e.msg(t, locale.Arabic, "notice.uploadFailed"), env.Notice.Message)

	_, env = e.do(t, http.MethodGet, "/api/announcements", nil, token)
	var lv listView
	require.NoError(t, json.Unmarshal(env.Data, &lv))
	assert.Equal(t, 0, lv.Count)
}

func TestPublishEmptyImageRejected(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "empty-image@example.com")

	body, ct := multipartBody(t, map[string]string{"title": "Exam", "content": "Monday"}, "photo.jpg", nil)
	rec, env := e.postMultipart(t, "/api/announcements", token, body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "image")
	require.NotNil(t, env.Notice)
	assert.Equal(t, e.msg(t, locale.Arabic, "notice.validation"), env.Notice.Message)
	e.files.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, env = e.do(t, http.MethodGet, "/api/announcements", nil, token)
	var lv listView
	require.NoError(t, json.Unmarshal(env.Data, &lv))
	assert.Equal(t, 0, lv.Count)
}

func TestGalleryRoutes(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodGet, "/api/gallery/hero", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var hero gallery.Hero
	require.NoError(t, json.Unmarshal(env.Data, &hero))
	assert.True(t, hero.Fallback)
	assert.Equal(t, heroFallback, hero.URL)

	rec, _ = e.do(t, http.MethodGet, "/api/gallery?type=poster", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = e.do(t, http.MethodGet, "/api/admin/gallery", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	admin := e.loginAs(t, "gallery-admin@example.com", "admin")
	rec, _ = e.do(t, http.MethodGet, "/api/admin/gallery", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = e.do(t, http.MethodPost, "/api/admin/gallery", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "image")

	rec, env = e.do(t, http.MethodPatch, "/api/admin/gallery/not-an-id", map[string]bool{"is_active": false}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "id")
}

func TestCatalogRoutes(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "reader@example.com")

	rec, env := e.do(t, http.MethodGet, "/api/library", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []catalog.Category
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	assert.NotEmpty(t, cats)

	rec, env = e.do(t, http.MethodGet, "/api/courses?field=digital", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &cats))
	require.Len(t, cats, 1)
	assert.Equal(t, "digital", cats[0].Id)

	rec, _ = e.do(t, http.MethodGet, "/api/courses?field=astronomy", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = e.do(t, http.MethodGet, "/api/training-fields?lang=en", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fields []fieldView
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.Len(t, fields, len(catalog.TrainingFields()))
	assert.Equal(t, e.msg(t, locale.English, "field.sante"), fields[0].Label)
}

func readFrame(t *testing.T, conn *websocket.Conn, pred func(feedFrame) bool) feedFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var f feedFrame
		require.NoError(t, conn.ReadJSON(&f))
		if pred(f) {
			return f
		}
	}
}

func TestFeedWebsocket(t *testing.T) {
	e := newTestEnv(t)
	token := e.signup(t, "feed@example.com")

	ts := httptest.NewServer(e.srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/announcements/feed?mode=latest"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Authorization": {"Bearer " + token}})
	require.NoError(t, err)
	defer conn.Close()

	f := readFrame(t, conn, func(f feedFrame) bool { return f.State == feed.StateEmpty })
	assert.Equal(t, "latest", f.Mode)
	assert.False(t, f.Spinner)
	assert.Equal(t, e.msg(t, locale.Arabic, "feed.empty"), f.Message)

	rec, _ := e.do(t, http.MethodPost, "/api/announcements", form.PublishAnnouncementRequest{Title: "Exam", Content: "Monday"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	f = readFrame(t, conn, func(f feedFrame) bool { return f.State == feed.StatePopulated })
	require.NotNil(t, f.Latest)
	assert.Equal(t, "Exam", f.Latest.Title)
	assert.Equal(t, locale.Arabic, f.Locale.Lang)

	require.NoError(t, conn.WriteJSON(feedCommand{Action: actionLocale, Locale: "fr"}))
	f = readFrame(t, conn, func(f feedFrame) bool { return f.Locale.Lang == locale.French })
	assert.Equal(t, locale.LTR, f.Locale.Dir)
	require.NotNil(t, f.Latest)
}

func TestFeedWebsocketRequiresSession(t *testing.T) {
	e := newTestEnv(t)
	ts := httptest.NewServer(e.srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/announcements/feed"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://edupath.example.com"}
	assert.True(t, isOriginAllowed("http://localhost:5173", allowed))
	assert.True(t, isOriginAllowed("https://edupath.example.com", allowed))
	assert.False(t, isOriginAllowed("https://evil.example.com", allowed))
}
