package webui

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stylehive/outfit-planner/internal/client/closetapi"
	"github.com/stylehive/outfit-planner/internal/client/store"
	"github.com/stylehive/outfit-planner/internal/domain/closet"
	"github.com/stylehive/outfit-planner/internal/domain/stylist"
	"github.com/stylehive/outfit-planner/internal/infra/analysiscache"
	"github.com/stylehive/outfit-planner/internal/infra/analyzer"
	"github.com/stylehive/outfit-planner/internal/infra/closetrepo"
	"github.com/stylehive/outfit-planner/internal/infra/config"
	"github.com/stylehive/outfit-planner/internal/infra/imagestore"
	apihttp "github.com/stylehive/outfit-planner/internal/interface/http"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newWebUnderTest(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	images := imagestore.NewMemoryStorage()
	closetSvc := closet.NewService(
		closet.Config{AnalysisCacheTTL: time.Hour},
		closetrepo.NewMemoryUserRepository(),
		closetrepo.NewMemoryClothingRepository(),
		closetrepo.NewMemoryOutfitRepository(),
		images,
		analyzer.NewHeuristic(logger),
		analysiscache.NewMemoryCache(),
		logger,
	)
	apiHandler := apihttp.NewHandler(closetSvc, stylist.NewService(logger), images, logger)
	apiCfg := &config.Config{HTTP: config.HTTPConfig{Address: ":0", ReadTimeout: time.Second, WriteTimeout: time.Second}}
	apiServer := httptest.NewServer(apihttp.NewRouter(apiCfg, apiHandler, logger).Handler)
	t.Cleanup(apiServer.Close)

	st := store.New(closetapi.New(apiServer.URL, logger), logger)
	webCfg := &config.Config{
		HTTP: config.HTTPConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
		Web:  config.WebConfig{Address: ":0", APIBaseURL: apiServer.URL},
	}
	return NewRouter(webCfg, NewHandler(st, logger), logger).Handler
}

func getPage(web http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	web.ServeHTTP(rec, req)
	return rec
}

func postForm(web http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	web.ServeHTTP(rec, req)
	return rec
}

func postFile(t *testing.T, web http.Handler, path, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	web.ServeHTTP(rec, req)
	return rec
}

func TestPagesRenderWithoutProfile(t *testing.T) {
	web := newWebUnderTest(t)

	for _, path := range []string{"/", "/profile", "/wardrobe", "/planner"} {
		rec := getPage(web, path)
		require.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
		require.Contains(t, rec.Body.String(), "Outfit Planner")
	}

	require.Contains(t, getPage(web, "/wardrobe").Body.String(), "profile")
	require.Contains(t, getPage(web, "/planner").Body.String(), "profile")
}

func TestProfileCreationFlow(t *testing.T) {
	web := newWebUnderTest(t)

	rec := postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := getPage(web, "/profile").Body.String()
	require.Contains(t, page, "Ada")
	require.Contains(t, page, "ada@example.com")
}

func TestProfileInvalidFormRerendersWithError(t *testing.T) {
	web := newWebUnderTest(t)

	rec := postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"nope"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "email")
}

func TestPhotoSelectAndUploadFlow(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})

	rec := postFile(t, web, "/profile/photo/select", "selfie.png", pngBytes, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := getPage(web, "/profile").Body.String()
	require.Contains(t, page, "/preview/")

	rec = postForm(web, "/profile/photo/upload", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page = getPage(web, "/profile").Body.String()
	require.Contains(t, page, "athletic")
	require.Contains(t, page, "/uploads/users/")
}

func TestPreviewServesSelectedBlob(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})
	postFile(t, web, "/profile/photo/select", "selfie.png", pngBytes, nil)

	page := getPage(web, "/profile").Body.String()
	start := strings.Index(page, "/preview/")
	require.GreaterOrEqual(t, start, 0)
	end := strings.IndexAny(page[start:], `"'`)
	require.Greater(t, end, 0)
	previewPath := page[start : start+end]

	rec := getPage(web, previewPath)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestWardrobeAddItemFlow(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})

	rec := postForm(web, "/wardrobe/panel", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postFile(t, web, "/wardrobe/select", "shirt.png", pngBytes, map[string]string{"category": "top"})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = postForm(web, "/wardrobe/items", url.Values{"category": {"top"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := getPage(web, "/wardrobe").Body.String()
	require.Contains(t, page, "top")
}

func TestPhotoSelectionIsPageLocal(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})

	rec := postFile(t, web, "/profile/photo/select", "selfie.png", pngBytes, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, getPage(web, "/profile").Body.String(), "/preview/")

	// The selfie pending on the profile page is not the wardrobe page's
	// pending garment.
	rec = postForm(web, "/wardrobe/items", url.Values{"category": {"top"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "select an image first")
	require.NotContains(t, getPage(web, "/wardrobe").Body.String(), "/uploads/")

	// Closing the wardrobe panel clears only the wardrobe selection.
	postForm(web, "/wardrobe/panel", url.Values{})
	postForm(web, "/wardrobe/panel", url.Values{})
	require.Contains(t, getPage(web, "/profile").Body.String(), "/preview/")
}

func TestPlannerGenerateAndSaveFlow(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})

	postForm(web, "/wardrobe/panel", url.Values{})
	postFile(t, web, "/wardrobe/select", "top.png", pngBytes, map[string]string{"category": "top"})
	postForm(web, "/wardrobe/items", url.Values{"category": {"top"}})

	postForm(web, "/wardrobe/panel", url.Values{})
	postFile(t, web, "/wardrobe/select", "bottom.png", append(pngBytes, 'x'), map[string]string{"category": "bottom"})
	postForm(web, "/wardrobe/items", url.Values{"category": {"bottom"}})

	rec := postForm(web, "/planner/generate", url.Values{"occasion": {"formal"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Recommendations for formal")

	rec = postForm(web, "/planner/save", url.Values{"index": {"0"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Saved")
}

func TestPlannerResultsResetOnNavigation(t *testing.T) {
	web := newWebUnderTest(t)
	postForm(web, "/profile", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}})

	postForm(web, "/wardrobe/panel", url.Values{})
	postFile(t, web, "/wardrobe/select", "top.png", pngBytes, map[string]string{"category": "top"})
	postForm(web, "/wardrobe/items", url.Values{"category": {"top"}})
	postForm(web, "/wardrobe/panel", url.Values{})
	postFile(t, web, "/wardrobe/select", "bottom.png", append(pngBytes, 'x'), map[string]string{"category": "bottom"})
	postForm(web, "/wardrobe/items", url.Values{"category": {"bottom"}})

	rec := postForm(web, "/planner/generate", url.Values{"occasion": {"casual"}})
	require.Contains(t, rec.Body.String(), "Recommendations")

	// Leaving the page and coming back drops the generated results.
	getPage(web, "/")
	page := getPage(web, "/planner").Body.String()
	require.NotContains(t, page, "Recommendations for")
}
