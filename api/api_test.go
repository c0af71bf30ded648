package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/store"
	"github.com/raushankrgupta/stylewise/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeImages() *fakeImages {
	return &fakeImages{objects: map[string][]byte{}}
}

func (f *fakeImages) Upload(_ context.Context, body io.Reader, key, _ string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return key, nil
}

func (f *fakeImages) Presign(_ context.Context, key string) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeImages) Download(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

type fakeRenderer struct {
	err     error
	outfits []string
}

func (f *fakeRenderer) RenderOutfit(_ context.Context, person []byte, outfit analysis.Outfit, _ analysis.Profile) (*utils.GeneratedImage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.outfits = append(f.outfits, outfit.ID)
	return &utils.GeneratedImage{Data: append([]byte("rendered:"), person...), MIMEType: "image/png"}, nil
}

type fakeImporter struct {
	product *models.Product
	err     error
}

func (f *fakeImporter) Import(_ context.Context, url string) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.product
	p.SourceURL = url
	return &p, nil
}

type sentMail struct {
	toEmail, subject, text, html string
}

type fakeMailer struct {
	sent []sentMail
}

func (f *fakeMailer) SendEmail(_ context.Context, _, toEmail, subject, text, html string) error {
	f.sent = append(f.sent, sentMail{toEmail, subject, text, html})
	return nil
}

type testEnv struct {
	handler http.Handler
	store   *store.MemoryStore
}

func newTestEnv(t *testing.T, mutate func(*Deps)) *testEnv {
	t.Helper()
	mem := store.NewMemoryStore()
	d := Deps{
		Store:  mem,
		Tokens: utils.NewTokenIssuer("test-secret", time.Hour),
	}
	if mutate != nil {
		mutate(&d)
	}
	return &testEnv{handler: NewServer(d).Routes(), store: mem}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) signup(t *testing.T, email, gender string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/signup", "", SignupRequest{
		Name: "Asha", Email: email, Password: "correct-horse", Gender: gender,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp AuthResponse
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t, nil)
	env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPost, "/auth/signup", "", SignupRequest{
		Name: "Asha", Email: "asha@example.com", Password: "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/signup", "", SignupRequest{
		Name: "Ravi", Email: "ravi@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/signup", "", SignupRequest{
		Name: "Ravi", Email: "not-an-email", Password: "long-enough",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "asha@example.com", Password: "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp AuthResponse
	decode(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "asha@example.com", Password: "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/login", "", LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, nil)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/profile", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/profile", "garbage", nil).Code)

	other := utils.NewTokenIssuer("other-secret", time.Hour)
	token, err := other.GenerateToken("0123456789abcdef01234567")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/advice", token, nil).Code)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/colors", "", nil).Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPut, "/profile", token, map[string]interface{}{
		"gender":          "Male",
		"fitness_goals":   []string{"lose weight"},
		"favorite_colors": []string{"navy"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var user models.User
	decode(t, rec, &user)
	assert.Equal(t, "male", user.Gender)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, []string{"lose weight"}, user.Preferences.FitnessGoals)

	rec = env.do(t, http.MethodPut, "/profile", token, map[string]interface{}{"style_preferences": []string{"goth"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/profile", token, map[string]interface{}{"shoe_size": 9})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalysisResultsAreStored(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPost, "/analysis/bmi", token, BMIRequest{Height: 68, Weight: 150})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var bmi analysis.BMIResult
	decode(t, rec, &bmi)
	assert.Equal(t, 22.8, bmi.Value)
	assert.Equal(t, analysis.Normal, bmi.Category)

	rec = env.do(t, http.MethodPost, "/analysis/body-shape", token, analysis.BodyMeasurements{Bust: 36, Waist: 28, Hips: 36})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Result      analysis.BodyShapeResult `json:"result"`
		Description string                   `json:"description"`
	}
	decode(t, rec, &body)
	assert.Equal(t, analysis.Hourglass, body.Result.Type)
	assert.NotEmpty(t, body.Description)

	rec = env.do(t, http.MethodPost, "/analysis/face-shape", token, analysis.FaceMeasurements{
		FaceLength: 7.5, FaceWidth: 5.5, JawWidth: 4.5, ForeheadWidth: 5,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decode(t, rec, &user)
	require.NotNil(t, user.BMI)
	require.NotNil(t, user.BodyShape)
	require.NotNil(t, user.FaceShape)
	assert.Equal(t, analysis.Hourglass, user.BodyShape.Type)
	assert.Equal(t, analysis.Imperial, user.Measurements.Unit)
	require.NotNil(t, user.Measurements.Body)
	assert.Equal(t, 28.0, user.Measurements.Body.Waist)
}

func TestAnalysisRejectsBadInput(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"zero waist", "/analysis/body-shape", analysis.BodyMeasurements{Bust: 36, Waist: 0, Hips: 36}},
		{"negative hips", "/analysis/body-shape", analysis.BodyMeasurements{Bust: 36, Waist: 28, Hips: -1}},
		{"bad unit", "/analysis/bmi", BMIRequest{Height: 170, Weight: 60, Unit: "stone"}},
		{"zero height", "/analysis/bmi", BMIRequest{Height: 0, Weight: 60}},
		{"zero jaw", "/analysis/face-shape", analysis.FaceMeasurements{FaceLength: 7, FaceWidth: 5, ForeheadWidth: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.path, token, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := env.do(t, http.MethodGet, "/profile", token, nil)
	var user models.User
	decode(t, rec, &user)
	assert.Nil(t, user.BodyShape)
	assert.Nil(t, user.BMI)
}

func TestQuizSavesTopStyles(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodGet, "/quiz", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quiz struct {
		Questions  []analysis.Question  `json:"questions"`
		Archetypes []analysis.Archetype `json:"archetypes"`
	}
	decode(t, rec, &quiz)
	assert.Len(t, quiz.Questions, 5)
	assert.Equal(t, analysis.Archetypes(analysis.Female), quiz.Archetypes)

	rec = env.do(t, http.MethodPost, "/quiz", token, QuizRequest{Answers: analysis.Answers{
		"lifestyle":   "professional",
		"personality": "confident",
		"colors":      "neutral",
		"occasions":   "social",
		"comfort":     "balanced",
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp QuizResponse
	decode(t, rec, &resp)
	assert.Equal(t, []string{"classic", "minimalist", "edgy"}, resp.TopStyles)
	assert.Len(t, resp.Archetypes, 3)

	rec = env.do(t, http.MethodGet, "/profile", token, nil)
	var user models.User
	decode(t, rec, &user)
	assert.Equal(t, []string{"classic", "minimalist", "edgy"}, user.Preferences.StylePreferences)

	rec = env.do(t, http.MethodPost, "/quiz", token, QuizRequest{Answers: analysis.Answers{"lifestyle": "astronaut"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdviceReflectsProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodGet, "/advice", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var advice analysis.Advice
	decode(t, rec, &advice)
	assert.False(t, advice.Complete)
	assert.Len(t, advice.Blocks, 4)

	env.do(t, http.MethodPost, "/analysis/body-shape", token, analysis.BodyMeasurements{Bust: 36, Waist: 28, Hips: 36})
	rec = env.do(t, http.MethodGet, "/advice", token, nil)
	decode(t, rec, &advice)
	assert.Equal(t, "Your hourglass body shape", advice.Blocks[0].Title)
}

func TestConsultAndHistory(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodGet, "/consult", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Asha")

	rec = env.do(t, http.MethodPost, "/consult", token, ConsultRequest{Message: "What flatters my figure?"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reply analysis.Consultation
	decode(t, rec, &reply)
	assert.Equal(t, analysis.TopicBodyShape, reply.Topic)
	assert.Equal(t, "body-shape.missing", reply.TemplateID)

	rec = env.do(t, http.MethodPost, "/consult", token, ConsultRequest{Message: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/consult/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.Consultation
	decode(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "What flatters my figure?", history[0].Message)
	assert.Equal(t, reply.Response, history[0].Response)
}

func TestOutfitsAndColors(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodGet, "/outfits", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []analysis.OutfitMatch
	decode(t, rec, &matches)
	require.Len(t, matches, 4)
	for _, m := range matches {
		assert.Equal(t, 70, m.Score)
	}

	rec = env.do(t, http.MethodGet, "/outfits?occasion=work", token, nil)
	decode(t, rec, &matches)
	require.Len(t, matches, 1)
	assert.Equal(t, "1", matches[0].Outfit.ID)

	rec = env.do(t, http.MethodGet, "/outfits?occasion=gala", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/colors", "", nil)
	var seasons []analysis.ColorSeason
	decode(t, rec, &seasons)
	assert.Len(t, seasons, 4)
}

func uploadPhoto(t *testing.T, env *testEnv, token string) string {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="me.JPG"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("photo-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]string
	decode(t, rec, &resp)
	assert.True(t, strings.HasSuffix(resp["image_key"], ".jpg"))
	return resp["image_key"]
}

func TestOutfitPreview(t *testing.T) {
	images := newFakeImages()
	renderer := &fakeRenderer{}
	env := newTestEnv(t, func(d *Deps) {
		d.Images = images
		d.Renderer = renderer
	})
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "no photo yet")

	key := uploadPhoto(t, env, token)
	assert.Equal(t, []byte("photo-bytes"), images.objects[key])

	rec = env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "99"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "1", ImageKey: "user_images/someone-else/x.jpg"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Result  string               `json:"result"`
		Preview models.OutfitPreview `json:"preview"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, []string{"1"}, renderer.outfits)
	assert.True(t, strings.HasSuffix(resp.Preview.GeneratedImageKey, ".png"))
	assert.Equal(t, "https://signed.example/"+resp.Preview.GeneratedImageKey, resp.Result)
	assert.Equal(t, []byte("rendered:photo-bytes"), images.objects[resp.Preview.GeneratedImageKey])

	rec = env.do(t, http.MethodGet, "/outfits/previews?page=1&limit=5", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var gallery GalleryResponse
	decode(t, rec, &gallery)
	assert.Equal(t, int64(1), gallery.Total)
	assert.Equal(t, 1, gallery.TotalPages)
	require.Len(t, gallery.Previews, 1)
	assert.Equal(t, resp.Result, gallery.Previews[0].GeneratedImageURL)
}

func TestOutfitPreviewErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")
	rec := env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	images := newFakeImages()
	env = newTestEnv(t, func(d *Deps) {
		d.Images = images
		d.Renderer = &fakeRenderer{err: fmt.Errorf("gemini: %w", utils.ErrRateLimited)}
	})
	token = env.signup(t, "asha@example.com", "female")
	uploadPhoto(t, env, token)
	rec = env.do(t, http.MethodPost, "/outfits/preview", token, PreviewRequest{OutfitID: "1"})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = env.do(t, http.MethodGet, "/outfits/previews", token, nil)
	var gallery GalleryResponse
	decode(t, rec, &gallery)
	assert.Zero(t, gallery.Total)
	assert.NotNil(t, gallery.Previews)
}

func TestWardrobeImport(t *testing.T) {
	importer := &fakeImporter{product: &models.Product{
		Title:    "Slim Fit Chinos",
		Brand:    "Acme",
		MRP:      "1999",
		Category: "Trousers",
		Images:   []string{"https://shop.example/a.jpg"},
	}}
	env := newTestEnv(t, func(d *Deps) { d.Importer = importer })
	token := env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPost, "/wardrobe/import", token, ImportRequest{URL: "https://shop.example/p/1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item models.WardrobeItem
	decode(t, rec, &item)
	assert.Equal(t, analysis.GarmentBottom, item.Category)
	assert.Equal(t, "1999", item.Price)
	assert.Equal(t, []string{"https://shop.example/a.jpg"}, item.ImageURLs)

	rec = env.do(t, http.MethodPost, "/wardrobe/import", token, ImportRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/wardrobe", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.WardrobeItem
	decode(t, rec, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "https://shop.example/p/1", items[0].SourceURL)

	rec = env.do(t, http.MethodGet, "/wardrobe?category=top", token, nil)
	decode(t, rec, &items)
	assert.Empty(t, items)

	importer.err = utils.BadRequest("unsupported URL")
	rec = env.do(t, http.MethodPost, "/wardrobe/import", token, ImportRequest{URL: "ftp://x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	importer.err = fmt.Errorf("could not fetch a usable page")
	rec = env.do(t, http.MethodPost, "/wardrobe/import", token, ImportRequest{URL: "https://shop.example/p/2"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestEmailReport(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.signup(t, "asha@example.com", "female")
	assert.Equal(t, http.StatusServiceUnavailable, env.do(t, http.MethodPost, "/report/email", token, nil).Code)

	mailer := &fakeMailer{}
	env = newTestEnv(t, func(d *Deps) { d.Mailer = mailer })
	token = env.signup(t, "asha@example.com", "female")

	rec := env.do(t, http.MethodPost, "/report/email", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "asha@example.com", mailer.sent[0].toEmail)
	assert.Equal(t, reportSubject, mailer.sent[0].subject)
	assert.Contains(t, mailer.sent[0].html, "<p>Hi Asha,</p>")
}

func TestReportHTMLEscapes(t *testing.T) {
	out := reportHTML("<b>", analysis.Advice{Blocks: []analysis.AdviceBlock{{Title: "A & B", Lines: []string{"<i>x</i>"}}}})
	assert.Equal(t, "<p>Hi &lt;b&gt;,</p><h3>A &amp; B</h3><ul><li>&lt;i&gt;x&lt;/i&gt;</li></ul>", out)
}
