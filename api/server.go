package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/raushankrgupta/stylewise/analysis"
	"github.com/raushankrgupta/stylewise/models"
	"github.com/raushankrgupta/stylewise/store"
	"github.com/raushankrgupta/stylewise/utils"
	"go.uber.org/zap"
)

// ImageStore keeps uploaded and generated images.
type ImageStore interface {
	utils.Uploader
	utils.Presigner
	Download(ctx context.Context, objectKey string) ([]byte, error)
}

// OutfitRenderer draws a person wearing a catalog outfit.
type OutfitRenderer interface {
	RenderOutfit(ctx context.Context, personImage []byte, outfit analysis.Outfit, profile analysis.Profile) (*utils.GeneratedImage, error)
}

// ProductImporter scrapes a product page.
type ProductImporter interface {
	Import(ctx context.Context, url string) (*models.Product, error)
}

type Mailer interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, textContent, htmlContent string) error
}

// Deps are the collaborators a Server is built from. Images, Renderer, Importer and
// Mailer may be nil; the routes that need them then answer 503.
type Deps struct {
	Store    store.Store
	Tokens   *utils.TokenIssuer
	Images   ImageStore
	Renderer OutfitRenderer
	Importer ProductImporter
	Mailer   Mailer
	Logger   *zap.Logger
}

// Server serves the StyleWise HTTP API.
type Server struct {
	store    store.Store
	tokens   *utils.TokenIssuer
	images   ImageStore
	mirror   *utils.ImageMirror
	renderer OutfitRenderer
	importer ProductImporter
	mailer   Mailer
	log      *zap.Logger
}

func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		store:    d.Store,
		tokens:   d.Tokens,
		images:   d.Images,
		renderer: d.Renderer,
		importer: d.Importer,
		mailer:   d.Mailer,
		log:      log,
	}
	if d.Images != nil {
		s.mirror = utils.NewImageMirror(d.Images, log)
	}
	return s
}

// Routes registers every endpoint and wraps the mux in CORS and latency logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", s.SignupHandler)
	mux.HandleFunc("POST /auth/login", s.LoginHandler)

	mux.Handle("GET /profile", s.authMiddleware(s.GetProfileHandler))
	mux.Handle("PUT /profile", s.authMiddleware(s.UpdateProfileHandler))
	mux.Handle("POST /profile/photo", s.authMiddleware(s.UploadPhotoHandler))

	mux.Handle("POST /analysis/bmi", s.authMiddleware(s.BMIHandler))
	mux.Handle("POST /analysis/body-shape", s.authMiddleware(s.BodyShapeHandler))
	mux.Handle("POST /analysis/face-shape", s.authMiddleware(s.FaceShapeHandler))

	mux.Handle("GET /quiz", s.authMiddleware(s.GetQuizHandler))
	mux.Handle("POST /quiz", s.authMiddleware(s.SubmitQuizHandler))
	mux.Handle("GET /advice", s.authMiddleware(s.AdviceHandler))
	mux.Handle("POST /report/email", s.authMiddleware(s.EmailReportHandler))

	mux.Handle("GET /consult", s.authMiddleware(s.GreetingHandler))
	mux.Handle("POST /consult", s.authMiddleware(s.ConsultHandler))
	mux.Handle("GET /consult/history", s.authMiddleware(s.ConsultHistoryHandler))

	mux.Handle("GET /outfits", s.authMiddleware(s.OutfitsHandler))
	mux.HandleFunc("GET /colors", s.ColorsHandler)
	mux.Handle("POST /outfits/preview", s.authMiddleware(s.OutfitPreviewHandler))
	mux.Handle("GET /outfits/previews", s.authMiddleware(s.PreviewGalleryHandler))

	mux.Handle("POST /wardrobe/import", s.authMiddleware(s.ImportWardrobeHandler))
	mux.Handle("GET /wardrobe", s.authMiddleware(s.WardrobeHandler))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return utils.LatencyMiddleware(s.log, corsMiddleware(mux))
}

// currentUser loads the authenticated user's record.
func (s *Server) currentUser(r *http.Request) (*models.User, error) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		return nil, err
	}
	return s.store.GetUser(r.Context(), userID)
}

const maxBodyBytes = 1 << 20

// decodeJSON reads a bounded JSON body, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return utils.BadRequest(fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

func requireField(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return utils.BadRequest(name + " is required")
	}
	return nil
}
