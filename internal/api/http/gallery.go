package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/gallery"
	"github.com/jekabolt/edupath/internal/locale"
)

type imageView struct {
	Id           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	ImageURL     string           `json:"image_url"`
	ImageType    entity.ImageType `json:"image_type"`
	TypeLabel    string           `json:"type_label"`
	DisplayOrder int              `json:"display_order"`
	IsActive     bool             `json:"is_active"`
	BlurHash     string           `json:"blurhash,omitempty"`
	Width        int              `json:"width,omitempty"`
	Height       int              `json:"height,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func newImageView(p *locale.Provider, img entity.InstitutionImage) imageView {
	return imageView{
		Id:           img.Id,
		Title:        img.Title,
		Description:  img.Description.String,
		ImageURL:     img.ImageURL,
		ImageType:    img.ImageType,
		TypeLabel:    p.T("imageType." + string(img.ImageType)),
		DisplayOrder: img.DisplayOrder,
		IsActive:     img.IsActive,
		BlurHash:     img.BlurHash.String,
		Width:        img.Width,
		Height:       img.Height,
		CreatedAt:    img.CreatedAt,
	}
}

func (s *Server) images(w http.ResponseWriter, r *http.Request, onlyActive bool) {
	imgs, err := s.d.Gallery.List(r.Context(), onlyActive, r.URL.Query().Get("type"))
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	p := s.provider(r)
	out := make([]imageView, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, newImageView(p, img))
	}
	s.ok(w, r, http.StatusOK, out, "")
}

func (s *Server) listGallery(w http.ResponseWriter, r *http.Request) {
	s.images(w, r, true)
}

func (s *Server) adminListGallery(w http.ResponseWriter, r *http.Request) {
	s.images(w, r, false)
}

func (s *Server) hero(w http.ResponseWriter, r *http.Request) {
	h, err := s.d.Gallery.Hero(r.Context())
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, h, "")
}

func (s *Server) uploadImage(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	if !isMultipart(r) {
		s.fail(w, r, &gerr.ValidationError{Fields: map[string]string{"image": "An image file is required."}}, "")
		return
	}
	if err := s.parseMultipart(w, r); err != nil {
		s.fail(w, r, err, "")
		return
	}
	file, err := s.formFile(r, "image")
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	order := 0
	if raw := r.FormValue("display_order"); raw != "" {
		order, err = strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, &gerr.ValidationError{Fields: map[string]string{"display_order": "Must be a number."}}, "")
			return
		}
	}
	img, err := s.d.Gallery.Upload(r.Context(), sess.UserId, &gallery.UploadRequest{
		Title:        r.FormValue("title"),
		Description:  r.FormValue("description"),
		ImageType:    r.FormValue("image_type"),
		DisplayOrder: order,
		File:         file,
	})
	if err != nil {
		s.fail(w, r, err, "notice.uploadFailed")
		return
	}
	s.ok(w, r, http.StatusCreated, newImageView(s.provider(r), *img), "notice.imageUploaded")
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

func (s *Server) setImageActive(w http.ResponseWriter, r *http.Request) {
	req := &setActiveRequest{}
	if err := decode(r, req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if req.IsActive == nil {
		s.fail(w, r, &gerr.ValidationError{Fields: map[string]string{"is_active": "Cannot be blank."}}, "")
		return
	}
	if err := s.d.Gallery.SetActive(r.Context(), chi.URLParam(r, "id"), *req.IsActive); err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, nil, "notice.imageUpdated")
}

func (s *Server) deleteImage(w http.ResponseWriter, r *http.Request) {
	if err := s.d.Gallery.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, nil, "notice.imageDeleted")
}
