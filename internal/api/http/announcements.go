package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jekabolt/edupath/internal/apisrv/auth"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
	"github.com/jekabolt/edupath/internal/feed"
	"github.com/jekabolt/edupath/internal/form"
	"github.com/jekabolt/edupath/internal/locale"
)

type announcementView struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorId  string    `json:"author_id"`
	ImageURL  string    `json:"image_url,omitempty"`
	BlurHash  string    `json:"blurhash,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"`
}

func newAnnouncementView(p *locale.Provider, a entity.Announcement) announcementView {
	return announcementView{
		Id:        a.Id,
		Title:     a.Title,
		Content:   a.Content,
		AuthorId:  a.AuthorId,
		ImageURL:  a.ImageURL.String,
		BlurHash:  a.ImageBlurHash.String,
		Width:     int(a.ImageWidth.Int32),
		Height:    int(a.ImageHeight.Int32),
		CreatedAt: a.CreatedAt,
		Date:      p.FormatDate(a.CreatedAt),
	}
}

type sectionView struct {
	Bucket feed.Bucket        `json:"bucket"`
	Label  string             `json:"label"`
	Items  []announcementView `json:"items"`
}

type listView struct {
	Count    int           `json:"count"`
	Label    string        `json:"label"`
	Sections []sectionView `json:"sections"`
}

// sections groups items by how long ago they were created and lays the
// groups out in the configured display order.
func (s *Server) sections(p *locale.Provider, items []entity.Announcement) []sectionView {
	groups := s.calendar.Group(items, s.now())
	out := []sectionView{}
	for _, sec := range feed.Sections(groups, s.order) {
		sv := sectionView{
			Bucket: sec.Bucket,
			Label:  p.T(sec.Bucket.LabelKey()),
			Items:  make([]announcementView, 0, len(sec.Items)),
		}
		for _, a := range sec.Items {
			sv.Items = append(sv.Items, newAnnouncementView(p, a))
		}
		out = append(out, sv)
	}
	return out
}

func (s *Server) listView(p *locale.Provider, items []entity.Announcement) listView {
	return listView{
		Count:    len(items),
		Label:    p.Tf("feed.count", len(items)),
		Sections: s.sections(p, items),
	}
}

func (s *Server) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	items, err := s.d.Repo.Announcements().ListAnnouncements(r.Context(), 0)
	if err != nil {
		s.fail(w, r, fmt.Errorf("can't list announcements: %w", err), "")
		return
	}
	s.ok(w, r, http.StatusOK, s.listView(s.provider(r), items), "")
}

type latestView struct {
	Item *announcementView `json:"item"`
}

func (s *Server) latestAnnouncement(w http.ResponseWriter, r *http.Request) {
	items, err := s.d.Repo.Announcements().ListAnnouncements(r.Context(), 1)
	if err != nil {
		s.fail(w, r, fmt.Errorf("can't get latest announcement: %w", err), "")
		return
	}
	v := latestView{}
	if len(items) > 0 {
		av := newAnnouncementView(s.provider(r), items[0])
		v.Item = &av
	}
	s.ok(w, r, http.StatusOK, v, "")
}

func (s *Server) publishAnnouncement(w http.ResponseWriter, r *http.Request) {
	sess, _ := auth.SessionFromContext(r.Context())
	req, err := s.publishRequest(w, r)
	if err != nil {
		s.fail(w, r, err, "notice.publishFailed")
		return
	}
	req.AuthorId = sess.UserId
	a, err := s.d.Publisher.Publish(r.Context(), req)
	if err != nil {
		s.fail(w, r, err, "notice.publishFailed")
		return
	}
	s.ok(w, r, http.StatusCreated, newAnnouncementView(s.provider(r), *a), "notice.published")
}

// publishRequest reads a JSON body or a multipart form with an optional
// image part.
func (s *Server) publishRequest(w http.ResponseWriter, r *http.Request) (*feed.PublishRequest, error) {
	if !isMultipart(r) {
		f := &form.PublishAnnouncementRequest{}
		if err := decode(r, f); err != nil {
			return nil, err
		}
		return &feed.PublishRequest{Title: f.Title, Content: f.Content}, nil
	}
	if err := s.parseMultipart(w, r); err != nil {
		return nil, err
	}
	img, err := s.formFile(r, "image")
	if err != nil {
		return nil, err
	}
	return &feed.PublishRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Image:   img,
	}, nil
}

func (s *Server) deleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := (&form.ImageIdRequest{Id: id}).Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := s.d.Publisher.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "")
		return
	}
	s.ok(w, r, http.StatusOK, nil, "")
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	limit := s.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &gerr.ValidationError{Fields: map[string]string{"image": "Must not exceed the upload size limit."}}
		}
		return &gerr.ValidationError{Fields: map[string]string{"body": "Must be a valid multipart form."}}
	}
	return nil
}

// formFile returns nil when the form has no such file.
func (s *Server) formFile(r *http.Request, field string) (*entity.Upload, error) {
	f, h, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, &gerr.ValidationError{Fields: map[string]string{field: "Must be a readable file."}}
	}
	defer f.Close()
	limit := s.maxUploadBytes()
	content, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("can't read %s: %w", field, err)
	}
	if int64(len(content)) > limit {
		return nil, &gerr.ValidationError{Fields: map[string]string{field: "Must not exceed the upload size limit."}}
	}
	return &entity.Upload{
		FileName:    h.Filename,
		ContentType: h.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
