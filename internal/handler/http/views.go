package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/internal/query"
	"github.com/MKhiriev/go-tours/internal/utils"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Page templates. Each is rendered inside templates/base.html.
const (
	viewOverview = "overview"
	viewTour     = "tour"
	viewLogin    = "login"
	viewAccount  = "account"
	viewError    = "error"
)

var viewFuncs = template.FuncMap{
	"firstName": func(name string) string {
		first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
		return first
	},
	"monthYear": func(t time.Time) string {
		return t.Format("January 2006")
	},
	"paragraphs": func(s string) []string {
		var out []string
		for _, p := range strings.Split(s, "\n") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	},
}

// viewData is the root value of every page template.
type viewData struct {
	Title   string
	User    *models.User
	Alert   string
	Message string
	Tours   []models.Tour
	Tour    *models.Tour
}

func parseViews() (map[string]*template.Template, error) {
	views := make(map[string]*template.Template)
	for _, name := range []string{viewOverview, viewTour, viewLogin, viewAccount, viewError} {
		t, err := template.New(name).Funcs(viewFuncs).ParseFS(templatesFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing view %s: %w", name, err)
		}
		views[name] = t
	}

	return views, nil
}

// staticFiles serves the embedded stylesheet and other public assets.
func staticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.FileServerFS(sub)
}

// render executes a page into a buffer first so that template failures
// still produce a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data viewData) error {
	if user, ok := utils.GetUserFromContext(r.Context()); ok && data.User == nil {
		data.User = &user
	}

	view, ok := h.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := view.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("error rendering view %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// renderError shows the error page. It is the last resort of writeError
// and therefore only logs its own failures.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	err := h.render(w, r, status, viewError, viewData{Title: app.MsgPageNotFound, Message: message})
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error rendering error page")
		http.Error(w, message, status)
	}
}

// overview lists all tours. A request carrying the tour, user and price of
// a completed checkout first records the booking and redirects to the bare
// URL.
func (h *Handler) overview(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	q := r.URL.Query()
	tourID, userID, rawPrice := q.Get("tour"), q.Get("user"), q.Get("price")
	if tourID != "" && userID != "" && rawPrice != "" {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil {
			return app.Wrapf(ErrInvalidParam, app.MsgInvalidValue, "price", rawPrice)
		}
		if _, err = h.services.BookingService.CreateFromCheckout(ctx, tourID, userID, price); err != nil {
			return err
		}

		http.Redirect(w, r, r.URL.Path, http.StatusFound)
		return nil
	}

	f, err := query.Parse(url.Values{})
	if err != nil {
		return err
	}
	tours, err := h.services.TourService.List(ctx, f, nil)
	if err != nil {
		return err
	}

	return h.render(w, r, http.StatusOK, viewOverview, viewData{Title: "All Tours", Tours: tours})
}

func (h *Handler) tourPage(w http.ResponseWriter, r *http.Request) error {
	tour, err := h.services.TourService.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		return err
	}

	return h.render(w, r, http.StatusOK, viewTour, viewData{Title: tour.Name + " Tour", Tour: &tour})
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, r, http.StatusOK, viewLogin, viewData{Title: "Log into your account"})
}

func (h *Handler) accountPage(w http.ResponseWriter, r *http.Request) error {
	return h.render(w, r, http.StatusOK, viewAccount, viewData{Title: "Your account"})
}

func (h *Handler) myToursPage(w http.ResponseWriter, r *http.Request) error {
	tours, err := h.services.BookingService.BookedTours(r.Context(), currentUser(r).ID)
	if err != nil {
		return err
	}

	return h.render(w, r, http.StatusOK, viewOverview, viewData{Title: "My Tours", Tours: tours})
}

// submitUserData handles the account settings form.
func (h *Handler) submitUserData(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return app.Wrap(fmt.Errorf("%w: %w", ErrInvalidParam, err), app.MsgInvalidJSON)
	}

	var req models.UpdateMeRequest
	if name := r.PostForm.Get("name"); name != "" {
		req.Name = &name
	}
	if email := r.PostForm.Get("email"); email != "" {
		req.Email = &email
	}

	updated, err := h.services.UserService.UpdateMe(r.Context(), currentUser(r).ID, req)
	if err != nil {
		return err
	}

	return h.render(w, r, http.StatusOK, viewAccount, viewData{
		Title: "Your account",
		User:  &updated,
		Alert: "Your data was updated successfully!",
	})
}
