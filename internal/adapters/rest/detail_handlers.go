package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"kos-portal/internal/core/controller"
	"kos-portal/internal/core/domain"

	"github.com/go-chi/chi/v5"
)

// DetailHandlers — экраны деталей объявления: бронирование и отзывы.
type DetailHandlers struct {
	views *Views
}

func NewDetailHandlers(views *Views) *DetailHandlers {
	return &DetailHandlers{views: views}
}

func (h *DetailHandlers) Detail(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	kosID, ok := kosIDFromURL(r)
	if !ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := sess.Booking.Activate(r.Context(), kosID); isAuthError(err) {
		redirectToLogin(w, r, "You are not logged in, please log in first")
		return
	}

	bc := sess.Booking
	view := detailView{
		Prompt:       r.URL.Query().Get("prompt"),
		Loading:      bc.State() == controller.StateLoading,
		ErrorMessage: bc.ErrorMessage(),
		Kos:          kosToView(bc.Kos()),
		Submitting:   bc.Submitting(),
		Message:      bc.Message(),
	}
	for _, img := range bc.VisibleImages() {
		view.Images = append(view.Images, bc.ImageURL(img))
	}
	h.views.Render(w, "detail", view)
}

func (h *DetailHandlers) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	kosID, ok := kosIDFromURL(r)
	if !ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, detailPath(kosID), http.StatusSeeOther)
		return
	}

	// POST мог прийти без предшествующего GET этого же объявления.
	if sess.Booking.KosID() != kosID {
		if err := sess.Booking.Activate(r.Context(), kosID); isAuthError(err) {
			redirectToLogin(w, r, "You are not logged in, please log in first")
			return
		}
	}

	err := sess.Booking.SubmitBooking(r.Context(), r.PostFormValue("start_date"), r.PostFormValue("end_date"))
	switch {
	case isAuthError(err):
		redirectToLogin(w, r, "Your session has expired, please log in again")
	case errors.Is(err, domain.ErrDatesRequired):
		redirectWithPrompt(w, r, detailPath(kosID), "Start and end dates must be filled in")
	default:
		// Результат (успех или отказ) уже записан в контроллер.
		http.Redirect(w, r, detailPath(kosID), http.StatusSeeOther)
	}
}

func (h *DetailHandlers) Reviews(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	kosID, ok := kosIDFromURL(r)
	if !ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	if err := sess.Reviews.Activate(r.Context(), kosID); isAuthError(err) {
		redirectToLogin(w, r, "You are not logged in, please log in first")
		return
	}

	h.views.Render(w, "reviews", h.buildReviewsView(sess.Reviews, r.URL.Query().Get("prompt")))
}

func (h *DetailHandlers) SubmitReview(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	kosID, ok := kosIDFromURL(r)
	if !ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, reviewsPath(kosID), http.StatusSeeOther)
		return
	}

	if sess.Reviews.KosID() != kosID {
		if err := sess.Reviews.Activate(r.Context(), kosID); isAuthError(err) {
			redirectToLogin(w, r, "You are not logged in, please log in again")
			return
		}
	}

	err := sess.Reviews.SubmitReview(r.Context(), r.PostFormValue("review"))
	switch {
	case isAuthError(err):
		redirectToLogin(w, r, "Your session has expired, please log in again")
	case errors.Is(err, domain.ErrReviewBodyRequired):
		redirectWithPrompt(w, r, reviewsPath(kosID), "Review text must not be empty")
	default:
		http.Redirect(w, r, reviewsPath(kosID), http.StatusSeeOther)
	}
}

func (h *DetailHandlers) buildReviewsView(rc *controller.ReviewsController, prompt string) detailView {
	view := detailView{
		Prompt:       prompt,
		Loading:      rc.State() == controller.StateLoading,
		ErrorMessage: rc.ErrorMessage(),
		Kos:          kosToView(rc.Kos()),
		Submitting:   rc.Submitting(),
		Message:      rc.Message(),
		Draft:        rc.Draft(),
	}
	for _, review := range rc.Reviews() {
		view.Reviews = append(view.Reviews, reviewView{
			Body:      review.Body,
			CreatedAt: review.CreatedAt.Format("2 Jan 2006"),
			Pending:   review.Status == domain.ReviewPending,
		})
	}
	return view
}

func kosToView(kos *domain.Kos) *kosDetailView {
	if kos == nil {
		return nil
	}
	view := &kosDetailView{
		ID:      kos.ID,
		Name:    kos.Name,
		Address: kos.Address,
		Price:   kos.PricePerMonth,
		Gender:  string(kos.Gender),
	}
	for _, facility := range kos.Facilities {
		view.Facilities = append(view.Facilities, facility.FacilityName)
	}
	return view
}

func kosIDFromURL(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "kosID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func detailPath(kosID int) string {
	return fmt.Sprintf("/dashboard/detail/%d", kosID)
}

func reviewsPath(kosID int) string {
	return fmt.Sprintf("/dashboard/detail/%d/reviews", kosID)
}
