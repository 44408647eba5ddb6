package rest

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"kos-portal/internal/core/controller"
	"kos-portal/internal/core/domain"
)

// DashboardHandlers — экран списка объявлений.
type DashboardHandlers struct {
	views *Views
}

func NewDashboardHandlers(views *Views) *DashboardHandlers {
	return &DashboardHandlers{views: views}
}

func (h *DashboardHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	lc := sess.Listings
	q := r.URL.Query()

	var err error
	if q.Has("search") {
		err = lc.Search(r.Context(), q.Get("search"))
	} else {
		err = lc.Activate(r.Context())
	}
	if isAuthError(err) {
		redirectToLogin(w, r, "You are not logged in, please log in first")
		return
	}

	if raw := q.Get("page"); raw != "" {
		if p, convErr := strconv.Atoi(raw); convErr == nil {
			lc.GoToPage(p)
		}
	}

	h.views.Render(w, "dashboard", h.buildView(lc, q.Get("prompt")))
}

func (h *DashboardHandlers) buildView(lc *controller.ListingsController, prompt string) dashboardView {
	view := dashboardView{
		Prompt:       prompt,
		Loading:      lc.State() == controller.StateLoading,
		ErrorMessage: lc.ErrorMessage(),
		Query:        lc.Query(),
		Page:         lc.Page(),
		TotalPages:   lc.TotalPages(),
		CanPrev:      lc.CanPrev(),
		CanNext:      lc.CanNext(),
	}

	for _, kos := range lc.VisibleItems() {
		view.Cards = append(view.Cards, kosCardView{
			ID:       kos.ID,
			Name:     kos.Name,
			Address:  kos.Address,
			Price:    kos.PricePerMonth,
			Gender:   string(kos.Gender),
			ImageURL: lc.CardImageURL(kos),
		})
	}
	view.Empty = lc.State() == controller.StateReady && len(view.Cards) == 0

	if view.CanPrev {
		view.PrevURL = pageURL(view.Query, view.Page-1)
	}
	if view.CanNext {
		view.NextURL = pageURL(view.Query, view.Page+1)
	}
	return view
}

func pageURL(query string, page int) string {
	values := url.Values{}
	values.Set("search", query)
	values.Set("page", strconv.Itoa(page))
	return "/dashboard?" + values.Encode()
}

// isAuthError отличает "нужно на форму входа" от остальных отказов:
// отсутствие учётных данных и 401 ведут себя одинаково.
func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrUnauthorized)
}
