package controller

import (
	"context"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"
)

const (
	itemsPerPage = 5
	maxPages     = 10

	// Клиентский потолок: больше itemsPerPage*maxPages записей не держим,
	// сколько бы сервер ни вернул.
	maxItems = itemsPerPage * maxPages
)

// ListingsController — экран списка объявлений: поиск, пагинация.
// Пагинация — чисто локальный срез уже загруженного и уже обрезанного
// массива, сервер про страницы ничего не знает.
type ListingsController struct {
	loader

	api            port.KosAPIPort
	session        port.SessionPort
	storageBaseURL string

	query string
	items []domain.Kos
	page  int
}

func NewListingsController(api port.KosAPIPort, session port.SessionPort, storageBaseURL string) *ListingsController {
	return &ListingsController{
		api:            api,
		session:        session,
		storageBaseURL: storageBaseURL,
		page:           1,
	}
}

// Activate загружает список при входе на экран.
// Без учётных данных сетевой вызов не выполняется.
func (c *ListingsController) Activate(ctx context.Context) error {
	if c.session.Get() == "" {
		return domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	query := c.query
	c.mu.Unlock()

	return c.fetch(ctx, query)
}

// Search повторяет загрузку с новой строкой запроса и сбрасывает
// пагинацию на первую страницу. Результаты не сливаются с предыдущими.
func (c *ListingsController) Search(ctx context.Context, query string) error {
	if c.session.Get() == "" {
		return domain.ErrNotAuthenticated
	}

	c.mu.Lock()
	c.query = query
	c.mu.Unlock()

	return c.fetch(ctx, query)
}

func (c *ListingsController) fetch(ctx context.Context, query string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Listings",
		"query":      query,
	})

	gen := c.begin()

	items, err := c.api.SearchKos(ctx, query)
	if err != nil {
		logger.Error("Failed to fetch listings", err, nil)
		c.fail(gen, "Failed to load listings")
		return err
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}

	if !c.commit(gen, func() {
		c.items = items
		c.page = 1
	}) {
		logger.Debug("Discarded stale listings response", nil)
		return nil
	}

	logger.Info("Listings loaded", port.Fields{"count": len(items)})
	return nil
}

// Query возвращает текущую строку поиска.
func (c *ListingsController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Page возвращает текущую страницу (от 1).
func (c *ListingsController) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages = min(ceil(len/itemsPerPage), maxPages).
func (c *ListingsController) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *ListingsController) totalPagesLocked() int {
	pages := (len(c.items) + itemsPerPage - 1) / itemsPerPage
	if pages > maxPages {
		pages = maxPages
	}
	return pages
}

// VisibleItems возвращает элементы текущей страницы:
// срез [(p-1)*5, p*5) загруженного массива.
func (c *ListingsController) VisibleItems() []domain.Kos {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := (c.page - 1) * itemsPerPage
	if from >= len(c.items) {
		return nil
	}
	to := from + itemsPerPage
	if to > len(c.items) {
		to = len(c.items)
	}
	return c.items[from:to]
}

// CanPrev и CanNext управляют доступностью кнопок навигации:
// выключены ровно на первой и на последней странице.
func (c *ListingsController) CanPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page > 1
}

func (c *ListingsController) CanNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page < c.totalPagesLocked()
}

// NextPage и PrevPage отказываются выходить за границы.
func (c *ListingsController) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page >= c.totalPagesLocked() {
		return false
	}
	c.page++
	return true
}

func (c *ListingsController) PrevPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page <= 1 {
		return false
	}
	c.page--
	return true
}

// GoToPage переходит на страницу p, если она в допустимом диапазоне.
func (c *ListingsController) GoToPage(p int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p < 1 || p > c.totalPagesLocked() {
		return false
	}
	c.page = p
	return true
}

// CardImageURL возвращает полный адрес первой картинки объявления.
// Если картинок нет — пустая строка, вьюха рисует явную заглушку.
func (c *ListingsController) CardImageURL(kos domain.Kos) string {
	if len(kos.Images) == 0 || kos.Images[0].File == "" {
		return ""
	}
	return c.storageBaseURL + "/" + kos.Images[0].File
}
