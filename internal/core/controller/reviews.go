package controller

import (
	"context"
	"strings"
	"sync"
	"time"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"

	"github.com/google/uuid"
)

// ReviewsController — экран деталей объявления с отзывами.
// Детали — главная загрузка, отзывы — вторичная: их отказ не валит экран,
// а деградирует до пустого списка.
type ReviewsController struct {
	loader

	api            port.KosAPIPort
	session        port.SessionPort
	storageBaseURL string

	kosID      int
	kos        *domain.Kos
	reviews    []domain.Review
	draft      string
	submitting bool
	message    string
}

func NewReviewsController(api port.KosAPIPort, session port.SessionPort, storageBaseURL string) *ReviewsController {
	return &ReviewsController{
		api:            api,
		session:        session,
		storageBaseURL: storageBaseURL,
	}
}

// Activate загружает детали и отзывы. Обе загрузки независимы и идут
// параллельно; судьбу экрана решает только первая.
func (c *ReviewsController) Activate(ctx context.Context, kosID int) error {
	if c.session.Get() == "" {
		return domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Reviews",
		"kos_id":     kosID,
	})

	gen := c.begin()
	c.mu.Lock()
	c.kosID = kosID
	c.message = ""
	c.mu.Unlock()

	var (
		wg         sync.WaitGroup
		reviews    []domain.Review
		reviewsErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		reviews, reviewsErr = c.api.ListReviews(ctx, kosID)
	}()

	kos, err := c.api.GetKosByID(ctx, kosID)
	wg.Wait()

	if err != nil {
		logger.Error("Failed to fetch kos detail", err, nil)
		c.fail(gen, "Failed to load listing details")
		return err
	}

	if reviewsErr != nil {
		// Некритичная загрузка: пользователь увидит пустой список.
		logger.Warn("Failed to fetch reviews, degrading to empty list", port.Fields{"error": reviewsErr.Error()})
		reviews = nil
	}

	if !c.commit(gen, func() {
		c.kos = kos
		c.reviews = reviews
	}) {
		logger.Debug("Discarded stale detail response", nil)
		return nil
	}

	logger.Info("Kos detail with reviews loaded", port.Fields{"reviews": len(reviews)})
	return nil
}

// Kos возвращает загруженное объявление (nil до готовности).
func (c *ReviewsController) Kos() *domain.Kos {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kos
}

// KosID возвращает идентификатор текущего объявления.
func (c *ReviewsController) KosID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kosID
}

// Reviews возвращает текущий список отзывов, включая локально добавленные.
func (c *ReviewsController) Reviews() []domain.Review {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Review, len(c.reviews))
	copy(out, c.reviews)
	return out
}

// SubmitReview отправляет отзыв. Пустой после trim текст отклоняется
// локально без сетевого вызова. При успехе отзыв немедленно добавляется
// в список оптимистично — с временным локальным id и текущим временем,
// независимо от того, что вернул сервер; черновик очищается.
// При отказе черновик сохраняется для повторной отправки.
func (c *ReviewsController) SubmitReview(ctx context.Context, body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return domain.ErrReviewBodyRequired
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.submitting = true
	c.message = ""
	c.draft = body
	kosID := c.kosID
	c.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Reviews",
		"kos_id":     kosID,
	})

	err := c.api.CreateReview(ctx, kosID, trimmed)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.message = "Failed to submit review"
	} else {
		c.reviews = append(c.reviews, domain.Review{
			ID:        uuid.New().String(),
			Body:      trimmed,
			CreatedAt: time.Now(),
			Status:    domain.ReviewPending,
		})
		c.draft = ""
		c.message = "Review submitted"
	}
	c.mu.Unlock()

	if err != nil {
		logger.Error("Review submission failed", err, nil)
		return err
	}

	logger.Info("Review submitted", nil)
	return nil
}

// Draft возвращает сохранённый текст формы после неудачной отправки.
func (c *ReviewsController) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submitting сообщает, идет ли сейчас отправка.
func (c *ReviewsController) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Message возвращает транзиентный статус последней отправки.
func (c *ReviewsController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}
