package controller

import (
	"context"

	"kos-portal/internal/contextkeys"
	"kos-portal/internal/core/domain"
	"kos-portal/internal/core/port"
)

// Сколько картинок объявления показывается на экране деталей.
const maxDetailImages = 3

// BookingController — экран деталей объявления с формой бронирования.
// Загрузка деталей и отправка брони — независимые под-операции: у формы
// свой busy-флаг, одновременно в полете может быть только одна заявка.
type BookingController struct {
	loader

	api            port.KosAPIPort
	session        port.SessionPort
	storageBaseURL string

	kosID      int
	kos        *domain.Kos
	submitting bool
	message    string
}

func NewBookingController(api port.KosAPIPort, session port.SessionPort, storageBaseURL string) *BookingController {
	return &BookingController{
		api:            api,
		session:        session,
		storageBaseURL: storageBaseURL,
	}
}

// Activate загружает одно объявление по идентификатору.
func (c *BookingController) Activate(ctx context.Context, kosID int) error {
	if c.session.Get() == "" {
		return domain.ErrNotAuthenticated
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Booking",
		"kos_id":     kosID,
	})

	gen := c.begin()
	c.mu.Lock()
	c.kosID = kosID
	c.message = ""
	c.mu.Unlock()

	kos, err := c.api.GetKosByID(ctx, kosID)
	if err != nil {
		logger.Error("Failed to fetch kos detail", err, nil)
		c.fail(gen, "Failed to load listing details")
		return err
	}

	if !c.commit(gen, func() { c.kos = kos }) {
		logger.Debug("Discarded stale detail response", nil)
		return nil
	}

	logger.Info("Kos detail loaded", nil)
	return nil
}

// Kos возвращает загруженное объявление (nil до готовности).
func (c *BookingController) Kos() *domain.Kos {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kos
}

// KosID возвращает идентификатор текущего объявления.
func (c *BookingController) KosID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kosID
}

// VisibleImages возвращает не больше первых трех картинок.
// Пустой результат — явное состояние "нет картинок", не ошибка.
func (c *BookingController) VisibleImages() []domain.KosImage {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kos == nil || len(c.kos.Images) == 0 {
		return nil
	}
	images := c.kos.Images
	if len(images) > maxDetailImages {
		images = images[:maxDetailImages]
	}
	return images
}

// ImageURL собирает полный адрес картинки из базового пути хранилища.
func (c *BookingController) ImageURL(img domain.KosImage) string {
	return c.storageBaseURL + "/" + img.File
}

// SubmitBooking отправляет заявку. Пустая дата (любая из двух) отклоняется
// локально без сетевого вызова и без изменения статуса формы; диапазон
// дат (end >= start) локально не проверяется — так же, как в API.
func (c *BookingController) SubmitBooking(ctx context.Context, startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return domain.ErrDatesRequired
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return domain.ErrBusy
	}
	c.submitting = true
	c.message = ""
	kosID := c.kosID
	c.mu.Unlock()

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"controller": "Booking",
		"kos_id":     kosID,
	})

	err := c.api.CreateBooking(ctx, domain.BookingRequest{
		KosID:     kosID,
		StartDate: startDate,
		EndDate:   endDate,
	})

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.message = "Booking failed"
	} else {
		c.message = "Booking placed"
	}
	c.mu.Unlock()

	if err != nil {
		logger.Error("Booking submission failed", err, nil)
		return err
	}

	logger.Info("Booking submitted", nil)
	return nil
}

// Submitting сообщает, идет ли сейчас отправка (кнопка выключена).
func (c *BookingController) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Message возвращает транзиентный статус последней отправки.
func (c *BookingController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}
