package kosapi

import (
	"encoding/json"
	"strconv"
	"time"

	"kos-portal/internal/core/domain"
)

// DTO запросов к удалённому API.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type bookingRequest struct {
	KosID     int    `json:"kos_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type reviewRequest struct {
	Review string `json:"review"`
}

// Успешные ответы приходят в конверте с полем "data".

type kosListEnvelope struct {
	Data []kosResponse `json:"data"`
}

type kosDetailEnvelope struct {
	Data kosResponse `json:"data"`
}

type reviewListEnvelope struct {
	Data []reviewResponse `json:"data"`
}

type kosResponse struct {
	ID            int                 `json:"id"`
	UserID        int                 `json:"user_id"`
	Name          string              `json:"name"`
	Address       string              `json:"address"`
	PricePerMonth string              `json:"price_per_month"`
	Gender        string              `json:"gender"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
	Images        []kosImageResponse  `json:"kos_image"`
	Facilities    []facilityResponse  `json:"kos_facilities"`
}

type kosImageResponse struct {
	ID        int    `json:"id"`
	KosID     int    `json:"kos_id"`
	File      string `json:"file"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type facilityResponse struct {
	ID           int    `json:"id"`
	KosID        int    `json:"kos_id"`
	FacilityName string `json:"facility_name"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type reviewResponse struct {
	ID        int    `json:"id"`
	KosID     int    `json:"kos_id"`
	Review    string `json:"review"`
	CreatedAt string `json:"created_at"`
}

// Маппим DTO ответа в нашу доменную модель.
// Это изолирует ядро от деталей чужого API.

func (r kosResponse) toDomain() domain.Kos {
	kos := domain.Kos{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Address:       r.Address,
		PricePerMonth: r.PricePerMonth,
		Gender:        domain.Gender(r.Gender),
		CreatedAt:     parseAPITime(r.CreatedAt),
		UpdatedAt:     parseAPITime(r.UpdatedAt),
	}

	for _, img := range r.Images {
		kos.Images = append(kos.Images, domain.KosImage{
			ID:        img.ID,
			KosID:     img.KosID,
			File:      img.File,
			CreatedAt: parseAPITime(img.CreatedAt),
			UpdatedAt: parseAPITime(img.UpdatedAt),
		})
	}

	for _, f := range r.Facilities {
		kos.Facilities = append(kos.Facilities, domain.KosFacility{
			ID:           f.ID,
			KosID:        f.KosID,
			FacilityName: f.FacilityName,
			CreatedAt:    parseAPITime(f.CreatedAt),
			UpdatedAt:    parseAPITime(f.UpdatedAt),
		})
	}

	return kos
}

func (r reviewResponse) toDomain() domain.Review {
	return domain.Review{
		ID:        strconv.Itoa(r.ID),
		Body:      r.Review,
		CreatedAt: parseAPITime(r.CreatedAt),
		Status:    domain.ReviewConfirmed,
	}
}

// parseAPITime разбирает время из ответа API. Формат не зафиксирован
// документацией, поэтому пробуем наблюдаемые варианты; при неудаче
// возвращаем нулевое время вместо ошибки.
func parseAPITime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// extractErrorMessage достает сообщение из тела неуспешного ответа:
// сначала поле "message", затем "error", иначе общий текст.
func extractErrorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return "request failed"
}

// extractInfoMessage достает поле "message" из успешного ответа, если оно есть.
func extractInfoMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		return body.Message
	}
	return ""
}
