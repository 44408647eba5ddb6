package domain

// BookingRequest — заявка на бронирование. Даты — календарные, без времени.
// Локально проверяется только непустота обеих дат; проверки end >= start нет,
// как и в удалённом API.
type BookingRequest struct {
	KosID     int
	StartDate string
	EndDate   string
}
