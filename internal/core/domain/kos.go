package domain

import "time"

// Gender — категория объявления по полу жильцов.
// Удалённый API использует фиксированный набор из трёх значений.
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Kos — одно объявление о сдаче комнаты, как его отдает удалённый API.
// Мы эти записи не храним и не владеем ими, только отображаем.
type Kos struct {
	ID            int
	UserID        int
	Name          string
	Address       string
	PricePerMonth string // цена приходит строкой, оставляем как есть
	Gender        Gender
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Картинки и удобства могут отсутствовать или быть пустыми —
	// это нормальное состояние, а не ошибка.
	Images     []KosImage
	Facilities []KosFacility
}

// KosImage — картинка объявления. File — относительный путь,
// полный URL собирается из базового адреса хранилища.
type KosImage struct {
	ID        int
	KosID     int
	File      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// KosFacility — удобство, привязанное к объявлению.
type KosFacility struct {
	ID           int
	KosID        int
	FacilityName string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
