package dto

type BarberDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	ImageURL  string `json:"imageUrl"`
}
