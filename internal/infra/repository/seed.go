package repository

import "github.com/R4F43R/barbapp/internal/models"

// DefaultServices is the shop's fixed menu.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: 1, Name: "Corte de Cabello Clásico", Description: "Un corte de precisión adaptado a tu estilo, finalizado con un peinado profesional.", Price: 25, DurationMin: 30},
		{ID: 2, Name: "Afeitado con Toalla Caliente", Description: "La experiencia de afeitado definitiva con navaja, aceites y toallas calientes.", Price: 30, DurationMin: 45},
		{ID: 3, Name: "Arreglo de Barba", Description: "Define y dale forma a tu barba con un recorte experto, perfilado y aceite para barba.", Price: 20, DurationMin: 30},
		{ID: 4, Name: "Paquete Completo", Description: "El servicio premium: corte de cabello, arreglo de barba y afeitado con toalla caliente.", Price: 65, DurationMin: 75},
	}
}

func DefaultBarbers() []models.Barber {
	return []models.Barber{
		{ID: 1, Name: "Javier 'El Navaja' Ríos", Specialty: "Afeitados clásicos y fade", ImageRef: "https://picsum.photos/seed/javier/400/400"},
		{ID: 2, Name: "Carlos 'El Estilista' Mendoza", Specialty: "Cortes modernos y peinados", ImageRef: "https://picsum.photos/seed/carlos/400/400"},
		{ID: 3, Name: "Luis 'El Barbas' González", Specialty: "Diseño y cuidado de barbas", ImageRef: "https://picsum.photos/seed/luis/400/400"},
	}
}
